package email

import "context"

// Message is a single outbound email.
type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a message through whichever provider is configured.
type Sender interface {
	Send(ctx context.Context, m Message) error
}
