package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// MailtrapProvider sends through the Mailtrap HTTP API. Used in
// environments without a reachable SMTP relay.
type MailtrapProvider struct {
	apiURL   string
	apiKey   string
	fromAddr string
	fromName string
	client   *http.Client
}

func NewMailtrapProvider(apiURL, apiKey, fromAddr, fromName string) *MailtrapProvider {
	return &MailtrapProvider{
		apiURL:   apiURL,
		apiKey:   apiKey,
		fromAddr: fromAddr,
		fromName: fromName,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type mailtrapPerson struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type mailtrapPayload struct {
	From     mailtrapPerson   `json:"from"`
	To       []mailtrapPerson `json:"to"`
	Subject  string           `json:"subject"`
	Text     string           `json:"text,omitempty"`
	HTML     string           `json:"html,omitempty"`
	Category string           `json:"category,omitempty"`
}

func (p *MailtrapProvider) Send(ctx context.Context, m Message) error {
	if p.apiURL == "" || p.apiKey == "" {
		return fmt.Errorf("mailtrap credentials not configured")
	}

	payload := mailtrapPayload{
		From:     mailtrapPerson{Email: p.fromAddr, Name: p.fromName},
		To:       []mailtrapPerson{{Email: m.To, Name: m.ToName}},
		Subject:  m.Subject,
		Text:     m.Text,
		HTML:     m.HTML,
		Category: "Transactional",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return fmt.Errorf("mailtrap API error: %d", res.StatusCode)
	}
	return nil
}
