package checkoutcookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"sikassosugu.ml/app/internal/modules/checkout"
)

var ErrInvalid = errors.New("invalid checkout cookie")

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
}

func New(secret []byte, name string, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: name, Secure: secure}
}

// value format: base64(json).base64(hmac)
func (c *Codec) Encode(s *checkout.Session) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(b)
	return payload + "." + sign(c.Secret, payload), nil
}

func (c *Codec) Decode(v string) (*checkout.Session, error) {
	parts := strings.Split(v, ".")
	if len(parts) != 2 {
		return nil, ErrInvalid
	}
	payload, sig := parts[0], parts[1]
	if !verify(c.Secret, payload, sig) {
		return nil, ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalid
	}
	var s checkout.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, ErrInvalid
	}
	switch s.Step {
	case checkout.StepAddress, checkout.StepPayment, checkout.StepConfirmation:
	default:
		return nil, ErrInvalid
	}
	return &s, nil
}

// Get returns the session from the cookie, or a fresh one at the address
// step when the cookie is absent or tampered with.
func (c *Codec) Get(ctx *gin.Context) *checkout.Session {
	v, err := ctx.Cookie(c.CookieName)
	if err != nil || v == "" {
		return checkout.NewSession()
	}
	s, err := c.Decode(v)
	if err != nil {
		c.Clear(ctx)
		return checkout.NewSession()
	}
	return s
}

func (c *Codec) Set(ctx *gin.Context, s *checkout.Session) error {
	val, err := c.Encode(s)
	if err != nil {
		return err
	}
	maxAge := int((2 * time.Hour).Seconds())
	ctx.SetSameSite(2) // Lax
	ctx.SetCookie(c.CookieName, val, maxAge, "/", "", c.Secure, true)
	return nil
}

func (c *Codec) Clear(ctx *gin.Context) {
	ctx.SetSameSite(2) // Lax
	ctx.SetCookie(c.CookieName, "", -1, "/", "", c.Secure, true)
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verify(secret []byte, payload, sig string) bool {
	return hmac.Equal([]byte(sign(secret, payload)), []byte(sig))
}
