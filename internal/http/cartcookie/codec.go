package cartcookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var ErrInvalid = errors.New("invalid cart cookie")

const maxItems = 50

type Item struct {
	ProductID string `json:"p"`
	Qty       int    `json:"q"`
}

type Cart struct {
	Items []Item `json:"items"`
}

// Add merges quantity into an existing line or appends a new one.
func (c *Cart) Add(productID string, qty int) {
	if productID == "" || qty <= 0 {
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Qty += qty
			return
		}
	}
	if len(c.Items) >= maxItems {
		return
	}
	c.Items = append(c.Items, Item{ProductID: productID, Qty: qty})
}

// SetQty replaces the line quantity; qty <= 0 removes the line.
func (c *Cart) SetQty(productID string, qty int) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			if qty <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Qty = qty
			}
			return
		}
	}
	if qty > 0 {
		c.Add(productID, qty)
	}
}

func (c *Cart) Remove(productID string) {
	c.SetQty(productID, 0)
}

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
}

func New(secret []byte, name string, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: name, Secure: secure}
}

// value format: base64(json).base64(hmac)
func (c *Codec) Encode(cart Cart) (string, error) {
	b, err := json.Marshal(cart)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(b)
	return payload + "." + sign(c.Secret, payload), nil
}

func (c *Codec) Decode(v string) (*Cart, error) {
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
	var cart Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, ErrInvalid
	}
	clean := cart.Items[:0]
	for _, it := range cart.Items {
		if it.ProductID == "" || it.Qty <= 0 {
			continue
		}
		clean = append(clean, it)
	}
	cart.Items = clean
	return &cart, nil
}

func (c *Codec) Get(ctx *gin.Context) *Cart {
	v, err := ctx.Cookie(c.CookieName)
	if err != nil || v == "" {
		return &Cart{}
	}
	cart, err := c.Decode(v)
	if err != nil {
		c.Clear(ctx)
		return &Cart{}
	}
	return cart
}

func (c *Codec) Set(ctx *gin.Context, cart Cart) error {
	val, err := c.Encode(cart)
	if err != nil {
		return err
	}
	maxAge := int((30 * 24 * time.Hour).Seconds())
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
