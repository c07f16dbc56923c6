package uploadauth

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Params authorize one direct browser upload to the media CDN, which
// expects an HMAC-SHA1 of token+expire under the account's private
// key. Receipts go straight from the client to the CDN; the API only
// ever sees the resulting URL.
type Params struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
	PublicKey string `json:"publicKey"`
}

type Signer struct {
	privateKey string
	publicKey  string
	expireIn   time.Duration

	now func() time.Time
}

var ErrNotConfigured = errors.New("uploadauth: keys not configured")

func NewSigner(privateKey, publicKey string, expireIn time.Duration) *Signer {
	if expireIn <= 0 {
		expireIn = 10 * time.Minute
	}
	return &Signer{
		privateKey: privateKey,
		publicKey:  publicKey,
		expireIn:   expireIn,
		now:        time.Now,
	}
}

func (s *Signer) Sign() (Params, error) {
	if s.privateKey == "" || s.publicKey == "" {
		return Params{}, ErrNotConfigured
	}

	token := uuid.NewString()
	expire := s.now().Add(s.expireIn).Unix()

	return Params{
		Token:     token,
		Expire:    expire,
		Signature: signature(s.privateKey, token, expire),
		PublicKey: s.publicKey,
	}, nil
}

func signature(privateKey, token string, expire int64) string {
	mac := hmac.New(sha1.New, []byte(privateKey))
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
