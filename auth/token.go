package auth

import (
	"time"

	"github.com/gorilla/securecookie"
	"github.com/pkg/errors"
)

// CookieName is the cookie carrying the signed set of unlocked paths.
const CookieName = "linkshare_auth"

// TokenTTL bounds how long an unlock lasts.
const TokenTTL = 24 * time.Hour

// Codec signs and verifies authorization tokens with the server secret.
type Codec struct {
	sc *securecookie.SecureCookie
}

type token struct {
	Paths []string `json:"p"`
}

// NewCodec builds a codec keyed by secret. A fresh random key is used when
// secret is empty, which invalidates tokens on every restart.
func NewCodec(secret []byte) *Codec {
	return newCodec(secret, TokenTTL)
}

func newCodec(secret []byte, ttl time.Duration) *Codec {
	if len(secret) == 0 {
		secret = securecookie.GenerateRandomKey(32)
	}
	sc := securecookie.New(secret, nil)
	sc.MaxAge(int(ttl / time.Second))
	sc.SetSerializer(securecookie.JSONEncoder{})
	return &Codec{sc: sc}
}

// Encode signs set into a cookie value.
func (c *Codec) Encode(set PathSet) (string, error) {
	value, err := c.sc.Encode(CookieName, token{Paths: set.Paths()})
	if err != nil {
		return "", errors.Wrap(err, "encoding auth token")
	}
	return value, nil
}

// Decode verifies value. Forged, malformed or expired tokens yield an empty set.
func (c *Codec) Decode(value string) PathSet {
	if value == "" {
		return PathSet{}
	}
	var tok token
	if err := c.sc.Decode(CookieName, value, &tok); err != nil {
		return PathSet{}
	}
	return NewPathSet(tok.Paths...)
}
