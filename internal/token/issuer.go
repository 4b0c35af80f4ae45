// Package token issues and verifies the two stateless token classes:
// signed session tokens for admin authentication and arithmetic challenge
// tokens for the login bot check. Nothing is stored server-side; every
// token is re-verifiable from its own bytes plus the shared secret.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"time"

	json "github.com/goccy/go-json"
)

// Claims is the payload of a session token.
type Claims struct {
	Subject  string `json:"sub"`
	Role     string `json:"role"`
	IssuedAt int64  `json:"iat"` // unix seconds
	Expires  int64  `json:"exp"` // unix seconds
}

type Issuer struct {
	sessionSecret   []byte
	challengeSecret []byte
	sessionTTL      time.Duration
	challengeTTL    time.Duration
	now             func() time.Time
}

// New creates an Issuer. sessionTTL and challengeTTL of zero fall back to
// 24 hours and 5 minutes.
func New(sessionSecret, challengeSecret string, sessionTTL, challengeTTL time.Duration) *Issuer {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	if challengeTTL <= 0 {
		challengeTTL = 5 * time.Minute
	}
	return &Issuer{
		sessionSecret:   []byte(sessionSecret),
		challengeSecret: []byte(challengeSecret),
		sessionTTL:      sessionTTL,
		challengeTTL:    challengeTTL,
		now:             time.Now,
	}
}

func sign(secret, data []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}

// IssueSession signs a session token for the given identity and role,
// expiring after the configured TTL.
func (i *Issuer) IssueSession(identity, role string) (string, error) {
	now := i.now()
	claims := Claims{
		Subject:  identity,
		Role:     role,
		IssuedAt: now.Unix(),
		Expires:  now.Add(i.sessionTTL).Unix(),
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded + "." + sign(i.sessionSecret, []byte(encoded)), nil
}

// VerifySession checks signature and expiry. Malformed input, a bad
// signature and an expired token are indistinguishable to the caller.
func (i *Issuer) VerifySession(tok string) (*Claims, bool) {
	dot := -1
	for idx := len(tok) - 1; idx >= 0; idx-- {
		if tok[idx] == '.' {
			dot = idx
			break
		}
	}
	if dot <= 0 || dot == len(tok)-1 {
		return nil, false
	}
	encoded, sig := tok[:dot], tok[dot+1:]

	expected := sign(i.sessionSecret, []byte(encoded))
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return nil, false
	}

	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, false
	}
	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, false
	}
	if i.now().Unix() > claims.Expires {
		return nil, false
	}
	return &claims, true
}
