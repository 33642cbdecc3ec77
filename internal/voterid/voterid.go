// Package voterid derives the voter identity tokens stored alongside vote
// records. The token is deterministic per deployment secret so repeat
// submissions from the same student id collide, but it cannot be reversed
// to recover the id.
package voterid

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

type Hasher struct {
	secret []byte
}

func NewHasher(secret string) *Hasher {
	return &Hasher{secret: []byte(secret)}
}

func (h *Hasher) Token(raw string) string {
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}
