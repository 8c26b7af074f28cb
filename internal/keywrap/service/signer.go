package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HMACSigner implements Signer with HMAC-SHA256 and lowercase hex output.
type HMACSigner struct{}

// NewHMACSigner creates a new HMACSigner.
func NewHMACSigner() *HMACSigner {
	return &HMACSigner{}
}

// Sign returns the 64-character hex HMAC-SHA256 of message under key.
func (s *HMACSigner) Sign(message, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the tag and compares it in constant time.
func (s *HMACSigner) Verify(message, key, tag string) bool {
	expected := s.Sign(message, key)
	return hmac.Equal([]byte(expected), []byte(tag))
}
