package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signer recomputes payment-provider callback signatures. The secret never
// leaves this process and is never echoed back to a caller.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

func (s *Signer) Configured() bool {
	return len(s.secret) > 0
}

func (s *Signer) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares the presented signature against a locally recomputed one in
// constant time. A client-supplied success flag is never consulted.
func (s *Signer) Verify(orderID, paymentID, signature string) bool {
	expected := s.Sign(orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
