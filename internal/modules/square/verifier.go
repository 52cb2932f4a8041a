package square

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Verifier checks the X-Square-HmacSHA256-Signature header of a delivery.
type Verifier struct {
	key           []byte
	allowUnsigned bool
}

// NewVerifier returns a Verifier for key. With an empty key, every delivery
// is accepted when allowUnsigned is set and rejected otherwise.
func NewVerifier(key string, allowUnsigned bool) *Verifier {
	return &Verifier{key: []byte(key), allowUnsigned: allowUnsigned}
}

// Configured reports whether a signature key is set.
func (v *Verifier) Configured() bool { return len(v.key) > 0 }

// Sign returns base64(HMAC-SHA256(key, body)).
func (v *Verifier) Sign(body []byte) string {
	mac := hmac.New(sha256.New, v.key)
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature matches body.
func (v *Verifier) Verify(body []byte, signature string) bool {
	if !v.Configured() {
		return v.allowUnsigned
	}
	return hmac.Equal([]byte(signature), []byte(v.Sign(body)))
}
