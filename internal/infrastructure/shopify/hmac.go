package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// ComputeSignature returns the base64 HMAC-SHA256 of the raw body under the
// shared app secret. This is the value the platform sends in
// X-Shopify-Hmac-Sha256.
func ComputeSignature(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a webhook delivery signature against the exact raw
// request bytes. The comparison is constant time. An empty signature never
// verifies.
func VerifySignature(secret string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	expected := ComputeSignature(secret, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}
