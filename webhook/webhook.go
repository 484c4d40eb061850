// Package webhook verifies the signatures of webhook deliveries sent by the
// Devexp API.
//
// Deliveries carry an Authorization header of the form "Signature <hex>",
// where <hex> is the HMAC-SHA256 of the raw request body keyed with the
// shared webhook secret.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const signaturePrefix = "Signature "

// Sign returns the lowercase hex HMAC-SHA256 of body keyed with secret.
func Sign(body, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether authorizationHeader carries a valid
// signature of body. The hex digest is compared case-insensitively and in
// constant time.
func VerifySignature(body, authorizationHeader, secret string) bool {
	if strings.TrimSpace(authorizationHeader) == "" || !strings.HasPrefix(authorizationHeader, signaturePrefix) {
		return false
	}

	provided, err := hex.DecodeString(strings.TrimPrefix(authorizationHeader, signaturePrefix))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))

	return hmac.Equal(provided, mac.Sum(nil))
}
