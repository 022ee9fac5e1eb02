package checkout

import (
	"crypto/rand"
	"encoding/hex"
)

// newAccessToken returns the 32-hex-character secret that gates read access
// to an order. Computed here, before construction, rather than as a
// persistence side effect.
func newAccessToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
