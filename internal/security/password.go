package security

import (
	"crypto/rand"
	"math/big"
)

const tempPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

// GenerateTempPassword produces a random temporary password for a freshly
// provisioned administrator credential. Ambiguous characters (0/O, 1/l/I)
// are excluded. Every call returns a fresh password, which is why a
// partially failed approval must never be retried blindly.
func GenerateTempPassword(length int) (string, error) {
	if length < 12 {
		length = 12
	}
	buf := make([]byte, length)
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
