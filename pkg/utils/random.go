package utils

import (
	"crypto/rand"
	"math/big"
)

const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateShortCode returns a random code of the given length drawn from
// the 62-character alphanumeric alphabet, using crypto/rand so codes are
// not guessable from previous ones.
func GenerateShortCode(length int) string {
	max := big.NewInt(int64(len(charset)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// Only reachable when the OS entropy source is broken.
			panic(err)
		}
		b[i] = charset[n.Int64()]
	}
	return string(b)
}
