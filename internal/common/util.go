package common

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString generates a random hexadecimal string built from size
// random bytes; the resulting string is twice as long as size. It returns an
// error if the random number generator fails.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// WipeByteArray zeroes the buffer in place. Used to scrub passwords read from
// the terminal once they have been handed to the gateway.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
