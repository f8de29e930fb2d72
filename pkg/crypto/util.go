package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// Alphanumeric is the alphabet used for generated secrets.
const Alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomBytes returns n cryptographically-secure random bytes.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := io.ReadFull(rand.Reader, b)
	return b, err
}

// RandomString returns n characters drawn uniformly from alphabet using bytes
// read from r. Bytes at or above the largest multiple of len(alphabet) that
// fits in a byte are discarded so every character is equally likely.
func RandomString(r io.Reader, n int, alphabet string) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("invalid length %d", n)
	}
	if len(alphabet) == 0 || len(alphabet) > 256 {
		return "", errors.New("alphabet must hold between 1 and 256 characters")
	}

	limit := 256 - 256%len(alphabet)
	out := make([]byte, 0, n)
	buf := make([]byte, n+n/4+1)

	for len(out) < n {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}

// RandomAlphanumeric returns an n-character secret from the system CSPRNG.
func RandomAlphanumeric(n int) (string, error) {
	return RandomString(rand.Reader, n, Alphanumeric)
}
