package security

import (
	"crypto/rand"
	"errors"
)

// TokenAlphabet is used for blob key tokens. Lowercase plus digits keeps the
// generated keys safe for URLs and case-insensitive object stores.
const TokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
	errAlphabetTooBig = errors.New("alphabet must hold at most 256 characters")
)

// RandomString returns a cryptographically secure, unbiased string of the
// requested length drawn from alphabet.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}
	if len(alphabet) > 256 {
		return "", errAlphabetTooBig
	}

	// Rejection sampling: discard bytes above the largest multiple of the
	// alphabet size so every character stays equally likely.
	limit := 256 - 256%len(alphabet)
	value := make([]byte, 0, length)
	buffer := make([]byte, length)
	for len(value) < length {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}
		for _, raw := range buffer {
			if int(raw) >= limit {
				continue
			}
			value = append(value, alphabet[int(raw)%len(alphabet)])
			if len(value) == length {
				break
			}
		}
	}

	return string(value), nil
}
