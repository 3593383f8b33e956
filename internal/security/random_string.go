package security

import (
	"crypto/rand"
	"errors"
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errAlphabetSize   = errors.New("alphabet must contain between 1 and 256 bytes")
)

// RandomString returns an unbiased random string of length bytes drawn from
// alphabet using crypto/rand with rejection sampling.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 || len(alphabet) > 256 {
		return "", errAlphabetSize
	}

	// Largest multiple of the alphabet size that fits in a byte.
	limit := 256 - 256%len(alphabet)
	value := make([]byte, 0, length)
	buffer := make([]byte, length)
	for len(value) < length {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}
		for _, sample := range buffer {
			if int(sample) >= limit {
				continue
			}
			value = append(value, alphabet[int(sample)%len(alphabet)])
			if len(value) == length {
				break
			}
		}
	}
	return string(value), nil
}
