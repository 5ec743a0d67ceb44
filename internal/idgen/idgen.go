// Package idgen produces the short random identifiers used as primary keys.
package idgen

import "crypto/rand"

const (
	charset       = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	defaultLength = 16
)

// NewID returns a random identifier of the default length.
func NewID() string {
	return NewIDN(defaultLength)
}

// NewIDN returns a random identifier of n characters drawn uniformly from
// [0-9a-zA-Z]. Uniqueness is probabilistic only; the owning table's primary
// key constraint is the actual enforcement.
func NewIDN(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = charset[int(b)%len(charset)]
	}
	return string(out)
}
