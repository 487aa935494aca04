package common

import "github.com/google/uuid"

// WipeByteArray zeroes b in place. Used to drop plaintext passwords after
// they have been serialized into a request body.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// NewRequestID returns a fresh correlation id.
func NewRequestID() string {
	return uuid.NewString()
}
