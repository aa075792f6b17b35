package presign

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func hmacSHA256(key []byte, s string) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(s))
	return h.Sum(nil)
}

func hmacSHA256Hex(key []byte, s string) string {
	return hex.EncodeToString(hmacSHA256(key, s))
}

type nestedError struct {
	outer error
	inner error
}

// nestError attaches formatted detail to a sentinel. errors.Is matches both
// the sentinel and anything wrapped into the detail; errors.Unwrap walks the
// detail chain.
func nestError(outer error, format string, a ...any) error {
	return &nestedError{
		outer: outer,
		inner: fmt.Errorf(format, a...),
	}
}

func (e *nestedError) Error() string {
	return e.outer.Error() + ": " + e.inner.Error()
}

func (e *nestedError) Unwrap() error {
	return e.inner
}

func (e *nestedError) Is(target error) bool {
	return errors.Is(e.outer, target)
}
