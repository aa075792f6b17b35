package presign

import (
	"errors"
	"testing"

	"github.com/zeebo/assert"
)

func TestSHA256Hex(t *testing.T) {
	const (
		hashZero = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
		hashTest = "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"
	)

	assert.Equal(t, hashZero, sha256Hex(nil))
	assert.Equal(t, hashZero, sha256Hex([]byte("")))
	assert.Equal(t, hashTest, sha256Hex([]byte("test")))
}

func TestHMACSHA256(t *testing.T) {
	const expected = "5031fe3d989c6d1537a013fa6e739da23463fdaec3b70137d828e36ace221bd0"

	digest := hmacSHA256([]byte("key"), "data")
	assert.Equal(t, 32, len(digest))
	assert.Equal(t, expected, hmacSHA256Hex([]byte("key"), "data"))

	t.Run("empty key", func(t *testing.T) {
		assert.Equal(t, 32, len(hmacSHA256(nil, "data")))
	})
	t.Run("long key", func(t *testing.T) {
		key := make([]byte, 1024)
		assert.Equal(t, 32, len(hmacSHA256(key, "data")))
	})
}

func TestNestedError(t *testing.T) {
	outer := errors.New("outer")
	inner := errors.New("inner")

	nested := nestError(outer, "oops: %w", inner)

	t.Run("Error", func(t *testing.T) {
		assert.Equal(t, "outer: oops: inner", nested.Error())
	})
	t.Run("Unwrap", func(t *testing.T) {
		assert.Equal(t, inner, errors.Unwrap(errors.Unwrap(nested)))
	})
	t.Run("Is", func(t *testing.T) {
		assert.That(t, errors.Is(nested, outer))
		assert.That(t, errors.Is(nested, inner))
	})
}
