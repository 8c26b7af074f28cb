package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	keywrapDomain "github.com/allisson/notekeeper/internal/keywrap/domain"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, assert.AnError }

func TestPBKDF2KeyDeriver_DeriveSessionKey(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	t.Run("hex encoded 32 byte key", func(t *testing.T) {
		deriver := NewPBKDF2KeyDeriver(testIterations)
		key, err := deriver.DeriveSessionKey("user123", "password", now)
		require.NoError(t, err)
		assert.Regexp(t, "^[0-9a-f]{64}$", key)
	})

	t.Run("random salt gives distinct keys for the same inputs", func(t *testing.T) {
		deriver := NewPBKDF2KeyDeriver(testIterations)
		a, err := deriver.DeriveSessionKey("user123", "password", now)
		require.NoError(t, err)
		b, err := deriver.DeriveSessionKey("user123", "password", now)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("deterministic for a fixed salt", func(t *testing.T) {
		salt := bytes.Repeat([]byte{7}, 32)
		d1 := &PBKDF2KeyDeriver{iterations: testIterations, rand: bytes.NewReader(salt)}
		d2 := &PBKDF2KeyDeriver{iterations: testIterations, rand: bytes.NewReader(salt)}

		a, err := d1.DeriveSessionKey("user123", "password", now)
		require.NoError(t, err)
		b, err := d2.DeriveSessionKey("user123", "password", now)
		require.NoError(t, err)
		assert.Equal(t, a, b)

		d3 := &PBKDF2KeyDeriver{iterations: testIterations, rand: bytes.NewReader(salt)}
		c, err := d3.DeriveSessionKey("user123", "password", now.Add(time.Millisecond))
		require.NoError(t, err)
		assert.NotEqual(t, a, c)
	})

	t.Run("salt source failure", func(t *testing.T) {
		deriver := &PBKDF2KeyDeriver{iterations: testIterations, rand: failingReader{}}
		_, err := deriver.DeriveSessionKey("user123", "password", now)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("iterations above max", func(t *testing.T) {
		deriver := NewPBKDF2KeyDeriver(keywrapDomain.MaxKDFIterations + 1)
		key, err := deriver.DeriveSessionKey("user123", "password", now)
		assert.ErrorIs(t, err, keywrapDomain.ErrInvalidIterations)
		assert.Empty(t, key)
	})

	t.Run("non-positive iterations fall back to default", func(t *testing.T) {
		deriver := NewPBKDF2KeyDeriver(0)
		assert.Equal(t, 100000, deriver.iterations)
	})
}
