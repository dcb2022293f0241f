package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestNewEncryptor_RejectsShortKey(t *testing.T) {
	_, err := NewEncryptor("too-short")
	assert.ErrorIs(t, err, ErrKeyTooShort)
}

func TestEncrypt_Deterministic(t *testing.T) {
	e, err := NewEncryptor(testKey)
	require.NoError(t, err)

	a, err := e.Encrypt("0123456789")
	require.NoError(t, err)
	b, err := e.Encrypt("0123456789")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEmpty(t, a)
	assert.NotEqual(t, "0123456789", a)
}

func TestEncrypt_RoundTrip(t *testing.T) {
	e, err := NewEncryptor(testKey)
	require.NoError(t, err)

	cipher, err := e.Encrypt("+60-12-3456789")
	require.NoError(t, err)

	plain, err := e.Decrypt(cipher)
	require.NoError(t, err)
	assert.Equal(t, "+60-12-3456789", plain)
}

func TestEncrypt_EmptyInput(t *testing.T) {
	e, err := NewEncryptor(testKey)
	require.NoError(t, err)

	cipher, err := e.Encrypt("")
	require.NoError(t, err)
	assert.Empty(t, cipher)
}

func TestEncrypt_DifferentPlaintextsDiffer(t *testing.T) {
	e, err := NewEncryptor(testKey)
	require.NoError(t, err)

	a, err := e.Encrypt("0123456789")
	require.NoError(t, err)
	b, err := e.Encrypt("0123456780")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDigest_Deterministic(t *testing.T) {
	e, err := NewEncryptor(testKey)
	require.NoError(t, err)

	assert.Equal(t, e.Digest("4111111111111111"), e.Digest("4111111111111111"))
	assert.NotEqual(t, e.Digest("4111111111111111"), e.Digest("4111111111111112"))
	assert.Len(t, e.Digest("anything"), 64)
}

func TestDigest_KeyDependent(t *testing.T) {
	e1, err := NewEncryptor(testKey)
	require.NoError(t, err)
	e2, err := NewEncryptor("another-key-that-is-32-chars-long!!")
	require.NoError(t, err)

	assert.NotEqual(t, e1.Digest("4111111111111111"), e2.Digest("4111111111111111"))
}
