package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

// MinKeyLength is the minimum accepted key size in characters.
const MinKeyLength = 32

var ErrKeyTooShort = errors.New("encryption key must be at least 32 characters")

// Encryptor provides deterministic symmetric encryption and keyed digests
// for promotion-abuse evidence. Determinism matters: equal plaintexts must
// produce equal ciphertexts so usage counts can be matched with plain SQL
// equality. The IV is derived from the plaintext itself (SIV-style) instead
// of being random.
type Encryptor struct {
	aesKey []byte
	macKey []byte
}

// NewEncryptor derives the cipher and MAC keys from the configured secret.
func NewEncryptor(key string) (*Encryptor, error) {
	if len(key) < MinKeyLength {
		return nil, ErrKeyTooShort
	}

	encSum := sha256.Sum256([]byte("enc:" + key))
	macSum := sha256.Sum256([]byte("mac:" + key))

	return &Encryptor{
		aesKey: encSum[:],
		macKey: macSum[:],
	}, nil
}

// Encrypt returns a hex-encoded, deterministic ciphertext of plaintext.
func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	block, err := aes.NewCipher(e.aesKey)
	if err != nil {
		return "", fmt.Errorf("cipher init: %w", err)
	}

	iv := e.syntheticIV(plaintext)
	stream := cipher.NewCTR(block, iv)

	out := make([]byte, len(iv)+len(plaintext))
	copy(out, iv)
	stream.XORKeyStream(out[len(iv):], []byte(plaintext))

	return hex.EncodeToString(out), nil
}

// Decrypt reverses Encrypt.
func (e *Encryptor) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	raw, err := hex.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}
	if len(raw) < aes.BlockSize {
		return "", errors.New("ciphertext too short")
	}

	block, err := aes.NewCipher(e.aesKey)
	if err != nil {
		return "", fmt.Errorf("cipher init: %w", err)
	}

	iv := raw[:aes.BlockSize]
	stream := cipher.NewCTR(block, iv)

	plain := make([]byte, len(raw)-aes.BlockSize)
	stream.XORKeyStream(plain, raw[aes.BlockSize:])

	return string(plain), nil
}

// Digest returns an irreversible keyed digest of the input, hex-encoded.
func (e *Encryptor) Digest(input string) string {
	mac := hmac.New(sha256.New, e.macKey)
	mac.Write([]byte(input))
	return hex.EncodeToString(mac.Sum(nil))
}

// syntheticIV derives a deterministic IV from the plaintext.
func (e *Encryptor) syntheticIV(plaintext string) []byte {
	mac := hmac.New(sha256.New, e.macKey)
	mac.Write([]byte("iv:" + plaintext))
	return mac.Sum(nil)[:aes.BlockSize]
}
