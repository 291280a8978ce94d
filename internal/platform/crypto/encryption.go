package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	saltSize = 16
	keySize  = 32

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

var magic = []byte("hrpayroll:v1:")

var (
	ErrKeyRequired = errors.New("crypto: data is encrypted but no DATA_ENCRYPTION_KEY is configured")
	ErrCorrupted   = errors.New("crypto: ciphertext too short")
)

// Service seals store snapshots with AES-GCM. The key is derived from the
// configured passphrase with argon2id and a random salt per snapshot.
type Service struct {
	passphrase []byte
}

func New(passphrase string) *Service {
	if passphrase == "" {
		return &Service{}
	}
	return &Service{passphrase: []byte(passphrase)}
}

func (s *Service) Configured() bool {
	return s != nil && len(s.passphrase) > 0
}

// IsSealed reports whether data was produced by Encrypt.
func IsSealed(data []byte) bool {
	return bytes.HasPrefix(data, magic)
}

func (s *Service) Encrypt(plain []byte) ([]byte, error) {
	if !s.Configured() {
		return plain, nil
	}
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	gcm, err := s.cipher(salt)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(magic)+saltSize+len(nonce)+len(plain)+gcm.Overhead())
	out = append(out, magic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plain, magic), nil
}

// Decrypt returns unsealed data unchanged so plain files stay readable after
// a key is configured.
func (s *Service) Decrypt(data []byte) ([]byte, error) {
	if !IsSealed(data) {
		return data, nil
	}
	if !s.Configured() {
		return nil, ErrKeyRequired
	}
	body := data[len(magic):]
	if len(body) < saltSize {
		return nil, ErrCorrupted
	}
	salt, body := body[:saltSize], body[saltSize:]
	gcm, err := s.cipher(salt)
	if err != nil {
		return nil, err
	}
	if len(body) < gcm.NonceSize() {
		return nil, ErrCorrupted
	}
	nonce, ciphertext := body[:gcm.NonceSize()], body[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, magic)
}

func (s *Service) cipher(salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(s.passphrase, salt, argonTime, argonMemory, argonThreads, keySize)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
