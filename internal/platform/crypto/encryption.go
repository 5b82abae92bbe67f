package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const keySize = 32

var hkdfInfo = []byte("paystub profile fields v1")

// sealedOverhead is the AES-GCM nonce plus tag carried by every sealed value.
const sealedOverhead = 12 + 16

var (
	ErrCiphertextTooShort = errors.New("ciphertext too short")
	ErrKeyRequired        = errors.New("value is encrypted but no DATA_ENCRYPTION_KEY is configured")
)

// Service seals short personal fields (SSN and account last four) at rest.
// Without a key it stores values as plaintext, and refuses to decrypt
// anything long enough to have been sealed.
type Service struct {
	aead cipher.AEAD
}

// New accepts a hex, base64 or raw key. Keys that do not decode to 32 bytes
// are stretched with HKDF-SHA256.
func New(key string) (*Service, error) {
	if key == "" {
		return &Service{}, nil
	}
	decoded, err := deriveKey(decodeKey(key))
	if err != nil {
		return nil, fmt.Errorf("derive DATA_ENCRYPTION_KEY: %w", err)
	}
	block, err := aes.NewCipher(decoded)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Service{aead: gcm}, nil
}

func (s *Service) Configured() bool {
	return s != nil && s.aead != nil
}

func (s *Service) Encrypt(plain []byte) ([]byte, error) {
	if len(plain) == 0 {
		return nil, nil
	}
	if !s.Configured() {
		return plain, nil
	}
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return s.aead.Seal(nonce, nonce, plain, nil), nil
}

func (s *Service) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return nil, nil
	}
	if !s.Configured() {
		if len(ciphertext) >= sealedOverhead {
			return nil, ErrKeyRequired
		}
		return ciphertext, nil
	}
	n := s.aead.NonceSize()
	if len(ciphertext) < n {
		return nil, ErrCiphertextTooShort
	}
	return s.aead.Open(nil, ciphertext[:n], ciphertext[n:], nil)
}

func (s *Service) EncryptString(value string) ([]byte, error) {
	if value == "" {
		return nil, nil
	}
	return s.Encrypt([]byte(value))
}

func (s *Service) DecryptString(value []byte) (string, error) {
	plain, err := s.Decrypt(value)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func deriveKey(secret []byte) ([]byte, error) {
	if len(secret) == keySize {
		return secret, nil
	}
	key := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, hkdfInfo), key); err != nil {
		return nil, err
	}
	return key, nil
}

func decodeKey(raw string) []byte {
	if len(raw) == 2*keySize {
		if decoded, err := hex.DecodeString(raw); err == nil {
			return decoded
		}
	}
	if decoded, err := base64.StdEncoding.DecodeString(raw); err == nil {
		return decoded
	}
	if decoded, err := base64.RawStdEncoding.DecodeString(raw); err == nil {
		return decoded
	}
	return []byte(raw)
}
