package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	domain "github.com/NordCoder/Foodcart/internal/domain/auth"
	"golang.org/x/crypto/hkdf"
)

const profileKeyInfo = "foodcart/user-cookie/v1"

var profileAAD = []byte("user")

var ErrProfileUnreadable = errors.New("profile cookie unreadable")

// ProfileSealer encrypts the display profile kept in the user cookie.
type ProfileSealer struct {
	aead cipher.AEAD
}

func NewProfileSealer(secret string) (*ProfileSealer, error) {
	if secret == "" {
		return nil, ErrSecretAbsent
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(profileKeyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive cookie key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}
	return &ProfileSealer{aead: gcm}, nil
}

func (s *ProfileSealer) Seal(p domain.DisplayProfile) (string, error) {
	plain, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(s.aead.Seal(nonce, nonce, plain, profileAAD)), nil
}

func (s *ProfileSealer) Open(v string) (domain.DisplayProfile, error) {
	var p domain.DisplayProfile
	raw, err := base64.RawURLEncoding.DecodeString(v)
	if err != nil || len(raw) < s.aead.NonceSize() {
		return p, ErrProfileUnreadable
	}
	nonce, ct := raw[:s.aead.NonceSize()], raw[s.aead.NonceSize():]
	plain, err := s.aead.Open(nil, nonce, ct, profileAAD)
	if err != nil {
		return p, ErrProfileUnreadable
	}
	if err := json.Unmarshal(plain, &p); err != nil {
		return p, ErrProfileUnreadable
	}
	return p, nil
}
