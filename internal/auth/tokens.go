package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrSecretAbsent = errors.New("token secret is not configured")
	ErrTokenInvalid = errors.New("invalid token")
)

const DefaultBearerTTL = 20 * time.Minute

type Secrets struct {
	Bearer    string
	Refresh   string
	BearerTTL time.Duration
}

// claims is shared by both token kinds. Bearer tokens carry exp, refresh tokens
// carry jti instead and never expire on their own.
type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Issuer struct {
	bearer  []byte
	refresh []byte
	ttl     time.Duration
	now     func() time.Time
}

func NewIssuer(s Secrets, now func() time.Time) (*Issuer, error) {
	if s.Bearer == "" || s.Refresh == "" {
		return nil, ErrSecretAbsent
	}
	if s.BearerTTL <= 0 {
		s.BearerTTL = DefaultBearerTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Issuer{
		bearer:  []byte(s.Bearer),
		refresh: []byte(s.Refresh),
		ttl:     s.BearerTTL,
		now:     now,
	}, nil
}

func (i *Issuer) BearerTTL() time.Duration { return i.ttl }

func (i *Issuer) IssueBearer(email string) (string, error) {
	now := i.now()
	c := claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.bearer)
	if err != nil {
		return "", fmt.Errorf("sign bearer: %w", err)
	}
	return s, nil
}

// IssueRefresh signs a refresh token. The jti keeps two tokens issued within the
// same second for the same email distinct in the ledger.
func (i *Issuer) IssueRefresh(email string) (string, error) {
	c := claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(i.now()),
			ID:       uuid.NewString(),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.refresh)
	if err != nil {
		return "", fmt.Errorf("sign refresh: %w", err)
	}
	return s, nil
}

func (i *Issuer) ParseBearer(token string) (string, error) {
	return i.parse(token, i.bearer, jwt.WithExpirationRequired())
}

// ParseRefresh checks the signature only. Validity is decided by the ledger.
func (i *Issuer) ParseRefresh(token string) (string, error) {
	return i.parse(token, i.refresh)
}

func (i *Issuer) parse(token string, secret []byte, opts ...jwt.ParserOption) (string, error) {
	opts = append(opts,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	c := &claims{}
	t, err := jwt.ParseWithClaims(token, c, func(*jwt.Token) (any, error) {
		return secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !t.Valid || c.Email == "" {
		return "", ErrTokenInvalid
	}
	return c.Email, nil
}
