package auth

import (
	"crypto/sha256"
	"errors"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"
)

const (
	DefaultMagicLinkTTL = 15 * time.Minute

	magicLinkIssuer   = "semdex"
	magicLinkAudience = "magic-link"
	magicLinkKeyInfo  = "semdex magic-link v1"
)

// MagicLinkClaims is the payload of a magic-link token.
type MagicLinkClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// MagicLinkIssuer signs and verifies magic-link tokens. The HMAC key is derived from the
// session secret, so rotating SESSION_SECRET invalidates outstanding links.
type MagicLinkIssuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewMagicLinkIssuer(secret string, ttl time.Duration) (*MagicLinkIssuer, error) {
	if secret == "" {
		return nil, errors.New("magic link: empty session secret")
	}
	if ttl <= 0 {
		ttl = DefaultMagicLinkTTL
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(magicLinkKeyInfo)), key); err != nil {
		return nil, err
	}
	return &MagicLinkIssuer{key: key, ttl: ttl, now: time.Now}, nil
}

func (m *MagicLinkIssuer) TTL() time.Duration { return m.ttl }

// Issue returns a signed token for email and its expiry.
func (m *MagicLinkIssuer) Issue(email string) (string, time.Time, error) {
	now := m.now()
	expires := now.Add(m.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, MagicLinkClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    magicLinkIssuer,
			Audience:  jwt.ClaimStrings{magicLinkAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString(m.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Parse verifies signature, issuer, audience and expiry.
func (m *MagicLinkIssuer) Parse(tokenString string) (*MagicLinkClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &MagicLinkClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(magicLinkIssuer),
		jwt.WithAudience(magicLinkAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*MagicLinkClaims)
	if !ok || !parsed.Valid || claims.ID == "" || claims.Email == "" {
		return nil, errors.New("magic link: invalid claims")
	}
	return claims, nil
}
