package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	KindSession = "session"
	KindCustom  = "custom"

	sessionTTL = 24 * time.Hour
	customTTL  = time.Hour
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongKind    = errors.New("token kind not accepted here")
)

// Claims are the claims carried by every token. The subject is the tenant.
type Claims struct {
	Kind      string `json:"kind"`
	Anonymous bool   `json:"anon,omitempty"`
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 tokens. Session tokens authenticate API
// calls; custom tokens are minted by a trusted backend and exchanged for a
// session.
type Signer struct {
	secret []byte
	now    func() time.Time
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret), now: time.Now}
}

func (s *Signer) GenerateToken(subject string, anonymous bool) (string, error) {
	return s.buildTokenWithClaims(subject, KindSession, anonymous, sessionTTL)
}

// GenerateCustomToken mints a token that SignInWithToken accepts.
func (s *Signer) GenerateCustomToken(subject string) (string, error) {
	return s.buildTokenWithClaims(subject, KindCustom, false, customTTL)
}

func (s *Signer) buildTokenWithClaims(subject, kind string, anonymous bool, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}
	now := s.now()
	claims := Claims{
		Kind:      kind,
		Anonymous: anonymous,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken verifies the signature and expiry and returns the claims. kind
// restricts which tokens are accepted.
func (s *Signer) ParseToken(tokenStr, kind string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	if claims.Kind != kind {
		return nil, ErrWrongKind
	}
	return claims, nil
}
