package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"goodhouse/internal/domain"
)

const (
	issuer    = "goodhouse"
	RoleAdmin = "admin"
)

// Tokens issues and verifies HS256 admin session tokens.
type Tokens struct {
	key []byte
	now func() time.Time
}

func NewTokens(secret string) (*Tokens, error) {
	if len(secret) < 16 {
		return nil, fmt.Errorf("JWT secret must be at least 16 bytes")
	}
	return &Tokens{key: []byte(secret), now: time.Now}, nil
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (t *Tokens) Issue(ctx context.Context, subject string, ttl time.Duration) (string, error) {
	now := t.now()
	c := claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, issuer and expiry. Every failure maps
// to domain.ErrUnauthorized.
func (t *Tokens) Verify(ctx context.Context, token string) (domain.Claims, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug().Msg("expired admin token")
		} else {
			log.Warn().Err(err).Msg("invalid admin token")
		}
		return domain.Claims{}, domain.ErrUnauthorized
	}
	if !parsed.Valid || c.Role != RoleAdmin {
		return domain.Claims{}, domain.ErrUnauthorized
	}

	out := domain.Claims{Subject: c.Subject, Role: c.Role, TokenID: c.ID}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out, nil
}
