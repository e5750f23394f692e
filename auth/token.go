package auth

import (
	"anon-chat/errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "anon-chat"

// OperatorClaims is what an admin token carries. Participants never get one.
type OperatorClaims struct {
	Operator string   `json:"operator"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// Signer issues and checks HS256 admin tokens with a shared secret.
type Signer struct {
	secret []byte
	now    func() time.Time
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret), now: time.Now}
}

// GenerateToken creates a signed JWT for an operator.
func (s *Signer) GenerateToken(operator string, roles []string, duration time.Duration) (string, error) {
	now := s.now()
	claims := &OperatorClaims{
		Operator: operator,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   operator,
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateToken checks signature, algorithm, issuer and expiry.
func (s *Signer) ValidateToken(tokenString string) (*OperatorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &OperatorClaims{},
		func(token *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrUnauthorized, err)
	}
	if claims, ok := token.Claims.(*OperatorClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.ErrUnauthorized
}

// HasRole reports whether the claims grant role.
func (c *OperatorClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
