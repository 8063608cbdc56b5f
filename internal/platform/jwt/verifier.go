package jwtmw

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned for a well-formed token past its exp.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers malformed tokens, bad signatures and wrong algorithms.
	ErrTokenInvalid = errors.New("token invalid")
)

// Verifier checks a token and returns the identity it carries.
type Verifier interface {
	Verify(token string) (Identity, error)
}

type verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier creates a Verifier accepting HS256 tokens signed with secret.
func NewVerifier(secret string) *verifier {
	return &verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Verify parses tokenStr. The returned error wraps ErrTokenExpired or
// ErrTokenInvalid so callers can log the reason.
func (v *verifier) Verify(tokenStr string) (Identity, error) {
	var claims Claims
	token, err := v.parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid || claims.UserID == 0 {
		return Identity{}, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}
	return claims.identity(), nil
}
