// Package jwtmw issues and verifies the bearer tokens used by the API and
// provides the gin middleware that guards authenticated routes.
package jwtmw

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the caller attached to an authenticated request.
type Identity struct {
	UserID uint
	Email  string
	Name   string
}

// Claims is the token payload. "id" duplicates "sub" as a number so clients
// can read it without parsing a string.
type Claims struct {
	UserID uint   `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) identity() Identity {
	return Identity{UserID: c.UserID, Email: c.Email, Name: c.Name}
}

func subject(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}
