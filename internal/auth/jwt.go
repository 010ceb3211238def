package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/techbay/auth-backend/internal/apperr"
)

// tokenValidity is how long an issued token stays usable.
const tokenValidity = 60 * time.Minute

// Role is the privilege level carried inside a token.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// ParseRole maps a role string to a Role. Unknown strings are an error; they
// must never resolve to a privileged role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// TokenUser is the identity embedded in a token.
type TokenUser struct {
	UserID      int    `json:"userId"`
	Username    string `json:"username"`
	Displayname string `json:"displayname"`
	Role        Role   `json:"role,omitempty"`
}

// Claims is the JWT claims structure: the identity nested under "user" plus
// the registered expiry.
type Claims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

// JWT signs and verifies tokens with a single process-wide secret. The
// secret is injected once at construction and never re-read.
type JWT struct {
	key []byte
}

// New creates a JWT codec for the given signing secret.
func New(secret string) (*JWT, error) {
	if len(secret) == 0 {
		return nil, errors.New("signing secret is empty")
	}
	return &JWT{key: []byte(secret)}, nil
}

// Issue creates a signed token for the given identity, expiring after
// tokenValidity.
func (j *JWT) Issue(userID int, role Role, username, displayname string) (string, error) {
	claims := &Claims{
		User: TokenUser{
			UserID:      userID,
			Username:    username,
			Displayname: displayname,
			Role:        role,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenValidity)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(j.key)
	if err != nil {
		return "", apperr.New(apperr.Internal, "JWT creation error.")
	}
	return signed, nil
}

// Verify parses and validates a token string, returning its claims. Expired
// tokens, bad signatures, unexpected signing methods and unknown roles all
// fail verification.
func (j *JWT) Verify(tokenString string) (*Claims, error) {
	if len(tokenString) == 0 {
		return nil, apperr.New(apperr.Unauthenticated, "No token material.")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return j.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}))
	if err != nil || !token.Valid {
		return nil, apperr.New(apperr.Validation, "JWT Parsing error.")
	}

	if _, err := ParseRole(string(claims.User.Role)); err != nil {
		return nil, apperr.New(apperr.Validation, "JWT Parsing error.")
	}

	return claims, nil
}
