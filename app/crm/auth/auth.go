// Package auth provides support for authentication and authorization.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/epicevents/crm/business/domain/team"
	"github.com/epicevents/crm/business/domain/user"
)

var (
	ErrExpiredToken = errors.New("Token has expired. Please log in again.")
	ErrInvalidToken = errors.New("Invalid token. Please log in again.")

	// ErrForbidden is the single answer to every permission failure.
	ErrForbidden = errors.New("You do not have permission to access this feature")
)

// Claims represents the authorization claims. The subject is the username so
// a token survives nothing but a rename or a deletion of its user.
type Claims struct {
	jwt.RegisteredClaims
}

// Auth represents the set of APIs used for authentication and authorization.
type Auth struct {
	secret      []byte
	issuer      string
	ttl         time.Duration
	userService *user.Service
}

// New creates an auth instance signing with the shared secret.
func New(secret []byte, issuer string, ttl time.Duration, userService *user.Service) *Auth {
	return &Auth{
		secret:      secret,
		issuer:      issuer,
		ttl:         ttl,
		userService: userService,
	}
}

// GenerateToken signs a token for the user that expires after the ttl.
func (a *Auth) GenerateToken(usr user.User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   usr.Username,
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := tkn.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("signed string: %w", err)
	}
	return tokenString, nil
}

// VerifyToken checks the signature and expiry and returns the claims.
func (a *Auth) VerifyToken(tknString string) (Claims, error) {
	keyFn := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	}

	var claims Claims
	tkn, err := jwt.ParseWithClaims(tknString, &claims, keyFn)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredToken
		}
		return Claims{}, ErrInvalidToken
	}

	if !tkn.Valid {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}

// Authenticate validates the token and returns the corresponding user. A
// token whose username no longer exists is as invalid as a forged one.
func (a *Auth) Authenticate(ctx context.Context, tknString string) (user.User, error) {
	claims, err := a.VerifyToken(tknString)
	if err != nil {
		return user.User{}, err
	}

	usr, err := a.userService.GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidToken
		}
		return user.User{}, fmt.Errorf("get user by username: %w", err)
	}

	return usr, nil
}

// Login checks the credentials and returns a fresh token.
func (a *Auth) Login(ctx context.Context, username string, password string) (string, error) {
	usr, err := a.userService.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	return a.GenerateToken(usr)
}

// Authorized returns nil when the user's team grants the permission.
func (a *Auth) Authorized(usr user.User, perm team.Permission) error {
	if usr.Team.Has(perm) {
		return nil
	}
	return ErrForbidden
}
