package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired reports whether the bearer token is a JWT whose expiry has
// already passed. The check is advisory only: the token is treated as opaque
// and no signature is verified, so anything that does not parse as a JWT (or
// carries no exp claim) is passed along for the backend to judge.
func TokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(time.Now())
}
