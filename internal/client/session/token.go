package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry decodes the token without verifying its signature and
// returns the expiry claim. Verification belongs to the backend; the
// client only needs the timestamp to decide whether a persisted session is
// still worth presenting. A token without an exp claim returns a zero time
// and no error.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}

// TokenExpired reports whether the token carries an exp claim in the past.
func TokenExpired(token string) (bool, error) {
	exp, err := TokenExpiry(token)
	if err != nil {
		return false, err
	}
	if exp.IsZero() {
		return false, nil
	}
	return exp.Before(time.Now()), nil
}
