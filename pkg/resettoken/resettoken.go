// Package resettoken issues short-lived password-reset tokens.
//
// Tokens are HS256 JWTs signed with a per-user key derived from the account's
// current password hash, so every outstanding token stops verifying the moment
// the password changes. Single-use without any server-side token storage.
package resettoken

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("reset token is invalid or expired")

func signingKey(secret, passwordHash string) []byte {
	return []byte(secret + ":" + passwordHash)
}

// Generate creates a reset token for the given user.
func Generate(userID uint, passwordHash, secret string, expiryMinutes int) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiryMinutes) * time.Minute)),
		Issuer:    "acebook-password-reset",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey(secret, passwordHash))
}

// Verify checks a reset token against the user's current password hash and
// returns the user ID it was issued for.
func Verify(tokenString, passwordHash, secret string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return signingKey(secret, passwordHash), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return 0, ErrInvalidToken
	}
	return uint(userID), nil
}
