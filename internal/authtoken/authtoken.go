// Package authtoken issues and verifies the bearer tokens toolpathd uses
// to gate its decode-result endpoint, as HS256 JWTs built with
// github.com/golang-jwt/jwt/v5.
package authtoken

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims identifies the decode job a token grants access to.
type Claims struct {
	JobID string `json:"job_id"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies job tokens with a single shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer returns an Issuer signing with HS256 and the given token
// lifetime.
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl}
}

// Issue returns a signed token granting access to jobID's result.
func (i *Issuer) Issue(jobID string) (string, error) {
	now := time.Now()
	claims := Claims{
		JobID: jobID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("authtoken: failed to sign token: %v", err)
	}
	return signed, nil
}

// Verify checks a bearer token's signature and expiry and returns the
// job id it grants access to.
func (i *Issuer) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("authtoken: invalid token: %v", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("authtoken: invalid claims")
	}
	return claims.JobID, nil
}
