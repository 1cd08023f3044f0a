package auth

import "github.com/golang-jwt/jwt/v5"

// AccessTokenClaims carries the identity asserted by the external provider.
// Only the subject user id matters to this service.
type AccessTokenClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}
