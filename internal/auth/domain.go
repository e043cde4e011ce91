// Package auth issues and verifies bearer tokens for the catalog API.
package auth

import "github.com/golang-jwt/jwt/v4"

// Claims is the token payload: standard registered claims with the account
// email as subject.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenResponse is the OAuth2-style password grant response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type TokenRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
