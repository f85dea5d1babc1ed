// utils/jwt.go
package utils

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"mangemate/config"
)

// TokenTTL matches the 365-day session the frontend expects.
const TokenTTL = 365 * 24 * time.Hour

// SessionCookieName is the cookie carrying the signed credential.
const SessionCookieName = "token"

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func GenerateJWT(email string) (string, error) {
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTKey)
}

func ValidateJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return config.JWTKey, nil
	})

	if err != nil || !token.Valid {
		return nil, err
	}

	return claims, nil
}

// SessionCookie builds the credential cookie. Cross-site attributes are
// only safe over HTTPS, so SameSite=None and Secure are reserved for
// production deployments.
func SessionCookie(token string) *http.Cookie {
	c := &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(TokenTTL.Seconds()),
	}
	applySiteAttributes(c)
	return c
}

// ExpiredSessionCookie clears the credential cookie with attributes
// matching the ones it was set with.
func ExpiredSessionCookie() *http.Cookie {
	c := &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	}
	applySiteAttributes(c)
	return c
}

func applySiteAttributes(c *http.Cookie) {
	if config.Production {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	} else {
		c.SameSite = http.SameSiteStrictMode
	}
}
