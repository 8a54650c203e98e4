package middleware

import (
	"net/http"
	"net/url"

	"github.com/anonto42/pulseblog/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

const identityKey = "identity"

// LoadSession resolves the current identity from the session cookie. A
// missing or invalid token degrades to anonymous; it never fails the
// request. Handlers read the result through CurrentUser.
func LoadSession(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				return next(c)
			}

			c.Set(identityKey, claims)
			return next(c)
		}
	}
}

// RequireLogin redirects anonymous requests to the login page, preserving
// the originally requested path in the next parameter.
func RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentUser(c) == nil {
				return c.Redirect(http.StatusFound,
					"/auth/login/?next="+url.QueryEscape(c.Request().URL.Path))
			}
			return next(c)
		}
	}
}

// CurrentUser returns the resolved identity, or nil for anonymous requests
func CurrentUser(c echo.Context) *models.JwtCustomClaims {
	claims, ok := c.Get(identityKey).(*models.JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}
