// middleware/jwt_middleware.go
package middleware

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// AdminClaims for the admin JWT token
type AdminClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.StandardClaims
}

// Valid implements the Claims interface for Echo's JWT middleware
func (c AdminClaims) Valid() error {
	if c.ExpiresAt > 0 && time.Now().Unix() > c.ExpiresAt {
		return errors.New("token is expired")
	}
	if c.Role != "admin" {
		return errors.New("token is not an admin token")
	}
	return nil
}

// GetJWTSecret returns the JWT secret from environment variables
func GetJWTSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET environment variable is required")
	}
	return secret
}

// GenerateAdminJWT issues a signed admin token valid for 24 hours
func GenerateAdminJWT(email string) (string, error) {
	claims := &AdminClaims{
		Email: email,
		Role:  "admin",
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(GetJWTSecret()))
}

// AdminJWTMiddleware protects the admin routes
func AdminJWTMiddleware() echo.MiddlewareFunc {
	return echoMiddleware.JWTWithConfig(echoMiddleware.JWTConfig{
		SigningKey: []byte(GetJWTSecret()),
		Claims:     &AdminClaims{},
		SuccessHandler: func(c echo.Context) {
			user := c.Get("user").(*jwt.Token)
			claims := user.Claims.(*AdminClaims)
			c.Set("adminEmail", claims.Email)
		},
		ErrorHandler: func(err error) error {
			return echo.NewHTTPError(echo.ErrUnauthorized.Code, "Invalid or expired token")
		},
	})
}
