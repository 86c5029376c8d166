// Package auth issues and reads the JWTs that carry a viewer's role.
package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"member-pricing-service/internal/entity"
	"member-pricing-service/internal/pricing"
)

const contextKey = "user"

type Claims struct {
	UserID int          `json:"user_id"`
	Email  string       `json:"email"`
	Role   pricing.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for user valid for ttl.
func GenerateToken(secret []byte, user *entity.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func jwtConfig(secret []byte) echojwt.Config {
	return echojwt.Config{
		SigningKey: secret,
		ContextKey: contextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
		},
	}
}

// Required rejects requests without a valid token.
func Required(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(jwtConfig(secret))
}

// Optional lets anonymous requests through but still rejects a bad token.
func Optional(secret []byte) echo.MiddlewareFunc {
	cfg := jwtConfig(secret)
	cfg.Skipper = func(c echo.Context) bool {
		return c.Request().Header.Get(echo.HeaderAuthorization) == ""
	}
	return echojwt.WithConfig(cfg)
}

// RequireRole must run after Required.
func RequireRole(allowed func(pricing.Role) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFromContext(c)
			if !ok || !allowed(claims.Role) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

func ClaimsFromContext(c echo.Context) (*Claims, bool) {
	token, ok := c.Get(contextKey).(*jwt.Token)
	if !ok || token == nil {
		return nil, false
	}
	claims, ok := token.Claims.(*Claims)
	return claims, ok
}

// ViewerFromContext is Anonymous when the request carried no token. Roles
// the service does not know are treated as anonymous.
func ViewerFromContext(c echo.Context) pricing.Viewer {
	claims, ok := ClaimsFromContext(c)
	if !ok {
		return pricing.Anonymous
	}
	role, _ := pricing.ParseRole(string(claims.Role))
	return pricing.Viewer{Role: role}
}
