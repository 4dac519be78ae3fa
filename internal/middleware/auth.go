// Package middleware provides authentication and authorization middleware for the application.
package middleware

import (
	"crypto/subtle"
	"encoding/base64"
	"strconv"
	"strings"

	"quill/internal/cache"
	"quill/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// bearerClaims extracts and validates a bearer token, returning the user ID,
// login and token ID from its claims.
func bearerClaims(tokenString string) (uint, string, string, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", "", false
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, "", "", false
	}
	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, "", "", false
	}

	login, _ := claims["login"].(string)
	jti, _ := claims["jti"].(string)
	return uint(userID), login, jti, true
}

// AuthRequired is a middleware that enforces bearer authentication for protected routes.
// On success it stores userID (uint) and userLogin (string) in the request locals.
func AuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization header required",
		})
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid authorization header format",
		})
	}

	userID, login, jti, ok := bearerClaims(parts[1])
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	// Logout blacklists the token's JTI until its natural expiry
	if jti != "" {
		if rdb := cache.GetClient(); rdb != nil {
			if n, err := rdb.Exists(c.Context(), "blacklist:"+jti).Result(); err == nil && n > 0 {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Token has been revoked",
				})
			}
		}
	}

	c.Locals("userID", userID)
	c.Locals("userLogin", login)
	c.Locals("tokenJTI", jti)
	return c.Next()
}

// OptionalAuth populates userID/userLogin locals when a valid bearer token
// is present but never rejects the request. Used on public read routes so
// myStatus can be rendered for logged-in viewers.
func OptionalAuth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Next()
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Next()
	}
	if userID, login, _, ok := bearerClaims(parts[1]); ok {
		c.Locals("userID", userID)
		c.Locals("userLogin", login)
	}
	return c.Next()
}

// BasicAuthRequired enforces HTTP basic authentication against the admin
// credentials from configuration. Used on the administrative surface
// (blog/post/user management).
func BasicAuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Basic ") {
		c.Set("WWW-Authenticate", `Basic realm="restricted"`)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Basic authorization required",
		})
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(authHeader, "Basic "))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid basic authorization encoding",
		})
	}

	login, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid basic authorization format",
		})
	}

	loginOK := subtle.ConstantTimeCompare([]byte(login), []byte(cfg.AdminLogin)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(cfg.AdminPassword)) == 1
	if !loginOK || !passwordOK {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	return c.Next()
}
