package middleware

import (
	"crypto/subtle"
	"fmt"
	"log"

	config "github.com/ankithstudio/mediadesk/configs"
	"github.com/ankithstudio/mediadesk/internal/service"
	"github.com/ankithstudio/mediadesk/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type AuthMiddleware struct {
	es  service.EditorService
	cfg config.Config
}

func NewAuthMiddleware(cfg config.Config, es service.EditorService) *AuthMiddleware {
	return &AuthMiddleware{es: es, cfg: cfg}
}

// AdminAuth guards the dashboard routes: a session cookie from /login, or
// the configured admin API key for scripted callers.
func (m *AuthMiddleware) AdminAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(m.cfg.CookieName)
		apiKey := c.Query("api_key")

		if tokenString == "" && apiKey == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing session or api key",
			})
		}

		if apiKey != "" {
			if m.cfg.AdminAPIKey == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(m.cfg.AdminAPIKey)) != 1 {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid api key",
				})
			}
			return c.Next()
		}

		claims, err := utils.ValidateToken(m.cfg.SecretKey, tokenString)
		if err != nil {
			c.Cookie(&fiber.Cookie{
				Name:   m.cfg.CookieName,
				Value:  "",
				Path:   "/",
				MaxAge: -1, // Delete cookie
			})

			log.Printf("Token validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals("user_id", claims.UserID)
		return c.Next()
	}
}

// EditorAuth resolves the upload secret link into an editor id. Editors have
// no accounts; the link is the credential.
func (m *AuthMiddleware) EditorAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		secret := c.Query("secret")
		if secret == "" {
			secret = c.Get("X-Editor-Secret")
		}

		if secret == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing editor secret",
			})
		}

		editor, err := m.es.GetBySecret(c.Context(), secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid editor secret",
			})
		}

		c.Locals("editor_id", fmt.Sprintf("%d", editor.ID))
		return c.Next()
	}
}
