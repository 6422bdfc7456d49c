package middleware

import (
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/config"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/services"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/session"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// SignInPath is where anonymous visitors of protected pages are sent.
const SignInPath = "/signin/"

// LoginRequired admits requests whose session cookie names a live session
// and redirects everyone else to the sign-in page.
func LoginRequired(cfg *config.Config, accounts *services.AccountService) fiber.Handler {
	return sessionCookie(cfg, accounts, true)
}

// OptionalViewer resolves the session cookie when there is one and lets
// every request through.
func OptionalViewer(cfg *config.Config, accounts *services.AccountService) fiber.Handler {
	return sessionCookie(cfg, accounts, false)
}

func sessionCookie(cfg *config.Config, accounts *services.AccountService, required bool) fiber.Handler {
	reject := func(c *fiber.Ctx) error {
		if !required {
			return c.Next()
		}
		ClearSessionCookie(c, cfg)
		return c.Redirect(SignInPath, fiber.StatusSeeOther)
	}

	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		TokenLookup: "cookie:" + cfg.SessionCookie,
		ContextKey:  session.TokenKey,
		SuccessHandler: func(c *fiber.Ctx) error {
			userID, err := session.GetUserID(c)
			if err != nil {
				return reject(c)
			}
			sessionID, err := session.GetSessionID(c)
			if err != nil {
				return reject(c)
			}
			user, err := accounts.Authenticate(c.UserContext(), userID, sessionID)
			if err != nil {
				if errors.Is(err, services.ErrSessionInvalid) || errors.Is(err, services.ErrUserNotFound) {
					return reject(c)
				}
				return err
			}
			session.SetViewer(c, user)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return reject(c)
		},
	})
}

// SetSessionCookie hands the browser a new session token.
func SetSessionCookie(c *fiber.Ctx, cfg *config.Config, token *services.SessionToken) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.SessionCookie,
		Value:    token.Value,
		Path:     "/",
		Expires:  token.ExpiresAt,
		HTTPOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func ClearSessionCookie(c *fiber.Ctx, cfg *config.Config) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
