package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/config"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/dto"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/models"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/services"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/session"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	accounts *services.AccountService
	cfg      *config.Config
}

func NewAuthHandler(accounts *services.AccountService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{accounts: accounts, cfg: cfg}
}

// Page serves the landing, sign-up and sign-in views, which only need to
// know who is looking.
func (h *AuthHandler) Page(c *fiber.Ctx) error {
	return c.JSON(dto.LandingResponse{User: toUserResponse(session.Viewer(c))})
}

func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, msgBadRequest)
	}

	_, token, err := h.accounts.SignUp(c.UserContext(), &req, clientInfo(c))
	if err != nil {
		var ve models.ValidationError
		if !errors.As(err, &ve) {
			slog.Error("sign-up failed", "error", err, "path", c.Path())
		}
		return fail(c, fiber.StatusBadRequest, userMessage(err, msgGeneric))
	}

	middleware.SetSessionCookie(c, h.cfg, token)
	return c.Redirect("/profile/", fiber.StatusSeeOther)
}

func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, msgBadRequest)
	}

	_, token, err := h.accounts.SignIn(c.UserContext(), &req, clientInfo(c))
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return fail(c, fiber.StatusUnauthorized, msgFailedLogin)
		}
		return err
	}

	middleware.SetSessionCookie(c, h.cfg, token)
	return c.Redirect("/joblist/", fiber.StatusSeeOther)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sessionID, err := session.GetSessionID(c)
	if err == nil {
		if err := h.accounts.Logout(c.UserContext(), sessionID); err != nil {
			return err
		}
	}
	middleware.ClearSessionCookie(c, h.cfg)
	return c.Redirect("/", fiber.StatusSeeOther)
}

func clientInfo(c *fiber.Ctx) services.ClientInfo {
	return services.ClientInfo{IP: c.IP(), UserAgent: c.Get(fiber.HeaderUserAgent)}
}
