package handlers

import (
	"errors"
	"log/slog"
	"mime/multipart"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/dto"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/models"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/services"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/session"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/uploads"
	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) Show(c *fiber.Ctx) error {
	viewer := session.Viewer(c)
	if viewer == nil {
		return fiber.ErrUnauthorized
	}
	profile, err := h.profiles.Profile(c.UserContext(), viewer.ID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// Update accepts the multipart profile form. Any save failure yields the
// same generic message and leaves the profile untouched.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	viewer := session.Viewer(c)
	if viewer == nil {
		return fiber.ErrUnauthorized
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, msgBadRequest)
	}
	files := services.ProfileFiles{
		Resume:         formFile(c, "resume"),
		ProfilePicture: formFile(c, "profile_picture"),
	}

	if err := h.profiles.Update(c.UserContext(), viewer.ID, &req, files); err != nil {
		var ve models.ValidationError
		if !errors.As(err, &ve) && !errors.Is(err, uploads.ErrExtensionNotAllowed) {
			slog.Error("profile update failed", "error", err, "user_id", viewer.ID.String(), "path", c.Path())
		}
		profile, perr := h.profiles.Profile(c.UserContext(), viewer.ID)
		if perr != nil {
			return fail(c, fiber.StatusBadRequest, msgProfileError)
		}
		profile.Message = msgProfileError
		return c.Status(fiber.StatusBadRequest).JSON(profile)
	}
	return c.Redirect("/profile/", fiber.StatusSeeOther)
}

// formFile returns the named upload, or nil when the field was left empty.
func formFile(c *fiber.Ctx, name string) *multipart.FileHeader {
	fh, err := c.FormFile(name)
	if err != nil || fh.Size == 0 {
		return nil
	}
	return fh
}
