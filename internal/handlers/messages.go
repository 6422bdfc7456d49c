package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/dto"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/models"
	"github.com/gofiber/fiber/v2"
)

const (
	msgGeneric      = "Something went wrong. Please try again."
	msgFailedLogin  = "Invalid credentials."
	msgBadRequest   = "Invalid request body"
	msgProfileError = "Could not update your profile. Please check the details and try again."
)

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

// userMessage returns the text of a validation error, or fallback for
// anything else.
func userMessage(err error, fallback string) string {
	var ve models.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return fallback
}

func toUserResponse(u *models.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
	}
}
