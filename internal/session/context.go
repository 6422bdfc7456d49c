// Package session reads the signed-in viewer out of a request.
package session

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKey is where the jwt middleware leaves the parsed token.
const TokenKey = "user"

const viewerKey = "viewer"

var ErrNoSession = errors.New("no session in context")

// Claims returns the verified claims of the session token, if any.
func Claims(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals(TokenKey).(*jwt.Token)
	if !ok || token == nil {
		return nil, ErrNoSession
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

// GetUserID extracts the user UUID from the "sub" claim.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	return claimUUID(c, "sub")
}

// GetSessionID extracts the session row id from the "sid" claim.
func GetSessionID(c *fiber.Ctx) (uuid.UUID, error) {
	return claimUUID(c, "sid")
}

func claimUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	claims, err := Claims(c)
	if err != nil {
		return uuid.Nil, err
	}
	raw, ok := claims[name].(string)
	if !ok {
		return uuid.Nil, errors.New("missing " + name + " claim")
	}
	return uuid.Parse(raw)
}

// SetViewer stores the user the session belongs to.
func SetViewer(c *fiber.Ctx, u *models.User) {
	c.Locals(viewerKey, u)
}

// Viewer returns the signed-in user or nil for anonymous requests.
func Viewer(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(viewerKey).(*models.User)
	return u
}
