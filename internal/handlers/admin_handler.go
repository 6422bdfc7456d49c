package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/dto"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/models"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/services"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/uploads"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminHandler is the JSON catalog API used by the back office.
type AdminHandler struct {
	catalog *services.CatalogService
}

func NewAdminHandler(catalog *services.CatalogService) *AdminHandler {
	return &AdminHandler{catalog: catalog}
}

func (h *AdminHandler) CreateCompany(c *fiber.Ctx) error {
	var req dto.CompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, msgBadRequest)
	}
	company, err := h.catalog.CreateCompany(c.UserContext(), &req, formFile(c, "logo"))
	if err != nil {
		return catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(company)
}

func (h *AdminHandler) CreateSkill(c *fiber.Ctx) error {
	var req dto.NameRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, msgBadRequest)
	}
	skill, err := h.catalog.CreateSkill(c.UserContext(), req.Name)
	if err != nil {
		return catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(skill)
}

func (h *AdminHandler) CreateCity(c *fiber.Ctx) error {
	var req dto.NameRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, msgBadRequest)
	}
	city, err := h.catalog.CreateCity(c.UserContext(), req.Name)
	if err != nil {
		return catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(city)
}

func (h *AdminHandler) CreateJobPost(c *fiber.Ctx) error {
	var req dto.JobPostRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, msgBadRequest)
	}
	post, err := h.catalog.CreateJobPost(c.UserContext(), &req)
	if err != nil {
		return catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *AdminHandler) SetApplicationStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusNotFound, services.ErrApplicationNotFound.Error())
	}
	var req dto.ApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, msgBadRequest)
	}
	app, err := h.catalog.SetApplicationStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(app)
}

func catalogError(c *fiber.Ctx, err error) error {
	var ve models.ValidationError
	switch {
	case errors.As(err, &ve):
		return fail(c, fiber.StatusConflict, ve.Error())
	case errors.Is(err, services.ErrApplicationNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrUnknownCompany),
		errors.Is(err, services.ErrUnknownCatalogOption),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrExpiryRequired),
		errors.Is(err, uploads.ErrExtensionNotAllowed),
		errors.Is(err, models.ErrJobPostTitleRequired),
		errors.Is(err, models.ErrJobPostNoCompany),
		errors.Is(err, models.ErrInvalidPayroll),
		errors.Is(err, models.ErrInvalidPayRange):
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	return err
}
