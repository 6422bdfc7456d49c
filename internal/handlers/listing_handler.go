package handlers

import (
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/cache"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/dto"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/forms"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/listing"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/services"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ListingHandler serves the three job listings, the detail page and the
// apply/save buttons. Every route behind it requires a viewer.
type ListingHandler struct {
	listings *listing.Service
	options  *cache.Options
	toggles  *services.ToggleService
}

func NewListingHandler(listings *listing.Service, options *cache.Options, toggles *services.ToggleService) *ListingHandler {
	return &ListingHandler{listings: listings, options: options, toggles: toggles}
}

func (h *ListingHandler) JobList(c *fiber.Ctx) error {
	return h.list(c, listing.ScopeOpen)
}

func (h *ListingHandler) ApplicationList(c *fiber.Ctx) error {
	return h.list(c, listing.ScopeApplied)
}

func (h *ListingHandler) SaveList(c *fiber.Ctx) error {
	return h.list(c, listing.ScopeSaved)
}

func (h *ListingHandler) list(c *fiber.Ctx, scope listing.Scope) error {
	viewer := session.Viewer(c)
	if viewer == nil {
		return fiber.ErrUnauthorized
	}

	params := listingParams(c)
	page, err := h.listings.List(c.UserContext(), listing.Parse(scope, viewer.ID, params))
	if err != nil {
		return err
	}
	filters, err := h.options.Get(c.UserContext())
	if err != nil {
		return err
	}

	query := dto.ListingQuery{
		Skills:    params.Skills,
		Cities:    params.Cities,
		Companies: params.Companies,
		FromDate:  params.FromDate,
		ToDate:    params.ToDate,
		IsRemote:  params.IsRemote,
		Search:    params.Search,
	}
	if scope == listing.ScopeApplied {
		query.Status = params.Status
	}

	return c.JSON(dto.ListingResponse{Page: page, Query: query, Filters: filters})
}

func (h *ListingHandler) JobDetail(c *fiber.Ctx) error {
	viewer := session.Viewer(c)
	if viewer == nil {
		return fiber.ErrUnauthorized
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	item, err := h.listings.Detail(c.UserContext(), viewer.ID, postID)
	if err != nil {
		if errors.Is(err, listing.ErrJobPostNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}
	return c.JSON(dto.JobDetailResponse{JobPost: item})
}

func (h *ListingHandler) ToggleApplication(c *fiber.Ctx) error {
	return h.toggle(c, "/applicationlist/", func(req *dto.ToggleRequest, viewer, post uuid.UUID) error {
		return h.toggles.SetApplied(c.UserContext(), viewer, post, forms.Truthy(req.IsApplying))
	})
}

func (h *ListingHandler) ToggleSaved(c *fiber.Ctx) error {
	return h.toggle(c, "/savelist/", func(req *dto.ToggleRequest, viewer, post uuid.UUID) error {
		return h.toggles.SetSaved(c.UserContext(), viewer, post, forms.Truthy(req.IsSaving))
	})
}

// toggle parses the button form, applies set and redirects to back. A post
// that does not exist surfaces as a server error.
func (h *ListingHandler) toggle(c *fiber.Ctx, back string, set func(*dto.ToggleRequest, uuid.UUID, uuid.UUID) error) error {
	viewer := session.Viewer(c)
	if viewer == nil {
		return fiber.ErrUnauthorized
	}

	var req dto.ToggleRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, msgBadRequest)
	}
	postID, err := uuid.Parse(strings.TrimSpace(req.JobPost))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "job_post must be a job post id")
	}

	if err := set(&req, viewer.ID, postID); err != nil {
		return err
	}
	return c.Redirect(back, fiber.StatusSeeOther)
}

func listingParams(c *fiber.Ctx) listing.Params {
	args := c.Context().QueryArgs()
	multi := func(key string) []string {
		values := args.PeekMulti(key)
		out := make([]string, 0, len(values))
		for _, v := range values {
			out = append(out, string(v))
		}
		return out
	}

	return listing.Params{
		Skills:    multi("skill"),
		Cities:    multi("city"),
		Companies: multi("company"),
		FromDate:  c.Query("from_date"),
		ToDate:    c.Query("to_date"),
		IsRemote:  c.Query("is_remote"),
		Search:    c.Query("search"),
		Status:    c.Query("status"),
		Page:      c.Query("page"),
	}
}
