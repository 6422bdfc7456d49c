package dto

import (
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/cache"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/listing"
)

// ListingQuery echoes the filters back so the page can keep them selected.
type ListingQuery struct {
	Skills    []string `json:"skill"`
	Cities    []string `json:"city"`
	Companies []string `json:"company"`
	FromDate  string   `json:"from_date"`
	ToDate    string   `json:"to_date"`
	IsRemote  string   `json:"is_remote"`
	Search    string   `json:"search"`
	Status    string   `json:"status,omitempty"`
}

type ListingResponse struct {
	*listing.Page
	Query   ListingQuery         `json:"query"`
	Filters *cache.FilterOptions `json:"filters"`
}

type JobDetailResponse struct {
	JobPost *listing.Item `json:"job_post"`
}

// ToggleRequest is posted by the apply and save buttons.
type ToggleRequest struct {
	JobPost    string `form:"job_post"`
	IsApplying string `form:"is_applying"`
	IsSaving   string `form:"is_saving"`
}
