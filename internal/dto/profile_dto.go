package dto

import (
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/models"
)

// ProfileUpdateRequest is the multipart profile form. File fields are read
// separately from the request. A nil text field was absent from the form and
// leaves the stored value alone.
type ProfileUpdateRequest struct {
	FirstName       *string  `form:"first_name"`
	LastName        *string  `form:"last_name"`
	MobileNumber    *string  `form:"mobile_number"`
	CanWorkRemotely *string  `form:"can_work_remotely"`
	Skills          []string `form:"skill"`
	Locations       []string `form:"location"`
}

// Choice is a catalog entry marked with whether the user picked it.
type Choice struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsAdded bool   `json:"is_added"`
}

type ProfileResponse struct {
	User      models.User `json:"user"`
	Skills    []Choice    `json:"skills"`
	Locations []Choice    `json:"locations"`
	Message   string      `json:"message,omitempty"`
}
