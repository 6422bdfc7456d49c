package models

// ValidationError is a save-time rule violation whose text is safe to show
// to the person who submitted the form.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

const (
	ErrEmailExists   ValidationError = "A user with this email already exists."
	ErrMobileExists  ValidationError = "A user with this mobile number already exists."
	ErrCompanyExists ValidationError = "A company with this name already exists."
	ErrSkillExists   ValidationError = "A skill with this name already exists."
	ErrCityExists    ValidationError = "A city with this name already exists."
	ErrNameRequired  ValidationError = "Name is required."
)
