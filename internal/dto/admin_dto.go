package dto

import "time"

type CompanyRequest struct {
	Name         string `json:"name" form:"name"`
	Email        string `json:"email" form:"email"`
	MobileNumber string `json:"mobile_number" form:"mobile_number"`
}

type NameRequest struct {
	Name string `json:"name"`
}

type JobPostRequest struct {
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	CompanyID      string    `json:"company_id"`
	TotalVacancies *uint     `json:"total_vacancies"`
	ExpiredAt      time.Time `json:"expired_at"`
	PayrollMethod  string    `json:"payroll_method"`
	PayRangeFrom   float64   `json:"pay_range_from"`
	PayRangeTo     float64   `json:"pay_range_to"`
	CanBeRemote    bool      `json:"can_be_remote"`
	SkillIDs       []string  `json:"skill_ids"`
	CityIDs        []string  `json:"city_ids"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status"`
}
