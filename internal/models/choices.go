package models

// PayrollPeriod is the unit a job post's pay range is quoted in.
type PayrollPeriod string

const (
	PayrollHourly   PayrollPeriod = "hourly"
	PayrollWeekly   PayrollPeriod = "weekly"
	PayrollMonthly  PayrollPeriod = "monthly"
	PayrollAnnually PayrollPeriod = "annually"
)

func (p PayrollPeriod) Valid() bool {
	switch p {
	case PayrollHourly, PayrollWeekly, PayrollMonthly, PayrollAnnually:
		return true
	}
	return false
}

// ApplicationStatus tracks what the company did with an application.
type ApplicationStatus string

const (
	StatusApplied  ApplicationStatus = "applied"
	StatusDeclined ApplicationStatus = "declined"
	StatusAccepted ApplicationStatus = "accepted"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusApplied, StatusDeclined, StatusAccepted:
		return true
	}
	return false
}
