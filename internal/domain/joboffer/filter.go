package joboffer

import "time"

// Filter narrows a job offer listing. Text fields match case-insensitive
// substrings; dates match the calendar day in UTC.
type Filter struct {
	Title        string
	Location     string
	Company      string
	Requirements string
	WorkMode     WorkMode
	IsClosed     *bool
	MinSalary    *float64
	MaxSalary    *float64
	CreatedOn    *time.Time
	UpdatedOn    *time.Time
}

func (f Filter) IsEmpty() bool {
	return f.Title == "" && f.Location == "" && f.Company == "" && f.Requirements == "" &&
		f.WorkMode == "" && f.IsClosed == nil && f.MinSalary == nil && f.MaxSalary == nil &&
		f.CreatedOn == nil && f.UpdatedOn == nil
}
