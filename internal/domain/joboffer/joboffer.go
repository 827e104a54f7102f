package joboffer

import (
	"time"

	"jobboard/internal/common"
)

type WorkMode string

const (
	WorkModeRemote WorkMode = "remote"
	WorkModeOnsite WorkMode = "onsite"
	WorkModeHybrid WorkMode = "hybrid"
)

func (m WorkMode) Valid() bool {
	switch m {
	case WorkModeRemote, WorkModeOnsite, WorkModeHybrid:
		return true
	default:
		return false
	}
}

const (
	MaxTitleLength    = 100
	MaxLocationLength = 150
	// MaxSalary keeps values inside numeric(10,2).
	MaxSalary = 99999999.99
)

type JobOffer struct {
	ID           common.UUID `json:"id"`
	CompanyID    common.UUID `json:"company_id"`
	CompanyName  string      `json:"company_name,omitempty"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Requirements string      `json:"requirements"`
	Location     string      `json:"location"`
	WorkMode     WorkMode    `json:"work_mode"`
	Salary       *float64    `json:"salary"`
	IsClosed     bool        `json:"is_closed"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
