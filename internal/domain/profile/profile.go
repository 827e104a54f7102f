package profile

import (
	"time"

	"jobboard/internal/common"
)

type StudentProfile struct {
	ID                     common.UUID `json:"id"`
	UserID                 common.UUID `json:"user_id"`
	University             string      `json:"university"`
	Degree                 string      `json:"degree"`
	Major                  string      `json:"major"`
	GraduationYear         int         `json:"graduation_year"`
	ProfessionalExperience string      `json:"professional_experience"`
	AboutMe                string      `json:"about_me"`
	CV                     string      `json:"cv,omitempty"`
	CreatedAt              time.Time   `json:"created_at"`
	UpdatedAt              time.Time   `json:"updated_at"`
}

type CompanyProfile struct {
	ID          common.UUID `json:"id"`
	UserID      common.UUID `json:"user_id"`
	Name        string      `json:"name"`
	Industry    string      `json:"industry"`
	Location    string      `json:"location"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
