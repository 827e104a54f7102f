package sqlstore

import (
	"time"

	"jobboard/internal/common"
)

type userRow struct {
	ID                  common.UUID `gorm:"primaryKey;type:varchar(36)"`
	Username            string      `gorm:"size:150;not null;uniqueIndex"`
	FirstName           string      `gorm:"size:255;not null"`
	LastName            string      `gorm:"size:255;not null;default:''"`
	Email               string      `gorm:"size:254;not null;uniqueIndex"`
	PasswordHash        string      `gorm:"size:255;not null"`
	UserType            string      `gorm:"size:20;not null"`
	FailedLoginAttempts int         `gorm:"not null;default:0"`
	LastFailedLogin     *time.Time
	LastLogin           *time.Time
	DateJoined          time.Time `gorm:"not null"`
	UpdatedAt           time.Time
}

func (userRow) TableName() string { return "users" }

type sessionRow struct {
	ID        common.UUID `gorm:"primaryKey;type:varchar(36)"`
	UserID    common.UUID `gorm:"type:varchar(36);not null;index"`
	User      userRow     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ExpiresAt time.Time   `gorm:"not null;index"`
	RevokedAt *time.Time
	CreatedAt time.Time
}

func (sessionRow) TableName() string { return "sessions" }

type studentRow struct {
	ID                     common.UUID `gorm:"primaryKey;type:varchar(36)"`
	UserID                 common.UUID `gorm:"type:varchar(36);not null;uniqueIndex"`
	User                   userRow     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	University             string      `gorm:"size:255"`
	Degree                 string      `gorm:"size:255"`
	Major                  string      `gorm:"size:255"`
	GraduationYear         int
	ProfessionalExperience string `gorm:"type:text"`
	AboutMe                string `gorm:"type:text"`
	CV                     string `gorm:"column:cv;size:500"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (studentRow) TableName() string { return "student_profiles" }

type companyRow struct {
	ID          common.UUID `gorm:"primaryKey;type:varchar(36)"`
	UserID      common.UUID `gorm:"type:varchar(36);not null;uniqueIndex"`
	User        userRow     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Name        string      `gorm:"size:255;index"`
	Industry    string      `gorm:"size:255"`
	Location    string      `gorm:"size:255"`
	Description string      `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (companyRow) TableName() string { return "company_profiles" }

type jobOfferRow struct {
	ID           common.UUID `gorm:"primaryKey;type:varchar(36)"`
	CompanyID    common.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_job_offers_company_title,priority:1"`
	Company      companyRow  `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Title        string      `gorm:"size:100;not null;uniqueIndex:idx_job_offers_company_title,priority:2"`
	Description  string      `gorm:"type:text"`
	Requirements string      `gorm:"type:text"`
	Location     string      `gorm:"size:150;not null"`
	WorkMode     string      `gorm:"size:20;not null"`
	Salary       *float64    `gorm:"type:numeric(10,2)"`
	IsClosed     bool        `gorm:"not null;default:false"`
	CreatedAt    time.Time   `gorm:"index"`
	UpdatedAt    time.Time
}

func (jobOfferRow) TableName() string { return "job_offers" }

type postulationRow struct {
	ID         common.UUID `gorm:"primaryKey;type:varchar(36)"`
	StudentID  common.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_postulations_student_offer,priority:1"`
	Student    studentRow  `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	JobOfferID common.UUID `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_postulations_student_offer,priority:2"`
	JobOffer   jobOfferRow `gorm:"foreignKey:JobOfferID;constraint:OnDelete:CASCADE"`
	Status     string      `gorm:"size:20;not null;default:pending"`
	AppliedAt  time.Time   `gorm:"not null"`
	UpdatedAt  time.Time
}

func (postulationRow) TableName() string { return "postulations" }

type analyticsEventRow struct {
	ID        common.UUID  `gorm:"primaryKey;type:varchar(36)"`
	Name      string       `gorm:"size:100;not null;index"`
	UserID    *common.UUID `gorm:"type:varchar(36);index"`
	Payload   string       `gorm:"type:text"`
	CreatedAt time.Time    `gorm:"index"`
}

func (analyticsEventRow) TableName() string { return "analytics_events" }

func allModels() []any {
	return []any{
		&userRow{},
		&sessionRow{},
		&studentRow{},
		&companyRow{},
		&jobOfferRow{},
		&postulationRow{},
		&analyticsEventRow{},
	}
}
