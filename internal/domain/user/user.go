package user

import (
	"time"

	"jobboard/internal/common"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleCompany Role = "company"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleCompany
}

type User struct {
	ID                  common.UUID `json:"id"`
	Username            string      `json:"username"`
	FirstName           string      `json:"first_name"`
	LastName            string      `json:"last_name"`
	Email               string      `json:"email"`
	PasswordHash        string      `json:"-"`
	UserType            Role        `json:"user_type"`
	FailedLoginAttempts int         `json:"-"`
	LastFailedLogin     *time.Time  `json:"-"`
	LastLogin           *time.Time  `json:"last_login,omitempty"`
	DateJoined          time.Time   `json:"date_joined"`
	UpdatedAt           time.Time   `json:"updated_at"`
}
