package user

import "time"

const (
	MaxFailedLoginAttempts = 3
	LockoutWindow          = 15 * time.Minute
)

// IsLocked reports whether login attempts must be refused at now. The window
// is measured from the most recent failure.
func (u User) IsLocked(now time.Time) bool {
	if u.FailedLoginAttempts < MaxFailedLoginAttempts || u.LastFailedLogin == nil {
		return false
	}
	return now.Before(u.LastFailedLogin.Add(LockoutWindow))
}

func (u User) LockedUntil() time.Time {
	if u.LastFailedLogin == nil {
		return time.Time{}
	}
	return u.LastFailedLogin.Add(LockoutWindow)
}
