package entity

import (
	"strings"
	"time"
)

// AdminUser is an account allowed into the admin console.
// Password holds the bcrypt hash.
type AdminUser struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AdminSession is the server-side record of a signed-in admin.
type AdminSession struct {
	UserID      string
	SessionID   string
	Email       string
	DisplayName string
	CreatedAt   time.Time
}

// Name returns the display name, or the local part of the email when unset.
func (s AdminSession) Name() string {
	if n := strings.TrimSpace(s.DisplayName); n != "" {
		return n
	}
	local, _, _ := strings.Cut(s.Email, "@")
	return local
}
