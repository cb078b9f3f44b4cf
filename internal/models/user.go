package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an authenticated visitor. Identity comes from an external
// provider and is keyed by OpenID.
type User struct {
	BaseModel
	OpenID       string    `gorm:"size:64;uniqueIndex;not null" json:"open_id"`
	Name         string    `json:"name"`
	Email        string    `gorm:"size:320" json:"email"`
	LoginMethod  string    `gorm:"size:64" json:"login_method"`
	Role         string    `gorm:"size:16;default:user;not null" json:"role"`
	LastSignedIn time.Time `json:"last_signed_in"`
}

// IsAdmin reports whether the user carries the administrative role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
