package model

import "time"

// RoleName is one of the fixed role identifiers seeded at install time.
type RoleName string

const (
	RoleAdmin     RoleName = "ADMIN"
	RoleModerator RoleName = "MODERATOR"
	RoleUser      RoleName = "USER"
)

// AllRoles lists every role the system knows about, in seed order.
var AllRoles = []RoleName{RoleAdmin, RoleModerator, RoleUser}

// Role is a named permission group. Rows are seeded once and never mutated.
type Role struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	Name        RoleName `json:"name" gorm:"type:varchar(20);uniqueIndex;not null"`
	Description string   `json:"description" gorm:"size:255"`
}

// User represents a registered account. Roles are attached through the
// user_roles join table; an active user always carries at least one role.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FirstName    string    `json:"first_name" gorm:"size:100"`
	LastName     string    `json:"last_name" gorm:"size:100"`
	Enabled      bool      `json:"enabled" gorm:"default:true;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Roles []Role `json:"roles,omitempty" gorm:"many2many:user_roles"`
}

// RoleNames returns the names of the user's roles, for embedding in tokens.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, string(r.Name))
	}
	return names
}
