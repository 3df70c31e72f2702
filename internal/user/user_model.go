package user

import (
	"strings"
	"time"

	"github.com/acebook/backend/internal/club"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RolePlayer = "player"
)

// ClubUser is an account scoped to exactly one club. Email is the effective
// login identity and is kept in sync with Username. Role decides the
// permission tier: admins manage club configuration and see every
// reservation, players manage only their own.
type ClubUser struct {
	gorm.Model
	Username  string     `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email     string     `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	FirstName string     `gorm:"size:150" json:"first_name"`
	LastName  string     `gorm:"size:150" json:"last_name"`
	Role      string     `gorm:"type:VARCHAR(10);check:role IN ('admin','player');default:'player'" json:"role"`
	ClubID    *uint      `json:"club_id"`
	Club      *club.Club `json:"club,omitempty"`
}

func (u *ClubUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FullName joins first and last name, empty when neither is set.
func (u *ClubUser) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// DisplayName is the name shown on reservations: full name, falling back to
// username, falling back to email.
func (u *ClubUser) DisplayName() string {
	if name := u.FullName(); name != "" {
		return name
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// RefreshToken is a persisted refresh session; revoking the row ends it.
type RefreshToken struct {
	gorm.Model
	UserID    uint      `gorm:"not null;index"`
	Token     string    `gorm:"size:512;uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Revoked   bool      `gorm:"default:false"`
}
