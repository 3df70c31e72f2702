package coach

import (
	"github.com/acebook/backend/internal/club"
	"gorm.io/gorm"
)

// Coach belongs to one club. Names are unique within the club,
// case-insensitively.
type Coach struct {
	gorm.Model
	ClubID uint       `gorm:"not null;index" json:"club_id"`
	Club   *club.Club `json:"-"`
	Name   string     `gorm:"size:150;not null" json:"name"`
	Phone  string     `gorm:"size:30" json:"phone"`
}

// CoachInput is the create/update payload.
type CoachInput struct {
	Name  string `json:"name" binding:"required" example:"Carlos Mendes"`
	Phone string `json:"phone" binding:"omitempty" example:"+55 11 91234-5678"`
}
