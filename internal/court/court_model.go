package court

import (
	"github.com/acebook/backend/internal/club"
	"gorm.io/gorm"
)

const (
	SurfaceClay = "saibro"
	SurfaceHard = "rapida"

	StatusAvailable   = "available"
	StatusMaintenance = "maintenance"
)

// Court belongs to exactly one club; names are unique within the club.
// OpensAt/ClosesAt describe the daily operating window and are informational,
// they are not enforced against bookings.
type Court struct {
	gorm.Model
	ClubID   uint       `gorm:"not null;uniqueIndex:idx_courts_club_name" json:"club_id"`
	Club     *club.Club `json:"-"`
	Name     string     `gorm:"size:120;not null;uniqueIndex:idx_courts_club_name" json:"name"`
	Surface  string     `gorm:"type:VARCHAR(20);check:surface IN ('saibro','rapida')" json:"surface"`
	Covered  bool       `gorm:"default:false" json:"covered"`
	Lights   bool       `gorm:"default:false" json:"lights"`
	Status   string     `gorm:"type:VARCHAR(20);check:status IN ('available','maintenance');default:'available'" json:"status"`
	OpensAt  string     `gorm:"size:5;default:'06:00'" json:"opens_at"`
	ClosesAt string     `gorm:"size:5;default:'22:00'" json:"closes_at"`
}

// CourtInput is the create/update payload.
type CourtInput struct {
	Name     string `json:"name" binding:"required" example:"Quadra 1"`
	Surface  string `json:"surface" binding:"required,oneof=saibro rapida" example:"saibro"`
	Covered  bool   `json:"covered"`
	Lights   bool   `json:"lights"`
	Status   string `json:"status" binding:"omitempty,oneof=available maintenance" example:"available"`
	OpensAt  string `json:"opens_at" binding:"omitempty,len=5" example:"06:00"`
	ClosesAt string `json:"closes_at" binding:"omitempty,len=5" example:"22:00"`
}
