package reservation

import (
	"time"

	"github.com/acebook/backend/internal/club"
	"github.com/acebook/backend/internal/court"
	"github.com/acebook/backend/internal/user"
	"gorm.io/gorm"
)

const (
	StatusApproved = "approved"
	StatusCanceled = "canceled"

	TypeTraining     = "training"
	TypeRecreational = "recreational"
	TypeTournament   = "tournament"
	TypePerformance  = "performance"
)

// Reservation is the booking record. Rows are written only through the
// admission engine; the end_time > start_time check at the storage level is a
// backstop that should never fire.
type Reservation struct {
	gorm.Model
	ClubID    uint           `gorm:"not null;index" json:"club_id"`
	Club      *club.Club     `json:"-"`
	CourtID   uint           `gorm:"not null;index" json:"court"`
	Court     *court.Court   `json:"-"`
	PlayerID  uint           `gorm:"not null;index" json:"player"`
	Player    *user.ClubUser `json:"-"`
	StartTime time.Time      `gorm:"not null;check:chk_reservations_end_gt_start,end_time > start_time" json:"start_time"`
	EndTime   time.Time      `gorm:"not null" json:"end_time"`
	Status    string         `gorm:"type:VARCHAR(20);check:status IN ('approved','canceled');default:'approved'" json:"status"`
	Type      string         `gorm:"type:VARCHAR(20);check:type IN ('training','recreational','tournament','performance');default:'training'" json:"type"`
}

// ReservationInput is the create payload. Start and end are strings so that
// timezone-naive timestamps can be interpreted in the club timezone instead
// of failing RFC3339 parsing; presence is checked by the admission engine so
// the rejection reason stays precise.
type ReservationInput struct {
	Court     uint   `json:"court"`
	Player    *uint  `json:"player"`
	StartTime string `json:"start_time" example:"2025-03-14T14:00:00"`
	EndTime   string `json:"end_time" example:"2025-03-14T15:00:00"`
	Type      string `json:"type" binding:"omitempty,oneof=training recreational tournament performance" example:"training"`
}

// ReservationUpdateInput is the PATCH payload; omitted fields keep the
// existing value. Status is deliberately absent: it is not client-settable.
type ReservationUpdateInput struct {
	Court     *uint   `json:"court"`
	Player    *uint   `json:"player"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Type      *string `json:"type" binding:"omitempty,oneof=training recreational tournament performance"`
}

// ReservationResponse is the API shape, with court and player names resolved.
type ReservationResponse struct {
	ID         uint      `json:"id"`
	Court      uint      `json:"court"`
	CourtName  string    `json:"court_name"`
	Player     uint      `json:"player"`
	PlayerName string    `json:"player_name"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
	Type       string    `json:"type"`
}

// AvailabilityResponse lists the local start times occupied on a court.
type AvailabilityResponse struct {
	Occupied []string `json:"occupied"`
}

func newReservationResponse(res *Reservation, loc *time.Location) ReservationResponse {
	out := ReservationResponse{
		ID:        res.ID,
		Court:     res.CourtID,
		Player:    res.PlayerID,
		StartTime: res.StartTime.In(loc),
		EndTime:   res.EndTime.In(loc),
		Status:    res.Status,
		Type:      res.Type,
	}
	if res.Court != nil {
		out.CourtName = res.Court.Name
	}
	if res.Player != nil {
		out.PlayerName = res.Player.DisplayName()
	}
	return out
}
