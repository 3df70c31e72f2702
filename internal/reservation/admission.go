package reservation

import (
	"fmt"
	"time"

	"github.com/acebook/backend/internal/court"
	"github.com/acebook/backend/internal/user"
)

// AdmissionError is a client-correctable rejection of a booking request.
// Code is stable and machine-distinguishable; Message is user-facing.
type AdmissionError struct {
	Code    string
	Message string
}

func (e *AdmissionError) Error() string { return e.Message }

var (
	ErrMissingTimeRange     = &AdmissionError{"missing_time_range", "Provide reservation start and end times"}
	ErrInvalidRange         = &AdmissionError{"invalid_range", "End time must be after start time"}
	ErrRetroactiveBooking   = &AdmissionError{"retroactive_booking", "Retroactive reservations are not allowed"}
	ErrPlayersBookOnlyToday = &AdmissionError{"players_book_only_today", "Players can only book for the current day"}
	ErrMissingCourt         = &AdmissionError{"missing_court", "Select a court"}
	ErrCrossTenantMismatch  = &AdmissionError{"cross_tenant_mismatch", "Court and player must belong to the same club"}
	ErrCourtUnavailable     = &AdmissionError{"court_unavailable", "Court under maintenance. Choose another court"}
	ErrSlotConflict         = &AdmissionError{"slot_conflict", "There is already a reservation for this court at this time"}
	ErrDailyQuotaExceeded   = &AdmissionError{"daily_quota_exceeded", "Each player can have at most one reservation per day"}
)

// BookingRequest is a normalized booking proposal. Timestamps are absolute
// instants; naive client input must be resolved with ParseLocalTime before it
// gets here, so the engine never compares across conventions.
type BookingRequest struct {
	CourtID   uint
	PlayerID  uint // 0 means the requesting user books for themselves
	StartTime time.Time
	EndTime   time.Time
	Type      string
}

// ConflictStore is the engine's read view of current bookings. The
// transactional implementation locks the court and player rows it resolves,
// serializing concurrent admissions on the same court or player.
type ConflictStore interface {
	// CourtByID resolves a court across all clubs; (nil, nil) when missing.
	CourtByID(id uint) (*court.Court, error)
	// PlayerByID resolves a club user; (nil, nil) when missing.
	PlayerByID(id uint) (*user.ClubUser, error)
	// HasOverlap reports whether any non-canceled reservation on the court
	// intersects [start, end) under half-open semantics, excluding excludeID.
	HasOverlap(courtID uint, start, end time.Time, excludeID uint) (bool, error)
	// HasPlayerReservationBetween reports whether the player already holds a
	// non-canceled reservation starting within [dayStart, dayEnd),
	// excluding excludeID.
	HasPlayerReservationBetween(playerID uint, dayStart, dayEnd time.Time, excludeID uint) (bool, error)
}

// Engine decides whether a booking request is admissible. Timezone and clock
// are injected so date-boundary behavior is deterministic under test.
type Engine struct {
	store ConflictStore
	loc   *time.Location
	now   func() time.Time
}

func NewEngine(store ConflictStore, loc *time.Location, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{store: store, loc: loc, now: now}
}

// Admit validates a booking request against the business rules, in order,
// short-circuiting on the first failure. When editing, existing is the
// reservation being changed and is excluded from its own conflict checks.
// On success it returns the normalized reservation ready to commit.
func (e *Engine) Admit(req BookingRequest, actor *user.ClubUser, existing *Reservation) (*Reservation, error) {
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return nil, ErrMissingTimeRange
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidRange
	}

	now := e.now()
	if req.StartTime.Before(now) {
		return nil, ErrRetroactiveBooking
	}
	if actor.Role == user.RolePlayer && !sameLocalDate(req.StartTime, now, e.loc) {
		return nil, ErrPlayersBookOnlyToday
	}

	if req.CourtID == 0 {
		return nil, ErrMissingCourt
	}
	bookedCourt, err := e.store.CourtByID(req.CourtID)
	if err != nil {
		return nil, fmt.Errorf("resolve court: %w", err)
	}
	if bookedCourt == nil {
		return nil, ErrMissingCourt
	}

	playerID := req.PlayerID
	if playerID == 0 {
		playerID = actor.ID
	}
	// Always resolved through the store, even when the actor books for
	// themselves: the transactional store locks the player row here, and the
	// daily-quota check below is only race-free while that lock is held.
	player, err := e.store.PlayerByID(playerID)
	if err != nil {
		return nil, fmt.Errorf("resolve player: %w", err)
	}
	if player == nil {
		// An unknown player certainly isn't a member of the court's club.
		return nil, ErrCrossTenantMismatch
	}
	if player.ClubID == nil || *player.ClubID != bookedCourt.ClubID {
		return nil, ErrCrossTenantMismatch
	}

	if bookedCourt.Status == court.StatusMaintenance {
		return nil, ErrCourtUnavailable
	}

	var excludeID uint
	if existing != nil {
		excludeID = existing.ID
	}

	overlap, err := e.store.HasOverlap(bookedCourt.ID, req.StartTime, req.EndTime, excludeID)
	if err != nil {
		return nil, fmt.Errorf("overlap check: %w", err)
	}
	if overlap {
		return nil, ErrSlotConflict
	}

	dayStart, dayEnd := localDayRange(req.StartTime, e.loc)
	booked, err := e.store.HasPlayerReservationBetween(player.ID, dayStart, dayEnd, excludeID)
	if err != nil {
		return nil, fmt.Errorf("daily quota check: %w", err)
	}
	if booked {
		return nil, ErrDailyQuotaExceeded
	}

	res := &Reservation{}
	if existing != nil {
		*res = *existing
	} else {
		res.Status = StatusApproved
	}
	res.ClubID = bookedCourt.ClubID
	res.CourtID = bookedCourt.ID
	res.Court = bookedCourt
	res.PlayerID = player.ID
	res.Player = player
	res.StartTime = req.StartTime
	res.EndTime = req.EndTime
	if req.Type != "" {
		res.Type = req.Type
	} else if res.Type == "" {
		res.Type = TypeTraining
	}
	return res, nil
}

// ParseLocalTime parses an ISO-8601 timestamp. Values without a zone offset
// are interpreted in loc and returned as absolute instants; an empty string
// maps to the zero time so the engine can report a missing range.
func ParseLocalTime(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

// localDayRange returns the [00:00, next 00:00) window of t's calendar date
// in loc. Shared by the quota check and the availability query so both sides
// agree on where a day starts.
func localDayRange(t time.Time, loc *time.Location) (time.Time, time.Time) {
	year, month, day := t.In(loc).Date()
	dayStart := time.Date(year, month, day, 0, 0, 0, 0, loc)
	return dayStart, dayStart.AddDate(0, 0, 1)
}

func sameLocalDate(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
