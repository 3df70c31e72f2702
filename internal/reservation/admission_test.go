package reservation

import (
	"errors"
	"testing"
	"time"

	"github.com/acebook/backend/internal/court"
	"github.com/acebook/backend/internal/user"
)

var testLoc = time.FixedZone("BRT", -3*60*60)

// fakeStore is an in-memory ConflictStore with the same overlap and quota
// semantics as the SQL implementation.
type fakeStore struct {
	courts       map[uint]*court.Court
	players      map[uint]*user.ClubUser
	reservations []Reservation

	playerLookups []uint
}

func (f *fakeStore) CourtByID(id uint) (*court.Court, error) { return f.courts[id], nil }

func (f *fakeStore) PlayerByID(id uint) (*user.ClubUser, error) {
	f.playerLookups = append(f.playerLookups, id)
	return f.players[id], nil
}

func (f *fakeStore) HasOverlap(courtID uint, start, end time.Time, excludeID uint) (bool, error) {
	for _, r := range f.reservations {
		if r.ID == excludeID || r.CourtID != courtID || r.Status == StatusCanceled {
			continue
		}
		if r.StartTime.Before(end) && r.EndTime.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) HasPlayerReservationBetween(playerID uint, dayStart, dayEnd time.Time, excludeID uint) (bool, error) {
	for _, r := range f.reservations {
		if r.ID == excludeID || r.PlayerID != playerID || r.Status == StatusCanceled {
			continue
		}
		if !r.StartTime.Before(dayStart) && r.StartTime.Before(dayEnd) {
			return true, nil
		}
	}
	return false, nil
}

func clubID(id uint) *uint { return &id }

func testFixture() (*fakeStore, *user.ClubUser, *user.ClubUser) {
	store := &fakeStore{
		courts:  map[uint]*court.Court{},
		players: map[uint]*user.ClubUser{},
	}
	store.courts[1] = &court.Court{ClubID: 1, Name: "Quadra 1", Status: court.StatusAvailable}
	store.courts[2] = &court.Court{ClubID: 1, Name: "Quadra 2", Status: court.StatusMaintenance}
	store.courts[3] = &court.Court{ClubID: 2, Name: "Quadra Rival", Status: court.StatusAvailable}
	store.courts[1].ID = 1
	store.courts[2].ID = 2
	store.courts[3].ID = 3

	player := &user.ClubUser{Role: user.RolePlayer, ClubID: clubID(1)}
	player.ID = 10
	admin := &user.ClubUser{Role: user.RoleAdmin, ClubID: clubID(1)}
	admin.ID = 11
	store.players[player.ID] = player
	store.players[admin.ID] = admin
	return store, player, admin
}

// fixedNow is 10:00 local on an arbitrary weekday.
var fixedNow = time.Date(2025, 3, 14, 10, 0, 0, 0, testLoc)

func newTestEngine(store ConflictStore) *Engine {
	return NewEngine(store, testLoc, func() time.Time { return fixedNow })
}

func at(hour, min int) time.Time {
	return time.Date(2025, 3, 14, hour, min, 0, 0, testLoc)
}

func TestAdmitApprovesValidBooking(t *testing.T) {
	store, player, _ := testFixture()
	engine := newTestEngine(store)

	res, err := engine.Admit(BookingRequest{CourtID: 1, StartTime: at(14, 0), EndTime: at(15, 0)}, player, nil)
	if err != nil {
		t.Fatalf("expected admission, got %v", err)
	}
	if res.Status != StatusApproved {
		t.Errorf("expected status %q, got %q", StatusApproved, res.Status)
	}
	if res.Type != TypeTraining {
		t.Errorf("expected default type %q, got %q", TypeTraining, res.Type)
	}
	if res.ClubID != 1 || res.PlayerID != player.ID {
		t.Errorf("unexpected ownership: club %d player %d", res.ClubID, res.PlayerID)
	}
}

func TestAdmitRejectionOrder(t *testing.T) {
	store, player, admin := testFixture()
	store.reservations = []Reservation{
		{CourtID: 1, PlayerID: 99, StartTime: at(16, 0), EndTime: at(17, 0), Status: StatusApproved},
	}
	store.reservations[0].ID = 1

	tests := []struct {
		name  string
		req   BookingRequest
		actor *user.ClubUser
		want  *AdmissionError
	}{
		{
			name:  "missing both times",
			req:   BookingRequest{CourtID: 1},
			actor: player,
			want:  ErrMissingTimeRange,
		},
		{
			name:  "missing end time",
			req:   BookingRequest{CourtID: 1, StartTime: at(14, 0)},
			actor: player,
			want:  ErrMissingTimeRange,
		},
		{
			name:  "end before start",
			req:   BookingRequest{CourtID: 1, StartTime: at(15, 0), EndTime: at(14, 0)},
			actor: player,
			want:  ErrInvalidRange,
		},
		{
			name:  "zero-length slot",
			req:   BookingRequest{CourtID: 1, StartTime: at(14, 0), EndTime: at(14, 0)},
			actor: player,
			want:  ErrInvalidRange,
		},
		{
			name:  "start in the past",
			req:   BookingRequest{CourtID: 1, StartTime: at(9, 0), EndTime: at(11, 0)},
			actor: player,
			want:  ErrRetroactiveBooking,
		},
		{
			name:  "past start also rejected for admins",
			req:   BookingRequest{CourtID: 1, StartTime: at(9, 0), EndTime: at(11, 0)},
			actor: admin,
			want:  ErrRetroactiveBooking,
		},
		{
			name: "player booking tomorrow",
			req: BookingRequest{
				CourtID:   1,
				StartTime: at(14, 0).AddDate(0, 0, 1),
				EndTime:   at(15, 0).AddDate(0, 0, 1),
			},
			actor: player,
			want:  ErrPlayersBookOnlyToday,
		},
		{
			name:  "no court selected",
			req:   BookingRequest{StartTime: at(14, 0), EndTime: at(15, 0)},
			actor: player,
			want:  ErrMissingCourt,
		},
		{
			name:  "unknown court",
			req:   BookingRequest{CourtID: 77, StartTime: at(14, 0), EndTime: at(15, 0)},
			actor: player,
			want:  ErrMissingCourt,
		},
		{
			name:  "court in another club",
			req:   BookingRequest{CourtID: 3, StartTime: at(14, 0), EndTime: at(15, 0)},
			actor: player,
			want:  ErrCrossTenantMismatch,
		},
		{
			name:  "unknown explicit player",
			req:   BookingRequest{CourtID: 1, PlayerID: 404, StartTime: at(14, 0), EndTime: at(15, 0)},
			actor: admin,
			want:  ErrCrossTenantMismatch,
		},
		{
			name:  "court under maintenance",
			req:   BookingRequest{CourtID: 2, StartTime: at(14, 0), EndTime: at(15, 0)},
			actor: player,
			want:  ErrCourtUnavailable,
		},
		{
			name:  "overlapping slot",
			req:   BookingRequest{CourtID: 1, StartTime: at(16, 30), EndTime: at(17, 30)},
			actor: player,
			want:  ErrSlotConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engineAdmit(store, tt.req, tt.actor)
			var admissionErr *AdmissionError
			if !errors.As(err, &admissionErr) {
				t.Fatalf("expected admission error, got %v", err)
			}
			if admissionErr != tt.want {
				t.Errorf("expected %q, got %q", tt.want.Code, admissionErr.Code)
			}
		})
	}
}

func engineAdmit(store ConflictStore, req BookingRequest, actor *user.ClubUser) (*Reservation, error) {
	return newTestEngine(store).Admit(req, actor, nil)
}

func TestAdmitResolvesPlayerThroughStoreOnSelfBooking(t *testing.T) {
	store, player, _ := testFixture()

	if _, err := engineAdmit(store, BookingRequest{CourtID: 1, StartTime: at(14, 0), EndTime: at(15, 0)}, player); err != nil {
		t.Fatalf("expected admission, got %v", err)
	}

	// The transactional store locks every row it resolves. If a self-booking
	// skipped the player lookup, two concurrent bookings by the same player
	// on different courts would hold different court locks, both read
	// quota == 0, and both commit.
	resolved := false
	for _, id := range store.playerLookups {
		if id == player.ID {
			resolved = true
		}
	}
	if !resolved {
		t.Errorf("self-booking must resolve the player through the store, lookups = %v", store.playerLookups)
	}
}

func TestAdmitBackToBackSlots(t *testing.T) {
	store, player, admin := testFixture()
	store.reservations = []Reservation{
		{CourtID: 1, PlayerID: 99, StartTime: at(14, 0), EndTime: at(15, 0), Status: StatusApproved},
	}
	store.reservations[0].ID = 1

	// Half-open intervals: touching boundaries do not conflict.
	if _, err := engineAdmit(store, BookingRequest{CourtID: 1, StartTime: at(15, 0), EndTime: at(16, 0)}, player); err != nil {
		t.Errorf("slot starting at previous end should be admitted, got %v", err)
	}
	if _, err := engineAdmit(store, BookingRequest{CourtID: 1, StartTime: at(13, 0), EndTime: at(14, 0)}, admin); err != nil {
		t.Errorf("slot ending at next start should be admitted, got %v", err)
	}
}

func TestAdmitCanceledReservationsDoNotConflict(t *testing.T) {
	store, player, _ := testFixture()
	store.reservations = []Reservation{
		{CourtID: 1, PlayerID: player.ID, StartTime: at(14, 0), EndTime: at(15, 0), Status: StatusCanceled},
	}
	store.reservations[0].ID = 1

	if _, err := engineAdmit(store, BookingRequest{CourtID: 1, StartTime: at(14, 0), EndTime: at(15, 0)}, player); err != nil {
		t.Errorf("canceled reservation should block neither slot nor quota, got %v", err)
	}
}

func TestAdmitDailyQuota(t *testing.T) {
	store, player, _ := testFixture()
	store.reservations = []Reservation{
		{CourtID: 1, PlayerID: player.ID, StartTime: at(14, 0), EndTime: at(15, 0), Status: StatusApproved},
	}
	store.reservations[0].ID = 1

	// The quota spans courts: a second booking the same day on another
	// court in the club is still one booking too many.
	store.courts[4] = &court.Court{ClubID: 1, Name: "Quadra 4", Status: court.StatusAvailable}
	store.courts[4].ID = 4

	_, err := engineAdmit(store, BookingRequest{CourtID: 4, StartTime: at(18, 0), EndTime: at(19, 0)}, player)
	if !errors.Is(err, ErrDailyQuotaExceeded) {
		t.Fatalf("expected daily quota rejection, got %v", err)
	}
}

func TestAdmitQuotaCountsBookedPlayerNotActor(t *testing.T) {
	store, player, admin := testFixture()
	store.reservations = []Reservation{
		{CourtID: 1, PlayerID: player.ID, StartTime: at(14, 0), EndTime: at(15, 0), Status: StatusApproved},
	}
	store.reservations[0].ID = 1

	// Admin booking on behalf of an already-booked player hits the quota.
	_, err := engineAdmit(store, BookingRequest{CourtID: 1, PlayerID: player.ID, StartTime: at(18, 0), EndTime: at(19, 0)}, admin)
	if !errors.Is(err, ErrDailyQuotaExceeded) {
		t.Fatalf("expected daily quota rejection, got %v", err)
	}

	// The same admin booking for themselves is fine.
	if _, err := engineAdmit(store, BookingRequest{CourtID: 1, StartTime: at(18, 0), EndTime: at(19, 0)}, admin); err != nil {
		t.Errorf("admin's own booking should be admitted, got %v", err)
	}
}

func TestAdmitAdminBooksFutureDates(t *testing.T) {
	store, player, admin := testFixture()
	engine := newTestEngine(store)

	tomorrow := BookingRequest{
		CourtID:   1,
		PlayerID:  player.ID,
		StartTime: at(14, 0).AddDate(0, 0, 1),
		EndTime:   at(15, 0).AddDate(0, 0, 1),
	}
	res, err := engine.Admit(tomorrow, admin, nil)
	if err != nil {
		t.Fatalf("admin should book future dates, got %v", err)
	}
	if res.PlayerID != player.ID {
		t.Errorf("reservation should belong to the booked player, got %d", res.PlayerID)
	}
}

func TestAdmitEditExcludesOwnSlot(t *testing.T) {
	store, player, _ := testFixture()
	existing := Reservation{CourtID: 1, PlayerID: player.ID, StartTime: at(14, 0), EndTime: at(15, 0), Status: StatusApproved, Type: TypeRecreational}
	existing.ID = 1
	store.reservations = []Reservation{existing}

	engine := newTestEngine(store)

	// Unchanged resubmission admits: the reservation does not conflict with
	// itself, in slot or in quota.
	req := BookingRequest{CourtID: 1, StartTime: at(14, 0), EndTime: at(15, 0), Type: TypeRecreational}
	res, err := engine.Admit(req, player, &existing)
	if err != nil {
		t.Fatalf("unchanged edit should be admitted, got %v", err)
	}
	if res.ID != existing.ID || res.Type != TypeRecreational {
		t.Errorf("edit should preserve identity and type, got id %d type %q", res.ID, res.Type)
	}

	// Shifting within the day also admits.
	shifted := BookingRequest{CourtID: 1, StartTime: at(16, 0), EndTime: at(17, 0)}
	if _, err := engine.Admit(shifted, player, &existing); err != nil {
		t.Errorf("shifted edit should be admitted, got %v", err)
	}
}

func TestAdmitOverlapMatchesHalfOpenFormula(t *testing.T) {
	store, _, admin := testFixture()
	base := Reservation{CourtID: 1, PlayerID: 99, StartTime: at(14, 0), EndTime: at(16, 0), Status: StatusApproved}
	base.ID = 1
	store.reservations = []Reservation{base}

	// Exhaustive sweep of hour-aligned candidate slots against the formula
	// existing.start < candidate.end && existing.end > candidate.start.
	for startHour := 10; startHour <= 20; startHour++ {
		for endHour := startHour + 1; endHour <= 21; endHour++ {
			start, end := at(startHour, 0), at(endHour, 0)
			wantConflict := base.StartTime.Before(end) && base.EndTime.After(start)

			_, err := engineAdmit(store, BookingRequest{CourtID: 1, StartTime: start, EndTime: end}, admin)
			gotConflict := errors.Is(err, ErrSlotConflict)
			if err != nil && !gotConflict {
				t.Fatalf("slot %02d:00-%02d:00: unexpected error %v", startHour, endHour, err)
			}
			if gotConflict != wantConflict {
				t.Errorf("slot %02d:00-%02d:00: conflict = %v, want %v", startHour, endHour, gotConflict, wantConflict)
			}
		}
	}
}

func TestParseLocalTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"", time.Time{}},
		{"2025-03-14T14:00", at(14, 0)},
		{"2025-03-14T14:00:00", at(14, 0)},
		{"2025-03-14T14:00:00-03:00", at(14, 0)},
		{"2025-03-14T17:00:00Z", at(14, 0)},
	}
	for _, tt := range tests {
		got, err := ParseLocalTime(tt.in, testLoc)
		if err != nil {
			t.Fatalf("ParseLocalTime(%q): %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseLocalTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseLocalTime("14:00", testLoc); err == nil {
		t.Error("expected error for bare time without date")
	}
}

func TestLocalDayRange(t *testing.T) {
	// 2025-03-15 01:30 UTC is still 2025-03-14 in BRT.
	instant := time.Date(2025, 3, 15, 1, 30, 0, 0, time.UTC)
	dayStart, dayEnd := localDayRange(instant, testLoc)

	wantStart := time.Date(2025, 3, 14, 0, 0, 0, 0, testLoc)
	if !dayStart.Equal(wantStart) {
		t.Errorf("dayStart = %v, want %v", dayStart, wantStart)
	}
	if !dayEnd.Equal(wantStart.AddDate(0, 0, 1)) {
		t.Errorf("dayEnd = %v, want %v", dayEnd, wantStart.AddDate(0, 0, 1))
	}
}

func TestOccupiedTimesFormatsLocal(t *testing.T) {
	starts := []time.Time{
		time.Date(2025, 3, 14, 17, 0, 0, 0, time.UTC),  // 14:00 BRT
		time.Date(2025, 3, 14, 21, 30, 0, 0, time.UTC), // 18:30 BRT
	}
	got := occupiedTimes(starts, testLoc)
	want := []string{"14:00", "18:30"}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}
