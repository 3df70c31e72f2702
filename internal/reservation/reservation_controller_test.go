package reservation

import (
	"testing"
	"time"
)

func TestNewReservationControllerClock(t *testing.T) {
	fixed := func() time.Time { return fixedNow }
	rc := NewReservationController(nil, nil, testLoc, fixed, nil)
	if !rc.now().Equal(fixedNow) {
		t.Errorf("injected clock not used, now() = %v", rc.now())
	}

	rc = NewReservationController(nil, nil, testLoc, nil, nil)
	if rc.now == nil {
		t.Fatal("nil clock must default, not stay nil")
	}
	if rc.now().IsZero() {
		t.Error("default clock should track wall time")
	}
}

func TestMergedRequestKeepsOmittedFields(t *testing.T) {
	rc := NewReservationController(nil, nil, testLoc, nil, nil)
	existing := &Reservation{
		CourtID:   1,
		PlayerID:  10,
		StartTime: at(14, 0),
		EndTime:   at(15, 0),
		Type:      TypeRecreational,
	}
	existing.ID = 7

	// Empty patch resubmits the reservation unchanged.
	req, err := rc.mergedRequest(ReservationUpdateInput{}, existing)
	if err != nil {
		t.Fatalf("mergedRequest: %v", err)
	}
	if req.CourtID != 1 || req.PlayerID != 10 || req.Type != TypeRecreational {
		t.Errorf("unexpected merge: %+v", req)
	}
	if !req.StartTime.Equal(existing.StartTime) || !req.EndTime.Equal(existing.EndTime) {
		t.Errorf("times should carry over, got %v-%v", req.StartTime, req.EndTime)
	}

	// A partial patch changes only what it names.
	newStart := "2025-03-14T16:00"
	newEnd := "2025-03-14T17:00"
	req, err = rc.mergedRequest(ReservationUpdateInput{StartTime: &newStart, EndTime: &newEnd}, existing)
	if err != nil {
		t.Fatalf("mergedRequest: %v", err)
	}
	if !req.StartTime.Equal(at(16, 0)) || !req.EndTime.Equal(at(17, 0)) {
		t.Errorf("times not updated, got %v-%v", req.StartTime, req.EndTime)
	}
	if req.CourtID != 1 || req.Type != TypeRecreational {
		t.Errorf("unrelated fields changed: %+v", req)
	}

	badStart := "yesterday"
	if _, err := rc.mergedRequest(ReservationUpdateInput{StartTime: &badStart}, existing); err == nil {
		t.Error("expected error for unparseable start time")
	}
}
