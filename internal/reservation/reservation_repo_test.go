package reservation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// stubRepo returns a repository whose transaction runner is driven by the
// given per-attempt errors; nil means the attempt runs the callback.
func stubRepo(t *testing.T, attemptErrs []error) (*reservationRepository, *int) {
	t.Helper()
	attempts := 0
	r := &reservationRepository{}
	r.runTx = func(fn func(tx *gorm.DB) error) error {
		if attempts >= len(attemptErrs) {
			t.Fatalf("unexpected transaction attempt %d", attempts+1)
		}
		err := attemptErrs[attempts]
		attempts++
		if err != nil {
			return err
		}
		return fn(nil)
	}
	return r, &attempts
}

func okAdmit(store ConflictStore) (*Reservation, error) {
	return &Reservation{Status: StatusApproved}, nil
}

func noWrite(tx *gorm.DB, res *Reservation) error { return nil }

func TestCommitRetriesOnceOnSerializationFailure(t *testing.T) {
	r, attempts := stubRepo(t, []error{
		&pgconn.PgError{Code: "40001"},
		nil,
	})

	res, err := r.commit(okAdmit, noWrite)
	if err != nil {
		t.Fatalf("expected second attempt to succeed, got %v", err)
	}
	if res == nil || res.Status != StatusApproved {
		t.Errorf("unexpected result %+v", res)
	}
	if *attempts != 2 {
		t.Errorf("attempts = %d, want 2", *attempts)
	}
}

func TestCommitSurfacesSlotConflictWhenRetryFailsToo(t *testing.T) {
	r, attempts := stubRepo(t, []error{
		&pgconn.PgError{Code: "40001"},
		&pgconn.PgError{Code: "40P01"},
	})

	_, err := r.commit(okAdmit, noWrite)
	if !errors.Is(err, ErrSlotConflict) {
		t.Fatalf("expected ErrSlotConflict after two contended attempts, got %v", err)
	}
	if *attempts != 2 {
		t.Errorf("attempts = %d, want 2", *attempts)
	}
}

func TestCommitDoesNotRetryAdmissionRejections(t *testing.T) {
	r, attempts := stubRepo(t, []error{nil, nil})

	_, err := r.commit(func(ConflictStore) (*Reservation, error) {
		return nil, ErrDailyQuotaExceeded
	}, noWrite)
	if !errors.Is(err, ErrDailyQuotaExceeded) {
		t.Fatalf("expected the rejection unchanged, got %v", err)
	}
	if *attempts != 1 {
		t.Errorf("attempts = %d, want 1: business rejections are not contention", *attempts)
	}
}

func TestCommitDoesNotRetryOtherErrors(t *testing.T) {
	dbDown := errors.New("connection refused")
	r, attempts := stubRepo(t, []error{dbDown})

	_, err := r.commit(okAdmit, noWrite)
	if !errors.Is(err, dbDown) {
		t.Fatalf("expected the raw error, got %v", err)
	}
	if *attempts != 1 {
		t.Errorf("attempts = %d, want 1", *attempts)
	}
}

func TestIsSerializationFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization_failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock_detected", &pgconn.PgError{Code: "40P01"}, true},
		{"wrapped", fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40001"}), true},
		{"check_violation", &pgconn.PgError{Code: "23514"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSerializationFailure(tt.err); got != tt.want {
				t.Errorf("isSerializationFailure(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
