package reservation

import (
	"errors"
	"time"

	"github.com/acebook/backend/internal/court"
	"github.com/acebook/backend/internal/user"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrReservationNotFound = errors.New("reservation not found")

// ReservationRepository defines database operations for bookings. Book and
// Reschedule run the supplied admission inside a transaction so the decision
// and the write commit atomically.
type ReservationRepository interface {
	ListForUser(actor *user.ClubUser) ([]Reservation, error)
	ByIDForUser(id uint, actor *user.ClubUser) (*Reservation, error)
	Book(admit func(ConflictStore) (*Reservation, error)) (*Reservation, error)
	Reschedule(res *Reservation, admit func(ConflictStore) (*Reservation, error)) (*Reservation, error)
	OccupiedSlots(courtID uint, dayStart, dayEnd time.Time) ([]time.Time, error)
}

type reservationRepository struct {
	db *gorm.DB

	// runTx wraps db.Transaction; replaceable so the retry behavior of the
	// commit path is testable without a live database.
	runTx func(fn func(tx *gorm.DB) error) error
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	r := &reservationRepository{db: db}
	r.runTx = func(fn func(tx *gorm.DB) error) error {
		return r.db.Transaction(fn)
	}
	return r
}

// gormConflictStore gives the admission engine its reads, bound to the
// booking transaction. Court and player rows are locked FOR UPDATE, always in
// that order, so two concurrent bookings on the same court or by the same
// player serialize instead of both passing the overlap and quota checks.
type gormConflictStore struct {
	tx *gorm.DB
}

func (s *gormConflictStore) CourtByID(id uint) (*court.Court, error) {
	var ct court.Court
	err := s.tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&ct, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

func (s *gormConflictStore) PlayerByID(id uint) (*user.ClubUser, error) {
	var u user.ClubUser
	err := s.tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *gormConflictStore) HasOverlap(courtID uint, start, end time.Time, excludeID uint) (bool, error) {
	var count int64
	query := s.tx.Model(&Reservation{}).
		Where("court_id = ? AND status <> ?", courtID, StatusCanceled).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *gormConflictStore) HasPlayerReservationBetween(playerID uint, dayStart, dayEnd time.Time, excludeID uint) (bool, error) {
	var count int64
	query := s.tx.Model(&Reservation{}).
		Where("player_id = ? AND status <> ?", playerID, StatusCanceled).
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *reservationRepository) ListForUser(actor *user.ClubUser) ([]Reservation, error) {
	query := r.db.Preload("Court").Preload("Player")
	if actor.IsAdmin() {
		if actor.ClubID == nil {
			return []Reservation{}, nil
		}
		query = query.Where("club_id = ?", *actor.ClubID)
	} else {
		query = query.Where("player_id = ?", actor.ID)
	}

	var reservations []Reservation
	if err := query.Order("start_time desc").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) ByIDForUser(id uint, actor *user.ClubUser) (*Reservation, error) {
	query := r.db.Preload("Court").Preload("Player")
	if actor.IsAdmin() {
		if actor.ClubID == nil {
			return nil, ErrReservationNotFound
		}
		query = query.Where("club_id = ?", *actor.ClubID)
	} else {
		query = query.Where("player_id = ?", actor.ID)
	}

	var res Reservation
	if err := query.First(&res, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// Book admits and inserts in one transaction. A serialization failure gets
// one retry; if the second attempt collides too, the slot is genuinely
// contended and the caller sees the conflict.
func (r *reservationRepository) Book(admit func(ConflictStore) (*Reservation, error)) (*Reservation, error) {
	return r.commit(admit, func(tx *gorm.DB, res *Reservation) error {
		return tx.Create(res).Error
	})
}

// Reschedule admits the changed booking and saves it in one transaction. The
// admission callback excludes the reservation's own row from conflict checks.
func (r *reservationRepository) Reschedule(res *Reservation, admit func(ConflictStore) (*Reservation, error)) (*Reservation, error) {
	return r.commit(admit, func(tx *gorm.DB, updated *Reservation) error {
		updated.ID = res.ID
		updated.CreatedAt = res.CreatedAt
		return tx.Save(updated).Error
	})
}

func (r *reservationRepository) commit(admit func(ConflictStore) (*Reservation, error), write func(*gorm.DB, *Reservation) error) (*Reservation, error) {
	var result *Reservation
	run := func() error {
		return r.runTx(func(tx *gorm.DB) error {
			res, err := admit(&gormConflictStore{tx: tx})
			if err != nil {
				return err
			}
			if err := write(tx, res); err != nil {
				return err
			}
			result = res
			return nil
		})
	}

	err := run()
	if err != nil && isSerializationFailure(err) {
		err = run()
	}
	if err != nil {
		if isSerializationFailure(err) {
			return nil, ErrSlotConflict
		}
		return nil, err
	}
	return result, nil
}

// isSerializationFailure matches Postgres serialization_failure (40001) and
// deadlock_detected (40P01), both of which are safe to retry.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// OccupiedSlots returns the start times of non-canceled reservations on the
// court within [dayStart, dayEnd), ordered chronologically.
func (r *reservationRepository) OccupiedSlots(courtID uint, dayStart, dayEnd time.Time) ([]time.Time, error) {
	var starts []time.Time
	err := r.db.Model(&Reservation{}).
		Where("court_id = ? AND status <> ?", courtID, StatusCanceled).
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Order("start_time asc").
		Pluck("start_time", &starts).Error
	if err != nil {
		return nil, err
	}
	return starts, nil
}

// occupiedTimes formats reservation starts as local wall-clock times for the
// availability response.
func occupiedTimes(starts []time.Time, loc *time.Location) []string {
	out := make([]string, 0, len(starts))
	for _, s := range starts {
		out = append(out, s.In(loc).Format("15:04"))
	}
	return out
}
