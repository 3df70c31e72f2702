package court

import (
	"errors"

	"gorm.io/gorm"
)

var ErrCourtNotFound = errors.New("court not found")

// CourtRepository defines database operations for court management.
// Every lookup is club-scoped; a court from another club behaves as missing.
type CourtRepository interface {
	Create(court *Court) error
	ByIDInClub(id, clubID uint) (*Court, error)
	ListByClub(clubID uint) ([]Court, error)
	Update(court *Court) error
	Delete(id uint) error
	NameTaken(clubID uint, name string, excludeID uint) (bool, error)
}

type courtRepository struct {
	db *gorm.DB
}

func NewCourtRepository(db *gorm.DB) CourtRepository {
	return &courtRepository{db: db}
}

func (r *courtRepository) Create(court *Court) error {
	return r.db.Create(court).Error
}

func (r *courtRepository) ByIDInClub(id, clubID uint) (*Court, error) {
	var c Court
	if err := r.db.Where("id = ? AND club_id = ?", id, clubID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *courtRepository) ListByClub(clubID uint) ([]Court, error) {
	var courts []Court
	if err := r.db.Where("club_id = ?", clubID).Order("name asc").Find(&courts).Error; err != nil {
		return nil, err
	}
	return courts, nil
}

func (r *courtRepository) Update(court *Court) error {
	return r.db.Save(court).Error
}

func (r *courtRepository) Delete(id uint) error {
	return r.db.Delete(&Court{}, id).Error
}

func (r *courtRepository) NameTaken(clubID uint, name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&Court{}).Where("club_id = ? AND name = ?", clubID, name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
