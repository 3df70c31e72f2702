package coach

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var ErrCoachNotFound = errors.New("coach not found")

// CoachRepository defines database operations for coach management.
type CoachRepository interface {
	Create(coach *Coach) error
	ByIDInClub(id, clubID uint) (*Coach, error)
	ListByClub(clubID uint) ([]Coach, error)
	Update(coach *Coach) error
	Delete(id uint) error
	NameTaken(clubID uint, name string, excludeID uint) (bool, error)
}

type coachRepository struct {
	db *gorm.DB
}

func NewCoachRepository(db *gorm.DB) CoachRepository {
	return &coachRepository{db: db}
}

func (r *coachRepository) Create(coach *Coach) error {
	return r.db.Create(coach).Error
}

func (r *coachRepository) ByIDInClub(id, clubID uint) (*Coach, error) {
	var co Coach
	if err := r.db.Where("id = ? AND club_id = ?", id, clubID).First(&co).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}
	return &co, nil
}

func (r *coachRepository) ListByClub(clubID uint) ([]Coach, error) {
	var coaches []Coach
	if err := r.db.Where("club_id = ?", clubID).Order("name asc").Find(&coaches).Error; err != nil {
		return nil, err
	}
	return coaches, nil
}

func (r *coachRepository) Update(coach *Coach) error {
	return r.db.Save(coach).Error
}

func (r *coachRepository) Delete(id uint) error {
	return r.db.Delete(&Coach{}, id).Error
}

// NameTaken matches case-insensitively: "Carlos" and "carlos" are the same coach.
func (r *coachRepository) NameTaken(clubID uint, name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&Coach{}).Where("club_id = ? AND LOWER(name) = ?", clubID, strings.ToLower(name))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
