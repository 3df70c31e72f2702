package club

import (
	"errors"

	"gorm.io/gorm"
)

var ErrClubNotFound = errors.New("club not found")

// ClubRepository defines database operations for clubs.
type ClubRepository interface {
	Create(club *Club) error
	ByID(id uint) (*Club, error)
	BySlug(slug string) (*Club, error)
	SlugTaken(slug string) (bool, error)
}

type clubRepository struct {
	db *gorm.DB
}

func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

func (r *clubRepository) Create(club *Club) error {
	return r.db.Create(club).Error
}

func (r *clubRepository) ByID(id uint) (*Club, error) {
	var c Club
	if err := r.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *clubRepository) BySlug(slug string) (*Club, error) {
	var c Club
	if err := r.db.Where("slug = ?", slug).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *clubRepository) SlugTaken(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&Club{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
