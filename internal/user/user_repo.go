package user

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository defines database operations for club-user administration.
type UserRepository interface {
	ListByClub(clubID uint, role string) ([]ClubUser, error)
	ByID(id uint) (*ClubUser, error)
	ByIDInClub(id, clubID uint) (*ClubUser, error)
	Update(u *ClubUser) error
	Delete(id uint) error
	EmailTaken(email string, excludeID uint) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) ListByClub(clubID uint, role string) ([]ClubUser, error) {
	var users []ClubUser
	query := r.db.Preload("Club").Where("club_id = ?", clubID)
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Order("username asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ByID(id uint) (*ClubUser, error) {
	var u ClubUser
	if err := r.db.Preload("Club").First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) ByIDInClub(id, clubID uint) (*ClubUser, error) {
	var u ClubUser
	if err := r.db.Preload("Club").Where("id = ? AND club_id = ?", id, clubID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Update(u *ClubUser) error {
	return r.db.Save(u).Error
}

func (r *userRepository) Delete(id uint) error {
	return r.db.Delete(&ClubUser{}, id).Error
}

func (r *userRepository) EmailTaken(email string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&ClubUser{}).Where("LOWER(email) = ?", strings.ToLower(email))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
