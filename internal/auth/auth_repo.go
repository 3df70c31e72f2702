package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/acebook/backend/internal/club"
	"github.com/acebook/backend/internal/user"
	"gorm.io/gorm"
)

type AuthRepository interface {
	CreateUser(u *user.ClubUser) error
	GetUserByEmail(email string) (*user.ClubUser, error)
	GetUserByID(id uint) (*user.ClubUser, error)
	UpdateUser(u *user.ClubUser) error
	EmailTaken(email string) (bool, error)

	CreateClub(c *club.Club) error
	GetClubBySlug(slug string) (*club.Club, error)
	ClubSlugTaken(slug string) (bool, error)

	SaveRefreshToken(token *user.RefreshToken) error
	GetRefreshToken(tokenString string) (*user.RefreshToken, error)
	InvalidateAllRefreshTokensForUser(userID uint) error
}

type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateUser(u *user.ClubUser) error {
	return r.db.Create(u).Error
}

func (r *authRepository) GetUserByEmail(email string) (*user.ClubUser, error) {
	var u user.ClubUser
	if err := r.db.Preload("Club").Where("LOWER(email) = ?", strings.ToLower(email)).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) GetUserByID(id uint) (*user.ClubUser, error) {
	var u user.ClubUser
	if err := r.db.Preload("Club").First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) UpdateUser(u *user.ClubUser) error {
	return r.db.Save(u).Error
}

func (r *authRepository) EmailTaken(email string) (bool, error) {
	var count int64
	err := r.db.Model(&user.ClubUser{}).Where("LOWER(email) = ?", strings.ToLower(email)).Count(&count).Error
	return count > 0, err
}

func (r *authRepository) CreateClub(c *club.Club) error {
	return r.db.Create(c).Error
}

func (r *authRepository) GetClubBySlug(slug string) (*club.Club, error) {
	var c club.Club
	if err := r.db.Where("slug = ?", slug).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, club.ErrClubNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *authRepository) ClubSlugTaken(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&club.Club{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *authRepository) SaveRefreshToken(token *user.RefreshToken) error {
	return r.db.Create(token).Error
}

func (r *authRepository) GetRefreshToken(tokenString string) (*user.RefreshToken, error) {
	var rt user.RefreshToken
	if err := r.db.Where("token = ? AND expires_at > ? AND revoked = ?", tokenString, time.Now(), false).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *authRepository) InvalidateAllRefreshTokensForUser(userID uint) error {
	result := r.db.Model(&user.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true)

	if result.Error != nil {
		return fmt.Errorf("failed to invalidate all refresh tokens: %w", result.Error)
	}
	return nil
}
