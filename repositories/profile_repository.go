package repositories

import (
	"gorm.io/gorm"

	"github.com/Pranesh1009/BNConnect/models"
)

// ProfileRepository persists the one-to-one user profile.
type ProfileRepository interface {
	Create(profile *models.Profile) error
	FindByUserID(userID uint) (*models.Profile, error)
	Update(profile *models.Profile) error
	DeleteByUserID(userID uint) error
}

type profileRepository struct {
	db *gorm.DB
}

var _ ProfileRepository = (*profileRepository)(nil)

// NewProfileRepository creates a new ProfileRepository instance.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

func (r *profileRepository) FindByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

func (r *profileRepository) DeleteByUserID(userID uint) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.Profile{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
