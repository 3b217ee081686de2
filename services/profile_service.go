package services

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Pranesh1009/BNConnect/apperrors"
	"github.com/Pranesh1009/BNConnect/models"
	"github.com/Pranesh1009/BNConnect/repositories"
)

// ProfileService implements the self-service one-to-one profile. Every
// operation acts on the caller's own profile; there is no cross-user access.
type ProfileService interface {
	Create(userID uint, input *ProfileInput) (*models.Profile, error)
	Get(userID uint) (*models.Profile, error)
	Update(userID uint, input *UpdateProfileInput) (*models.Profile, error)
	Delete(userID uint) error
}

type ProfileInput struct {
	Bio         string `json:"bio"`
	Avatar      string `json:"avatar"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Industry    string `json:"industry"`
	Tier        string `json:"tier"`
	Company     string `json:"company"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	Country     string `json:"country"`
	Website     string `json:"website"`
	Remarks     string `json:"remarks"`
}

// UpdateProfileInput uses pointers so an absent field leaves the stored
// value untouched.
type UpdateProfileInput struct {
	Bio         *string `json:"bio,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Email       *string `json:"email,omitempty"`
	Industry    *string `json:"industry,omitempty"`
	Tier        *string `json:"tier,omitempty"`
	Company     *string `json:"company,omitempty"`
	Address1    *string `json:"address1,omitempty"`
	Address2    *string `json:"address2,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	Zip         *string `json:"zip,omitempty"`
	Country     *string `json:"country,omitempty"`
	Website     *string `json:"website,omitempty"`
	Remarks     *string `json:"remarks,omitempty"`
}

type profileService struct {
	profiles repositories.ProfileRepository
	logger   *zap.Logger
}

var _ ProfileService = (*profileService)(nil)

// NewProfileService creates a new ProfileService instance.
func NewProfileService(profiles repositories.ProfileRepository, logger *zap.Logger) ProfileService {
	return &profileService{profiles: profiles, logger: logger}
}

// Create makes the caller's profile. A second create is a conflict; the
// profile is one-to-one with the user.
func (s *profileService) Create(userID uint, input *ProfileInput) (*models.Profile, error) {
	if _, err := s.profiles.FindByUserID(userID); err == nil {
		return nil, apperrors.Conflict("Profile already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.FromStore(err, "Profile not found")
	}

	profile := models.Profile{UserID: userID}
	applyProfileInput(&profile, input)

	if err := s.profiles.Create(&profile); err != nil {
		if apperrors.IsDuplicate(err) {
			return nil, apperrors.Conflict("Profile already exists")
		}
		return nil, apperrors.FromStore(err, "Profile not found")
	}

	s.logger.Info("Profile created", zap.Uint("user_id", userID))
	return &profile, nil
}

func (s *profileService) Get(userID uint) (*models.Profile, error) {
	profile, err := s.profiles.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.FromStore(err, "Profile not found")
	}
	return profile, nil
}

func (s *profileService) Update(userID uint, input *UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.profiles.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.FromStore(err, "Profile not found")
	}

	applyProfileUpdate(profile, input)
	if err := s.profiles.Update(profile); err != nil {
		return nil, apperrors.FromStore(err, "Profile not found")
	}

	s.logger.Info("Profile updated", zap.Uint("user_id", userID))
	return profile, nil
}

func (s *profileService) Delete(userID uint) error {
	if err := s.profiles.DeleteByUserID(userID); err != nil {
		return apperrors.FromStore(err, "Profile not found")
	}
	s.logger.Info("Profile deleted", zap.Uint("user_id", userID))
	return nil
}

func applyProfileInput(profile *models.Profile, input *ProfileInput) {
	profile.Bio = input.Bio
	profile.Avatar = input.Avatar
	profile.PhoneNumber = input.PhoneNumber
	profile.Email = input.Email
	profile.Industry = input.Industry
	profile.Tier = input.Tier
	profile.Company = input.Company
	profile.Address1 = input.Address1
	profile.Address2 = input.Address2
	profile.City = input.City
	profile.State = input.State
	profile.Zip = input.Zip
	profile.Country = input.Country
	profile.Website = input.Website
	profile.Remarks = input.Remarks
}

// applyProfileUpdate copies only the fields the caller sent.
func applyProfileUpdate(profile *models.Profile, input *UpdateProfileInput) {
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.Avatar != nil {
		profile.Avatar = *input.Avatar
	}
	if input.PhoneNumber != nil {
		profile.PhoneNumber = *input.PhoneNumber
	}
	if input.Email != nil {
		profile.Email = *input.Email
	}
	if input.Industry != nil {
		profile.Industry = *input.Industry
	}
	if input.Tier != nil {
		profile.Tier = *input.Tier
	}
	if input.Company != nil {
		profile.Company = *input.Company
	}
	if input.Address1 != nil {
		profile.Address1 = *input.Address1
	}
	if input.Address2 != nil {
		profile.Address2 = *input.Address2
	}
	if input.City != nil {
		profile.City = *input.City
	}
	if input.State != nil {
		profile.State = *input.State
	}
	if input.Zip != nil {
		profile.Zip = *input.Zip
	}
	if input.Country != nil {
		profile.Country = *input.Country
	}
	if input.Website != nil {
		profile.Website = *input.Website
	}
	if input.Remarks != nil {
		profile.Remarks = *input.Remarks
	}
}
