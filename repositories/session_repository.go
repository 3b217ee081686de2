package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Pranesh1009/BNConnect/models"
)

// SessionRepository persists bearer-token sessions. Deactivation is the only
// mutation after creation; rows are deleted solely through the owning user's
// deletion path.
type SessionRepository interface {
	Create(session *models.Session) error
	FindActive(token string, userID uint) (*models.Session, error)
	Deactivate(token string) error
	DeactivateForUser(userID uint) error
	DeleteForUser(userID uint) error
}

type sessionRepository struct {
	db *gorm.DB
}

var _ SessionRepository = (*sessionRepository)(nil)

// NewSessionRepository creates a new SessionRepository instance.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *models.Session) error {
	return r.db.Create(session).Error
}

// FindActive returns the active session matching BOTH token and user id, or
// nil when no such row exists. Token and claimed user must agree; a
// structurally valid token presented for a foreign user does not match.
func (r *sessionRepository) FindActive(token string, userID uint) (*models.Session, error) {
	var session models.Session
	err := r.db.Where("token = ? AND user_id = ? AND is_active = ?", token, userID, true).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// Deactivate flips every session row carrying token to inactive. Matching
// zero rows is not an error, which makes revocation idempotent.
func (r *sessionRepository) Deactivate(token string) error {
	return r.db.Model(&models.Session{}).
		Where("token = ?", token).
		Update("is_active", false).Error
}

func (r *sessionRepository) DeactivateForUser(userID uint) error {
	return r.db.Model(&models.Session{}).
		Where("user_id = ?", userID).
		Update("is_active", false).Error
}

// DeleteForUser removes session rows ahead of a user deletion.
func (r *sessionRepository) DeleteForUser(userID uint) error {
	return r.db.Unscoped().Where("user_id = ?", userID).Delete(&models.Session{}).Error
}
