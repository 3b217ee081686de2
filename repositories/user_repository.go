package repositories

import (
	"gorm.io/gorm"

	"github.com/Pranesh1009/BNConnect/models"
	"github.com/Pranesh1009/BNConnect/pagination"
)

// UserRepository defines user-related database operations. Implementations
// return raw storage errors; translation happens at the service boundary.
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(user *models.User) error
	ReplaceRoles(user *models.User, roles []models.Role) error
	FindRolesByNames(names []string) ([]models.Role, error)
	FindRolesByIDs(ids []uint) ([]models.Role, error)
	List(p pagination.Params) ([]models.User, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

var _ UserRepository = (*userRepository)(nil)

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID loads the user with their current role set and profile.
func (r *userRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Roles").Preload("Profile").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Roles").Preload("Profile").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) Delete(user *models.User) error {
	return r.db.Delete(user).Error
}

// ReplaceRoles swaps the user's role associations for the given set.
func (r *userRepository) ReplaceRoles(user *models.User, roles []models.Role) error {
	return r.db.Model(user).Association("Roles").Replace(roles)
}

func (r *userRepository) FindRolesByNames(names []string) ([]models.Role, error) {
	var roles []models.Role
	if err := r.db.Where("name IN ?", names).Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *userRepository) FindRolesByIDs(ids []uint) ([]models.Role, error) {
	var roles []models.Role
	if err := r.db.Where("id IN ?", ids).Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// userSortColumns whitelists the sortable columns for user listings.
var userSortColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"createdAt": "created_at",
}

// List returns one page of users matched by the search term over name and
// email, plus the total count before paging.
func (r *userRepository) List(p pagination.Params) ([]models.User, int64, error) {
	search := p.SearchScope("name", "email")

	var total int64
	if err := r.db.Model(&models.User{}).Scopes(search).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := r.db.Model(&models.User{}).
		Preload("Roles").
		Scopes(search, p.SortScope(userSortColumns), p.Scope()).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
