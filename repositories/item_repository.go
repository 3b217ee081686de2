package repositories

import (
	"gorm.io/gorm"

	"github.com/Pranesh1009/BNConnect/models"
	"github.com/Pranesh1009/BNConnect/pagination"
)

// ItemRepository scopes every read and write to the owning user, so a
// foreign item is indistinguishable from a missing one.
type ItemRepository interface {
	Create(item *models.Item) error
	FindOwned(id uint, userID uint) (*models.Item, error)
	ListOwned(userID uint, p pagination.Params) ([]models.Item, int64, error)
	Update(item *models.Item) error
	Delete(item *models.Item) error
}

type itemRepository struct {
	db *gorm.DB
}

var _ ItemRepository = (*itemRepository)(nil)

// NewItemRepository creates a new ItemRepository instance.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(item *models.Item) error {
	return r.db.Create(item).Error
}

// FindOwned returns the item only when it belongs to userID; otherwise the
// store's not-found error surfaces.
func (r *itemRepository) FindOwned(id uint, userID uint) (*models.Item, error) {
	var item models.Item
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

var itemSortColumns = map[string]string{
	"name":      "name",
	"createdAt": "created_at",
}

func (r *itemRepository) ListOwned(userID uint, p pagination.Params) ([]models.Item, int64, error) {
	search := p.SearchScope("name", "description")

	var total int64
	err := r.db.Model(&models.Item{}).
		Where("user_id = ?", userID).
		Scopes(search).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var items []models.Item
	err = r.db.Model(&models.Item{}).
		Where("user_id = ?", userID).
		Scopes(search, p.SortScope(itemSortColumns), p.Scope()).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *itemRepository) Update(item *models.Item) error {
	return r.db.Save(item).Error
}

func (r *itemRepository) Delete(item *models.Item) error {
	return r.db.Delete(item).Error
}
