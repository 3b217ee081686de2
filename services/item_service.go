package services

import (
	"go.uber.org/zap"

	"github.com/Pranesh1009/BNConnect/apperrors"
	"github.com/Pranesh1009/BNConnect/models"
	"github.com/Pranesh1009/BNConnect/pagination"
	"github.com/Pranesh1009/BNConnect/repositories"
)

// ItemService implements owner-scoped item CRUD. A caller can never observe
// whether a foreign item exists: both absence and foreign ownership read as
// not found.
type ItemService interface {
	Create(requestingUserID uint, input *ItemInput) (*models.Item, error)
	List(requestingUserID uint, p pagination.Params) (*pagination.Result[models.Item], error)
	Get(id, requestingUserID uint) (*models.Item, error)
	Update(id, requestingUserID uint, input *UpdateItemInput) (*models.Item, error)
	Delete(id, requestingUserID uint) error
}

type ItemInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateItemInput uses pointers so an absent field leaves the stored value
// untouched.
type UpdateItemInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type itemService struct {
	items  repositories.ItemRepository
	logger *zap.Logger
}

var _ ItemService = (*itemService)(nil)

// NewItemService creates a new ItemService instance.
func NewItemService(items repositories.ItemRepository, logger *zap.Logger) ItemService {
	return &itemService{items: items, logger: logger}
}

func (s *itemService) Create(requestingUserID uint, input *ItemInput) (*models.Item, error) {
	if input.Name == "" {
		return nil, apperrors.Invalid("Name is required")
	}

	item := models.Item{
		Name:        input.Name,
		Description: input.Description,
		UserID:      requestingUserID,
	}
	if err := s.items.Create(&item); err != nil {
		return nil, apperrors.FromStore(err, "Item not found")
	}

	s.logger.Info("Item created", zap.Uint("item_id", item.ID), zap.Uint("user_id", requestingUserID))
	return &item, nil
}

func (s *itemService) List(requestingUserID uint, p pagination.Params) (*pagination.Result[models.Item], error) {
	items, total, err := s.items.ListOwned(requestingUserID, p)
	if err != nil {
		return nil, apperrors.FromStore(err, "Item not found")
	}
	result := pagination.NewResult(items, total, p)
	return &result, nil
}

func (s *itemService) Get(id, requestingUserID uint) (*models.Item, error) {
	item, err := s.items.FindOwned(id, requestingUserID)
	if err != nil {
		return nil, apperrors.FromStore(err, "Item not found")
	}
	return item, nil
}

func (s *itemService) Update(id, requestingUserID uint, input *UpdateItemInput) (*models.Item, error) {
	item, err := s.items.FindOwned(id, requestingUserID)
	if err != nil {
		return nil, apperrors.FromStore(err, "Item not found")
	}

	if input.Name != nil && *input.Name != "" {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}

	if err := s.items.Update(item); err != nil {
		return nil, apperrors.FromStore(err, "Item not found")
	}
	return item, nil
}

func (s *itemService) Delete(id, requestingUserID uint) error {
	item, err := s.items.FindOwned(id, requestingUserID)
	if err != nil {
		return apperrors.FromStore(err, "Item not found")
	}
	if err := s.items.Delete(item); err != nil {
		return apperrors.FromStore(err, "Item not found")
	}
	s.logger.Info("Item deleted", zap.Uint("item_id", id), zap.Uint("user_id", requestingUserID))
	return nil
}
