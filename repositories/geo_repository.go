package repositories

import (
	"gorm.io/gorm"

	"github.com/Pranesh1009/BNConnect/models"
	"github.com/Pranesh1009/BNConnect/pagination"
)

// GeoRepository reads the static state/city reference data.
type GeoRepository interface {
	ListStates(p pagination.Params) ([]models.State, int64, error)
	ListCities(stateID uint, p pagination.Params) ([]models.City, int64, error)
}

type geoRepository struct {
	db *gorm.DB
}

var _ GeoRepository = (*geoRepository)(nil)

// NewGeoRepository creates a new GeoRepository instance.
func NewGeoRepository(db *gorm.DB) GeoRepository {
	return &geoRepository{db: db}
}

// ListStates returns one page of states matched over name and code, ordered
// by name ascending.
func (r *geoRepository) ListStates(p pagination.Params) ([]models.State, int64, error) {
	search := p.SearchScope("name", "code")

	var total int64
	if err := r.db.Model(&models.State{}).Scopes(search).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var states []models.State
	err := r.db.Model(&models.State{}).
		Scopes(search, p.Scope()).
		Order("name ASC").
		Find(&states).Error
	if err != nil {
		return nil, 0, err
	}
	return states, total, nil
}

// ListCities returns one page of a state's cities matched over name, ordered
// by name ascending.
func (r *geoRepository) ListCities(stateID uint, p pagination.Params) ([]models.City, int64, error) {
	search := p.SearchScope("name")

	var total int64
	err := r.db.Model(&models.City{}).
		Where("state_id = ?", stateID).
		Scopes(search).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var cities []models.City
	err = r.db.Model(&models.City{}).
		Preload("State").
		Where("state_id = ?", stateID).
		Scopes(search, p.Scope()).
		Order("name ASC").
		Find(&cities).Error
	if err != nil {
		return nil, 0, err
	}
	return cities, total, nil
}
