package repositories

import (
	"gorm.io/gorm"

	"github.com/Pranesh1009/BNConnect/models"
	"github.com/Pranesh1009/BNConnect/pagination"
)

// ChapterRepository defines chapter and membership database operations.
type ChapterRepository interface {
	Create(chapter *models.Chapter) error
	FindByID(id uint) (*models.Chapter, error)
	Update(chapter *models.Chapter) error
	Delete(chapter *models.Chapter) error
	List(p pagination.Params) ([]models.Chapter, int64, error)
	CountMembers(chapterID uint) (int64, error)
	AddMember(member *models.ChapterMember) error
}

type chapterRepository struct {
	db *gorm.DB
}

var _ ChapterRepository = (*chapterRepository)(nil)

// NewChapterRepository creates a new ChapterRepository instance.
func NewChapterRepository(db *gorm.DB) ChapterRepository {
	return &chapterRepository{db: db}
}

func (r *chapterRepository) Create(chapter *models.Chapter) error {
	return r.db.Create(chapter).Error
}

func (r *chapterRepository) FindByID(id uint) (*models.Chapter, error) {
	var chapter models.Chapter
	err := r.db.
		Preload("User").
		Preload("President").
		Preload("VicePresident").
		Preload("State").
		Preload("City").
		First(&chapter, id).Error
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *chapterRepository) Update(chapter *models.Chapter) error {
	return r.db.Save(chapter).Error
}

func (r *chapterRepository) Delete(chapter *models.Chapter) error {
	return r.db.Delete(chapter).Error
}

var chapterSortColumns = map[string]string{
	"title":     "title",
	"createdAt": "created_at",
}

// List returns one page of chapters matched by the search term over title
// and description.
func (r *chapterRepository) List(p pagination.Params) ([]models.Chapter, int64, error) {
	search := p.SearchScope("title", "description")

	var total int64
	if err := r.db.Model(&models.Chapter{}).Scopes(search).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var chapters []models.Chapter
	err := r.db.Model(&models.Chapter{}).
		Preload("User").
		Preload("President").
		Preload("VicePresident").
		Preload("State").
		Preload("City").
		Scopes(search, p.SortScope(chapterSortColumns), p.Scope()).
		Find(&chapters).Error
	if err != nil {
		return nil, 0, err
	}
	return chapters, total, nil
}

func (r *chapterRepository) CountMembers(chapterID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ChapterMember{}).
		Where("chapter_id = ?", chapterID).
		Count(&count).Error
	return count, err
}

// AddMember appends a membership record. Membership is append-only.
func (r *chapterRepository) AddMember(member *models.ChapterMember) error {
	return r.db.Create(member).Error
}
