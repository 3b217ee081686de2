package services

import (
	"go.uber.org/zap"

	"github.com/Pranesh1009/BNConnect/apperrors"
	"github.com/Pranesh1009/BNConnect/auth"
	"github.com/Pranesh1009/BNConnect/models"
	"github.com/Pranesh1009/BNConnect/pagination"
	"github.com/Pranesh1009/BNConnect/repositories"
)

// ChapterService implements chapter CRUD plus the geographic lookups that
// back chapter location pickers.
type ChapterService interface {
	Create(requestingUserID uint, input *ChapterInput) (*ChapterResponse, error)
	List(p pagination.Params) (*pagination.Result[*ChapterResponse], error)
	Get(id uint) (*ChapterResponse, error)
	Update(id, requestingUserID uint, input *ChapterInput) (*ChapterResponse, error)
	Delete(id, requestingUserID uint) error
	AddMember(chapterID, requestingUserID uint, input *AddMemberInput) (*models.ChapterMember, error)
	States(p pagination.Params) (*pagination.Result[models.State], error)
	Cities(stateID uint, p pagination.Params) (*pagination.Result[models.City], error)
}

type ChapterInput struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Content         string `json:"content"`
	IsActive        *bool  `json:"isActive,omitempty"`
	UserID          *uint  `json:"userId,omitempty"`
	PresidentID     *uint  `json:"presidentId,omitempty"`
	VicePresidentID *uint  `json:"vicePresidentId,omitempty"`
	StateID         *uint  `json:"stateId,omitempty"`
	CityID          *uint  `json:"cityId,omitempty"`
}

type AddMemberInput struct {
	UserID uint   `json:"userId"`
	Role   string `json:"role"`
}

// ChapterResponse is a chapter plus its membership count.
type ChapterResponse struct {
	models.Chapter
	MemberCount int64 `json:"memberCount"`
}

type chapterService struct {
	chapters repositories.ChapterRepository
	users    repositories.UserRepository
	geo      repositories.GeoRepository
	gate     *auth.Gate
	logger   *zap.Logger
}

var _ ChapterService = (*chapterService)(nil)

// NewChapterService creates a new ChapterService instance.
func NewChapterService(
	chapters repositories.ChapterRepository,
	users repositories.UserRepository,
	geo repositories.GeoRepository,
	gate *auth.Gate,
	logger *zap.Logger,
) ChapterService {
	return &chapterService{chapters: chapters, users: users, geo: geo, gate: gate, logger: logger}
}

// Create makes a new chapter. SUPER_ADMIN only. Referenced users must
// exist; the creator becomes the owner when none is named.
func (s *chapterService) Create(requestingUserID uint, input *ChapterInput) (*ChapterResponse, error) {
	if err := s.gate.RequireAnyRole(requestingUserID, models.RoleSuperAdmin); err != nil {
		s.logger.Warn("Unauthorized chapter creation attempt",
			zap.Uint("user_id", requestingUserID))
		return nil, apperrors.Forbidden("Only super admin can create chapters")
	}

	if input.Title == "" {
		return nil, apperrors.Invalid("Title is required")
	}
	if err := s.verifyOfficers(input); err != nil {
		return nil, err
	}
	if input.UserID != nil {
		if _, err := s.users.FindByID(*input.UserID); err != nil {
			return nil, apperrors.FromStore(err, "User not found")
		}
	}

	owner := input.UserID
	if owner == nil {
		owner = &requestingUserID
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	chapter := models.Chapter{
		Title:           input.Title,
		Description:     input.Description,
		Content:         input.Content,
		IsActive:        active,
		UserID:          owner,
		PresidentID:     input.PresidentID,
		VicePresidentID: input.VicePresidentID,
		StateID:         input.StateID,
		CityID:          input.CityID,
	}
	if err := s.chapters.Create(&chapter); err != nil {
		return nil, apperrors.FromStore(err, "Chapter not found")
	}

	s.logger.Info("Chapter created", zap.Uint("chapter_id", chapter.ID))
	return s.withMemberCount(&chapter)
}

func (s *chapterService) List(p pagination.Params) (*pagination.Result[*ChapterResponse], error) {
	chapters, total, err := s.chapters.List(p)
	if err != nil {
		return nil, apperrors.FromStore(err, "Chapter not found")
	}

	responses := make([]*ChapterResponse, 0, len(chapters))
	for i := range chapters {
		resp, err := s.withMemberCount(&chapters[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	result := pagination.NewResult(responses, total, p)
	return &result, nil
}

func (s *chapterService) Get(id uint) (*ChapterResponse, error) {
	chapter, err := s.chapters.FindByID(id)
	if err != nil {
		return nil, apperrors.FromStore(err, "Chapter not found")
	}
	return s.withMemberCount(chapter)
}

// Update mutates a chapter. Only the owning user may update it.
func (s *chapterService) Update(id, requestingUserID uint, input *ChapterInput) (*ChapterResponse, error) {
	chapter, err := s.chapters.FindByID(id)
	if err != nil {
		return nil, apperrors.FromStore(err, "Chapter not found")
	}

	if err := s.requireOwner(chapter, requestingUserID, "update"); err != nil {
		return nil, err
	}
	if err := s.verifyOfficers(input); err != nil {
		return nil, err
	}

	if input.Title != "" {
		chapter.Title = input.Title
	}
	if input.Description != "" {
		chapter.Description = input.Description
	}
	if input.Content != "" {
		chapter.Content = input.Content
	}
	if input.IsActive != nil {
		chapter.IsActive = *input.IsActive
	}
	if input.PresidentID != nil {
		chapter.PresidentID = input.PresidentID
	}
	if input.VicePresidentID != nil {
		chapter.VicePresidentID = input.VicePresidentID
	}
	if input.StateID != nil {
		chapter.StateID = input.StateID
	}
	if input.CityID != nil {
		chapter.CityID = input.CityID
	}

	if err := s.chapters.Update(chapter); err != nil {
		return nil, apperrors.FromStore(err, "Chapter not found")
	}

	s.logger.Info("Chapter updated", zap.Uint("chapter_id", chapter.ID))
	return s.withMemberCount(chapter)
}

// Delete removes a chapter. Only the owning user may delete it.
func (s *chapterService) Delete(id, requestingUserID uint) error {
	chapter, err := s.chapters.FindByID(id)
	if err != nil {
		return apperrors.FromStore(err, "Chapter not found")
	}

	if err := s.requireOwner(chapter, requestingUserID, "delete"); err != nil {
		return err
	}

	if err := s.chapters.Delete(chapter); err != nil {
		return apperrors.FromStore(err, "Chapter not found")
	}
	s.logger.Info("Chapter deleted", zap.Uint("chapter_id", id))
	return nil
}

// AddMember appends a membership record for an existing user. Allowed for
// admins and the chapter owner.
func (s *chapterService) AddMember(chapterID, requestingUserID uint, input *AddMemberInput) (*models.ChapterMember, error) {
	chapter, err := s.chapters.FindByID(chapterID)
	if err != nil {
		return nil, apperrors.FromStore(err, "Chapter not found")
	}

	ownerID := uint(0)
	if chapter.UserID != nil {
		ownerID = *chapter.UserID
	}
	if err := s.gate.RequireOwnerOrRole(requestingUserID, ownerID, models.RoleSuperAdmin, models.RoleSubAdmin); err != nil {
		return nil, err
	}

	if input.Role != models.ChapterRoleLeader && input.Role != models.ChapterRoleMember {
		return nil, apperrors.Invalid("Member role must be LEADER or MEMBER")
	}
	if _, err := s.users.FindByID(input.UserID); err != nil {
		return nil, apperrors.FromStore(err, "User not found")
	}

	member := models.ChapterMember{
		UserID:    input.UserID,
		ChapterID: chapter.ID,
		Role:      input.Role,
	}
	if err := s.chapters.AddMember(&member); err != nil {
		return nil, apperrors.FromStore(err, "Chapter not found")
	}

	s.logger.Info("Chapter member added",
		zap.Uint("chapter_id", chapter.ID),
		zap.Uint("user_id", input.UserID),
		zap.String("role", input.Role))
	return &member, nil
}

func (s *chapterService) States(p pagination.Params) (*pagination.Result[models.State], error) {
	states, total, err := s.geo.ListStates(p)
	if err != nil {
		return nil, apperrors.FromStore(err, "State not found")
	}
	result := pagination.NewResult(states, total, p)
	return &result, nil
}

func (s *chapterService) Cities(stateID uint, p pagination.Params) (*pagination.Result[models.City], error) {
	if stateID == 0 {
		return nil, apperrors.Invalid("State ID is required")
	}
	cities, total, err := s.geo.ListCities(stateID, p)
	if err != nil {
		return nil, apperrors.FromStore(err, "City not found")
	}
	result := pagination.NewResult(cities, total, p)
	return &result, nil
}

// requireOwner denies everyone except the recorded owner. A chapter without
// an owner cannot be mutated through the API.
func (s *chapterService) requireOwner(chapter *models.Chapter, requestingUserID uint, action string) error {
	if chapter.UserID == nil || *chapter.UserID != requestingUserID {
		s.logger.Warn("Unauthorized chapter "+action+" attempt",
			zap.Uint("user_id", requestingUserID),
			zap.Uint("chapter_id", chapter.ID))
		return apperrors.Forbidden("Unauthorized access")
	}
	return nil
}

func (s *chapterService) withMemberCount(chapter *models.Chapter) (*ChapterResponse, error) {
	count, err := s.chapters.CountMembers(chapter.ID)
	if err != nil {
		return nil, apperrors.FromStore(err, "Chapter not found")
	}
	return &ChapterResponse{Chapter: *chapter, MemberCount: count}, nil
}

// verifyOfficers checks that any named president or vice-president exists.
func (s *chapterService) verifyOfficers(input *ChapterInput) error {
	if input.PresidentID != nil {
		if _, err := s.users.FindByID(*input.PresidentID); err != nil {
			return apperrors.FromStore(err, "President not found")
		}
	}
	if input.VicePresidentID != nil {
		if _, err := s.users.FindByID(*input.VicePresidentID); err != nil {
			return apperrors.FromStore(err, "Vice President not found")
		}
	}
	return nil
}
