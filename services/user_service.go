package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Pranesh1009/BNConnect/apperrors"
	"github.com/Pranesh1009/BNConnect/auth"
	"github.com/Pranesh1009/BNConnect/email"
	"github.com/Pranesh1009/BNConnect/models"
	"github.com/Pranesh1009/BNConnect/pagination"
	"github.com/Pranesh1009/BNConnect/repositories"
)

// UserService implements user administration and self-service.
type UserService interface {
	List(requestingUserID uint, p pagination.Params) (*pagination.Result[*UserResponse], error)
	Get(targetID, requestingUserID uint) (*UserResponse, error)
	Update(targetID, requestingUserID uint, input *UpdateUserInput) (*UserResponse, error)
	Delete(targetID, requestingUserID uint) error
	EnrollInChapter(requestingUserID uint, input *EnrollUserInput) (*UserResponse, error)
}

type UpdateUserInput struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	MobileNumber *string `json:"mobileNumber,omitempty"`
	Password     *string `json:"password,omitempty"`
	RoleIDs      []uint  `json:"roleIds,omitempty"`
}

// EnrollUserInput creates a user on behalf of an admin and enrolls them in a
// chapter. The account password is generated, not supplied.
type EnrollUserInput struct {
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	MobileNumber *string  `json:"mobileNumber,omitempty"`
	ChapterID    uint     `json:"chapterId"`
	MemberRole   string   `json:"memberRole"`
	RoleNames    []string `json:"roleNames,omitempty"`
}

type userService struct {
	users    repositories.UserRepository
	sessions repositories.SessionRepository
	chapters repositories.ChapterRepository
	gate     *auth.Gate
	mailer   email.Mailer
	logger   *zap.Logger
}

var _ UserService = (*userService)(nil)

// NewUserService creates a new UserService instance.
func NewUserService(
	users repositories.UserRepository,
	sessions repositories.SessionRepository,
	chapters repositories.ChapterRepository,
	gate *auth.Gate,
	mailer email.Mailer,
	logger *zap.Logger,
) UserService {
	return &userService{
		users:    users,
		sessions: sessions,
		chapters: chapters,
		gate:     gate,
		mailer:   mailer,
		logger:   logger,
	}
}

// List returns a page of users. SUPER_ADMIN only.
func (s *userService) List(requestingUserID uint, p pagination.Params) (*pagination.Result[*UserResponse], error) {
	if err := s.gate.RequireAnyRole(requestingUserID, models.RoleSuperAdmin); err != nil {
		return nil, err
	}

	users, total, err := s.users.List(p)
	if err != nil {
		return nil, apperrors.FromStore(err, "User not found")
	}

	responses := make([]*UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, NewUserResponse(&users[i]))
	}
	result := pagination.NewResult(responses, total, p)
	return &result, nil
}

// Get returns one user. Allowed for the user themselves or SUPER_ADMIN.
func (s *userService) Get(targetID, requestingUserID uint) (*UserResponse, error) {
	if err := s.gate.RequireOwnerOrRole(requestingUserID, targetID, models.RoleSuperAdmin); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(targetID)
	if err != nil {
		return nil, apperrors.FromStore(err, "User not found")
	}
	return NewUserResponse(user), nil
}

// Update mutates a user record. The user may edit their own record;
// SUPER_ADMIN may edit any. Role changes are SUPER_ADMIN only regardless of
// ownership.
func (s *userService) Update(targetID, requestingUserID uint, input *UpdateUserInput) (*UserResponse, error) {
	user, err := s.users.FindByID(targetID)
	if err != nil {
		return nil, apperrors.FromStore(err, "User not found")
	}

	if err := s.gate.RequireOwnerOrRole(requestingUserID, targetID, models.RoleSuperAdmin); err != nil {
		return nil, err
	}

	if len(input.RoleIDs) > 0 {
		if err := s.gate.RequireAnyRole(requestingUserID, models.RoleSuperAdmin); err != nil {
			s.logger.Warn("Unauthorized role update attempt",
				zap.Uint("requesting_user_id", requestingUserID),
				zap.Uint("target_user_id", targetID))
			return nil, apperrors.Forbidden("Only super admin can change roles")
		}
	}

	if input.Email != nil && *input.Email != user.Email {
		if !strings.Contains(*input.Email, "@") {
			return nil, apperrors.Invalid("A valid email is required")
		}
		// Fast-path check; the unique constraint stays authoritative.
		if existing, err := s.users.FindByEmail(*input.Email); err == nil && existing.ID != user.ID {
			return nil, apperrors.Conflict("Email already in use")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.FromStore(err, "User not found")
		}
		user.Email = *input.Email
	}

	if input.Name != nil && *input.Name != "" {
		user.Name = *input.Name
	}
	if input.MobileNumber != nil {
		user.MobileNumber = input.MobileNumber
	}
	if input.Password != nil {
		if len(*input.Password) < 6 {
			return nil, apperrors.Invalid("Password must be at least 6 characters long")
		}
		hashed, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, apperrors.Internal("Could not hash password")
		}
		user.Password = hashed
	}

	if err := s.users.Update(user); err != nil {
		if apperrors.IsDuplicate(err) {
			return nil, apperrors.Conflict("Email already in use")
		}
		return nil, apperrors.FromStore(err, "User not found")
	}

	if len(input.RoleIDs) > 0 {
		roles, err := s.users.FindRolesByIDs(input.RoleIDs)
		if err != nil {
			return nil, apperrors.FromStore(err, "Role not found")
		}
		if len(roles) != len(input.RoleIDs) {
			return nil, apperrors.Invalid("Unknown role id")
		}
		if err := s.users.ReplaceRoles(user, roles); err != nil {
			return nil, apperrors.FromStore(err, "Role not found")
		}
	}

	updated, err := s.users.FindByID(user.ID)
	if err != nil {
		return nil, apperrors.FromStore(err, "User not found")
	}
	s.logger.Info("User updated", zap.Uint("user_id", updated.ID))
	return NewUserResponse(updated), nil
}

// Delete removes a user. SUPER_ADMIN only. The user's sessions are removed
// first so no token of theirs can outlive the record.
func (s *userService) Delete(targetID, requestingUserID uint) error {
	if err := s.gate.RequireAnyRole(requestingUserID, models.RoleSuperAdmin); err != nil {
		s.logger.Warn("Unauthorized user deletion attempt",
			zap.Uint("requesting_user_id", requestingUserID),
			zap.Uint("target_user_id", targetID))
		return apperrors.Forbidden("Only super admin can delete users")
	}

	user, err := s.users.FindByID(targetID)
	if err != nil {
		return apperrors.FromStore(err, "User not found")
	}

	if err := s.sessions.DeleteForUser(user.ID); err != nil {
		return apperrors.FromStore(err, "Session not found")
	}
	if err := s.users.Delete(user); err != nil {
		return apperrors.FromStore(err, "User not found")
	}

	s.logger.Info("User deleted", zap.Uint("user_id", targetID))
	return nil
}

// EnrollInChapter creates a user with a generated one-time password and
// appends their chapter membership. SUPER_ADMIN or SUB_ADMIN only. The
// welcome mail is best-effort: a delivery failure is logged and the creation
// still succeeds.
func (s *userService) EnrollInChapter(requestingUserID uint, input *EnrollUserInput) (*UserResponse, error) {
	if err := s.gate.RequireAnyRole(requestingUserID, models.RoleSuperAdmin, models.RoleSubAdmin); err != nil {
		return nil, err
	}

	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return nil, apperrors.Invalid("A valid email is required")
	}
	if input.Name == "" {
		return nil, apperrors.Invalid("Name is required")
	}
	if input.MemberRole != models.ChapterRoleLeader && input.MemberRole != models.ChapterRoleMember {
		return nil, apperrors.Invalid("Member role must be LEADER or MEMBER")
	}
	for _, name := range input.RoleNames {
		if name == models.RoleSuperAdmin {
			return nil, apperrors.Forbidden("Only super admin can create super admin users")
		}
	}

	chapter, err := s.chapters.FindByID(input.ChapterID)
	if err != nil {
		return nil, apperrors.FromStore(err, "Chapter not found")
	}

	roleNames := input.RoleNames
	if len(roleNames) == 0 {
		roleNames = []string{models.RoleMember}
	}
	roles, err := s.users.FindRolesByNames(roleNames)
	if err != nil {
		return nil, apperrors.FromStore(err, "Role not found")
	}
	if len(roles) != len(roleNames) {
		return nil, apperrors.Invalid("Unknown role name")
	}

	generated := uuid.NewString()
	hashed, err := auth.HashPassword(generated)
	if err != nil {
		return nil, apperrors.Internal("Could not hash password")
	}

	user := models.User{
		Email:        input.Email,
		Password:     hashed,
		Name:         input.Name,
		MobileNumber: input.MobileNumber,
		Roles:        roles,
	}
	if err := s.users.Create(&user); err != nil {
		if apperrors.IsDuplicate(err) {
			return nil, apperrors.Conflict("Email already registered")
		}
		return nil, apperrors.FromStore(err, "User not found")
	}

	member := models.ChapterMember{
		UserID:    user.ID,
		ChapterID: chapter.ID,
		Role:      input.MemberRole,
	}
	if err := s.chapters.AddMember(&member); err != nil {
		return nil, apperrors.FromStore(err, "Chapter not found")
	}

	if err := s.mailer.SendWelcome(user.Email, user.Name, generated); err != nil {
		// Non-fatal: the account exists either way.
		s.logger.Error("Failed to send welcome email",
			zap.Uint("user_id", user.ID),
			zap.Error(err))
	}

	s.logger.Info("User enrolled in chapter",
		zap.Uint("user_id", user.ID),
		zap.Uint("chapter_id", chapter.ID),
		zap.String("member_role", input.MemberRole))
	return NewUserResponse(&user), nil
}
