package services

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Pranesh1009/BNConnect/apperrors"
	"github.com/Pranesh1009/BNConnect/auth"
	"github.com/Pranesh1009/BNConnect/models"
	"github.com/Pranesh1009/BNConnect/repositories"
)

// AuthService implements registration, login and logout.
type AuthService interface {
	Register(input *RegisterInput, requester *models.User) (*UserResponse, error)
	Login(input *LoginInput) (*LoginResult, error)
	Logout(token string) error
}

type RegisterInput struct {
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	Name         string   `json:"name"`
	MobileNumber *string  `json:"mobileNumber,omitempty"`
	RoleNames    []string `json:"roleNames,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult carries the issued token plus the identity payload. IsNewUser
// is true until the user creates a profile.
type LoginResult struct {
	Token     string        `json:"token"`
	User      *UserResponse `json:"user"`
	IsNewUser bool          `json:"isNewUser"`
}

// RoleResponse is the role shape exposed on the wire.
type RoleResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UserResponse is the user shape exposed on the wire. The password hash
// never appears here.
type UserResponse struct {
	ID           uint           `json:"id"`
	Email        string         `json:"email"`
	Name         string         `json:"name"`
	MobileNumber *string        `json:"mobileNumber,omitempty"`
	Roles        []RoleResponse `json:"roles"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// NewUserResponse maps a model onto the wire shape.
func NewUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	roles := make([]RoleResponse, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, RoleResponse{ID: r.ID, Name: r.Name, Description: r.Description})
	}
	return &UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		MobileNumber: user.MobileNumber,
		Roles:        roles,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

type authService struct {
	users         repositories.UserRepository
	authenticator *auth.Authenticator
	gate          *auth.Gate
	logger        *zap.Logger
}

var _ AuthService = (*authService)(nil)

// NewAuthService creates a new AuthService instance.
func NewAuthService(users repositories.UserRepository, authenticator *auth.Authenticator, gate *auth.Gate, logger *zap.Logger) AuthService {
	return &authService{users: users, authenticator: authenticator, gate: gate, logger: logger}
}

// Register creates a user. requester is nil for anonymous registration.
// Granting SUPER_ADMIN is gated on the requester already holding it; omitted
// role names fall back to the LEADER default.
func (s *authService) Register(input *RegisterInput, requester *models.User) (*UserResponse, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	// Fast-path existence check; the unique constraint is the actual
	// enforcer when two registrations race.
	if _, err := s.users.FindByEmail(input.Email); err == nil {
		s.logger.Warn("Registration attempt with existing email", zap.String("email", input.Email))
		return nil, apperrors.Conflict("Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.FromStore(err, "User not found")
	}

	if err := s.gate.AuthorizeRoleGrant(requester, input.RoleNames); err != nil {
		return nil, err
	}

	roles, err := s.resolveRoles(input.RoleNames)
	if err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(input.Password)
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

	s.logger.Info("User registered", zap.Uint("user_id", user.ID))
	return NewUserResponse(&user), nil
}

// Login verifies credentials and issues a session-backed token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *authService) Login(input *LoginInput) (*LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, apperrors.Invalid("Email and password are required")
	}

	user, err := s.users.FindByEmail(input.Email)
	if err != nil {
		s.logger.Warn("Login attempt with non-existent email", zap.String("email", input.Email))
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	if !auth.CheckPassword(input.Password, user.Password) {
		s.logger.Warn("Login attempt with invalid password", zap.Uint("user_id", user.ID))
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	token, err := s.authenticator.Issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", zap.Uint("user_id", user.ID))
	return &LoginResult{
		Token:     token,
		User:      NewUserResponse(user),
		IsNewUser: user.Profile == nil,
	}, nil
}

// Logout revokes the token. Revoking twice yields the same success.
func (s *authService) Logout(token string) error {
	return s.authenticator.Revoke(token)
}

// resolveRoles maps role names onto persisted roles, defaulting to LEADER.
// Unknown names are rejected rather than silently dropped.
func (s *authService) resolveRoles(names []string) ([]models.Role, error) {
	if len(names) == 0 {
		names = []string{models.RoleLeader}
	}
	roles, err := s.users.FindRolesByNames(names)
	if err != nil {
		return nil, apperrors.FromStore(err, "Role not found")
	}
	if len(roles) != len(names) {
		return nil, apperrors.Invalid("Unknown role name")
	}
	return roles, nil
}

func validateRegisterInput(input *RegisterInput) error {
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return apperrors.Invalid("A valid email is required")
	}
	if len(input.Password) < 6 {
		return apperrors.Invalid("Password must be at least 6 characters long")
	}
	if input.Name == "" {
		return apperrors.Invalid("Name is required")
	}
	return nil
}
