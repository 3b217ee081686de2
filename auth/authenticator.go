package auth

import (
	"strings"

	restful "github.com/emicklei/go-restful/v3"
	"go.uber.org/zap"

	"github.com/Pranesh1009/BNConnect/apperrors"
	"github.com/Pranesh1009/BNConnect/models"
	"github.com/Pranesh1009/BNConnect/response"
)

// Request attribute keys set by the auth filters.
const (
	attrUser   = "auth.user"
	attrUserID = "auth.user_id"
	attrToken  = "auth.token"
)

// SessionStore is the persistence surface the authenticator needs. The
// repositories package provides the GORM implementation.
type SessionStore interface {
	Create(session *models.Session) error
	FindActive(token string, userID uint) (*models.Session, error)
	Deactivate(token string) error
	DeactivateForUser(userID uint) error
}

// UserLoader resolves the authenticated user with roles loaded.
type UserLoader interface {
	FindByID(id uint) (*models.User, error)
}

// Authenticator issues, validates and revokes bearer credentials. A token is
// only accepted when its signature verifies AND an active session row exists
// for the exact token/user pair, so revocation takes effect immediately.
type Authenticator struct {
	tokens   *TokenManager
	sessions SessionStore
	users    UserLoader
	logger   *zap.Logger
}

func NewAuthenticator(tokens *TokenManager, sessions SessionStore, users UserLoader, logger *zap.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, sessions: sessions, users: users, logger: logger}
}

// Issue signs a token for user and persists the matching active session row.
func (a *Authenticator) Issue(user *models.User) (string, error) {
	token, err := a.tokens.Generate(user)
	if err != nil {
		return "", apperrors.Internal("Could not generate token")
	}
	if err := a.sessions.Create(&models.Session{Token: token, UserID: user.ID, IsActive: true}); err != nil {
		return "", apperrors.FromStore(err, "Session not found")
	}
	return token, nil
}

// Validate authenticates tokenString. Cryptographic failure denies without a
// store lookup; a structurally valid token is then required to match an
// active session row on both token and user id.
func (a *Authenticator) Validate(tokenString string) (*models.User, error) {
	claims, err := a.tokens.Parse(tokenString)
	if err != nil {
		return nil, apperrors.Unauthorized(err.Error())
	}

	session, err := a.sessions.FindActive(tokenString, claims.UserID)
	if err != nil || session == nil {
		a.logger.Warn("Invalid or revoked session",
			zap.Uint("user_id", claims.UserID))
		return nil, apperrors.Unauthorized("Invalid or expired session")
	}

	user, err := a.users.FindByID(claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid or expired session")
	}
	return user, nil
}

// Revoke marks every session row carrying token inactive. Revoking an
// unknown or already-inactive token is not an error.
func (a *Authenticator) Revoke(token string) error {
	if err := a.sessions.Deactivate(token); err != nil {
		return apperrors.FromStore(err, "Session not found")
	}
	return nil
}

// RevokeAllForUser invalidates every session of a user. Called before a user
// record is deleted.
func (a *Authenticator) RevokeAllForUser(userID uint) error {
	if err := a.sessions.DeactivateForUser(userID); err != nil {
		return apperrors.FromStore(err, "Session not found")
	}
	return nil
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(req *restful.Request) (string, error) {
	header := req.HeaderParameter("Authorization")
	if header == "" {
		return "", apperrors.Unauthorized("Authorization header required")
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", apperrors.Unauthorized("Invalid authorization header format")
	}
	return parts[1], nil
}

// Filter returns a go-restful filter that rejects unauthenticated requests
// with 401 and stashes the resolved user in the request attributes.
func (a *Authenticator) Filter() restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		token, err := bearerToken(req)
		if err != nil {
			response.WriteError(resp, err)
			return
		}

		user, err := a.Validate(token)
		if err != nil {
			response.WriteError(resp, err)
			return
		}

		req.SetAttribute(attrUser, user)
		req.SetAttribute(attrUserID, user.ID)
		req.SetAttribute(attrToken, token)
		chain.ProcessFilter(req, resp)
	}
}

// OptionalFilter authenticates when a bearer token is present but lets
// anonymous requests through. Registration uses it so the privilege
// escalation rule can see who, if anyone, is asking.
func (a *Authenticator) OptionalFilter() restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		if req.HeaderParameter("Authorization") == "" {
			chain.ProcessFilter(req, resp)
			return
		}

		token, err := bearerToken(req)
		if err != nil {
			response.WriteError(resp, err)
			return
		}
		user, err := a.Validate(token)
		if err != nil {
			response.WriteError(resp, err)
			return
		}

		req.SetAttribute(attrUser, user)
		req.SetAttribute(attrUserID, user.ID)
		req.SetAttribute(attrToken, token)
		chain.ProcessFilter(req, resp)
	}
}

// CurrentUser returns the user resolved by the auth filter, if any.
func CurrentUser(req *restful.Request) (*models.User, bool) {
	user, ok := req.Attribute(attrUser).(*models.User)
	return user, ok
}

// CurrentToken returns the raw bearer token of the request, if any.
func CurrentToken(req *restful.Request) (string, bool) {
	token, ok := req.Attribute(attrToken).(string)
	return token, ok
}
