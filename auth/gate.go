package auth

import (
	"go.uber.org/zap"

	"github.com/Pranesh1009/BNConnect/apperrors"
	"github.com/Pranesh1009/BNConnect/models"
)

// Gate makes allow/deny decisions from the CURRENT persisted role set, never
// from role claims cached in a token. A role revoked mid-session therefore
// takes effect on the very next gated call.
type Gate struct {
	users  UserLoader
	logger *zap.Logger
}

func NewGate(users UserLoader, logger *zap.Logger) *Gate {
	return &Gate{users: users, logger: logger}
}

// currentRoles reloads the caller's role set from storage.
func (g *Gate) currentRoles(userID uint) (*models.User, error) {
	user, err := g.users.FindByID(userID)
	if err != nil {
		return nil, apperrors.Unauthorized("Requesting user not found")
	}
	return user, nil
}

// RequireAnyRole allows when the caller's live role set intersects the
// allowed names. A denial is a 403, distinct from the 401 of a failed
// authentication.
func (g *Gate) RequireAnyRole(userID uint, allowed ...string) error {
	user, err := g.currentRoles(userID)
	if err != nil {
		return err
	}
	if user.HasRole(allowed...) {
		return nil
	}
	g.logger.Warn("Insufficient permissions",
		zap.Uint("user_id", userID),
		zap.Strings("required_roles", allowed),
		zap.Strings("user_roles", user.RoleNames()))
	return apperrors.Forbidden("Insufficient permissions")
}

// RequireOwnerOrRole allows when the caller owns the resource, or failing
// that, when the role check passes. Self-service endpoints compose it so a
// user may act on their own record while elevated roles may act on any.
func (g *Gate) RequireOwnerOrRole(userID uint, ownerID uint, allowed ...string) error {
	if userID == ownerID {
		return nil
	}
	if err := g.RequireAnyRole(userID, allowed...); err != nil {
		g.logger.Warn("Ownership check failed",
			zap.Uint("user_id", userID),
			zap.Uint("owner_id", ownerID))
		return apperrors.Forbidden("Unauthorized access")
	}
	return nil
}

// AuthorizeRoleGrant enforces the escalation invariant for registration:
// granting SUPER_ADMIN is allowed only when the requester already holds
// SUPER_ADMIN. requester is nil for anonymous registration. Privilege is
// monotonically gated by existing privilege, never self-granted.
func (g *Gate) AuthorizeRoleGrant(requester *models.User, roleNames []string) error {
	grantsSuperAdmin := false
	for _, name := range roleNames {
		if name == models.RoleSuperAdmin {
			grantsSuperAdmin = true
			break
		}
	}
	if !grantsSuperAdmin {
		return nil
	}

	if requester == nil {
		g.logger.Warn("Unauthenticated SUPER_ADMIN creation attempt")
		return apperrors.Forbidden("Only super admin can create super admin users")
	}

	if err := g.RequireAnyRole(requester.ID, models.RoleSuperAdmin); err != nil {
		g.logger.Warn("Unauthorized SUPER_ADMIN creation attempt",
			zap.Uint("requesting_user_id", requester.ID))
		return apperrors.Forbidden("Only super admin can create super admin users")
	}
	return nil
}
