package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pranesh1009/BNConnect/models"
)

func TestRegisterEndpoint(t *testing.T) {
	server := newTestServer(t)

	t.Run("creates a leader by default", func(t *testing.T) {
		rec, envelope := server.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"email":    "alice@example.com",
			"password": "secret123",
			"name":     "Alice",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "success", envelope["status"])

		data := envelope["data"].(map[string]interface{})
		assert.Equal(t, "alice@example.com", data["email"])
		roles := data["roles"].([]interface{})
		require.Len(t, roles, 1)
		assert.Equal(t, models.RoleLeader, roles[0].(map[string]interface{})["name"])

		// The hash never crosses the wire.
		assert.NotContains(t, rec.Body.String(), "password")
		assert.NotContains(t, rec.Body.String(), "secret123")
	})

	t.Run("duplicate email", func(t *testing.T) {
		rec, envelope := server.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"email":    "alice@example.com",
			"password": "secret123",
			"name":     "Alice Again",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "error", envelope["status"])
	})

	t.Run("invalid body", func(t *testing.T) {
		rec, _ := server.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"email": "not-an-email",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("anonymous super admin grant is forbidden", func(t *testing.T) {
		rec, _ := server.do(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
			"email":     "boss@example.com",
			"password":  "secret123",
			"name":      "Boss",
			"roleNames": []string{models.RoleSuperAdmin},
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("authenticated super admin may grant", func(t *testing.T) {
		adminToken := server.login(t, seedAdminEmail, seedAdminPassword)
		rec, _ := server.do(t, http.MethodPost, "/api/auth/register", adminToken, map[string]interface{}{
			"email":     "boss@example.com",
			"password":  "secret123",
			"name":      "Boss",
			"roleNames": []string{models.RoleSuperAdmin},
		})
		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})
}

func TestLoginEndpoint(t *testing.T) {
	server := newTestServer(t)
	server.registerAndLogin(t, "Bob", "bob@example.com")

	t.Run("success carries token and new-user flag", func(t *testing.T) {
		rec, envelope := server.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "bob@example.com",
			"password": "secret123",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		data := envelope["data"].(map[string]interface{})
		assert.NotEmpty(t, data["token"])
		assert.Equal(t, true, data["isNewUser"])
	})

	t.Run("wrong password and unknown email answer alike", func(t *testing.T) {
		recWrong, envWrong := server.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "bob@example.com",
			"password": "wrong-pass",
		})
		recGhost, envGhost := server.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "ghost@example.com",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusUnauthorized, recWrong.Code)
		assert.Equal(t, http.StatusUnauthorized, recGhost.Code)
		assert.Equal(t, envWrong["message"], envGhost["message"])
	})
}

func TestLogoutEndpoint(t *testing.T) {
	server := newTestServer(t)
	token, _ := server.registerAndLogin(t, "Cleo", "cleo@example.com")

	t.Run("requires a token", func(t *testing.T) {
		rec, _ := server.do(t, http.MethodPost, "/api/auth/logout", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("revokes the session", func(t *testing.T) {
		rec, _ := server.do(t, http.MethodPost, "/api/auth/logout", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		// The revoked token no longer opens protected routes.
		rec, _ = server.do(t, http.MethodGet, "/api/profile", token, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
