package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Pranesh1009/BNConnect/auth"
	"github.com/Pranesh1009/BNConnect/controllers"
	"github.com/Pranesh1009/BNConnect/database"
	"github.com/Pranesh1009/BNConnect/email"
	"github.com/Pranesh1009/BNConnect/models"
	"github.com/Pranesh1009/BNConnect/repositories"
	"github.com/Pranesh1009/BNConnect/services"
)

const (
	seedAdminEmail    = "admin@example.com"
	seedAdminPassword = "admin123"
)

type testServer struct {
	db        *gorm.DB
	container *restful.Container
	users     repositories.UserRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedInitialData(db, seedAdminEmail, seedAdminPassword))

	logger := zap.NewNop()
	users := repositories.NewUserRepository(db)
	sessions := repositories.NewSessionRepository(db)
	chapters := repositories.NewChapterRepository(db)
	geo := repositories.NewGeoRepository(db)
	items := repositories.NewItemRepository(db)
	profiles := repositories.NewProfileRepository(db)

	tokens := auth.NewTokenManager([]byte("controller-test-secret"), time.Hour)
	authenticator := auth.NewAuthenticator(tokens, sessions, users, logger)
	gate := auth.NewGate(users, logger)
	mailer := email.NoopMailer{}

	authSvc := services.NewAuthService(users, authenticator, gate, logger)
	userSvc := services.NewUserService(users, sessions, chapters, gate, mailer, logger)
	chapterSvc := services.NewChapterService(chapters, users, geo, gate, logger)
	itemSvc := services.NewItemService(items, logger)
	profileSvc := services.NewProfileService(profiles, logger)

	container := restful.NewContainer()
	container.Add(controllers.NewAuthController(authSvc, authenticator).WebService())
	container.Add(controllers.NewUserController(userSvc, authenticator).WebService())
	container.Add(controllers.NewChapterController(chapterSvc, authenticator).WebService())
	container.Add(controllers.NewItemController(itemSvc, authenticator).WebService())
	container.Add(controllers.NewProfileController(profileSvc, authenticator).WebService())

	return &testServer{db: db, container: container, users: users}
}

// do performs a JSON request against the container, with an optional bearer
// token, and decodes the envelope.
func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", restful.MIME_JSON)
	req.Header.Set("Accept", restful.MIME_JSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.container.ServeHTTP(rec, req)

	envelope := map[string]interface{}{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	}
	return rec, envelope
}

// login returns a bearer token for the given credentials.
func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	rec, envelope := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := envelope["data"].(map[string]interface{})
	return data["token"].(string)
}

// registerAndLogin creates a default-role user and returns its token.
func (s *testServer) registerAndLogin(t *testing.T, name, email string) (string, *models.User) {
	t.Helper()
	rec, _ := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "secret123",
		"name":     name,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	user, err := s.users.FindByEmail(email)
	require.NoError(t, err)
	return s.login(t, email, "secret123"), user
}
