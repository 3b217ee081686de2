package services_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Pranesh1009/BNConnect/auth"
	"github.com/Pranesh1009/BNConnect/database"
	"github.com/Pranesh1009/BNConnect/models"
	"github.com/Pranesh1009/BNConnect/repositories"
	"github.com/Pranesh1009/BNConnect/services"
)

const (
	seedAdminEmail    = "admin@example.com"
	seedAdminPassword = "admin123"
)

type welcomeMail struct {
	To       string
	Name     string
	Password string
}

// fakeMailer records deliveries instead of talking SMTP.
type fakeMailer struct {
	sent []welcomeMail
	fail error
}

func (m *fakeMailer) SendWelcome(to, name, password string) error {
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, welcomeMail{To: to, Name: name, Password: password})
	return nil
}

type testEnv struct {
	db            *gorm.DB
	users         repositories.UserRepository
	sessions      repositories.SessionRepository
	chapters      repositories.ChapterRepository
	authenticator *auth.Authenticator
	gate          *auth.Gate
	mailer        *fakeMailer

	authSvc    services.AuthService
	userSvc    services.UserService
	chapterSvc services.ChapterService
	itemSvc    services.ItemService
	profileSvc services.ProfileService

	admin *models.User
}

func newTestEnv(t *testing.T) *testEnv {
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

	tokens := auth.NewTokenManager([]byte("service-test-secret"), time.Hour)
	authenticator := auth.NewAuthenticator(tokens, sessions, users, logger)
	gate := auth.NewGate(users, logger)
	mailer := &fakeMailer{}

	admin, err := users.FindByEmail(seedAdminEmail)
	require.NoError(t, err)

	return &testEnv{
		db:            db,
		users:         users,
		sessions:      sessions,
		chapters:      chapters,
		authenticator: authenticator,
		gate:          gate,
		mailer:        mailer,
		authSvc:       services.NewAuthService(users, authenticator, gate, logger),
		userSvc:       services.NewUserService(users, sessions, chapters, gate, mailer, logger),
		chapterSvc:    services.NewChapterService(chapters, users, geo, gate, logger),
		itemSvc:       services.NewItemService(items, logger),
		profileSvc:    services.NewProfileService(profiles, logger),
		admin:         admin,
	}
}

// register creates a user through the service, defaulting to LEADER.
func (e *testEnv) register(t *testing.T, name, email string, roleNames ...string) *models.User {
	t.Helper()
	_, err := e.authSvc.Register(&services.RegisterInput{
		Email:     email,
		Password:  "secret123",
		Name:      name,
		RoleNames: roleNames,
	}, e.admin)
	require.NoError(t, err)
	user, err := e.users.FindByEmail(email)
	require.NoError(t, err)
	return user
}

// createChapter inserts a chapter owned by ownerID directly in storage.
func (e *testEnv) createChapter(t *testing.T, title string, ownerID uint) *models.Chapter {
	t.Helper()
	chapter := &models.Chapter{Title: title, Description: "about " + title, IsActive: true, UserID: &ownerID}
	require.NoError(t, e.db.Create(chapter).Error)
	return chapter
}

func uintPtr(v uint) *uint    { return &v }
func strPtr(v string) *string { return &v }
