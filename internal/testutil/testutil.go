package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hugh/planit/internal/auth"
	"github.com/hugh/planit/internal/database"
	"github.com/hugh/planit/internal/database/models"
	"github.com/hugh/planit/pkg/clock"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const TestPassword = "testpassword123"

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// Every pooled connection to ":memory:" would get its own empty database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { sqlDB.Close() })

	return db
}

// CreateTestUser creates a password user with a unique email
func CreateTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Base: models.Base{
			ID: uuid.New(),
		},
		Name:         name,
		Email:        "test-" + uuid.New().String()[:8] + "@example.com",
		PasswordHash: &hash,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateTestGoogleUser creates a user that signs in with an external identity
func CreateTestGoogleUser(t *testing.T, db *gorm.DB, name, googleID string) *models.User {
	t.Helper()

	user := &models.User{
		Base: models.Base{
			ID: uuid.New(),
		},
		Name:     name,
		Email:    "google-" + uuid.New().String()[:8] + "@example.com",
		GoogleID: &googleID,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test google user: %v", err)
	}

	return user
}

// CreateTestTeam creates a team with the creator as its only member
func CreateTestTeam(t *testing.T, db *gorm.DB, creator *models.User) *models.Team {
	t.Helper()

	team := &models.Team{
		Base: models.Base{
			ID: uuid.New(),
		},
		Name:            "Test Team",
		Description:     "Test team description",
		CreatedByUserID: creator.ID,
	}

	if err := db.Create(team).Error; err != nil {
		t.Fatalf("failed to create test team: %v", err)
	}
	AddTestMember(t, db, team, creator)

	return team
}

// AddTestMember adds a membership row directly
func AddTestMember(t *testing.T, db *gorm.DB, team *models.Team, user *models.User) {
	t.Helper()

	member := &models.TeamMember{TeamID: team.ID, UserID: user.ID}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create test membership: %v", err)
	}
}

// CreateTestMeeting creates a meeting on the given date with no invitees
func CreateTestMeeting(t *testing.T, db *gorm.DB, team *models.Team, mode models.InvitationMode, date string) *models.Meeting {
	t.Helper()

	d, err := clock.ParseDate(date)
	if err != nil {
		t.Fatalf("invalid test meeting date: %v", err)
	}

	meeting := &models.Meeting{
		Base: models.Base{
			ID: uuid.New(),
		},
		TeamID: team.ID,
		Title:  "Test Meeting " + date,
		Date:   d,
		Mode:   mode,
	}

	if err := db.Create(meeting).Error; err != nil {
		t.Fatalf("failed to create test meeting: %v", err)
	}

	return meeting
}

// CreateTestInvitation invites a user to a meeting in the meeting's mode
func CreateTestInvitation(t *testing.T, db *gorm.DB, meeting *models.Meeting, user *models.User) *models.Invitation {
	t.Helper()

	inv := &models.Invitation{
		Base: models.Base{
			ID: uuid.New(),
		},
		MeetingID: meeting.ID,
		UserID:    user.ID,
		Mode:      meeting.Mode,
		Status:    meeting.Mode.InitialStatus(),
	}

	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test invitation: %v", err)
	}

	return inv
}

// CreateTestNotification creates an unread notification
func CreateTestNotification(t *testing.T, db *gorm.DB, user *models.User, typ models.NotificationType, relatedID *uuid.UUID) *models.Notification {
	t.Helper()

	n := &models.Notification{
		Base: models.Base{
			ID: uuid.New(),
		},
		UserID:    user.ID,
		Type:      typ,
		Title:     "Test Notification",
		Message:   "Test notification message",
		RelatedID: relatedID,
	}

	if err := db.Create(n).Error; err != nil {
		t.Fatalf("failed to create test notification: %v", err)
	}

	return n
}

// Count returns the number of rows matching the condition
func Count(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return n
}

// CreateTestJWTService creates a JWT service for testing
func CreateTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret-key-for-testing", 24*time.Hour, 30*24*time.Hour)
}

// GenerateTestToken generates a valid JWT token for the given user
func GenerateTestToken(t *testing.T, jwtService *auth.JWTService, user *models.User) string {
	t.Helper()

	token, err := jwtService.GenerateToken(user.ID, user.Email, false)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}

	return token
}

// AuthenticatedRequest creates an HTTP request with authentication
func AuthenticatedRequest(t *testing.T, method, path string, body interface{}, token string) *http.Request {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// UnauthenticatedRequest creates an HTTP request without authentication
func UnauthenticatedRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	return AuthenticatedRequest(t, method, path, body, "")
}

// AssertStatus checks if the response has the expected status code
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rr.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, rr.Code, rr.Body.String())
	}
}

// ParseJSONResponse parses the response body into the given struct
func ParseJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response body: %v. Body: %s", err, rr.Body.String())
	}
}

// TestContext creates a context with a timeout for tests
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// TestSetup holds all the common test dependencies
type TestSetup struct {
	DB         *gorm.DB
	JWTService *auth.JWTService
	User       *models.User
	Token      string
}

// NewTestContext creates a complete test setup with DB, user, and token
func NewTestContext(t *testing.T) *TestSetup {
	t.Helper()

	db := SetupTestDB(t)
	jwtService := CreateTestJWTService()
	user := CreateTestUser(t, db, "Test User")
	token := GenerateTestToken(t, jwtService, user)

	return &TestSetup{
		DB:         db,
		JWTService: jwtService,
		User:       user,
		Token:      token,
	}
}

// Cleanup closes the test database
func (ts *TestSetup) Cleanup() {
	if ts.DB != nil {
		sqlDB, err := ts.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}
