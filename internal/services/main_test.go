package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"collabra_backend/database"
	"collabra_backend/internal/auth"
	"collabra_backend/internal/config"
	"collabra_backend/internal/email"
	"collabra_backend/internal/models"
	"collabra_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory sqlite database per test. TranslateError
// makes the driver report duplicate keys as gorm.ErrDuplicatedKey, same as
// the postgres driver in production.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func setTestConfig(t *testing.T) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "test-secret-key-for-unit-tests"
	cfg.JWT.TTL = 60
	cfg.Verification.TokenTTL = 24
	config.AppConfig = cfg
}

// recordingEmailProvider captures outbound messages for assertions.
type recordingEmailProvider struct {
	mu sync.Mutex

	verifications []recordedVerification
	decisions     []recordedDecision
}

type recordedVerification struct {
	To    string
	Token string
}

type recordedDecision struct {
	To           string
	DocumentType string
	Approved     bool
	Reason       string
}

func (p *recordingEmailProvider) Send(msg *email.Email) error { return nil }

func (p *recordingEmailProvider) SendVerification(to, token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.verifications = append(p.verifications, recordedVerification{To: to, Token: token})
	return nil
}

func (p *recordingEmailProvider) SendDocumentDecision(to, documentType string, approved bool, reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.decisions = append(p.decisions, recordedDecision{
		To:           to,
		DocumentType: documentType,
		Approved:     approved,
		Reason:       reason,
	})
	return nil
}

func (p *recordingEmailProvider) Validate() error { return nil }
func (p *recordingEmailProvider) Close() error    { return nil }

// waitForVerifications polls for asynchronous verification sends; delivery
// happens on a goroutine after the issuing transaction commits.
func (p *recordingEmailProvider) waitForVerifications(t *testing.T, n int) []recordedVerification {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		p.mu.Lock()
		if len(p.verifications) >= n {
			out := append([]recordedVerification(nil), p.verifications...)
			p.mu.Unlock()
			return out
		}
		p.mu.Unlock()
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d verification emails", n)
	return nil
}

// waitForDecisions polls for asynchronous decision notifications.
func (p *recordingEmailProvider) waitForDecisions(t *testing.T, n int) []recordedDecision {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		p.mu.Lock()
		if len(p.decisions) >= n {
			out := append([]recordedDecision(nil), p.decisions...)
			p.mu.Unlock()
			return out
		}
		p.mu.Unlock()
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d decision notifications", n)
	return nil
}

// testEnv wires the full service graph against a fresh database.
type testEnv struct {
	db            *gorm.DB
	emailProvider *recordingEmailProvider

	Registration RegistrationService
	Verification EmailVerificationService
	Auth         AuthService
	Documents    DocumentService
	Status       StatusService
	Users        UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	setTestConfig(t)

	db := newTestDB(t)
	provider := &recordingEmailProvider{}

	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	tokenRepo := repositories.NewVerificationTokenRepository()
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	documentRepo := repositories.NewDocumentRepository()

	verification := NewEmailVerificationService(userRepo, tokenRepo, provider)

	return &testEnv{
		db:            db,
		emailProvider: provider,
		Registration:  NewRegistrationService(userRepo, profileRepo, verification),
		Verification:  verification,
		Auth:          NewAuthService(userRepo, profileRepo, refreshTokenRepo),
		Documents:     NewDocumentService(documentRepo, userRepo, provider),
		Status:        NewStatusService(userRepo, documentRepo),
		Users:         NewUserService(userRepo),
	}
}

// singleConn pins the pool to one connection. sqlite permits a single writer,
// so concurrent tests serialize at the database and the conditional updates
// decide the winner.
func (e *testEnv) singleConn(t *testing.T) {
	t.Helper()
	sqlDB, err := e.db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
}

// createUser inserts a user directly, bypassing registration.
func (e *testEnv) createUser(t *testing.T, role models.UserRole, status models.UserStatus, emailVerified bool) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := &models.User{
		Email:        fmt.Sprintf("user_%s@test.local", uuid.NewString()[:8]),
		PasswordHash: hash,
		Role:         role,
		Status:       status,
	}
	if emailVerified {
		now := time.Now()
		user.EmailVerifiedAt = &now
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

// registerCompany runs the real registration flow and returns the response.
func (e *testEnv) registerCompany(t *testing.T, emailAddr string) string {
	t.Helper()

	resp, err := e.Registration.Register(e.db, companyRequest(emailAddr))
	require.NoError(t, err)
	return resp.UserID
}
