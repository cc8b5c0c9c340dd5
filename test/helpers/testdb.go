package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"collabra_backend/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser inserts a user directly. The PasswordHash field may carry the
// raw password; it is hashed here so tests can log in with it afterwards.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) {
	t.Helper()

	if user.PasswordHash != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		require.NoError(t, err)
		user.PasswordHash = string(hashed)
	}
	if user.Status == "" {
		user.Status = models.UserStatusVerificationPending
	}
	if user.EmailVerifiedAt == nil {
		now := time.Now()
		user.EmailVerifiedAt = &now
	}

	require.NoError(t, db.Create(user).Error)
}

// CreateAndLoginUser creates a login-ready account and returns its access
// token.
func CreateAndLoginUser(t *testing.T, ts *TestServer, emailAddr, password string, role models.UserRole) (string, *models.User) {
	t.Helper()

	user := &models.User{
		Email:        emailAddr,
		PasswordHash: password,
		Role:         role,
	}
	CreateUser(t, ts.DB, user)

	loginBody := map[string]interface{}{
		"email":    emailAddr,
		"password": password,
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	require.Equal(t, http.StatusOK, res.StatusCode, "login should succeed, got: "+bodyStr)

	var loginResponse struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &loginResponse))
	require.NotEmpty(t, loginResponse.AccessToken)

	return loginResponse.AccessToken, user
}

// CreateAndLoginAdmin creates a verified admin account with a unique email.
func CreateAndLoginAdmin(t *testing.T, ts *TestServer) (string, *models.User) {
	t.Helper()

	emailAddr := fmt.Sprintf("admin_%d@test.local", time.Now().UnixNano())
	user := &models.User{
		Email:        emailAddr,
		PasswordHash: "admin-password-123",
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusVerified,
	}
	CreateUser(t, ts.DB, user)

	loginBody := map[string]interface{}{
		"email":    emailAddr,
		"password": "admin-password-123",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	require.Equal(t, http.StatusOK, res.StatusCode, "admin login should succeed, got: "+bodyStr)

	var loginResponse struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &loginResponse))

	return loginResponse.AccessToken, user
}

// LatestVerificationToken reads the newest unconsumed verification token for
// a user straight from the database, standing in for the email inbox.
func LatestVerificationToken(t *testing.T, db *gorm.DB, userID string) string {
	t.Helper()

	var token models.EmailVerificationToken
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		err := db.Where("user_id = ? AND consumed_at IS NULL", userID).
			Order("issued_at DESC").
			First(&token).Error
		if err == nil {
			return token.Token
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("no verification token found for user %s", userID)
	return ""
}
