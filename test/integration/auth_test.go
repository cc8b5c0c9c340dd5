package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"collabra_backend/internal/models"
	"collabra_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_ValidationErrors(t *testing.T) {
	ts := helpers.NewTestServer(t)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{
			name: "missing email",
			body: map[string]interface{}{
				"password": "password123", "role": "company", "company_name": "Acme",
			},
		},
		{
			name: "unknown role",
			body: map[string]interface{}{
				"email": "a@test.local", "password": "password123", "role": "moderator",
			},
		},
		{
			name: "company without company_name",
			body: map[string]interface{}{
				"email": "b@test.local", "password": "password123", "role": "company",
			},
		},
		{
			name: "influencer without display_name",
			body: map[string]interface{}{
				"email": "c@test.local", "password": "password123", "role": "influencer",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
		})
	}

	var count int64
	ts.DB.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	ts := helpers.NewTestServer(t)

	body := map[string]interface{}{
		"email":        "taken@test.local",
		"password":     "password123",
		"role":         "company",
		"company_name": "First Co",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Email already in use")
}

// TestVerify_GenericFailureMessage makes sure unknown, expired-looking and
// reused tokens all get the same outward answer.
func TestVerify_GenericFailureMessage(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/auth/verify?token=bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "Invalid or expired verification link")

	// A consumed token answers identically.
	registerBody := map[string]interface{}{
		"email":        "reuse@test.local",
		"password":     "password123",
		"role":         "company",
		"company_name": "Reuse Co",
	}
	res, regStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, regStr)
	var registered struct {
		UserID string `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(regStr), &registered))

	token := helpers.LatestVerificationToken(t, ts.DB, registered.UserID)
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/auth/verify?token="+token, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/auth/verify?token="+token, "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "Invalid or expired verification link")
}

func TestResendVerification_SameAnswerForAnyAddress(t *testing.T) {
	ts := helpers.NewTestServer(t)

	registerBody := map[string]interface{}{
		"email":        "resend@test.local",
		"password":     "password123",
		"role":         "company",
		"company_name": "Resend Co",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	res, knownStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/resend-verification", "",
		map[string]interface{}{"email": "resend@test.local"})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, unknownStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/resend-verification", "",
		map[string]interface{}{"email": "ghost@test.local"})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, knownStr, unknownStr)
}

func TestRefreshAndLogout(t *testing.T) {
	ts := helpers.NewTestServer(t)
	_, user := helpers.CreateAndLoginUser(t, ts, "session@test.local", "password123", models.UserRoleCompany)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "",
		map[string]interface{}{"email": user.Email, "password": "password123"})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	var session struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &session))

	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "",
		map[string]interface{}{"refresh_token": session.RefreshToken})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	var rotated struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &rotated))
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/logout", "",
		map[string]interface{}{"refresh_token": rotated.RefreshToken})
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "",
		map[string]interface{}{"refresh_token": rotated.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
