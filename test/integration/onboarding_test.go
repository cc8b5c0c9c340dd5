package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"collabra_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCompanyOnboarding_FullFlow walks a company account through the
// complete onboarding over HTTP: register, verify email, upload a document,
// get it approved, and receive the final verified grant.
func TestCompanyOnboarding_FullFlow(t *testing.T) {
	ts := helpers.NewTestServer(t)

	// Register.
	registerBody := map[string]interface{}{
		"email":        "acme@test.local",
		"password":     "password123",
		"role":         "company",
		"company_name": "Acme GmbH",
		"city":         "Berlin",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var registered struct {
		UserID string `json:"user_id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &registered))
	assert.Equal(t, "provisional", registered.Status)

	// Login is refused until the email is verified.
	loginBody := map[string]interface{}{"email": "acme@test.local", "password": "password123"}
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	require.Equal(t, http.StatusForbidden, res.StatusCode, bodyStr)

	// Verify via the emailed link.
	token := helpers.LatestVerificationToken(t, ts.DB, registered.UserID)
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/auth/verify?token="+token, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	// Now login works.
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	var session struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &session))

	// Email done, documents outstanding.
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/verification/status", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	var status struct {
		EmailVerified        bool     `json:"email_verified"`
		DocumentsApproved    bool     `json:"documents_approved"`
		FullyVerified        bool     `json:"fully_verified"`
		CompletionPercentage int      `json:"completion_percentage"`
		NextSteps            []string `json:"next_steps"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &status))
	assert.True(t, status.EmailVerified)
	assert.Equal(t, 50, status.CompletionPercentage)
	assert.Contains(t, status.NextSteps, "Submit your business_registration document")

	// Upload the registration document.
	res, bodyStr = ts.SendMultipart(t, "/api/v1/documents", session.AccessToken,
		map[string]string{"document_type": "business_registration"},
		"file", "registration.pdf", "application/pdf", []byte("%PDF-1.4 fake"))
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	var uploaded struct {
		DocumentID string `json:"document_id"`
		Status     string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &uploaded))
	assert.Equal(t, "pending", uploaded.Status)

	// An administrator approves it.
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	res, bodyStr = ts.SendRequest(t, http.MethodPut,
		fmt.Sprintf("/api/v1/admin/documents/%s/decision", uploaded.DocumentID),
		adminToken, map[string]interface{}{"decision": "approved"})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	// Evidence complete, final grant still missing.
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/verification/status", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &status))
	assert.Equal(t, 100, status.CompletionPercentage)
	assert.True(t, status.DocumentsApproved)
	assert.False(t, status.FullyVerified)

	// The administrator grants verified status.
	res, bodyStr = ts.SendRequest(t, http.MethodPut,
		fmt.Sprintf("/api/v1/admin/users/%s/status", registered.UserID),
		adminToken, map[string]interface{}{"status": "verified"})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/verification/status", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &status))
	assert.True(t, status.FullyVerified)
	assert.Contains(t, status.NextSteps, "Your account is fully verified")
}

// TestAdminStatusView checks the admin read side of the aggregation.
func TestAdminStatusView(t *testing.T) {
	ts := helpers.NewTestServer(t)

	registerBody := map[string]interface{}{
		"email":        "inspect@test.local",
		"password":     "password123",
		"role":         "influencer",
		"display_name": "creator_one",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	var registered struct {
		UserID string `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &registered))

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	res, bodyStr = ts.SendRequest(t, http.MethodGet,
		fmt.Sprintf("/api/v1/admin/users/%s/verification-status", registered.UserID),
		adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"completion_percentage":0`)
	assert.Contains(t, bodyStr, "Submit your id_document document")
}
