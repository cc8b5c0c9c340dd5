package services

import (
	"testing"

	"collabra_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_FreshAccount(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, models.UserRoleCompany, models.UserStatusProvisional, false)

	status, err := env.Status.Compute(env.db, user.ID)
	require.NoError(t, err)

	assert.Equal(t, models.UserStatusProvisional, status.Status)
	assert.False(t, status.EmailVerified)
	assert.False(t, status.DocumentsApproved)
	assert.False(t, status.FullyVerified)
	assert.Equal(t, 0, status.CompletionPercentage)
	assert.Contains(t, status.NextSteps, "Verify your email address")
	assert.Contains(t, status.NextSteps, "Submit your business_registration document")
	assert.Empty(t, status.Documents)
}

func TestStatus_EmailVerifiedOnly(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, models.UserRoleInfluencer, models.UserStatusVerificationPending, true)

	status, err := env.Status.Compute(env.db, user.ID)
	require.NoError(t, err)

	assert.True(t, status.EmailVerified)
	assert.False(t, status.DocumentsApproved)
	assert.Equal(t, 50, status.CompletionPercentage)
	assert.NotContains(t, status.NextSteps, "Verify your email address")
	assert.Contains(t, status.NextSteps, "Submit your id_document document")
}

func TestStatus_PendingAndRejectedSteps(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, models.UserRoleInfluencer, models.UserStatusVerificationPending, true)
	admin := env.createUser(t, models.UserRoleAdmin, models.UserStatusVerified, true)

	doc, err := env.Documents.Upload(env.db, user.ID, models.DocumentTypeIDDocument, "documents/x/v1.png")
	require.NoError(t, err)

	status, err := env.Status.Compute(env.db, user.ID)
	require.NoError(t, err)
	assert.Contains(t, status.NextSteps, "Wait for review of your id_document document")

	_, err = env.Documents.Decide(env.db, doc.ID, admin.ID, models.DecisionRejected, "Blurry scan")
	require.NoError(t, err)

	status, err = env.Status.Compute(env.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, status.CompletionPercentage)
	assert.Contains(t, status.NextSteps, "Re-submit your id_document document")
}

func TestStatus_ApprovedDocumentOutweighsOlderRejection(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, models.UserRoleInfluencer, models.UserStatusVerificationPending, true)
	admin := env.createUser(t, models.UserRoleAdmin, models.UserStatusVerified, true)

	first, err := env.Documents.Upload(env.db, user.ID, models.DocumentTypeIDDocument, "documents/x/v1.png")
	require.NoError(t, err)
	_, err = env.Documents.Decide(env.db, first.ID, admin.ID, models.DecisionRejected, "Blurry scan")
	require.NoError(t, err)

	second, err := env.Documents.Upload(env.db, user.ID, models.DocumentTypeIDDocument, "documents/x/v2.png")
	require.NoError(t, err)
	_, err = env.Documents.Decide(env.db, second.ID, admin.ID, models.DecisionApproved, "")
	require.NoError(t, err)

	status, err := env.Status.Compute(env.db, user.ID)
	require.NoError(t, err)
	assert.True(t, status.DocumentsApproved)
	assert.Equal(t, 100, status.CompletionPercentage)
	assert.Len(t, status.Documents, 2)
}

func TestStatus_FullVerificationNeedsAdminGrant(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, models.UserRoleCompany, models.UserStatusVerificationPending, true)
	admin := env.createUser(t, models.UserRoleAdmin, models.UserStatusVerified, true)

	doc, err := env.Documents.Upload(env.db, user.ID, models.DocumentTypeBusinessRegistration, "documents/x/reg.pdf")
	require.NoError(t, err)
	_, err = env.Documents.Decide(env.db, doc.ID, admin.ID, models.DecisionApproved, "")
	require.NoError(t, err)

	// All the evidence is in but verified status is an explicit admin grant.
	status, err := env.Status.Compute(env.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, status.CompletionPercentage)
	assert.False(t, status.FullyVerified)
	assert.Contains(t, status.NextSteps, "Wait for final account verification")

	_, err = env.Users.UpdateStatus(env.db, user.ID, models.UserStatusVerified)
	require.NoError(t, err)

	status, err = env.Status.Compute(env.db, user.ID)
	require.NoError(t, err)
	assert.True(t, status.FullyVerified)
	assert.Contains(t, status.NextSteps, "Your account is fully verified")
}

// TestStatus_CompanyOnboardingWalkthrough drives one account through the
// whole flow end to end at the service level.
func TestStatus_CompanyOnboardingWalkthrough(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, models.UserRoleAdmin, models.UserStatusVerified, true)

	userID := env.registerCompany(t, "walkthrough@test.local")
	tokenString := env.emailProvider.waitForVerifications(t, 1)[0].Token

	status, err := env.Status.Compute(env.db, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, status.CompletionPercentage)

	_, err = env.Verification.Verify(env.db, tokenString)
	require.NoError(t, err)

	status, err = env.Status.Compute(env.db, userID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusVerificationPending, status.Status)
	assert.Equal(t, 50, status.CompletionPercentage)

	doc, err := env.Documents.Upload(env.db, userID, models.DocumentTypeBusinessRegistration, "documents/w/reg.pdf")
	require.NoError(t, err)
	_, err = env.Documents.Decide(env.db, doc.ID, admin.ID, models.DecisionApproved, "")
	require.NoError(t, err)

	_, err = env.Users.UpdateStatus(env.db, userID, models.UserStatusVerified)
	require.NoError(t, err)

	status, err = env.Status.Compute(env.db, userID)
	require.NoError(t, err)
	assert.True(t, status.FullyVerified)
	assert.Equal(t, 100, status.CompletionPercentage)
	assert.Equal(t, models.UserStatusVerified, status.Status)
}
