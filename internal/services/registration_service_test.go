package services

import (
	"testing"

	"collabra_backend/internal/models"
	"collabra_backend/internal/services/dto"
	"collabra_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func companyRequest(emailAddr string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:       emailAddr,
		Password:    "password123",
		Role:        models.UserRoleCompany,
		CompanyName: "Acme GmbH",
		City:        "Berlin",
	}
}

func influencerRequest(emailAddr string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:       emailAddr,
		Password:    "password123",
		Role:        models.UserRoleInfluencer,
		DisplayName: "creator_jane",
		Categories:  []string{"beauty", "travel"},
	}
}

func TestRegister_Company(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.Registration.Register(env.db, companyRequest("Company@Test.Local"))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.UserID)
	assert.Equal(t, "company@test.local", resp.Email, "email must be stored normalized")
	assert.Equal(t, models.UserRoleCompany, resp.Role)
	assert.Equal(t, models.UserStatusProvisional, resp.Status)

	var user models.User
	require.NoError(t, env.db.Preload("CompanyProfile").First(&user, "id = ?", resp.UserID).Error)
	assert.False(t, user.EmailVerified())
	require.NotNil(t, user.CompanyProfile)
	assert.Equal(t, "Acme GmbH", user.CompanyProfile.CompanyName)

	// Registration issues a verification token and hands it to the notifier.
	sent := env.emailProvider.waitForVerifications(t, 1)[0]
	assert.Equal(t, "company@test.local", sent.To)

	var token models.EmailVerificationToken
	require.NoError(t, env.db.First(&token, "user_id = ?", resp.UserID).Error)
	assert.Equal(t, sent.Token, token.Token)
	assert.False(t, token.Consumed())
}

func TestRegister_Influencer(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.Registration.Register(env.db, influencerRequest("jane@test.local"))
	require.NoError(t, err)

	var profile models.InfluencerProfile
	require.NoError(t, env.db.First(&profile, "user_id = ?", resp.UserID).Error)
	assert.Equal(t, "creator_jane", profile.DisplayName)
	assert.ElementsMatch(t, []string{"beauty", "travel"}, profile.GetCategories())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.registerCompany(t, "taken@test.local")

	// Same address, different case and role: still a conflict.
	_, err := env.Registration.Register(env.db, influencerRequest("TAKEN@test.local"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrEmailAlreadyExists))

	var count int64
	env.db.Model(&models.User{}).Where("email = ?", "taken@test.local").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegister_DuplicateLeavesNoPartialState(t *testing.T) {
	env := newTestEnv(t)
	env.registerCompany(t, "dup@test.local")

	env.emailProvider.waitForVerifications(t, 1)

	_, err := env.Registration.Register(env.db, influencerRequest("dup@test.local"))
	require.Error(t, err)

	// The failed transaction must not leave a profile or trigger a token.
	var profiles int64
	env.db.Model(&models.InfluencerProfile{}).Count(&profiles)
	assert.Equal(t, int64(0), profiles)

	var tokens int64
	env.db.Model(&models.EmailVerificationToken{}).Count(&tokens)
	assert.Equal(t, int64(1), tokens, "only the first registration issued a token")
}

func TestRegister_ProfileFailureRollsBackUser(t *testing.T) {
	env := newTestEnv(t)

	// Losing the profiles table makes the second write of the transaction
	// fail after the user insert succeeded.
	require.NoError(t, env.db.Migrator().DropTable(&models.CompanyProfile{}))

	_, err := env.Registration.Register(env.db, companyRequest("atomic@test.local"))
	require.Error(t, err)

	var users int64
	env.db.Model(&models.User{}).Where("email = ?", "atomic@test.local").Count(&users)
	assert.Equal(t, int64(0), users, "failed profile write must roll back the user insert")

	var tokens int64
	env.db.Model(&models.EmailVerificationToken{}).Count(&tokens)
	assert.Equal(t, int64(0), tokens)
}

func TestRegister_ConcurrentSameEmailCreatesOneAccount(t *testing.T) {
	env := newTestEnv(t)
	env.singleConn(t)

	const attempts = 4
	start := make(chan struct{})
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			<-start
			_, err := env.Registration.Register(env.db, companyRequest("race@test.local"))
			errs <- err
		}()
	}
	close(start)

	var wins int
	for i := 0; i < attempts; i++ {
		if err := <-errs; err == nil {
			wins++
		} else {
			assert.True(t, apperrors.Is(err, apperrors.ErrEmailAlreadyExists), "loser saw: %v", err)
		}
	}
	assert.Equal(t, 1, wins)

	var users, profiles int64
	env.db.Model(&models.User{}).Where("email = ?", "race@test.local").Count(&users)
	env.db.Model(&models.CompanyProfile{}).Count(&profiles)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(1), profiles)

	// Only the winning registration issues a token.
	env.emailProvider.waitForVerifications(t, 1)
	var tokens int64
	env.db.Model(&models.EmailVerificationToken{}).Count(&tokens)
	assert.Equal(t, int64(1), tokens)
}

func TestRegister_MissingRoleFields(t *testing.T) {
	env := newTestEnv(t)

	req := companyRequest("nocname@test.local")
	req.CompanyName = "  "
	_, err := env.Registration.Register(env.db, req)
	require.Error(t, err)

	req2 := influencerRequest("noname@test.local")
	req2.DisplayName = ""
	_, err = env.Registration.Register(env.db, req2)
	require.Error(t, err)

	var count int64
	env.db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(0), count, "validation failures must not create users")
}

func TestRegister_WeakPassword(t *testing.T) {
	env := newTestEnv(t)

	req := companyRequest("weak@test.local")
	req.Password = "short"
	_, err := env.Registration.Register(env.db, req)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrWeakPassword))
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	env := newTestEnv(t)

	req := companyRequest("admin@test.local")
	req.Role = models.UserRoleAdmin
	_, err := env.Registration.Register(env.db, req)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidUserRole))
}
