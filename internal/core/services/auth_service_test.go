package services

import (
	"context"
	"testing"

	"clinicare-portal/internal/config"
	"clinicare-portal/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func newAuthFixture() (*AuthService, *fakePortalUserRepo, *fakeRefreshTokenRepo) {
	userRepo := newFakePortalUserRepo()
	tokenRepo := newFakeRefreshTokenRepo()
	return NewAuthService(userRepo, tokenRepo, testConfig()), userRepo, tokenRepo
}

func TestRegister_DefaultsToStaffRole(t *testing.T) {
	svc, _, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), &RegisterInput{
		Email:    "front.desk@clinicare.local",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "STAFF", user.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &RegisterInput{
		Email:    "dup@clinicare.local",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &RegisterInput{
		Email:    "dup@clinicare.local",
		Password: "other-pass-123",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_WeakPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &RegisterInput{
		Email:    "weak@clinicare.local",
		Password: "short",
	})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestLogin_Success(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &RegisterInput{
		Email:    "doc@clinicare.local",
		Password: "open-sesame-1",
		Role:     "DOCTOR",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &LoginInput{
		Email:    "doc@clinicare.local",
		Password: "open-sesame-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "DOCTOR", resp.User.Role)
}

func TestLogin_UnknownAndWrongPasswordIndistinguishable(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &RegisterInput{
		Email:    "known@clinicare.local",
		Password: "correct-pass-1",
	})
	require.NoError(t, err)

	_, errUnknown := svc.Login(context.Background(), &LoginInput{
		Email:    "nobody@clinicare.local",
		Password: "whatever-pass",
	})
	_, errWrong := svc.Login(context.Background(), &LoginInput{
		Email:    "known@clinicare.local",
		Password: "wrong-pass-123",
	})

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
}

func TestLogin_InactiveGateBeforePassword(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()

	resp, err := svc.Register(context.Background(), &RegisterInput{
		Email:    "gone@clinicare.local",
		Password: "correct-pass-1",
	})
	require.NoError(t, err)

	user, err := userRepo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	user.IsActive = false

	// Even with the correct password the account is reported inactive
	_, err = svc.Login(context.Background(), &LoginInput{
		Email:    "gone@clinicare.local",
		Password: "correct-pass-1",
	})
	assert.ErrorIs(t, err, ErrAccountInactive)

	// And with a wrong password too: the gate comes first
	_, err = svc.Login(context.Background(), &LoginInput{
		Email:    "gone@clinicare.local",
		Password: "wrong-pass-123",
	})
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestLogin_AccessRevokedGate(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()

	resp, err := svc.Register(context.Background(), &RegisterInput{
		Email:    "blocked@clinicare.local",
		Password: "correct-pass-1",
	})
	require.NoError(t, err)

	user, err := userRepo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	user.CanAccessSystem = false

	_, err = svc.Login(context.Background(), &LoginInput{
		Email:    "blocked@clinicare.local",
		Password: "correct-pass-1",
	})
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestRefreshToken_Rotation(t *testing.T) {
	svc, _, tokenRepo := newAuthFixture()

	_, err := svc.Register(context.Background(), &RegisterInput{
		Email:    "rotate@clinicare.local",
		Password: "correct-pass-1",
	})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), &LoginInput{
		Email:    "rotate@clinicare.local",
		Password: "correct-pass-1",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old token was revoked by rotation and cannot be replayed
	old, err := tokenRepo.GetByTokenHash(context.Background(), password.HashToken(login.RefreshToken))
	require.NoError(t, err)
	assert.True(t, old.IsRevoked())

	_, err = svc.RefreshToken(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// The rotated token still works
	_, err = svc.RefreshToken(context.Background(), refreshed.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshToken_Garbage(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.RefreshToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_RevokesToken(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &RegisterInput{
		Email:    "bye@clinicare.local",
		Password: "correct-pass-1",
	})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), &LoginInput{
		Email:    "bye@clinicare.local",
		Password: "correct-pass-1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))

	_, err = svc.RefreshToken(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestLogoutAll_RevokesEverySession(t *testing.T) {
	svc, _, _ := newAuthFixture()

	resp, err := svc.Register(context.Background(), &RegisterInput{
		Email:    "all@clinicare.local",
		Password: "correct-pass-1",
	})
	require.NoError(t, err)

	first, err := svc.Login(context.Background(), &LoginInput{Email: "all@clinicare.local", Password: "correct-pass-1"})
	require.NoError(t, err)
	second, err := svc.Login(context.Background(), &LoginInput{Email: "all@clinicare.local", Password: "correct-pass-1"})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(context.Background(), resp.ID))

	_, err = svc.RefreshToken(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	_, err = svc.RefreshToken(context.Background(), second.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}
