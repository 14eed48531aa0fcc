package services

import (
	"context"
	"testing"
	"time"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/blob"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/config"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store    *store.Memory
	sessions *SessionService
	svc      *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	s := store.NewMemory()
	return &fixture{
		store:    s,
		sessions: NewSessionService(s, cfg),
		svc:      NewService(s, blob.NewMemory()),
	}
}

func registerSpec(email string) models.RegisterSpec {
	return models.RegisterSpec{Email: email, FirstName: "Ada", LastName: "Lovelace", Password: "pw-" + email}
}

// register creates a user and returns its id and tokens.
func (f *fixture) register(t *testing.T, email string) (string, *models.TokenPair) {
	t.Helper()
	ctx := context.Background()
	pair, err := f.sessions.Register(ctx, registerSpec(email))
	require.NoError(t, err)
	user, err := f.sessions.Resolve(ctx, pair.AccessToken)
	require.NoError(t, err)
	return user.ID, pair
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	id, pair := f.register(t, "ada@example.com")
	assert.Equal(t, "0", id)
	assert.NotEmpty(t, pair.AccessToken)
	assert.Len(t, pair.RefreshToken, 2*refreshTokenSize)

	user, err := f.svc.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleDefault, user.Role)
	assert.Equal(t, models.UserStatusActive, user.Status)

	settings, err := f.svc.GetUserSettings(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultUserSettings(), settings)

	list, err := f.svc.GetReadingList(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, list)

	invites, err := f.svc.GetPendingInvitationsForUser(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, invites)
}

func TestRegister_Rejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "ada@example.com")

	_, err := f.sessions.Register(ctx, registerSpec("ada@example.com"))
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	blank := registerSpec("bob@example.com")
	blank.FirstName = "   "
	_, err = f.sessions.Register(ctx, blank)
	assert.ErrorIs(t, err, common.ErrorInvalidArgument)

	users, err := f.svc.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, pair := f.register(t, "ada@example.com")

	_, err := f.sessions.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, common.ErrorPermissionDenied)
	_, err = f.sessions.Login(ctx, "nobody@example.com", "pw")
	assert.ErrorIs(t, err, common.ErrorPermissionDenied)

	got, err := f.sessions.Login(ctx, "ada@example.com", "pw-ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, pair, got, "failed logins must not touch the stored pair")
}

func TestLogout_InvalidatesTokens(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id, pair := f.register(t, "ada@example.com")

	require.NoError(t, f.sessions.Logout(ctx, id))

	ok, err := f.sessions.IsAuthenticated(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.sessions.RenewSession(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, common.ErrorUnauthenticated)

	fresh, err := f.sessions.Login(ctx, "ada@example.com", "pw-ada@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, fresh.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, fresh.RefreshToken)

	ok, err = f.sessions.IsAuthenticated(ctx, fresh.AccessToken)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRenewSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, pair := f.register(t, "ada@example.com")

	got, err := f.sessions.RenewSession(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, pair, got)

	_, err = f.sessions.RenewSession(ctx, " ")
	assert.ErrorIs(t, err, common.ErrorUnauthenticated)
}

func TestExpiredPairIsRotated(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.sessions.accessTokenValidityDuration = time.Second
	_, pair := f.register(t, "ada@example.com")

	time.Sleep(2100 * time.Millisecond)

	_, err := f.sessions.Resolve(ctx, pair.AccessToken)
	require.ErrorIs(t, err, common.ErrorUnauthenticated)

	renewed, err := f.sessions.RenewSession(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, renewed.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, renewed.RefreshToken)
	_, err = f.sessions.Resolve(ctx, renewed.AccessToken)
	require.NoError(t, err)

	// the replaced refresh token is gone
	_, err = f.sessions.RenewSession(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, common.ErrorUnauthenticated)

	time.Sleep(2100 * time.Millisecond)

	fresh, err := f.sessions.Login(ctx, "ada@example.com", "pw-ada@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, renewed.AccessToken, fresh.AccessToken)
	_, err = f.sessions.Resolve(ctx, fresh.AccessToken)
	require.NoError(t, err)

	again, err := f.sessions.Login(ctx, "ada@example.com", "pw-ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, fresh, again, "a live pair is returned as is")
}

func TestResolve_BlankAndGarbage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "ada@example.com")

	for _, token := range []string{"", "  ", "not-a-jwt"} {
		_, err := f.sessions.Resolve(ctx, token)
		assert.ErrorIs(t, err, common.ErrorUnauthenticated, token)
	}
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "ada@example.com")

	require.NoError(t, f.sessions.RequestPasswordReset(ctx, "unknown@example.com"))
	require.NoError(t, f.sessions.RequestPasswordReset(ctx, "ada@example.com"))

	_, err := f.sessions.Login(ctx, "ada@example.com", "pw-ada@example.com")
	assert.ErrorIs(t, err, common.ErrorPermissionDenied)

	err = f.sessions.ResetPassword(ctx, "ada@example.com", "guess", "new")
	assert.ErrorIs(t, err, common.ErrorPermissionDenied)

	require.NoError(t, f.sessions.ResetPassword(ctx, "ada@example.com", "reset", "new"))
	_, err = f.sessions.Login(ctx, "ada@example.com", "new")
	require.NoError(t, err)

	err = f.sessions.ResetPassword(ctx, "ada@example.com", "new", "again")
	assert.ErrorIs(t, err, common.ErrorPermissionDenied, "no reset is pending any more")
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id, _ := f.register(t, "ada@example.com")

	err := f.sessions.ChangePassword(ctx, id, "wrong", "new")
	assert.ErrorIs(t, err, common.ErrorUnauthenticated)

	require.NoError(t, f.sessions.ChangePassword(ctx, id, "pw-ada@example.com", "new"))
	_, err = f.sessions.Login(ctx, "ada@example.com", "new")
	require.NoError(t, err)
}

func TestDeletedUserCannotSignIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id, pair := f.register(t, "ada@example.com")

	require.NoError(t, f.svc.SoftDeleteUser(ctx, id))

	_, err := f.sessions.Login(ctx, "ada@example.com", "pw-ada@example.com")
	assert.ErrorIs(t, err, common.ErrorPermissionDenied)
	_, err = f.sessions.Resolve(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, common.ErrorUnauthenticated)

	require.NoError(t, f.svc.SoftUndeleteUser(ctx, id))
	_, err = f.sessions.Resolve(ctx, pair.AccessToken)
	assert.NoError(t, err)
}

func TestTokensAreUniqueAcrossUsers(t *testing.T) {
	f := newFixture(t)
	_, a := f.register(t, "a@example.com")
	_, b := f.register(t, "b@example.com")

	assert.NotEqual(t, a.AccessToken, b.AccessToken)
	assert.NotEqual(t, a.RefreshToken, b.RefreshToken)
}
