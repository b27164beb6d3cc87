package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/clinicdesk/internal/common"
	"github.com/dmitrijs2005/clinicdesk/internal/models"
	"github.com/dmitrijs2005/clinicdesk/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupAuth(t *testing.T) (*Auth, *session.Manager) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);`)
	require.NoError(t, err)

	sess := session.NewManager(db)
	return NewAuth(db, sess), sess
}

func TestRegister_CreatesUserWithoutLoggingIn(t *testing.T) {
	a, sess := setupAuth(t)
	ctx := context.Background()

	p, err := a.Register(ctx, Credentials{Email: "Ann@x.com", Password: "pw"})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Ann@x.com", p.Email)
	assert.Equal(t, models.RoleUser, p.Role)

	assert.Nil(t, sess.Current(ctx), "registration must not establish a session")
}

func TestRegister_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	a, _ := setupAuth(t)
	ctx := context.Background()

	_, err := a.Register(ctx, Credentials{Email: "ann@x.com", Password: "pw"})
	require.NoError(t, err)

	_, err = a.Register(ctx, Credentials{Email: "ANN@X.COM", Password: "other"})
	require.ErrorIs(t, err, common.ErrEmailAlreadyRegistered)
}

func TestLogin_StoredUser(t *testing.T) {
	a, sess := setupAuth(t)
	ctx := context.Background()

	reg, err := a.Register(ctx, Credentials{Email: "ann@x.com", Password: "pw"})
	require.NoError(t, err)

	p, err := a.Login(ctx, Credentials{Email: "ANN@x.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, reg.ID, p.ID)
	assert.Equal(t, "ann@x.com", p.Email, "principal carries the stored email, not the typed one")
	assert.Equal(t, models.RoleUser, p.Role)

	cur := sess.Current(ctx)
	require.NotNil(t, cur)
	assert.Equal(t, reg.ID, cur.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	a, sess := setupAuth(t)
	ctx := context.Background()

	_, err := a.Register(ctx, Credentials{Email: "ann@x.com", Password: "pw"})
	require.NoError(t, err)

	_, err = a.Login(ctx, Credentials{Email: "ann@x.com", Password: "PW"})
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Nil(t, sess.Current(ctx))
}

func TestLogin_UnknownEmail(t *testing.T) {
	a, _ := setupAuth(t)

	_, err := a.Login(context.Background(), Credentials{Email: "nobody@x.com", Password: "pw"})
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_BuiltInAdmin(t *testing.T) {
	a, sess := setupAuth(t)
	ctx := context.Background()

	p, err := a.Login(ctx, Credentials{Email: "ADMIN@clinic.local", Password: common.AdminPassword})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, p.Role)
	assert.Equal(t, common.AdminEmail, p.Email)

	require.NotNil(t, sess.Current(ctx))
	assert.True(t, sess.IsAdmin(ctx))
}

func TestLogin_AdminPasswordIsExact(t *testing.T) {
	a, _ := setupAuth(t)

	_, err := a.Login(context.Background(), Credentials{Email: common.AdminEmail, Password: "ADMIN123"})
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogout_ClearsSession(t *testing.T) {
	a, sess := setupAuth(t)
	ctx := context.Background()

	_, err := a.Login(ctx, Credentials{Email: common.AdminEmail, Password: common.AdminPassword})
	require.NoError(t, err)
	require.NotNil(t, sess.Current(ctx))

	require.NoError(t, a.Logout(ctx))
	assert.Nil(t, sess.Current(ctx))

	// Logging out twice is harmless.
	require.NoError(t, a.Logout(ctx))
}

func TestLogin_LegacyRecordWithoutRole(t *testing.T) {
	a, _ := setupAuth(t)
	ctx := context.Background()

	seed := `[{"id":"u-1","email":"old@x.com","password":"pw"}]`
	_, err := a.db.Exec(`INSERT INTO kv(key, value) VALUES (?, ?)`, common.KeyUsers, seed)
	require.NoError(t, err)

	p, err := a.Login(ctx, Credentials{Email: "old@x.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, p.Role, "missing role defaults to user at login")
}
