package doctors

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

func setupDB(t *testing.T) *sql.DB {
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
	return db
}

func setupRepo(t *testing.T) (*SQLiteRepository, *session.Manager) {
	t.Helper()
	db := setupDB(t)
	sess := session.NewManager(db)
	return NewSQLiteRepository(db, sess), sess
}

func loginAs(t *testing.T, sess *session.Manager, email string, role models.Role) {
	t.Helper()
	require.NoError(t, sess.SetCurrent(context.Background(), &models.Principal{ID: "id-" + email, Email: email, Role: role}))
}

func sampleDoctor() models.Doctor {
	return models.Doctor{
		DoctorName:       "Gregory House",
		DoctorSpecialist: "Diagnostics",
		DoctorEmail:      "house@x.com",
		DoctorContact:    "555-0101",
		DoctorExperience: "20",
	}
}

func TestAddAndGet(t *testing.T) {
	r, sess := setupRepo(t)
	ctx := context.Background()
	loginAs(t, sess, "doc@x.com", models.RoleUser)

	rec, err := r.Add(ctx, sampleDoctor())
	require.NoError(t, err)
	assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)
	assert.Equal(t, "doc@x.com", rec.CreatedBy)

	got, err := r.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *rec, *got)
}

func TestUpdate_OwnershipEnforced(t *testing.T) {
	r, sess := setupRepo(t)
	ctx := context.Background()

	loginAs(t, sess, "a@x.com", models.RoleUser)
	rec, err := r.Add(ctx, sampleDoctor())
	require.NoError(t, err)

	spec := "Cardiology"

	loginAs(t, sess, "b@x.com", models.RoleUser)
	_, err = r.Update(ctx, rec.ID, models.DoctorUpdate{DoctorSpecialist: &spec})
	require.ErrorIs(t, err, common.ErrNotAuthorized)

	loginAs(t, sess, "a@x.com", models.RoleUser)
	updated, err := r.Update(ctx, rec.ID, models.DoctorUpdate{DoctorSpecialist: &spec})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Cardiology", updated.DoctorSpecialist)
	assert.Equal(t, rec.DoctorName, updated.DoctorName)
}

func TestRemove_Semantics(t *testing.T) {
	r, sess := setupRepo(t)
	ctx := context.Background()
	loginAs(t, sess, "a@x.com", models.RoleUser)

	rec, err := r.Add(ctx, sampleDoctor())
	require.NoError(t, err)

	ok, err := r.Remove(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.Remove(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClearAll(t *testing.T) {
	r, sess := setupRepo(t)
	ctx := context.Background()
	loginAs(t, sess, "a@x.com", models.RoleUser)

	_, err := r.Add(ctx, sampleDoctor())
	require.NoError(t, err)

	require.NoError(t, r.ClearAll(ctx))

	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReplaceAll_FreshIdsNoOwnership(t *testing.T) {
	r, sess := setupRepo(t)
	ctx := context.Background()
	loginAs(t, sess, "a@x.com", models.RoleUser)

	old, err := r.Add(ctx, sampleDoctor())
	require.NoError(t, err)

	imported, err := r.ReplaceAll(ctx, []models.Doctor{
		{DoctorName: "A", DoctorSpecialist: "S1"},
		{DoctorName: "B", DoctorSpecialist: "S2"},
	})
	require.NoError(t, err)
	require.Len(t, imported, 2)

	for _, rec := range imported {
		assert.NotEmpty(t, rec.ID)
		assert.NotEqual(t, old.ID, rec.ID)
		assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)
		assert.Empty(t, rec.CreatedBy, "imported records carry no owner")
	}

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2, "previous collection is fully overwritten")

	// imported records are legacy: a plain user cannot touch them
	name := "x"
	_, err = r.Update(ctx, imported[0].ID, models.DoctorUpdate{DoctorName: &name})
	require.ErrorIs(t, err, common.ErrNotAuthorized)

	loginAs(t, sess, "admin@clinic.local", models.RoleAdmin)
	updated, err := r.Update(ctx, imported[0].ID, models.DoctorUpdate{DoctorName: &name})
	require.NoError(t, err)
	require.NotNil(t, updated)
}

func TestMalformedStorageYieldsEmpty(t *testing.T) {
	db := setupDB(t)
	sess := session.NewManager(db)
	r := NewSQLiteRepository(db, sess)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO kv(key, value) VALUES (?, ?)`, common.KeyDoctors, `not json at all`)
	require.NoError(t, err)

	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
