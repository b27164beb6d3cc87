package doctors

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/clinicdesk/internal/authz"
	"github.com/dmitrijs2005/clinicdesk/internal/common"
	"github.com/dmitrijs2005/clinicdesk/internal/dbx"
	"github.com/dmitrijs2005/clinicdesk/internal/models"
	"github.com/dmitrijs2005/clinicdesk/internal/repositories/kv"
	"github.com/dmitrijs2005/clinicdesk/internal/session"
	"github.com/google/uuid"
)

// nowFn is a test seam for timestamp generation.
var nowFn = time.Now

func timestamp() string {
	return nowFn().UTC().Format(time.RFC3339)
}

// SQLiteRepository implements Repository over the local key-value store.
type SQLiteRepository struct {
	db   *sql.DB
	sess *session.Manager

	mu        sync.Mutex
	nextID    int
	listeners map[int]Listener
}

// NewSQLiteRepository returns a doctor repository bound to db, consulting
// sess for the acting principal.
func NewSQLiteRepository(db *sql.DB, sess *session.Manager) *SQLiteRepository {
	return &SQLiteRepository{db: db, sess: sess, listeners: make(map[int]Listener)}
}

func (r *SQLiteRepository) readAll(ctx context.Context, st kv.Store) ([]models.StoredDoctor, error) {
	raw, ok, err := st.Get(ctx, common.KeyDoctors)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.StoredDoctor{}, nil
	}
	var list []models.StoredDoctor
	if err := json.Unmarshal([]byte(raw), &list); err != nil || list == nil {
		return []models.StoredDoctor{}, nil
	}
	return list, nil
}

func (r *SQLiteRepository) persist(ctx context.Context, st kv.Store, list []models.StoredDoctor) error {
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal doctors: %w", err)
	}
	return st.Set(ctx, common.KeyDoctors, string(b))
	// r.notify(...)
}

// List returns every stored doctor.
func (r *SQLiteRepository) List(ctx context.Context) ([]models.StoredDoctor, error) {
	return r.readAll(ctx, kv.NewSQLiteStore(r.db))
}

// Get returns the doctor with the given id, or nil when absent.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.StoredDoctor, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, nil
}

// Add appends a new record stamped with a fresh id, creation timestamps and
// the acting principal's email. Creation is always permitted.
func (r *SQLiteRepository) Add(ctx context.Context, input models.Doctor) (*models.StoredDoctor, error) {
	now := timestamp()
	rec := models.StoredDoctor{
		Doctor:    input,
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p := r.sess.Current(ctx); p != nil {
		rec.CreatedBy = p.Email
	}

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		st := kv.NewSQLiteStore(tx)
		list, err := r.readAll(ctx, st)
		if err != nil {
			return err
		}
		return r.persist(ctx, st, append(list, rec))
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update applies the non-nil fields of upd over the stored record. Returns
// nil when the id is unknown; fails with common.ErrNotAuthorized when the
// acting principal may not modify the record.
func (r *SQLiteRepository) Update(ctx context.Context, id string, upd models.DoctorUpdate) (*models.StoredDoctor, error) {
	principal := r.sess.Current(ctx)

	var updated *models.StoredDoctor
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		st := kv.NewSQLiteStore(tx)
		list, err := r.readAll(ctx, st)
		if err != nil {
			return err
		}
		idx := indexOf(list, id)
		if idx < 0 {
			return nil
		}
		orig := list[idx]
		if !authz.CanModify(principal, orig.CreatedBy) {
			return fmt.Errorf("update doctor %s: %w", id, common.ErrNotAuthorized)
		}

		next := orig
		apply(&next.DoctorName, upd.DoctorName)
		apply(&next.DoctorSpecialist, upd.DoctorSpecialist)
		apply(&next.DoctorEmail, upd.DoctorEmail)
		apply(&next.DoctorContact, upd.DoctorContact)
		apply(&next.DoctorExperience, upd.DoctorExperience)
		next.UpdatedAt = timestamp()

		list[idx] = next
		if err := r.persist(ctx, st, list); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove deletes the record with the given id. Returns false when the id is
// unknown; fails with common.ErrNotAuthorized when the acting principal may
// not delete it.
func (r *SQLiteRepository) Remove(ctx context.Context, id string) (bool, error) {
	principal := r.sess.Current(ctx)

	removed := false
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		st := kv.NewSQLiteStore(tx)
		list, err := r.readAll(ctx, st)
		if err != nil {
			return err
		}
		idx := indexOf(list, id)
		if idx < 0 {
			return nil
		}
		if !authz.CanModify(principal, list[idx].CreatedBy) {
			return fmt.Errorf("delete doctor %s: %w", id, common.ErrNotAuthorized)
		}

		next := make([]models.StoredDoctor, 0, len(list)-1)
		for _, rec := range list {
			if rec.ID != id {
				next = append(next, rec)
			}
		}
		if len(next) == len(list) {
			return nil
		}
		if err := r.persist(ctx, st, next); err != nil {
			return err
		}
		removed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// ClearAll overwrites the collection with an empty one. Used by the seeding
// flow; no authorization check, like creation.
func (r *SQLiteRepository) ClearAll(ctx context.Context) error {
	st := kv.NewSQLiteStore(r.db)
	return r.persist(ctx, st, []models.StoredDoctor{})
}

// ReplaceAll replaces the whole collection with newDoctors, stamping fresh
// ids and timestamps. No ownership is recorded: imported records are legacy
// and can only be mutated by admins afterwards.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, newDoctors []models.Doctor) ([]models.StoredDoctor, error) {
	now := timestamp()
	list := make([]models.StoredDoctor, 0, len(newDoctors))
	for _, d := range newDoctors {
		list = append(list, models.StoredDoctor{
			Doctor:    d,
			ID:        uuid.NewString(),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return r.persist(ctx, kv.NewSQLiteStore(tx), list)
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Subscribe registers l and returns a token for Unsubscribe. See the
// Listener note: dispatch for doctors is currently inert.
func (r *SQLiteRepository) Subscribe(l Listener) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.listeners[r.nextID] = l
	return r.nextID
}

// Unsubscribe removes the listener registered under id.
func (r *SQLiteRepository) Unsubscribe(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.listeners, id)
}

// notify is kept for symmetry with the other repositories; nothing calls it
// until doctor change dispatch is wired up.
func (r *SQLiteRepository) notify(rec models.StoredDoctor) {
	r.mu.Lock()
	ls := make([]Listener, 0, len(r.listeners))
	for _, l := range r.listeners {
		ls = append(ls, l)
	}
	r.mu.Unlock()

	for _, l := range ls {
		l(rec)
	}
}

func indexOf(list []models.StoredDoctor, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func apply(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
