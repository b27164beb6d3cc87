package patients

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
// The whole collection lives as one JSON array under common.KeyPatients;
// every mutation is a read-modify-write of that document inside a
// transaction.
type SQLiteRepository struct {
	db   *sql.DB
	sess *session.Manager

	mu        sync.Mutex
	nextID    int
	listeners map[int]Listener
}

// NewSQLiteRepository returns a patient repository bound to db, consulting
// sess for the acting principal.
func NewSQLiteRepository(db *sql.DB, sess *session.Manager) *SQLiteRepository {
	return &SQLiteRepository{db: db, sess: sess, listeners: make(map[int]Listener)}
}

// readAll loads the collection through st. A missing key or a value that is
// not a JSON array yields an empty collection, never an error; only storage
// failures propagate.
func (r *SQLiteRepository) readAll(ctx context.Context, st kv.Store) ([]models.StoredPatient, error) {
	raw, ok, err := st.Get(ctx, common.KeyPatients)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.StoredPatient{}, nil
	}
	var list []models.StoredPatient
	if err := json.Unmarshal([]byte(raw), &list); err != nil || list == nil {
		return []models.StoredPatient{}, nil
	}
	return list, nil
}

func (r *SQLiteRepository) persist(ctx context.Context, st kv.Store, list []models.StoredPatient) error {
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal patients: %w", err)
	}
	return st.Set(ctx, common.KeyPatients, string(b))
}

// List returns every stored patient. Fields added after older records were
// written (alternate contact, date of birth) decode to empty strings, so the
// read-time backfill the original front end performed happens for free.
func (r *SQLiteRepository) List(ctx context.Context) ([]models.StoredPatient, error) {
	return r.readAll(ctx, kv.NewSQLiteStore(r.db))
}

// Get returns the patient with the given id, or nil when absent.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.StoredPatient, error) {
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
// the acting principal's email. Creation is always permitted, even without
// a session.
func (r *SQLiteRepository) Add(ctx context.Context, input models.Patient) (*models.StoredPatient, error) {
	now := timestamp()
	rec := models.StoredPatient{
		Patient:   input,
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

	r.notify(rec)
	return &rec, nil
}

// Update applies the non-nil fields of upd over the stored record, keeping
// id, createdAt and createdBy, and advancing updatedAt. Returns nil when the
// id is unknown; fails with common.ErrNotAuthorized when the acting
// principal may not modify the record.
func (r *SQLiteRepository) Update(ctx context.Context, id string, upd models.PatientUpdate) (*models.StoredPatient, error) {
	principal := r.sess.Current(ctx)

	var updated *models.StoredPatient
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
			return fmt.Errorf("update patient %s: %w", id, common.ErrNotAuthorized)
		}

		next := orig
		apply(&next.PatientName, upd.PatientName)
		apply(&next.PatientGender, upd.PatientGender)
		apply(&next.PatientAddress, upd.PatientAddress)
		apply(&next.PatientContact, upd.PatientContact)
		apply(&next.PatientAlternateContact, upd.PatientAlternateContact)
		apply(&next.PatientEmail, upd.PatientEmail)
		apply(&next.PatientDateOfBirth, upd.PatientDateOfBirth)
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

	if updated != nil {
		r.notify(*updated)
	}
	return updated, nil
}

// Remove deletes the record with the given id. Returns false when the id is
// unknown; fails with common.ErrNotAuthorized when the acting principal may
// not delete the record.
func (r *SQLiteRepository) Remove(ctx context.Context, id string) (bool, error) {
	principal := r.sess.Current(ctx)

	var removed *models.StoredPatient
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
			return fmt.Errorf("delete patient %s: %w", id, common.ErrNotAuthorized)
		}

		snapshot := list[idx]
		next := make([]models.StoredPatient, 0, len(list)-1)
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
		removed = &snapshot
		return nil
	})
	if err != nil {
		return false, err
	}

	if removed == nil {
		return false, nil
	}
	r.notify(*removed)
	return true, nil
}

// Subscribe registers l for change notifications and returns a token for
// Unsubscribe.
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

func (r *SQLiteRepository) notify(rec models.StoredPatient) {
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

func indexOf(list []models.StoredPatient, id string) int {
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
