// Package doctors provides the doctor collection: CRUD over the app:doctors
// key of the local key-value store, plus the bulk seed/import operations the
// original front end used.
package doctors

import (
	"context"

	"github.com/dmitrijs2005/clinicdesk/internal/models"
)

// Listener receives a snapshot of the affected record after a successful
// mutation. Note that dispatch for doctors is not wired up yet; listeners
// can be registered but currently never fire.
type Listener func(models.StoredDoctor)

// Repository is the doctor collection contract. Semantics match the patient
// repository; ReplaceAll and ClearAll are doctor-specific seeding flows.
type Repository interface {
	List(ctx context.Context) ([]models.StoredDoctor, error)
	Get(ctx context.Context, id string) (*models.StoredDoctor, error)
	Add(ctx context.Context, input models.Doctor) (*models.StoredDoctor, error)
	Update(ctx context.Context, id string, upd models.DoctorUpdate) (*models.StoredDoctor, error)
	Remove(ctx context.Context, id string) (bool, error)

	// ClearAll overwrites the collection with an empty one.
	ClearAll(ctx context.Context) error
	// ReplaceAll replaces the whole collection with newDoctors, assigning
	// fresh ids and timestamps. Imported records carry no owner and are
	// therefore admin-only afterwards.
	ReplaceAll(ctx context.Context, newDoctors []models.Doctor) ([]models.StoredDoctor, error)

	Subscribe(l Listener) int
	Unsubscribe(id int)
}
