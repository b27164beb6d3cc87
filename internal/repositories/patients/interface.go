// Package patients provides the patient collection: CRUD over the app:patients
// key of the local key-value store, with ownership stamping and authorization.
package patients

import (
	"context"

	"github.com/dmitrijs2005/clinicdesk/internal/models"
)

// Listener receives a snapshot of the affected record after a successful
// mutation. For Remove the snapshot is the removed record.
type Listener func(models.StoredPatient)

// Repository is the patient collection contract.
//
// Not-found is a normal negative result (nil record or false), never an
// error. Not-authorized mutations fail with an error matching
// common.ErrNotAuthorized.
type Repository interface {
	List(ctx context.Context) ([]models.StoredPatient, error)
	Get(ctx context.Context, id string) (*models.StoredPatient, error)
	Add(ctx context.Context, input models.Patient) (*models.StoredPatient, error)
	Update(ctx context.Context, id string, upd models.PatientUpdate) (*models.StoredPatient, error)
	Remove(ctx context.Context, id string) (bool, error)

	Subscribe(l Listener) int
	Unsubscribe(id int)
}
