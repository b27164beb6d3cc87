// Package appointments provides the appointment collection: CRUD over the
// app:appointments key of the local key-value store. Appointments reference
// patients and doctors by copied id only; the references are never validated.
package appointments

import (
	"context"

	"github.com/dmitrijs2005/clinicdesk/internal/models"
)

// Listener receives a snapshot of the affected record after a successful
// mutation. For Remove the snapshot is the removed record.
type Listener func(models.StoredAppointment)

// Repository is the appointment collection contract. Semantics match the
// patient repository, with one addition: only admin principals can change an
// appointment's status through Update; for everybody else a supplied status
// is ignored while the remaining fields still apply.
type Repository interface {
	List(ctx context.Context) ([]models.StoredAppointment, error)
	Get(ctx context.Context, id string) (*models.StoredAppointment, error)
	Add(ctx context.Context, input models.Appointment) (*models.StoredAppointment, error)
	Update(ctx context.Context, id string, upd models.AppointmentUpdate) (*models.StoredAppointment, error)
	Remove(ctx context.Context, id string) (bool, error)

	Subscribe(l Listener) int
	Unsubscribe(id int)
}
