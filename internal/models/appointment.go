package models

// AppointmentStatus enumerates the appointment lifecycle states.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "Scheduled"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
)

// Appointment holds the caller-supplied appointment fields. PatientID and
// DoctorID reference records in the other collections by value only; they
// are not validated, so dangling references are possible and not an error.
type Appointment struct {
	PatientID       string            `json:"patientId"`
	DoctorID        string            `json:"doctorId"`
	AppointmentDate string            `json:"appointmentDate"` // YYYY-MM-DD
	AppointmentTime string            `json:"appointmentTime"` // HH:mm
	Notes           string            `json:"notes"`
	Reason          string            `json:"reason,omitempty"`
	Status          AppointmentStatus `json:"status"`
}

// StoredAppointment is an appointment record as persisted.
type StoredAppointment struct {
	Appointment
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	CreatedBy string `json:"createdBy,omitempty"`
}

// AppointmentUpdate is a partial update: nil fields keep the original value.
// Status is only honored for admin principals; for everybody else the
// original status is retained even when a new one is supplied.
type AppointmentUpdate struct {
	PatientID       *string
	DoctorID        *string
	AppointmentDate *string
	AppointmentTime *string
	Notes           *string
	Reason          *string
	Status          *AppointmentStatus
}
