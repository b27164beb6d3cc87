package models

// Doctor holds the caller-supplied doctor fields. Experience is carried as
// an opaque string like every other form field.
type Doctor struct {
	DoctorName       string `json:"doctorName"`
	DoctorSpecialist string `json:"doctorSpecialist"`
	DoctorEmail      string `json:"doctorEmail"`
	DoctorContact    string `json:"doctorContact"`
	DoctorExperience string `json:"doctorExperience"`
}

// StoredDoctor is a doctor record as persisted.
type StoredDoctor struct {
	Doctor
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	CreatedBy string `json:"createdBy,omitempty"`
}

// DoctorUpdate is a partial update: nil fields keep the original value.
type DoctorUpdate struct {
	DoctorName       *string
	DoctorSpecialist *string
	DoctorEmail      *string
	DoctorContact    *string
	DoctorExperience *string
}
