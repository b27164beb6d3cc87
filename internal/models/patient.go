package models

// Patient holds the caller-supplied patient fields.
type Patient struct {
	PatientName             string `json:"patientName"`
	PatientGender           string `json:"patientGender"`
	PatientAddress          string `json:"patientAddress"`
	PatientContact          string `json:"patientContact"`
	PatientAlternateContact string `json:"patientAlternateContact"`
	PatientEmail            string `json:"patientEmail"`
	PatientDateOfBirth      string `json:"patientDateOfBirth"`
}

// StoredPatient is a patient record as persisted: the caller fields plus the
// system-managed fields stamped by the repository. CreatedBy is empty for
// legacy records written before ownership stamping existed; such records are
// admin-only.
type StoredPatient struct {
	Patient
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	CreatedBy string `json:"createdBy,omitempty"`
}

// PatientUpdate is a partial update: nil fields keep the original value.
type PatientUpdate struct {
	PatientName             *string
	PatientGender           *string
	PatientAddress          *string
	PatientContact          *string
	PatientAlternateContact *string
	PatientEmail            *string
	PatientDateOfBirth      *string
}
