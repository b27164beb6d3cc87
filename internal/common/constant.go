package common

// Storage keys. The layout is kept byte-compatible with the original web
// front end's localStorage: one JSON array per collection, a single JSON
// object for the session.
const (
	KeyUsers        = "users"
	KeyAuthUser     = "authUser"
	KeyPatients     = "app:patients"
	KeyDoctors      = "app:doctors"
	KeyAppointments = "app:appointments"
)

// Built-in administrator credentials. The admin account is not backed by a
// stored user record; login with this pair always yields an admin principal.
const (
	AdminEmail    = "admin@clinic.local"
	AdminPassword = "admin123"
)
