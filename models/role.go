package models

// Role is the single role a user carries. It is resolved once when the
// request is authenticated and passed through the request context.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleNurse        Role = "nurse"
	RolePharmacist   Role = "pharmacist"
	RoleLaboratorist Role = "laboratorist"
	RolePatient      Role = "patient"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleNurse, RolePharmacist, RoleLaboratorist, RolePatient:
		return true
	}
	return false
}
