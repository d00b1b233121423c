package domain

// Role is the access role carried in a user's session token
type Role string

const (
	RoleClinic   Role = "clinic"
	RoleHospital Role = "hospital"
	RoleOPDAdmin Role = "opd_admin"
	RoleMaster   Role = "master"
)

// Valid returns true if the role is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleClinic, RoleHospital, RoleOPDAdmin, RoleMaster:
		return true
	default:
		return false
	}
}

// CanManageBookings reports whether the role may create, view and
// administer bookings. Clinic accounts only see availability.
func (r Role) CanManageBookings() bool {
	switch r {
	case RoleHospital, RoleOPDAdmin, RoleMaster:
		return true
	default:
		return false
	}
}

// CanDeleteBookings reports whether the role may hard-delete bookings
func (r Role) CanDeleteBookings() bool {
	return r == RoleMaster
}

// User is a staff login account
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
}

// Actor identifies the authenticated caller of a privileged operation
type Actor struct {
	Username string
	Role     Role
}
