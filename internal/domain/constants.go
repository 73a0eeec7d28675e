package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxResourceCodeLength  = 20
	MaxResourceNameLength  = 100
	MaxCommentLength       = 500
	MaxRefusalMotiveLength = 500
)

// Validator roles allowed to approve or refuse a reservation.
const (
	RoleAdmin          = "admin"
	RoleSiteLead       = "site_lead"
	RoleSiteSupervisor = "site_supervisor"
)

// CanValidate reports whether the given role may approve or refuse
// reservations.
func CanValidate(role string) bool {
	switch role {
	case RoleAdmin, RoleSiteLead, RoleSiteSupervisor:
		return true
	default:
		return false
	}
}
