// Package chatbot implements the role-aware question answering pipeline:
// intent classification, identifier resolution, scoped SQL generation, and
// deterministic response formatting.
package chatbot

// Role is the caller's role, supplied per request.
type Role int32

const (
	RoleAdministrator Role = 1
	RoleInstructor    Role = 2
	RoleStudent       Role = 3
)

func (r Role) Valid() bool {
	return r == RoleAdministrator || r == RoleInstructor || r == RoleStudent
}

// RequiresUserID reports whether requests with this role must carry an
// acting user id.
func (r Role) RequiresUserID() bool {
	return r == RoleInstructor || r == RoleStudent
}

func (r Role) String() string {
	switch r {
	case RoleAdministrator:
		return "administrator"
	case RoleInstructor:
		return "instructor"
	case RoleStudent:
		return "student"
	default:
		return "unknown"
	}
}
