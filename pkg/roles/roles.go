package roles

// Role decides which screens and operations a user may reach.
type Role string

const (
	Admin   Role = "Admin"
	Manager Role = "Manager"
	User    Role = "User"
	Hr      Role = "Hr"
)

// Any lists every role, for routes open to all signed-in users.
var Any = []Role{Admin, Manager, User, Hr}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case Admin, Manager, User, Hr:
		return true
	default:
		return false
	}
}

// In reports whether r is one of allowed. Roles are not ordered; Hr does not
// include Manager rights and vice versa.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
