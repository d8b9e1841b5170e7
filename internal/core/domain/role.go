package domain

// Role is the closed set of roles a user can hold. Authorization never needs
// a database round-trip to know this set; the numeric ids only exist so the
// persistence layer keeps the stable foreign keys of the seeded roles table.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleDoctor Role = "Doctor"
	RoleNurse  Role = "Nurse"
	RoleClient Role = "Client"
)

var roleIDs = map[Role]int{
	RoleAdmin:  1,
	RoleDoctor: 2,
	RoleNurse:  3,
	RoleClient: 4,
}

// ParseRole maps a role name to its Role value. The second return value is
// false when the name is not part of the closed set.
func ParseRole(name string) (Role, bool) {
	r := Role(name)
	_, ok := roleIDs[r]
	return r, ok
}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	_, ok := roleIDs[r]
	return ok
}

// ID returns the stable numeric id of the role, or 0 for an unknown role.
func (r Role) ID() int {
	return roleIDs[r]
}

func (r Role) String() string {
	return string(r)
}
