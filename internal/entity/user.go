package entity

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleTeam  UserRole = "team"
)

func (r UserRole) String() string {
	return string(r)
}

// User is a credential subject provisioned directly in the remote Users table.
type User struct {
	Name     string
	Username string
	Role     UserRole
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
