package model

// Role values stored on a user. Creature mutations require RoleAdmin.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// User is the authentication collaborator's entity. The catalog core only
// ever consumes its id and role.
type User struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Gender       string `json:"gender"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

// IsAdmin reports whether the user may reach creature-mutation endpoints.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
