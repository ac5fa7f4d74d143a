package entity

// User is a locally stored front-desk account. Credentials are matched
// offline against this list.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
	Name         string `json:"name"`
	Role         string `json:"role"`
}

const (
	RoleAdmin        = "Admin"
	RoleReceptionist = "Receptionist"
)

// Session is the signed-in user persisted in the local store.
type Session struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Location  string `json:"location,omitempty"`
	Token     string `json:"token"`
	CreatedAt int64  `json:"createdAt"`
}

// IsAdmin reports whether the user can manage accounts.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
