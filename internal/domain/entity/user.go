package entity

// User is an account as returned by the external API.
// Password is write-only: it is sent on register/update and never rendered.
type User struct {
	ID       string `json:"_id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	IsAdmin  bool   `json:"isAdmin"`
}

// ShortID is the tail of the id shown in admin tables.
func (u User) ShortID() string {
	if len(u.ID) <= 6 {
		return u.ID
	}
	return u.ID[len(u.ID)-6:]
}

// UserInfo is the login/register payload: the user plus its bearer token.
type UserInfo struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
