package models

// Session keys for the signed-in user.
const (
	SessionUserSub   = "user_sub"
	SessionUserEmail = "user_email"
	SessionUserName  = "user_name"
)

// User is the OIDC identity of the signed-in dashboard user. It lives only
// in the session.
type User struct {
	Sub   string `json:"sub"` // OIDC subject identifier
	Email string `json:"email"`
	Name  string `json:"name"`
}

// DisplayName returns the best human readable identifier.
func (u *User) DisplayName() string {
	switch {
	case u == nil:
		return ""
	case u.Name != "":
		return u.Name
	case u.Email != "":
		return u.Email
	}
	return u.Sub
}
