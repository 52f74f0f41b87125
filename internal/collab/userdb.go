package collab

import "os/user"

// UserDB resolves `~user` references through the standard library's
// os/user package.
type UserDB struct{}

// NewUserDB returns the os/user-backed UserDB.
func NewUserDB() UserDB { return UserDB{} }

func (UserDB) Lookup(username string) (string, bool) {
	u, err := user.Lookup(username)
	if err != nil {
		return "", false
	}
	return u.HomeDir, true
}
