package domain

import (
	"strconv"
	"time"
)

// User models an account of the dashboard.
type User struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         Role         `json:"role"`
	Permissions  []Permission `json:"permissions"`
	Name         string       `json:"name"`
	Department   string       `json:"department"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// PermissionSet returns the user's permissions as a set. A nil user holds none.
func (u *User) PermissionSet() PermissionSet {
	if u == nil {
		return nil
	}
	return NewPermissionSet(u.Permissions...)
}

// IDString renders the numeric id as the decimal string kept in client storage.
func (u *User) IDString() string {
	return strconv.FormatInt(u.ID, 10)
}

// CanLogin reports whether the account carries a credential.
func (u *User) CanLogin() bool {
	return u != nil && u.PasswordHash != ""
}

// Clone returns a deep copy so callers can hand users across goroutines.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Permissions = append([]Permission(nil), u.Permissions...)
	return &c
}
