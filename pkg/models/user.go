package models

import "time"

// User is an API account. Accounts are provisioned out of band
// (see `bookctl user add`); the API only reads them.
type User struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Password  string     `json:"password"` // bcrypt hash
	Email     string     `json:"email"`
	IsActive  bool       `json:"is_active"`
	CreatedAt *time.Time `json:"created_at"`
}

// PublicUser is the view of a User returned by the API.
type PublicUser struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	IsActive  bool       `json:"is_active"`
	CreatedAt *time.Time `json:"created_at"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
