package model

import "time"

// User mirrors a row of the users table. PasswordHash never leaves the
// service layer; handlers respond with PublicUser instead.
type User struct {
	ID           int64
	FirstName    *string
	LastName     *string
	Email        string
	PasswordHash string
	Username     *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// NewUser carries the fields needed to insert a user record.
type NewUser struct {
	Email        string
	PasswordHash string
	Username     *string
	FirstName    *string
	LastName     *string
}

type PublicUser struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  *string   `json:"username"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
