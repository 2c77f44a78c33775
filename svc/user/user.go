package user

import "time"

// User is a registered account.
type User struct {
	ID             int64     `db:"id"`
	Username       string    `db:"username"`
	Email          string    `db:"email"`
	FullName       string    `db:"full_name"`
	HashedPassword string    `db:"hashed_password"`
	IsActive       bool      `db:"is_active"`
	IsSuperuser    bool      `db:"is_superuser"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Profile is the public projection of a user.
type Profile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	IsActive bool   `json:"is_active"`
}

// Profile returns the public projection of u.
func (u *User) Profile() Profile {
	return Profile{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		IsActive: u.IsActive,
	}
}

// CreateInput holds the data for a new account.
type CreateInput struct {
	Username    string
	Email       string
	Password    string
	FullName    string
	IsSuperuser bool
}

// SuperuserConfig describes the administrator account created at startup.
type SuperuserConfig struct {
	Username string `env:"SUPERUSER_USERNAME"`
	Email    string `env:"SUPERUSER_EMAIL"`
	Password string `env:"SUPERUSER_PASSWORD"`
	FullName string `env:"SUPERUSER_FULL_NAME" envDefault:"Administrator"`
}
