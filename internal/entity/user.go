package entity

import "time"

type User struct {
	ID              string    `db:"id"`
	FullName        string    `db:"full_name"`
	Username        string    `db:"username"`
	Email           string    `db:"email"`
	PhoneNumber     string    `db:"phone_number"`
	Gender          string    `db:"gender"`
	Password        string    `db:"password"`
	Role            string    `db:"role"`
	IsActive        bool      `db:"is_active"`
	IsVerified      bool      `db:"is_verified"`
	Bio             string    `db:"bio"`
	ProfilePhotoURL string    `db:"profile_photo_url"`
	DateOfBirth     time.Time `db:"date_of_birth"`
	LastLogin       time.Time `db:"last_login"`
	CreatedAt       time.Time `db:"created_at"`
}

type UserLoginData struct {
	ID       string
	Username string
	Email    string
}
