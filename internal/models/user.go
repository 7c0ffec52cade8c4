package models

import "time"

// User is the stored form of a user, shared by the document and the relational store.
type User struct {
	UserID              string    `bson:"_id" db:"user_id"`
	Name                string    `bson:"name" db:"name"`
	Email               string    `bson:"email" db:"email"`
	DateOfBirth         time.Time `bson:"date_of_birth" db:"date_of_birth"`
	Password            string    `bson:"password" db:"password_hash"`
	EmailVerifyToken    string    `bson:"email_verify_token" db:"email_verify_token"`
	ForgotPasswordToken string    `bson:"forgot_password_token" db:"forgot_password_token"`
	Verify              int       `bson:"verify" db:"verify"`
	Username            string    `bson:"username" db:"username"`
	Bio                 string    `bson:"bio" db:"bio"`
	Location            string    `bson:"location" db:"location"`
	Website             string    `bson:"website" db:"website"`
	Avatar              string    `bson:"avatar" db:"avatar"`
	CoverPhoto          string    `bson:"cover_photo" db:"cover_photo"`
	CreatedAt           time.Time `bson:"created_at" db:"created_at"`
	UpdatedAt           time.Time `bson:"updated_at" db:"updated_at"`
}
