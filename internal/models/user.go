package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model `json:"-"`
	ID         uint   `json:"id" gorm:"primaryKey"`
	Username   string `json:"username" gorm:"uniqueIndex;size:150"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password   string `json:"-"`                        // Store bcrypt hash, ignore for JSON serialization

	Profile Profile `json:"profile"`
}

// Profile is the one-to-one extension of a user. Exactly one profile exists
// per user; it is created in the same transaction as the user record.
type Profile struct {
	gorm.Model `json:"-"`
	ID         uint   `json:"id" gorm:"primaryKey"`
	UserID     uint   `json:"user_id" gorm:"uniqueIndex"`
	Bio        string `json:"bio" gorm:"size:500"`
	ProfilePic string `json:"profile_pic"`
}

// SignupForm defines the submitted fields of the registration form
type SignupForm struct {
	FirstName string `form:"first_name" validate:"omitempty,max=150"`
	LastName  string `form:"last_name" validate:"omitempty,max=150"`
	Username  string `form:"username" validate:"required,min=2,max=150"`
	Email     string `form:"email" validate:"required,email"`
	Password  string `form:"password" validate:"required,min=8"`
}

// LoginForm defines the submitted fields of the login form
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// ProfileForm defines the submitted fields of the profile edit form
type ProfileForm struct {
	Bio string `form:"bio" validate:"max=500"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
