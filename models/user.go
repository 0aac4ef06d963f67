package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	Member = "Member"
	Admin  = "Admin"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserSignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	UserID         string    `json:"userId" db:"user_id"`
	Username       string    `json:"username" db:"username"`
	Email          string    `json:"email" db:"email"`
	HashedPassword string    `json:"-" db:"password_hash"`
	Kind           string    `json:"kind" db:"kind"`
	Approved       bool      `json:"approved" db:"approved"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

func (user User) Serialize() ([]byte, error) {
	jsonUser, err := json.Marshal(user)
	if err != nil {
		return []byte{}, fmt.Errorf("error parsing json for User %v", err)
	}
	return jsonUser, nil
}

func NewUser(userSignup UserSignupRequest) (User, error) {
	hashedPassword, hashErr := GenerateHash(userSignup.Password)
	if hashErr != nil {
		return User{}, hashErr
	}
	now := time.Now()
	return User{
		UserID:         uuid.New().String(),
		Username:       userSignup.Username,
		Email:          userSignup.Email,
		HashedPassword: hashedPassword,
		Kind:           Member,
		Approved:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func GenerateHash(password string) (string, error) {
	hashedPassword, hashErr := bcrypt.GenerateFromPassword([]byte(password), 8)
	if hashErr != nil {
		return "", fmt.Errorf("error hashing password %v", hashErr)
	}
	return string(hashedPassword), nil
}

// CheckPassword compares a plaintext password against the stored hash.
func (user User) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return fmt.Errorf("error in compare of hash %v", err)
	}
	return nil
}
