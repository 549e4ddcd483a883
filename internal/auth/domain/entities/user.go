// Package entities defines the domain entities for authentication.
package entities

import (
	"errors"
	"time"
)

// Определяем ошибки домена пользователя как константы.
var (
	ErrEmptyUsername    = errors.New("username cannot be empty")
	ErrUsernameTooLong  = errors.New("username is too long")
	ErrUsernameTaken    = errors.New("a user with that username already exists")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrPasswordTooShort = errors.New("password must contain at least 6 characters")
	ErrUserNotFound     = errors.New("user not found")
)

// MaxUsernameLength ограничивает длину имени пользователя.
const MaxUsernameLength = 150

// MinPasswordLength - минимальная длина пароля при регистрации.
const MinPasswordLength = 6

// User представляет основную сущность домена пользователя.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
