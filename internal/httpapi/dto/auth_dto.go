package dto

import (
	"regexp"

	"notekeeper/internal/auth/domain/entities"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterRequest содержит данные для регистрации пользователя.
// Указатели отличают отсутствующее поле от пустого.
type RegisterRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Validate проверяет запрос и возвращает ошибки по полям.
func (r *RegisterRequest) Validate() FieldErrors {
	errs := FieldErrors{}

	switch {
	case r.Username == nil:
		errs.Add("username", MsgFieldRequired)
	case *r.Username == "":
		errs.Add("username", MsgFieldBlank)
	case len(*r.Username) > entities.MaxUsernameLength:
		errs.Add("username", MsgUsernameTooLong)
	}

	if r.Email != nil && *r.Email != "" && !emailRegex.MatchString(*r.Email) {
		errs.Add("email", MsgInvalidEmail)
	}

	switch {
	case r.Password == nil:
		errs.Add("password", MsgFieldRequired)
	case *r.Password == "":
		errs.Add("password", MsgFieldBlank)
	case len(*r.Password) < entities.MinPasswordLength:
		errs.Add("password", MsgPasswordTooShort)
	}

	return errs
}

// GetEmail возвращает email или пустую строку, если поле отсутствует.
func (r *RegisterRequest) GetEmail() string {
	if r.Email == nil {
		return ""
	}
	return *r.Email
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// Validate проверяет запрос и возвращает ошибки по полям.
func (r *LoginRequest) Validate() FieldErrors {
	errs := FieldErrors{}

	switch {
	case r.Username == nil:
		errs.Add("username", MsgFieldRequired)
	case *r.Username == "":
		errs.Add("username", MsgFieldBlank)
	}

	switch {
	case r.Password == nil:
		errs.Add("password", MsgFieldRequired)
	case *r.Password == "":
		errs.Add("password", MsgFieldBlank)
	}

	return errs
}
