// Package dto содержит объекты передачи данных HTTP слоя и их валидацию.
package dto

// Сообщения валидации на уровне полей.
const (
	MsgFieldRequired     = "This field is required."
	MsgFieldBlank        = "This field may not be blank."
	MsgPasswordTooShort  = "Ensure this field has at least 6 characters."
	MsgUsernameTooLong   = "Ensure this field has no more than 150 characters."
	MsgTitleTooLong      = "Ensure this field has no more than 255 characters."
	MsgInvalidEmail      = "Enter a valid email address."
	MsgUsernameTaken     = "A user with that username already exists."
)

// Сообщения уровня запроса.
const (
	MsgInvalidCredentials = "Invalid credentials."
	MsgNotFound           = "Not found."
	MsgNotAuthenticated   = "Authentication credentials were not provided."
	MsgMalformedBody      = "Malformed request."
	MsgRegistered         = "User registered successfully."
	MsgLoggedIn           = "Logged in successfully."
	MsgLoggedOut          = "Logged out successfully."
	MsgServerUp           = "Server is up!"
)

// FieldErrors - структурированный набор ошибок валидации: поле -> сообщения.
// Сериализуется как тело ответа 400.
type FieldErrors map[string][]string

// Add добавляет сообщение об ошибке для поля.
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Empty сообщает, что ошибок нет.
func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

// DetailResponse - стандартный ответ с одним сообщением.
type DetailResponse struct {
	Detail string `json:"detail"`
}
