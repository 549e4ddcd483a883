// Package app implements application business logic for authentication.
package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"notekeeper/internal/auth/domain/entities"
	"notekeeper/internal/auth/ports/api"
	"notekeeper/internal/auth/ports/repositories"
	svc "notekeeper/internal/auth/ports/services"
	"notekeeper/pkg/logger"
)

// ErrInvalidCredentials возвращается при неизвестном имени пользователя или
// неверном пароле. Оба случая неразличимы для клиента.
var ErrInvalidCredentials = errors.New("invalid credentials")

const (
	methodRegister       = "Register"
	methodLogin          = "Login"
	methodLogout         = "Logout"
	methodResolveSession = "ResolveSession"

	msgStartRegistration  = "starting user registration"
	msgEmptyUsername      = "empty username provided"
	msgUsernameTooLong    = "username is too long"
	msgInvalidEmailFormat = "invalid email format"
	msgInvalidPassword    = "invalid password"
	msgUsernameExists     = "user with this username already exists"
	msgUserRegistered     = "user registered successfully"
	msgLoginAttempt       = "login attempt"
	msgLoginNonExistent   = "login attempt with non-existent username"
	msgInvalidPasswordAuth = "invalid password provided"
	msgUserLoggedIn       = "user logged in successfully"
	msgSessionCreated     = "session created for user"
	msgProcessingLogout   = "processing logout request"
	msgUserLoggedOut      = "user logged out successfully"
	msgResolvingSession   = "resolving session"
	msgStaleSession       = "session resolved to missing user"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrFindingUser       = "error finding user by username"
	msgErrVerifyingPassword = "error verifying password"
	msgErrCreateSession     = "failed to create session"
	msgErrDestroySession    = "failed to destroy session"

	errCtxValidatingUsername = "validating username"
	errCtxValidatingEmail    = "validating email"
	errCtxValidatingPassword = "validating password"
	errCtxCheckingUser       = "checking existing user"
	errCtxUsernameRegistered = "username already registered"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
	errCtxCreatingSession    = "creating session"
	errCtxDestroyingSession  = "destroying session"
	errCtxResolvingSession   = "resolving session"
)

// AuthUseCaseImpl реализует интерфейс api.AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	sessionSvc  svc.SessionService
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	sessionSvc svc.SessionService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		sessionSvc:  sessionSvc,
	}
}

// Register создает нового пользователя с предоставленными учетными данными.
func (a *AuthUseCaseImpl) Register(ctx context.Context, username, email, password string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("username", username))
	log.Debug(ctx, msgStartRegistration)

	if username == "" {
		log.Debug(ctx, msgEmptyUsername)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUsername, entities.ErrEmptyUsername)
	}
	if len(username) > entities.MaxUsernameLength {
		log.Debug(ctx, msgUsernameTooLong)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUsername, entities.ErrUsernameTooLong)
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			log.Debug(ctx, msgInvalidEmailFormat, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, err)
		}
	}
	if len(password) < entities.MinPasswordLength {
		log.Debug(ctx, msgInvalidPassword)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPassword, entities.ErrPasswordTooShort)
	}

	existingUser, err := a.userRepo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existingUser != nil {
		log.Debug(ctx, msgUsernameExists)
		return nil, fmt.Errorf("%s: %w", errCtxUsernameRegistered, entities.ErrUsernameTaken)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	newUser := &entities.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	createdUser, err := a.userRepo.Create(ctx, newUser)
	if err != nil {
		// Конкурирующая регистрация может опередить предварительную проверку.
		if errors.Is(err, entities.ErrUsernameTaken) {
			log.Debug(ctx, msgUsernameExists)
			return nil, fmt.Errorf("%s: %w", errCtxUsernameRegistered, err)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))
	return createdUser, nil
}

// Login аутентифицирует пользователя по имени и паролю и создает сессию.
func (a *AuthUseCaseImpl) Login(ctx context.Context, username, password string) (string, *entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("username", username))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return "", nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return "", nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return "", nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.String("userID", user.ID))
		return "", nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, ErrInvalidCredentials)
	}

	token, err := a.sessionSvc.Create(ctx, user.ID)
	if err != nil {
		log.Error(ctx, msgErrCreateSession, zap.Error(err), zap.String("userID", user.ID))
		return "", nil, fmt.Errorf("%s: %w", errCtxCreatingSession, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	log.Debug(ctx, msgSessionCreated, zap.String("userID", user.ID))
	return token, user, nil
}

// Logout уничтожает сессию.
func (a *AuthUseCaseImpl) Logout(ctx context.Context, token string) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogout))
	log.Debug(ctx, msgProcessingLogout)

	if err := a.sessionSvc.Destroy(ctx, token); err != nil {
		log.Error(ctx, msgErrDestroySession, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDestroyingSession, err)
	}

	log.Info(ctx, msgUserLoggedOut)
	return nil
}

// ResolveSession возвращает пользователя, связанного с токеном сессии.
func (a *AuthUseCaseImpl) ResolveSession(ctx context.Context, token string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodResolveSession))
	log.Debug(ctx, msgResolvingSession)

	userID, err := a.sessionSvc.Resolve(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxResolvingSession, err)
	}

	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Warn(ctx, msgStaleSession, zap.String("userID", userID))
			return nil, fmt.Errorf("%s: %w", errCtxResolvingSession, svc.ErrSessionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	return user, nil
}

// Валидация email.
func validateEmail(email string) error {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return entities.ErrInvalidEmail
	}
	return nil
}
