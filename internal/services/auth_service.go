package services

import (
	"context"
	"errors"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/avoronin/tasktracker/internal/models"
	"github.com/avoronin/tasktracker/internal/repository"
)

const minPasswordLength = 6

type authServiceImpl struct {
	logger zerolog.Logger
	users  repository.UserRepository
	tokens TokenService
}

func NewAuthService(
	logger zerolog.Logger,
	users repository.UserRepository,
	tokens TokenService,
) AuthService {
	return &authServiceImpl{
		logger: logger,
		users:  users,
		tokens: tokens,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	// Checks run in a fixed order and short-circuit on the first
	// failure, so the client always sees the most specific error.
	if params.FirstName == "" || params.Phone == "" ||
		params.Login == "" || params.Password == "" {
		return nil, ErrMissingFields
	}
	if len(params.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if params.Password != params.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	err := s.checkUnique(ctx, params.Login, params.Phone)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName: params.FirstName,
		Phone:     params.Phone,
		Login:     params.Login,
		CreatedAt: time.Now(),
	}

	userUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate user uuid")
		return nil, err
	}
	user.ID = userUUID.String()

	passwordHash, err := argon2id.CreateHash(params.Password, argon2id.DefaultParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}
	user.Password = passwordHash

	err = s.users.Create(ctx, user)
	if err != nil {
		// The pre-check above can lose a race against a concurrent
		// registration; the unique constraint reported by the
		// repository is the source of truth.
		switch {
		case errors.Is(err, repository.ErrDuplicateLogin):
			return nil, ErrDuplicateLogin
		case errors.Is(err, repository.ErrDuplicatePhone):
			return nil, ErrDuplicatePhone
		}
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("login", user.Login).
		Msg("registered user")

	user.Password = ""
	return &AuthResult{User: user, Token: token}, nil
}

func (s *authServiceImpl) checkUnique(ctx context.Context, login, phone string) error {
	_, err := s.users.FindByLogin(ctx, login)
	if err == nil {
		return ErrDuplicateLogin
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	_, err = s.users.FindByPhone(ctx, phone)
	if err == nil {
		return ErrDuplicatePhone
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	return nil
}

func (s *authServiceImpl) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	if params.Login == "" || params.Password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.users.FindByLogin(ctx, params.Login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	match, err := argon2id.ComparePasswordAndHash(params.Password, user.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return nil, err
	} else if !match {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("logged in")

	user.Password = ""
	return &AuthResult{User: user, Token: token}, nil
}
