package services

import (
	"context"
	"errors"
	"time"

	"github.com/avoronin/tasktracker/internal/models"
)

var (
	ErrMissingFields    = errors.New("all fields are required")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrDuplicateLogin   = errors.New("user with this login already exists")
	ErrDuplicatePhone   = errors.New("user with this phone number already exists")

	// ErrInvalidCredentials covers both an unknown login and a wrong
	// password so that responses never reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid login or password")

	ErrInvalidToken = errors.New("invalid token")
	ErrUserNotFound = errors.New("user not found")

	ErrEmptyTitle        = errors.New("task title is required")
	ErrInvalidTaskStatus = errors.New("invalid task status")
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskForbidden     = errors.New("no permission to modify this task")
)

type TokenService interface {
	// Issue produces a signed bearer token embedding the user id,
	// expiring after the configured TTL.
	Issue(userID string) (string, error)

	// Verify returns the user id embedded in the token. It returns
	// ErrInvalidToken if the token is malformed, carries a bad
	// signature or has expired. Expiry is the only invalidation
	// mechanism; there is no revocation list.
	Verify(token string) (string, error)
}

type AuthService interface {
	// Register validates the params in order (presence, password
	// length, confirmation, login uniqueness, phone uniqueness),
	// hashes the password, creates the user and issues a token.
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)

	// Login authenticates the user by login and password and issues
	// a token. Both failure modes return ErrInvalidCredentials.
	Login(ctx context.Context, params LoginParams) (*AuthResult, error)
}

type UserService interface {
	// GetByID returns the user's public fields, or ErrUserNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// ListAll returns every user with public fields only.
	ListAll(ctx context.Context) ([]*models.User, error)
}

type TaskService interface {
	// Create inserts a task owned by params.CreatorID with status
	// "todo". It returns ErrEmptyTitle if the title is blank.
	Create(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// ListForUser returns non-archived tasks the user created or is
	// assigned to, newest first.
	ListForUser(ctx context.Context, userID string) ([]*models.TaskWithNames, error)

	// UpdateStatus moves the task to any of the three statuses with
	// no transition restrictions. The caller must be the creator or
	// the assignee, otherwise ErrTaskForbidden.
	UpdateStatus(ctx context.Context, params UpdateTaskStatusParams) (*models.Task, error)

	// Archive soft-deletes the task. Only the creator may archive;
	// archiving an already archived task succeeds silently.
	Archive(ctx context.Context, params ArchiveTaskParams) error
}

type RegisterParams struct {
	FirstName       string
	Phone           string
	Login           string
	Password        string
	ConfirmPassword string
}

type LoginParams struct {
	Login    string
	Password string
}

type AuthResult struct {
	User  *models.User
	Token string
}

type CreateTaskParams struct {
	Title       string
	Description string
	DueDate     *time.Time
	CreatorID   string
	AssigneeID  *string
}

type UpdateTaskStatusParams struct {
	TaskID string
	UserID string
	Status string
}

type ArchiveTaskParams struct {
	TaskID string
	UserID string
}
