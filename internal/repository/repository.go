package repository

import (
	"context"
	"errors"

	"github.com/avoronin/tasktracker/internal/models"
)

var (
	ErrNotFound       = errors.New("row not found")
	ErrDuplicateLogin = errors.New("login already taken")
	ErrDuplicatePhone = errors.New("phone already taken")
)

type UserRepository interface {
	// Create inserts the user. The storage-level unique constraints on
	// login and phone are authoritative: a lost race against a concurrent
	// registration surfaces as ErrDuplicateLogin or ErrDuplicatePhone
	// even if a pre-check passed.
	Create(ctx context.Context, user *models.User) error

	// FindByLogin returns the user including the password hash,
	// or ErrNotFound.
	FindByLogin(ctx context.Context, login string) (*models.User, error)

	// FindByPhone returns the user including the password hash,
	// or ErrNotFound.
	FindByPhone(ctx context.Context, phone string) (*models.User, error)

	// FindByID returns the user without the password hash, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// ListAll returns every user with public fields only.
	ListAll(ctx context.Context) ([]*models.User, error)
}

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error

	// FindByID returns the task regardless of its archived flag,
	// or ErrNotFound.
	FindByID(ctx context.Context, id string) (*models.Task, error)

	// ListForUser returns non-archived tasks the user created or is
	// assigned to, newest first, with creator and assignee names joined.
	ListForUser(ctx context.Context, userID string) ([]*models.TaskWithNames, error)

	// UpdateStatus sets the status and returns the updated task,
	// or ErrNotFound.
	UpdateStatus(ctx context.Context, id, status string) (*models.Task, error)

	// Archive sets the archived flag. Archiving an already archived
	// task succeeds. Returns ErrNotFound for an unknown id.
	Archive(ctx context.Context, id string) error
}
