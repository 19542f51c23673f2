package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/avoronin/tasktracker/internal/models"
	"github.com/avoronin/tasktracker/internal/repository"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	tasks  repository.TaskRepository
}

func NewTaskService(
	logger zerolog.Logger,
	tasks repository.TaskRepository,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		tasks:  tasks,
	}
}

func (s *taskServiceImpl) Create(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrEmptyTitle
	}

	task := &models.Task{
		Title:       params.Title,
		Description: params.Description,
		Status:      models.StatusTodo,
		DueDate:     params.DueDate,
		CreatorID:   params.CreatorID,
		AssigneeID:  params.AssigneeID,
		CreatedAt:   time.Now(),
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}
	task.ID = taskUUID.String()

	err = s.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("creator_id", task.CreatorID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) ListForUser(ctx context.Context, userID string) ([]*models.TaskWithNames, error) {
	tasks, err := s.tasks.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("listed tasks for user")
	return tasks, nil
}

func (s *taskServiceImpl) UpdateStatus(ctx context.Context, params UpdateTaskStatusParams) (*models.Task, error) {
	if !models.IsValidStatus(params.Status) {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.tasks.FindByID(ctx, params.TaskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	// Any status may move to any other status; only the caller's
	// relationship to the task is checked.
	if !isCreatorOrAssignee(task, params.UserID) {
		return nil, ErrTaskForbidden
	}

	updated, err := s.tasks.UpdateStatus(ctx, params.TaskID, params.Status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	s.logger.Info().
		Str("task_id", params.TaskID).
		Str("status", params.Status).
		Msg("updated task status")
	return updated, nil
}

func (s *taskServiceImpl) Archive(ctx context.Context, params ArchiveTaskParams) error {
	task, err := s.tasks.FindByID(ctx, params.TaskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	// The assignee may change the status but only the creator
	// may archive.
	if task.CreatorID != params.UserID {
		return ErrTaskForbidden
	}

	err = s.tasks.Archive(ctx, params.TaskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	s.logger.Info().
		Str("task_id", params.TaskID).
		Msg("archived task")
	return nil
}

func isCreatorOrAssignee(task *models.Task, userID string) bool {
	if task.CreatorID == userID {
		return true
	}
	return task.AssigneeID != nil && *task.AssigneeID == userID
}
