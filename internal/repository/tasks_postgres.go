package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/avoronin/tasktracker/internal/models"
)

type postgresTaskRepository struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewPostgresTaskRepository(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) TaskRepository {
	return &postgresTaskRepository{
		logger: logger,
		pgPool: pgPool,
	}
}

func (r *postgresTaskRepository) Create(ctx context.Context, task *models.Task) error {
	const insertTaskQuery = `
INSERT INTO tasks (id,
                   title,
                   description,
                   status,
                   due_date,
                   creator_id,
                   assignee_id,
                   is_archived,
                   created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err := r.pgPool.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.DueDate,
		task.CreatorID,
		task.AssigneeID,
		task.Archived,
		task.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return err
	}
	r.logger.Debug().
		Str("task_id", task.ID).
		Msg("inserted task")

	return nil
}

func (r *postgresTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	task := &models.Task{ID: id}

	const selectTaskByIDQuery = `
SELECT title,
       description,
       status,
       due_date,
       creator_id,
       assignee_id,
       is_archived,
       created_at
FROM tasks
WHERE id = $1
`
	err := r.pgPool.QueryRow(
		ctx,
		selectTaskByIDQuery,
		id,
	).Scan(
		&task.Title,
		&task.Description,
		&task.Status,
		&task.DueDate,
		&task.CreatorID,
		&task.AssigneeID,
		&task.Archived,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to select task by id")
		return nil, err
	}

	return task, nil
}

func (r *postgresTaskRepository) ListForUser(ctx context.Context, userID string) ([]*models.TaskWithNames, error) {
	// Assignee fields come through a left join: both are NULL
	// when the task is unassigned.
	const selectTasksForUserQuery = `
SELECT t.id,
       t.title,
       t.description,
       t.status,
       t.due_date,
       t.creator_id,
       uc.first_name AS creator_name,
       t.assignee_id,
       ua.first_name AS assignee_name,
       t.is_archived,
       t.created_at
FROM tasks t
JOIN users uc ON t.creator_id = uc.id
LEFT JOIN users ua ON t.assignee_id = ua.id
WHERE (t.creator_id = $1 OR t.assignee_id = $1) AND
      t.is_archived = FALSE
ORDER BY t.created_at DESC
`
	rows, err := r.pgPool.Query(
		ctx,
		selectTasksForUserQuery,
		userID,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to select tasks for user")
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.TaskWithNames
	for rows.Next() {
		task := new(models.TaskWithNames)
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.DueDate,
			&task.CreatorID,
			&task.CreatorName,
			&task.AssigneeID,
			&task.AssigneeName,
			&task.Archived,
			&task.CreatedAt,
		)
		if err != nil {
			r.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	return tasks, nil
}

func (r *postgresTaskRepository) UpdateStatus(ctx context.Context, id, status string) (*models.Task, error) {
	task := &models.Task{
		ID:     id,
		Status: status,
	}

	const updateTaskStatusQuery = `
UPDATE tasks
SET status = $1
WHERE id = $2
RETURNING title, description, due_date, creator_id, assignee_id, is_archived, created_at
`
	err := r.pgPool.QueryRow(
		ctx,
		updateTaskStatusQuery,
		status,
		id,
	).Scan(
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.CreatorID,
		&task.AssigneeID,
		&task.Archived,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to update task status")
		return nil, err
	}
	r.logger.Debug().
		Str("task_id", id).
		Str("status", status).
		Msg("updated task status")

	return task, nil
}

func (r *postgresTaskRepository) Archive(ctx context.Context, id string) error {
	const archiveTaskQuery = `
UPDATE tasks
SET is_archived = TRUE
WHERE id = $1
`
	tag, err := r.pgPool.Exec(
		ctx,
		archiveTaskQuery,
		id,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to archive task")
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	r.logger.Debug().
		Str("task_id", id).
		Msg("archived task")

	return nil
}
