package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avoronin/tasktracker/internal/models"
	"github.com/avoronin/tasktracker/internal/services"
)

type taskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
	CreatorID   string     `json:"creatorId"`
	AssigneeID  *string    `json:"assigneeId"`
	IsArchived  bool       `json:"isArchived"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		DueDate:     task.DueDate,
		CreatorID:   task.CreatorID,
		AssigneeID:  task.AssigneeID,
		IsArchived:  task.Archived,
		CreatedAt:   task.CreatedAt,
	}
}

type taskListItemResponse struct {
	taskResponse
	CreatorName  string  `json:"creatorName"`
	AssigneeName *string `json:"assigneeName"`
}

func newTaskListItemResponse(task *models.TaskWithNames) taskListItemResponse {
	return taskListItemResponse{
		taskResponse: newTaskResponse(&task.Task),
		CreatorName:  task.CreatorName,
		AssigneeName: task.AssigneeName,
	}
}

type createTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	AssigneeID  *string    `json:"assigneeId"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		abort(c, http.StatusUnauthorized, "invalid token")
		return
	}

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, http.StatusBadRequest, errInvalidRequestBody.Error())
		return
	}

	params := services.CreateTaskParams{
		Title:      req.Title,
		DueDate:    req.DueDate,
		CreatorID:  userID,
		AssigneeID: req.AssigneeID,
	}
	if req.Description != nil {
		params.Description = *req.Description
	}

	task, err := h.tasks.Create(c, params)
	if err != nil {
		if errors.Is(err, services.ErrEmptyTitle) {
			abort(c, http.StatusBadRequest, err.Error())
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		abortInternal(c)
		return
	}

	respondMessage(c, http.StatusCreated, "task created successfully",
		gin.H{"task": newTaskResponse(task)})
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		abort(c, http.StatusUnauthorized, "invalid token")
		return
	}

	tasks, err := h.tasks.ListForUser(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to list tasks")
		abortInternal(c)
		return
	}

	items := make([]taskListItemResponse, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, newTaskListItemResponse(task))
	}

	respondData(c, http.StatusOK, gin.H{"tasks": items})
}

type setTaskStatusRequest struct {
	Status string `json:"status"`
}

func (h *handlerImpl) HandleSetTaskStatus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		abort(c, http.StatusUnauthorized, "invalid token")
		return
	}
	taskID := c.Param("taskId")

	var req setTaskStatusRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, http.StatusBadRequest, errInvalidRequestBody.Error())
		return
	}

	task, err := h.tasks.UpdateStatus(c, services.UpdateTaskStatusParams{
		TaskID: taskID,
		UserID: userID,
		Status: req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTaskStatus):
			abort(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrTaskForbidden):
			abort(c, http.StatusForbidden, err.Error())
		default:
			h.logger.Error().
				Err(err).
				Str("task_id", taskID).
				Msg("failed to update task status")
			abortInternal(c)
		}
		return
	}

	respondMessage(c, http.StatusOK, "task status updated",
		gin.H{"task": newTaskResponse(task)})
}

func (h *handlerImpl) HandleArchiveTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		abort(c, http.StatusUnauthorized, "invalid token")
		return
	}
	taskID := c.Param("taskId")

	err := h.tasks.Archive(c, services.ArchiveTaskParams{
		TaskID: taskID,
		UserID: userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrTaskForbidden):
			abort(c, http.StatusForbidden, "only the creator can archive a task")
		default:
			h.logger.Error().
				Err(err).
				Str("task_id", taskID).
				Msg("failed to archive task")
			abortInternal(c)
		}
		return
	}

	respondMessage(c, http.StatusOK, "task archived successfully", nil)
}
