package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/avoronin/tasktracker/internal/services"
)

type Handler interface {
	HandleRegister(c *gin.Context)
	HandleLogin(c *gin.Context)
	HandleProfile(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleSetTaskStatus(c *gin.Context)
	HandleArchiveTask(c *gin.Context)

	HandleGetUsers(c *gin.Context)

	HandleHealth(c *gin.Context)
	HandleTest(c *gin.Context)
	HandleNoRoute(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	tokens services.TokenService
	auth   services.AuthService
	users  services.UserService
	tasks  services.TaskService
}

func New(
	logger zerolog.Logger,
	tokenService services.TokenService,
	authService services.AuthService,
	userService services.UserService,
	taskService services.TaskService,
) Handler {
	return &handlerImpl{
		logger: logger,
		tokens: tokenService,
		auth:   authService,
		users:  userService,
		tasks:  taskService,
	}
}
