package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/avoronin/tasktracker/internal/config"
	v1 "github.com/avoronin/tasktracker/internal/delivery/http/v1"
	"github.com/avoronin/tasktracker/internal/repository"
	"github.com/avoronin/tasktracker/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(v1.HandleMetricsMiddleware)
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router *gin.Engine) {
	jwtCfg := config.Global().JWT

	userRepo := repository.NewPostgresUserRepository(globalLogger, globalPostgresPool)
	taskRepo := repository.NewPostgresTaskRepository(globalLogger, globalPostgresPool)

	tokenService := services.NewTokenService(
		globalLogger,
		jwtCfg.Issuer,
		[]byte(jwtCfg.SigningKey),
		jwtCfg.TokenTTL,
	)
	authService := services.NewAuthService(globalLogger, userRepo, tokenService)
	userService := services.NewUserService(globalLogger, userRepo)
	taskService := services.NewTaskService(globalLogger, taskRepo)

	h := v1.New(globalLogger, tokenService, authService, userService, taskService)

	api := router.Group("/api")
	api.GET("/health", h.HandleHealth)
	api.GET("/test", h.HandleTest)

	authRouter := api.Group("/auth")
	authRouter.POST("/register", h.HandleRegister)
	authRouter.POST("/login", h.HandleLogin)
	authRouter.GET("/profile", h.HandleAuthMiddleware, h.HandleProfile)

	taskRouter := api.Group("/tasks", h.HandleAuthMiddleware)
	taskRouter.GET("", h.HandleGetTasks)
	taskRouter.POST("", h.HandleCreateTask)
	taskRouter.PUT("/:taskId/status", h.HandleSetTaskStatus)
	taskRouter.PUT("/:taskId/archive", h.HandleArchiveTask)

	api.GET("/users", h.HandleAuthMiddleware, h.HandleGetUsers)

	router.GET("/metrics", v1.MetricsHandler())

	router.NoRoute(h.HandleNoRoute)
}
