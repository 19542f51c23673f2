package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avoronin/tasktracker/internal/models"
	"github.com/avoronin/tasktracker/internal/services"
)

type userResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	Phone     string    `json:"phone"`
	Login     string    `json:"login"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		Phone:     user.Phone,
		Login:     user.Login,
		CreatedAt: user.CreatedAt,
	}
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

// Validation of field presence, password length and confirmation runs
// inside the auth service in a fixed order, so the request binding is
// deliberately unconstrained.
type registerRequest struct {
	FirstName       string `json:"firstName"`
	Phone           string `json:"phone"`
	Login           string `json:"login"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *handlerImpl) HandleRegister(c *gin.Context) {
	var req registerRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, http.StatusBadRequest, errInvalidRequestBody.Error())
		return
	}

	result, err := h.auth.Register(c, services.RegisterParams{
		FirstName:       req.FirstName,
		Phone:           req.Phone,
		Login:           req.Login,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields),
			errors.Is(err, services.ErrPasswordTooShort),
			errors.Is(err, services.ErrPasswordMismatch),
			errors.Is(err, services.ErrDuplicateLogin),
			errors.Is(err, services.ErrDuplicatePhone):
			abort(c, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error().
				Err(err).
				Msg("failed to register user")
			abortInternal(c)
		}
		return
	}

	respondMessage(c, http.StatusCreated, "user registered successfully", authResponse{
		User:  newUserResponse(result.User),
		Token: result.Token,
	})
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, http.StatusBadRequest, errInvalidRequestBody.Error())
		return
	}

	result, err := h.auth.Login(c, services.LoginParams{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			abort(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrInvalidCredentials):
			abort(c, http.StatusUnauthorized, err.Error())
		default:
			h.logger.Error().
				Err(err).
				Msg("failed to login")
			abortInternal(c)
		}
		return
	}

	respondMessage(c, http.StatusOK, "logged in successfully", authResponse{
		User:  newUserResponse(result.User),
		Token: result.Token,
	})
}

func (h *handlerImpl) HandleProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		abort(c, http.StatusUnauthorized, "invalid token")
		return
	}

	user, err := h.users.GetByID(c, userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			abort(c, http.StatusNotFound, err.Error())
			return
		}

		h.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to fetch profile")
		abortInternal(c)
		return
	}

	respondData(c, http.StatusOK, gin.H{"user": newUserResponse(user)})
}
