package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleGetUsers lists every user with public fields only, used by the
// client to populate assignee pickers.
func (h *handlerImpl) HandleGetUsers(c *gin.Context) {
	users, err := h.users.ListAll(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list users")
		abortInternal(c)
		return
	}

	items := make([]userResponse, 0, len(users))
	for _, user := range users {
		items = append(items, newUserResponse(user))
	}

	respondData(c, http.StatusOK, gin.H{"users": items})
}
