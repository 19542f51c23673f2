package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDCtxKey = "user_id"

// HandleAuthMiddleware guards protected routes. It extracts the bearer
// token from the Authorization header, verifies it and stores the
// caller's user id in the request context. No handler logic runs on
// rejection.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		abort(c, http.StatusUnauthorized, "access token is missing")
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		abort(c, http.StatusUnauthorized, "access token is missing")
		return
	}

	userID, err := h.tokens.Verify(parts[1])
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("rejected access token")
		abort(c, http.StatusUnauthorized, "invalid token")
		return
	}

	c.Set(userIDCtxKey, userID)
	c.Next()
}

func getUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(userIDCtxKey)
	if !exists {
		return "", false
	}
	userID, ok := value.(string)
	return userID, ok && userID != ""
}
