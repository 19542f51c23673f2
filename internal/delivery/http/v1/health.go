package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *handlerImpl) HandleHealth(c *gin.Context) {
	respondMessage(c, http.StatusOK, "Server is running",
		gin.H{"timestamp": time.Now().UTC().Format(time.RFC3339)})
}

func (h *handlerImpl) HandleTest(c *gin.Context) {
	respondMessage(c, http.StatusOK, "Test route is working", nil)
}

func (h *handlerImpl) HandleNoRoute(c *gin.Context) {
	abort(c, http.StatusNotFound,
		fmt.Sprintf("Route %s %s not found", c.Request.Method, c.Request.URL.Path))
}
