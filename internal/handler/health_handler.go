package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marianorefrig/mariano_api/internal/store"
	"github.com/marianorefrig/mariano_api/internal/utils"
)

var startTime = time.Now()

// HealthHandler provides health endpoint.
type HealthHandler struct {
	store  store.Store
	driver string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(st store.Store, driver string) *HealthHandler {
	return &HealthHandler{store: st, driver: driver}
}

// GetHealth responds with the state of every collection. Any corrupt or
// unreadable collection turns the response into 503.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	states := store.Inspect(c.Request.Context(), h.store)

	status, code := "healthy", http.StatusOK
	for _, st := range states {
		if st == store.StateCorrupt || st == store.StateError {
			status, code = "degraded", http.StatusServiceUnavailable
			break
		}
	}

	utils.Success(c, code, gin.H{
		"status":      status,
		"version":     "1.0.0",
		"uptime":      int(time.Since(startTime).Seconds()),
		"store":       h.driver,
		"collections": states,
	})
}
