package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/virtualhotel/hotel-backend/internal/database"
	"github.com/virtualhotel/hotel-backend/internal/models"
)

// Version is the API version reported by the index endpoint
const Version = "1.0.0"

// HealthResponse is the body of the health endpoint
type HealthResponse struct {
	Success   bool                   `json:"success"`
	Message   string                 `json:"message,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Jobs      map[string]interface{} `json:"jobs,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

// JobStatusProvider reports the state of scheduled background jobs
type JobStatusProvider interface {
	GetJobStatus() map[string]interface{}
}

// HealthHandler reports liveness and database reachability
type HealthHandler struct {
	db          database.DB
	apiPrefix   string
	jobs        JobStatusProvider
	showDetails bool
	now         func() time.Time
}

// NewHealthHandler creates a new HealthHandler. jobs may be nil.
// Driver errors are only included in the body when showDetails is set.
func NewHealthHandler(db database.DB, apiPrefix string, jobs JobStatusProvider, showDetails bool) *HealthHandler {
	return &HealthHandler{db: db, apiPrefix: apiPrefix, jobs: jobs, showDetails: showDetails, now: time.Now}
}

// Health pings the database
// GET /api/v1/health
func (h *HealthHandler) Health(c *gin.Context) {
	timestamp := h.now().UTC().Format(time.RFC3339)

	var jobs map[string]interface{}
	if h.jobs != nil {
		jobs = h.jobs.GetJobStatus()
	}

	if err := h.db.Ping(); err != nil {
		msg := "Database unreachable"
		if h.showDetails {
			msg += ": " + err.Error()
		}
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Success:   false,
			Error:     msg,
			Jobs:      jobs,
			Timestamp: timestamp,
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Success:   true,
		Message:   "Virtual Hotel Management API is running",
		Jobs:      jobs,
		Timestamp: timestamp,
	})
}

// Index lists the API entry points
// GET /
func (h *HealthHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Virtual Hotel Management API",
		"version": Version,
		"endpoints": gin.H{
			"health":   h.apiPrefix + "/health",
			"rooms":    h.apiPrefix + "/rooms",
			"guests":   h.apiPrefix + "/guests",
			"bookings": h.apiPrefix + "/bookings",
		},
	})
}

// NoRoute answers unknown routes
func (h *HealthHandler) NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.APIResponse{
		Success: false,
		Error:   "Route " + c.Request.URL.RequestURI() + " not found",
	})
}
