package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avolkov/libris/internal/database"
)

// HealthController reports whether the service can reach its database.
// Everything else the app needs (sessions, catalog, loans) lives in the
// same sqlite file, so one connectivity check covers the lot.
type HealthController struct {
	db      *database.Database
	version string
}

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Status answers 200 when the database pings, 503 otherwise.
func (h *HealthController) Status(c *gin.Context) {
	checks := map[string]string{"database": h.databaseCheck()}

	status := "healthy"
	statusCode := http.StatusOK
	for _, result := range checks {
		if result != "ok" && result != "not configured" {
			status = "unhealthy"
			statusCode = http.StatusServiceUnavailable
		}
	}

	c.IndentedJSON(statusCode, HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	})
}

func (h *HealthController) databaseCheck() string {
	if h.db == nil {
		return "not configured"
	}

	sqlDB, err := h.db.DB.DB()
	if err != nil {
		return "error: " + err.Error()
	}
	if err := sqlDB.Ping(); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
