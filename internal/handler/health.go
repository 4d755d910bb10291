package handler // declare the package name; contains HTTP handlers

import (
	"context"      // context bounds the health ping
	"database/sql" // sql.DB for the database ping
	"net/http"     // net/http provides status codes and response helpers
	"time"         // ping timeout

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// HealthHandler reports service health for load balancers and
// monitoring systems. The API itself is always "ok" when this code
// runs; the database is pinged with a short timeout.
type HealthHandler struct {
	DB *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler { return &HealthHandler{DB: db} }

// Health returns 200 when every service is reachable and 503 otherwise.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	dbStatus := "ok"
	code := http.StatusOK
	if err := h.DB.PingContext(ctx); err != nil {
		status = "degraded"
		dbStatus = "unreachable"
		code = http.StatusServiceUnavailable
	}

	return c.JSON(code, echo.Map{
		"status": status,
		"services": echo.Map{
			"api":      "ok",
			"database": dbStatus,
		},
	})
}
