package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SearchHealth reports search engine reachability.
type SearchHealth interface {
	Healthy() bool
}

type healthHandler struct {
	db     Pinger
	search SearchHealth
}

func (h *healthHandler) check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	body := gin.H{"status": "ok", "time": time.Now().UTC()}
	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["database"] = "unreachable"
		} else {
			body["database"] = "ok"
		}
	}
	if h.search != nil {
		// the database fallback keeps search working, so this does not degrade health
		if h.search.Healthy() {
			body["search"] = "ok"
		} else {
			body["search"] = "unreachable"
		}
	}
	c.JSON(status, body)
}
