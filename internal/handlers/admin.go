package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/catalog"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/cleanup"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/logging"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/ratelimit"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/scheduler"
)

// AdminHandler handles operator requests
type AdminHandler struct {
	catalog   *catalog.Service
	cleanup   *cleanup.Service
	scheduler *scheduler.Scheduler
	limiter   *ratelimit.Limiter
	defaults  cleanup.CleanupConfig
}

// NewAdminHandler creates a new admin handler. Any dependency may be nil;
// the routes using it then answer 503.
func NewAdminHandler(svc *catalog.Service, cl *cleanup.Service, sched *scheduler.Scheduler,
	limiter *ratelimit.Limiter, defaults cleanup.CleanupConfig) *AdminHandler {
	return &AdminHandler{
		catalog:   svc,
		cleanup:   cl,
		scheduler: sched,
		limiter:   limiter,
		defaults:  defaults,
	}
}

func unavailable(c *gin.Context, what string) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": what + " not available"})
}

// GetDeleteStats returns purge statistics
func (h *AdminHandler) GetDeleteStats(c *gin.Context) {
	if h.cleanup == nil {
		unavailable(c, "cleanup")
		return
	}
	stats, err := h.cleanup.GetDeleteStats(c.Request.Context(), h.defaults.RetentionDays)
	if err != nil {
		logging.FromContext(c.Request.Context()).Error("Failed to get delete stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": catalog.ErrStorage.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// RunCleanup executes physical deletion of long soft-deleted properties
func (h *AdminHandler) RunCleanup(c *gin.Context) {
	if h.cleanup == nil {
		unavailable(c, "cleanup")
		return
	}
	var req struct {
		RetentionDays    int   `json:"retention_days" binding:"gte=0"`
		MaxDeletionCount int   `json:"max_deletion_count" binding:"gte=0"`
		DryRun           *bool `json:"dry_run"` // defaults to true
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	cfg := h.defaults
	if req.RetentionDays > 0 {
		cfg.RetentionDays = req.RetentionDays
	}
	if req.MaxDeletionCount > 0 {
		cfg.MaxDeletionCount = req.MaxDeletionCount
	}
	cfg.DryRun = req.DryRun == nil || *req.DryRun

	logger := logging.FromContext(c.Request.Context())
	logger.Info("Admin: running cleanup",
		"retention_days", cfg.RetentionDays, "max", cfg.MaxDeletionCount, "dry_run", cfg.DryRun)

	result, err := h.cleanup.PhysicallyDelete(c.Request.Context(), cfg)
	if err != nil {
		logger.Error("Admin: cleanup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetDeleteLogs returns recent delete log entries
func (h *AdminHandler) GetDeleteLogs(c *gin.Context) {
	if h.cleanup == nil {
		unavailable(c, "cleanup")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 {
		limit = 100
	}
	logs, err := h.cleanup.GetRecentDeleteLogs(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": catalog.ErrStorage.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"count": len(logs),
	})
}

// TriggerJob starts a scheduler job in the background
func (h *AdminHandler) TriggerJob(c *gin.Context) {
	if h.scheduler == nil {
		unavailable(c, "scheduler")
		return
	}
	name := c.Param("name")
	switch name {
	case scheduler.JobFeaturedSweep, scheduler.JobPurge, scheduler.JobPrune:
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown job " + name})
		return
	}

	logger := logging.FromContext(c.Request.Context())
	go func() {
		ctx := logging.WithContext(context.Background(), logger)
		if err := h.scheduler.RunNow(ctx, name); err != nil {
			logger.Error("Admin: manual job failed", "job", name, "error", err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"job":    name,
		"status": "running",
	})
}

// Reindex rebuilds the search index from the database
func (h *AdminHandler) Reindex(c *gin.Context) {
	n, err := h.catalog.Reindex(c.Request.Context())
	if errors.Is(err, catalog.ErrNoIndex) {
		unavailable(c, "search index")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"indexed": n})
}

// GetRateLimitStats returns limiter state, optionally for one caller
func (h *AdminHandler) GetRateLimitStats(c *gin.Context) {
	if h.limiter == nil {
		unavailable(c, "rate limiter")
		return
	}
	c.JSON(http.StatusOK, h.limiter.GetStats(c.Query("caller")))
}
