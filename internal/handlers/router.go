package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/config"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/ratelimit"
)

// Routes bundles what the HTTP surface needs.
type Routes struct {
	Properties  *PropertyHandler
	Admin       *AdminHandler // optional
	AdminAccess config.AdminConfig
	Limiter     *ratelimit.Limiter
	DB          Pinger
	Search      SearchHealth // optional
	Logger      *slog.Logger
	LogRequests bool
}

// Register mounts the catalog API on r.
func Register(r *gin.Engine, rt Routes) {
	if rt.Logger == nil {
		rt.Logger = slog.Default()
	}
	r.Use(RequestLogger(rt.Logger, rt.LogRequests))

	health := &healthHandler{db: rt.DB, search: rt.Search}
	r.GET("/health", health.check)

	var limit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if rt.Limiter != nil {
		limit = ratelimit.Middleware(rt.Limiter)
	}

	api := r.Group("/api/v1")
	api.GET("/health", health.check)

	h := rt.Properties
	authed := api.Group("", RequireCaller())
	{
		props := authed.Group("/properties")
		props.POST("", limit, h.CreateProperty)
		props.GET("/search", h.SearchProperties)
		props.GET("/my-properties", h.MyProperties)
		props.GET("/statistics", h.Statistics)
		props.GET("/owner/:ownerId", h.OwnerProperties)
		props.GET("/owner/:ownerId/statistics", RequireSelfOrAdmin("ownerId", rt.AdminAccess), h.OwnerStatistics)
		props.GET("/:id", h.GetProperty)
		props.PUT("/:id", limit, h.UpdateProperty)
		props.DELETE("/:id", limit, h.DeleteProperty)

		props.GET("/:id/units", h.ListUnits)
		props.POST("/:id/units", limit, h.CreateUnit)
		props.GET("/:id/units/:unitId", h.GetUnit)
		props.PUT("/:id/units/:unitId", limit, h.UpdateUnit)
		props.DELETE("/:id/units/:unitId", limit, h.DeleteUnit)

		props.GET("/:id/images", h.ListImages)
		props.POST("/:id/images", limit, h.UploadImage)
		props.POST("/:id/images/batch", limit, h.UploadImages)
		props.DELETE("/:id/images/:imageId", limit, h.DeleteImage)
		props.PUT("/:id/images/:imageId/primary", limit, h.SetPrimaryImage)

		authed.GET("/units/search", h.SearchUnits)
	}

	if rt.Admin != nil {
		admin := api.Group("/admin", RequireCaller(), RequireAdmin(rt.AdminAccess))
		{
			admin.GET("/cleanup/stats", rt.Admin.GetDeleteStats)
			admin.POST("/cleanup/run", rt.Admin.RunCleanup)
			admin.GET("/cleanup/logs", rt.Admin.GetDeleteLogs)
			admin.POST("/jobs/:name", rt.Admin.TriggerJob)
			admin.POST("/search/reindex", rt.Admin.Reindex)
			admin.GET("/ratelimit/stats", rt.Admin.GetRateLimitStats)
		}
	}
}
