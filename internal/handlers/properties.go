package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/catalog"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/filter"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/pagination"
)

// PropertyHandler serves properties, units and images.
type PropertyHandler struct {
	svc *catalog.Service
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(svc *catalog.Service) *PropertyHandler {
	return &PropertyHandler{svc: svc}
}

type pageParams struct {
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
	Sort  string `form:"sort"`
	Order string `form:"order"`
}

func bindPage(c *gin.Context) (pagination.Query, bool) {
	var p pageParams
	if err := c.ShouldBindQuery(&p); err != nil {
		badRequest(c, err)
		return pagination.Query{}, false
	}
	return pagination.Resolve(p.Page, p.Limit, p.Sort, p.Order), true
}

// CreateProperty handles POST /properties
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	var in catalog.PropertyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	agg, err := h.svc.CreateProperty(c.Request.Context(), callerID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, agg)
}

// GetProperty handles GET /properties/:id and counts a view
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	agg, err := h.svc.GetProperty(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, agg)
}

// UpdateProperty handles PUT /properties/:id. Only members present in the body change.
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	var patch catalog.PropertyPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	agg, err := h.svc.UpdateProperty(c.Request.Context(), c.Param("id"), callerID(c), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, agg)
}

// DeleteProperty handles DELETE /properties/:id
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	if err := h.svc.DeleteProperty(c.Request.Context(), c.Param("id"), callerID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchProperties handles GET /properties/search
func (h *PropertyHandler) SearchProperties(c *gin.Context) {
	var criteria filter.PropertyCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		badRequest(c, err)
		return
	}
	q, ok := bindPage(c)
	if !ok {
		return
	}
	page, err := h.svc.SearchProperties(c.Request.Context(), criteria, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// MyProperties handles GET /properties/my-properties
func (h *PropertyHandler) MyProperties(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}
	page, err := h.svc.ListByOwner(c.Request.Context(), callerID(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Statistics handles GET /properties/statistics
func (h *PropertyHandler) Statistics(c *gin.Context) {
	stats, err := h.svc.GetStatistics(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// OwnerProperties handles GET /properties/owner/:ownerId. Other callers only
// see the owner's published listings.
func (h *PropertyHandler) OwnerProperties(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}
	ownerID := c.Param("ownerId")
	var (
		page pagination.Page[catalog.Aggregate]
		err  error
	)
	if ownerID == callerID(c) {
		page, err = h.svc.ListByOwner(c.Request.Context(), ownerID, q)
	} else {
		published := models.PropertyStatusPublished
		page, err = h.svc.SearchProperties(c.Request.Context(), filter.PropertyCriteria{OwnerID: ownerID, Status: &published}, q)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// OwnerStatistics handles GET /properties/owner/:ownerId/statistics
func (h *PropertyHandler) OwnerStatistics(c *gin.Context) {
	stats, err := h.svc.GetStatistics(c.Request.Context(), c.Param("ownerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
