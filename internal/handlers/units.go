package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/catalog"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/filter"
)

func (h *PropertyHandler) ListUnits(c *gin.Context) {
	units, err := h.svc.ListUnits(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": units, "count": len(units)})
}

func (h *PropertyHandler) CreateUnit(c *gin.Context) {
	var in catalog.UnitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	unit, err := h.svc.CreateUnit(c.Request.Context(), c.Param("id"), callerID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, unit)
}

func (h *PropertyHandler) GetUnit(c *gin.Context) {
	unit, err := h.svc.GetUnit(c.Request.Context(), c.Param("id"), c.Param("unitId"), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

func (h *PropertyHandler) UpdateUnit(c *gin.Context) {
	var patch catalog.UnitPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	unit, err := h.svc.UpdateUnit(c.Request.Context(), c.Param("id"), c.Param("unitId"), callerID(c), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

func (h *PropertyHandler) DeleteUnit(c *gin.Context) {
	if err := h.svc.DeleteUnit(c.Request.Context(), c.Param("id"), c.Param("unitId"), callerID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchUnits handles GET /units/search
func (h *PropertyHandler) SearchUnits(c *gin.Context) {
	var criteria filter.UnitCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		badRequest(c, err)
		return
	}
	q, ok := bindPage(c)
	if !ok {
		return
	}
	page, err := h.svc.SearchUnits(c.Request.Context(), criteria, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
