package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aavkar_pos/internal/backend"
	"aavkar_pos/internal/leads"
)

// GET /api/leads
func (h *Handler) ListLeads(c *gin.Context) {
	page, err := h.leads.List(c.Request.Context(), leads.ListParams{
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
		Search: c.Query("search"),
		Status: c.Query("status"),
	})
	if err != nil {
		h.fail(c, err, "could not load leads")
		return
	}
	views := make([]leads.View, 0, len(page.Results))
	for _, l := range page.Results {
		views = append(views, leads.NewView(l))
	}
	c.JSON(http.StatusOK, gin.H{"results": views, "total": page.Total})
}

// GET /api/leads/:id
func (h *Handler) GetLead(c *gin.Context) {
	l, err := h.leads.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if backend.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lead not found"})
			return
		}
		h.fail(c, err, "could not load lead")
		return
	}
	c.JSON(http.StatusOK, leads.NewView(l))
}
