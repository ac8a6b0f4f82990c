package handlers

import (
	"net/http"

	"archway_backend/internal/middleware"
	"archway_backend/internal/services"
	"archway_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	*BaseHandler
	contactService services.ContactService
}

func NewContactHandler(base *BaseHandler, contactService services.ContactService) *ContactHandler {
	return &ContactHandler{
		BaseHandler:    base,
		contactService: contactService,
	}
}

// RegisterRoutes exposes the public submission endpoint and the admin-only
// inbox.
func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/contact", h.Submit)

	protected := rg.Group("/contact")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("", h.List)
		protected.PUT("/:id/handled", h.MarkHandled)
	}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.ContactRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	message, err := h.contactService.Submit(c.Request.Context(), db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message_id": message.ID})
}

func (h *ContactHandler) List(c *gin.Context) {
	db := h.GetDB(c)

	messages, err := h.contactService.List(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "messages": messages})
}

func (h *ContactHandler) MarkHandled(c *gin.Context) {
	id, ok := h.RequireID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.contactService.MarkHandled(db, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Marked as handled"})
}
