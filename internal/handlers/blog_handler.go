package handlers

import (
	"net/http"

	"archway_backend/internal/middleware"
	"archway_backend/internal/repositories"
	"archway_backend/internal/services"
	"archway_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	*BaseHandler
	blogService services.BlogService
}

func NewBlogHandler(base *BaseHandler, blogService services.BlogService) *BlogHandler {
	return &BlogHandler{
		BaseHandler: base,
		blogService: blogService,
	}
}

func (h *BlogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/blog")
	{
		public.GET("", h.List)
		public.GET("/:id", h.Get)
	}

	protected := rg.Group("/blog")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", h.Create)
		protected.PUT("/:id", h.Update)
		protected.DELETE("/:id", h.Delete)
	}
}

func (h *BlogHandler) Create(c *gin.Context) {
	var req dto.CreateBlogPostRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	form, _ := c.MultipartForm()
	db := h.GetDB(c)

	post, err := h.blogService.Create(c.Request.Context(), db, &req, form)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "post": post})
}

func (h *BlogHandler) List(c *gin.Context) {
	filters := &repositories.BlogFilters{
		Type: c.Query("type"),
	}

	db := h.GetDB(c)

	posts, err := h.blogService.List(db, filters)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}

func (h *BlogHandler) Get(c *gin.Context) {
	id, ok := h.RequireID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	post, err := h.blogService.Get(db, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

func (h *BlogHandler) Update(c *gin.Context) {
	id, ok := h.RequireID(c)
	if !ok {
		return
	}

	var req dto.UpdateBlogPostRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	form, _ := c.MultipartForm()
	db := h.GetDB(c)

	post, err := h.blogService.Update(c.Request.Context(), db, id, &req, form)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

func (h *BlogHandler) Delete(c *gin.Context) {
	id, ok := h.RequireID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.blogService.Delete(c.Request.Context(), db, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post deleted"})
}
