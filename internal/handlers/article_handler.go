package handlers

import (
	"net/http"

	"archway_backend/internal/middleware"
	"archway_backend/internal/repositories"
	"archway_backend/internal/services"
	"archway_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	*BaseHandler
	articleService services.ArticleService
}

func NewArticleHandler(base *BaseHandler, articleService services.ArticleService) *ArticleHandler {
	return &ArticleHandler{
		BaseHandler:    base,
		articleService: articleService,
	}
}

func (h *ArticleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/articles")
	{
		public.GET("", h.List)
		public.GET("/:id", h.Get)
	}

	protected := rg.Group("/articles")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", h.Create)
		protected.PUT("/:id", h.Update)
		protected.DELETE("/:id", h.Delete)
	}
}

func (h *ArticleHandler) Create(c *gin.Context) {
	var req dto.CreateArticleRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	form, _ := c.MultipartForm()
	db := h.GetDB(c)

	article, err := h.articleService.Create(c.Request.Context(), db, &req, form)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "article": article})
}

func (h *ArticleHandler) List(c *gin.Context) {
	filters := &repositories.ArticleFilters{
		Category: c.Query("category"),
		Author:   c.Query("author"),
	}

	db := h.GetDB(c)

	articles, err := h.articleService.List(db, filters)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "articles": articles})
}

func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := h.RequireID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	article, err := h.articleService.Get(db, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "article": article})
}

func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := h.RequireID(c)
	if !ok {
		return
	}

	var req dto.UpdateArticleRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	form, _ := c.MultipartForm()
	db := h.GetDB(c)

	article, err := h.articleService.Update(c.Request.Context(), db, id, &req, form)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "article": article})
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := h.RequireID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.articleService.Delete(c.Request.Context(), db, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Article deleted"})
}
