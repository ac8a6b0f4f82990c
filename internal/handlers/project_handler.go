package handlers

import (
	"net/http"
	"strconv"

	"archway_backend/internal/middleware"
	"archway_backend/internal/repositories"
	"archway_backend/internal/services"
	"archway_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	*BaseHandler
	projectService services.ProjectService
}

func NewProjectHandler(base *BaseHandler, projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		BaseHandler:    base,
		projectService: projectService,
	}
}

// RegisterRoutes exposes project reads publicly and writes behind auth.
func (h *ProjectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/projects")
	{
		public.GET("", h.List)
		public.GET("/:id", h.Get)
	}

	protected := rg.Group("/projects")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", h.Create)
		protected.PUT("/:id", h.Update)
		protected.DELETE("/:id", h.Delete)
	}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	form, _ := c.MultipartForm()
	db := h.GetDB(c)

	project, err := h.projectService.Create(c.Request.Context(), db, &req, form)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "project": project})
}

func (h *ProjectHandler) List(c *gin.Context) {
	filters := &repositories.ProjectFilters{
		Category: c.Query("category"),
		Status:   c.Query("status"),
	}
	if yearStr := c.Query("year"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			filters.Year = year
		}
	}

	db := h.GetDB(c)

	projects, err := h.projectService.List(db, filters)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "projects": projects})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := h.RequireID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	project, err := h.projectService.Get(db, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "project": project})
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := h.RequireID(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	form, _ := c.MultipartForm()
	db := h.GetDB(c)

	project, err := h.projectService.Update(c.Request.Context(), db, id, &req, form)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "project": project})
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := h.RequireID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.projectService.Delete(c.Request.Context(), db, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Project deleted"})
}
