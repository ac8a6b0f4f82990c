package services

import (
	"context"
	"mime/multipart"

	"archway_backend/internal/logger"
	"archway_backend/internal/models"
	"archway_backend/internal/repositories"
	"archway_backend/internal/services/dto"
	"archway_backend/internal/uploader"
	"archway_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProjectService interface {
	Create(ctx context.Context, db *gorm.DB, req *dto.CreateProjectRequest, form *multipart.Form) (*models.Project, error)
	List(db *gorm.DB, filters *repositories.ProjectFilters) ([]models.Project, error)
	Get(db *gorm.DB, id string) (*models.Project, error)
	Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateProjectRequest, form *multipart.Form) (*models.Project, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
}

type projectService struct {
	repo     repositories.ProjectRepository
	ingestor *uploader.Ingestor
	cleaner  *uploader.Cleaner
}

func NewProjectService(repo repositories.ProjectRepository, ingestor *uploader.Ingestor, cleaner *uploader.Cleaner) ProjectService {
	return &projectService{
		repo:     repo,
		ingestor: ingestor,
		cleaner:  cleaner,
	}
}

func (s *projectService) Create(ctx context.Context, db *gorm.DB, req *dto.CreateProjectRequest, form *multipart.Form) (*models.Project, error) {
	spec := uploader.ProjectForm

	images, err := uploader.Collect(ctx, s.ingestor.Ingest(ctx, form, spec.Folder, spec.Fields[0], req.Captions))
	if err != nil {
		return nil, err
	}
	videos, err := uploader.Collect(ctx, s.ingestor.Ingest(ctx, form, spec.Folder, spec.Fields[1], req.VideoCaptions))
	if err != nil {
		return nil, err
	}

	status := models.ProjectStatus(req.Status)
	if status == "" {
		status = models.ProjectStatusPublished
	}

	project := &models.Project{
		Name:        req.Name,
		Category:    req.Category,
		Location:    req.Location,
		Client:      req.Client,
		Year:        req.Year,
		Description: req.Description,
		Status:      status,
		Images:      images,
		Videos:      videos,
	}

	if err := s.repo.Create(db, project); err != nil {
		// The record never existed, so the freshly stored files must not
		// outlive it.
		s.cleaner.Remove(ctx, images...)
		s.cleaner.Remove(ctx, videos...)
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "project created", "id", project.ID, "images", len(images), "videos", len(videos))
	return project, nil
}

func (s *projectService) List(db *gorm.DB, filters *repositories.ProjectFilters) ([]models.Project, error) {
	projects, err := s.repo.FindAll(db, filters)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return projects, nil
}

func (s *projectService) Get(db *gorm.DB, id string) (*models.Project, error) {
	project, err := s.repo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.NewNotFoundError("Project not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateProjectRequest, form *multipart.Form) (*models.Project, error) {
	project, err := s.Get(db, id)
	if err != nil {
		return nil, err
	}

	keptImages, removedImages, err := retainMedia(project.Images, req.ExistingImageIDs, req.ExistingCaptions)
	if err != nil {
		return nil, err
	}
	keptVideos, removedVideos, err := retainMedia(project.Videos, req.ExistingVideoIDs, req.ExistingVideoCaptions)
	if err != nil {
		return nil, err
	}

	spec := uploader.ProjectForm
	newImages, err := uploader.Collect(ctx, s.ingestor.Ingest(ctx, form, spec.Folder, spec.Fields[0], req.Captions))
	if err != nil {
		return nil, err
	}
	newVideos, err := uploader.Collect(ctx, s.ingestor.Ingest(ctx, form, spec.Folder, spec.Fields[1], req.VideoCaptions))
	if err != nil {
		return nil, err
	}

	project.Name = req.Name
	project.Category = req.Category
	project.Location = req.Location
	project.Client = req.Client
	project.Year = req.Year
	project.Description = req.Description
	if req.Status != "" {
		project.Status = models.ProjectStatus(req.Status)
	}
	project.Images = append(keptImages, newImages...)
	project.Videos = append(keptVideos, newVideos...)

	if err := s.repo.Update(db, project); err != nil {
		s.cleaner.Remove(ctx, newImages...)
		s.cleaner.Remove(ctx, newVideos...)
		return nil, apperrors.InternalError(err)
	}

	// The saved document no longer references these, delete after commit.
	s.cleaner.Remove(ctx, removedImages...)
	s.cleaner.Remove(ctx, removedVideos...)

	logger.CtxInfo(ctx, "project updated", "id", project.ID,
		"removed_media", len(removedImages)+len(removedVideos),
		"added_media", len(newImages)+len(newVideos),
	)
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, db *gorm.DB, id string) error {
	project, err := s.Get(db, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(db, id); err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return apperrors.NewNotFoundError("Project not found")
		}
		return apperrors.InternalError(err)
	}

	// Record is gone; release every owned file, local or remote.
	s.cleaner.RemoveLists(ctx, project.MediaLists()...)

	logger.CtxInfo(ctx, "project deleted", "id", id)
	return nil
}
