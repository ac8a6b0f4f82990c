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

type BlogService interface {
	Create(ctx context.Context, db *gorm.DB, req *dto.CreateBlogPostRequest, form *multipart.Form) (*models.BlogPost, error)
	List(db *gorm.DB, filters *repositories.BlogFilters) ([]models.BlogPost, error)
	Get(db *gorm.DB, id string) (*models.BlogPost, error)
	Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateBlogPostRequest, form *multipart.Form) (*models.BlogPost, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
}

type blogService struct {
	repo     repositories.BlogRepository
	ingestor *uploader.Ingestor
	cleaner  *uploader.Cleaner
}

func NewBlogService(repo repositories.BlogRepository, ingestor *uploader.Ingestor, cleaner *uploader.Cleaner) BlogService {
	return &blogService{
		repo:     repo,
		ingestor: ingestor,
		cleaner:  cleaner,
	}
}

func (s *blogService) Create(ctx context.Context, db *gorm.DB, req *dto.CreateBlogPostRequest, form *multipart.Form) (*models.BlogPost, error) {
	eventDate, err := parseOptionalTime(req.EventDate, "event_date")
	if err != nil {
		return nil, err
	}

	spec := uploader.BlogForm
	images, err := uploader.Collect(ctx, s.ingestor.Ingest(ctx, form, spec.Folder, spec.Fields[0], req.Captions))
	if err != nil {
		return nil, err
	}
	videos, err := uploader.Collect(ctx, s.ingestor.Ingest(ctx, form, spec.Folder, spec.Fields[1], req.VideoCaptions))
	if err != nil {
		return nil, err
	}

	postType := models.BlogPostType(req.Type)
	if postType == "" {
		postType = models.BlogPostTypeBlog
	}

	post := &models.BlogPost{
		Title:     req.Title,
		Type:      postType,
		Body:      req.Body,
		EventDate: eventDate,
		Images:    images,
		Videos:    videos,
	}

	if err := s.repo.Create(db, post); err != nil {
		s.cleaner.Remove(ctx, images...)
		s.cleaner.Remove(ctx, videos...)
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "blog post created", "id", post.ID, "type", post.Type)
	return post, nil
}

func (s *blogService) List(db *gorm.DB, filters *repositories.BlogFilters) ([]models.BlogPost, error) {
	posts, err := s.repo.FindAll(db, filters)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return posts, nil
}

func (s *blogService) Get(db *gorm.DB, id string) (*models.BlogPost, error) {
	post, err := s.repo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBlogPostNotFound) {
			return nil, apperrors.NewNotFoundError("Blog post not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return post, nil
}

func (s *blogService) Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateBlogPostRequest, form *multipart.Form) (*models.BlogPost, error) {
	post, err := s.Get(db, id)
	if err != nil {
		return nil, err
	}

	eventDate, err := parseOptionalTime(req.EventDate, "event_date")
	if err != nil {
		return nil, err
	}

	keptImages, removedImages, err := retainMedia(post.Images, req.ExistingImageIDs, req.ExistingCaptions)
	if err != nil {
		return nil, err
	}
	keptVideos, removedVideos, err := retainMedia(post.Videos, req.ExistingVideoIDs, req.ExistingVideoCaptions)
	if err != nil {
		return nil, err
	}

	spec := uploader.BlogForm
	newImages, err := uploader.Collect(ctx, s.ingestor.Ingest(ctx, form, spec.Folder, spec.Fields[0], req.Captions))
	if err != nil {
		return nil, err
	}
	newVideos, err := uploader.Collect(ctx, s.ingestor.Ingest(ctx, form, spec.Folder, spec.Fields[1], req.VideoCaptions))
	if err != nil {
		return nil, err
	}

	post.Title = req.Title
	if req.Type != "" {
		post.Type = models.BlogPostType(req.Type)
	}
	post.Body = req.Body
	post.EventDate = eventDate
	post.Images = append(keptImages, newImages...)
	post.Videos = append(keptVideos, newVideos...)

	if err := s.repo.Update(db, post); err != nil {
		s.cleaner.Remove(ctx, newImages...)
		s.cleaner.Remove(ctx, newVideos...)
		return nil, apperrors.InternalError(err)
	}

	s.cleaner.Remove(ctx, removedImages...)
	s.cleaner.Remove(ctx, removedVideos...)

	logger.CtxInfo(ctx, "blog post updated", "id", post.ID)
	return post, nil
}

func (s *blogService) Delete(ctx context.Context, db *gorm.DB, id string) error {
	post, err := s.Get(db, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(db, id); err != nil {
		if apperrors.Is(err, repositories.ErrBlogPostNotFound) {
			return apperrors.NewNotFoundError("Blog post not found")
		}
		return apperrors.InternalError(err)
	}

	s.cleaner.RemoveLists(ctx, post.MediaLists()...)

	logger.CtxInfo(ctx, "blog post deleted", "id", id)
	return nil
}
