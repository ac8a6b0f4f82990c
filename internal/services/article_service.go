package services

import (
	"context"
	"mime/multipart"
	"time"

	"archway_backend/internal/logger"
	"archway_backend/internal/models"
	"archway_backend/internal/repositories"
	"archway_backend/internal/services/dto"
	"archway_backend/internal/uploader"
	"archway_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ArticleService interface {
	Create(ctx context.Context, db *gorm.DB, req *dto.CreateArticleRequest, form *multipart.Form) (*models.Article, error)
	List(db *gorm.DB, filters *repositories.ArticleFilters) ([]models.Article, error)
	Get(db *gorm.DB, id string) (*models.Article, error)
	Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateArticleRequest, form *multipart.Form) (*models.Article, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
}

type articleService struct {
	repo     repositories.ArticleRepository
	ingestor *uploader.Ingestor
	cleaner  *uploader.Cleaner
}

func NewArticleService(repo repositories.ArticleRepository, ingestor *uploader.Ingestor, cleaner *uploader.Cleaner) ArticleService {
	return &articleService{
		repo:     repo,
		ingestor: ingestor,
		cleaner:  cleaner,
	}
}

func (s *articleService) Create(ctx context.Context, db *gorm.DB, req *dto.CreateArticleRequest, form *multipart.Form) (*models.Article, error) {
	publishedAt, err := parseOptionalTime(req.PublishedAt, "published_at")
	if err != nil {
		return nil, err
	}

	spec := uploader.ArticleForm
	images, err := uploader.Collect(ctx, s.ingestor.Ingest(ctx, form, spec.Folder, spec.Fields[0], req.Captions))
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		Summary:     req.Summary,
		Body:        req.Body,
		PublishedAt: publishedAt,
		Images:      images,
	}

	if err := s.repo.Create(db, article); err != nil {
		s.cleaner.Remove(ctx, images...)
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "article created", "id", article.ID, "images", len(images))
	return article, nil
}

func (s *articleService) List(db *gorm.DB, filters *repositories.ArticleFilters) ([]models.Article, error) {
	articles, err := s.repo.FindAll(db, filters)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return articles, nil
}

func (s *articleService) Get(db *gorm.DB, id string) (*models.Article, error) {
	article, err := s.repo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrArticleNotFound) {
			return nil, apperrors.NewNotFoundError("Article not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return article, nil
}

func (s *articleService) Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateArticleRequest, form *multipart.Form) (*models.Article, error) {
	article, err := s.Get(db, id)
	if err != nil {
		return nil, err
	}

	publishedAt, err := parseOptionalTime(req.PublishedAt, "published_at")
	if err != nil {
		return nil, err
	}

	kept, removed, err := retainMedia(article.Images, req.ExistingImageIDs, req.ExistingCaptions)
	if err != nil {
		return nil, err
	}

	spec := uploader.ArticleForm
	newImages, err := uploader.Collect(ctx, s.ingestor.Ingest(ctx, form, spec.Folder, spec.Fields[0], req.Captions))
	if err != nil {
		return nil, err
	}

	article.Title = req.Title
	article.Author = req.Author
	article.Category = req.Category
	article.Summary = req.Summary
	article.Body = req.Body
	article.PublishedAt = publishedAt
	article.Images = append(kept, newImages...)

	if err := s.repo.Update(db, article); err != nil {
		s.cleaner.Remove(ctx, newImages...)
		return nil, apperrors.InternalError(err)
	}

	s.cleaner.Remove(ctx, removed...)

	logger.CtxInfo(ctx, "article updated", "id", article.ID,
		"removed_media", len(removed), "added_media", len(newImages))
	return article, nil
}

func (s *articleService) Delete(ctx context.Context, db *gorm.DB, id string) error {
	article, err := s.Get(db, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(db, id); err != nil {
		if apperrors.Is(err, repositories.ErrArticleNotFound) {
			return apperrors.NewNotFoundError("Article not found")
		}
		return apperrors.InternalError(err)
	}

	s.cleaner.RemoveLists(ctx, article.MediaLists()...)

	logger.CtxInfo(ctx, "article deleted", "id", id)
	return nil
}

// parseOptionalTime parses an optional RFC3339 form value.
func parseOptionalTime(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid " + field + " format, expected RFC3339")
	}
	return &t, nil
}
