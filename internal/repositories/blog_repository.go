package repositories

import (
	"errors"

	"archway_backend/internal/models"

	"gorm.io/gorm"
)

var ErrBlogPostNotFound = errors.New("blog post not found")

type BlogFilters struct {
	Type string // blog or event
}

type BlogRepository interface {
	Create(db *gorm.DB, post *models.BlogPost) error
	FindByID(db *gorm.DB, id string) (*models.BlogPost, error)
	FindAll(db *gorm.DB, filters *BlogFilters) ([]models.BlogPost, error)
	FindWithLocalMedia(db *gorm.DB) ([]models.BlogPost, error)
	Update(db *gorm.DB, post *models.BlogPost) error
	Delete(db *gorm.DB, id string) error
}

type blogRepository struct{}

func NewBlogRepository() BlogRepository {
	return &blogRepository{}
}

func (r *blogRepository) Create(db *gorm.DB, post *models.BlogPost) error {
	return db.Create(post).Error
}

func (r *blogRepository) FindByID(db *gorm.DB, id string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *blogRepository) FindAll(db *gorm.DB, filters *BlogFilters) ([]models.BlogPost, error) {
	query := db.Model(&models.BlogPost{})

	if filters != nil && filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}

	var posts []models.BlogPost
	if err := query.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *blogRepository) FindWithLocalMedia(db *gorm.DB) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	pattern := "%" + models.LocalURLPrefix + "%"
	err := db.
		Where("images::text LIKE ? OR videos::text LIKE ?", pattern, pattern).
		Order("created_at ASC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *blogRepository) Update(db *gorm.DB, post *models.BlogPost) error {
	return db.Save(post).Error
}

func (r *blogRepository) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.BlogPost{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBlogPostNotFound
	}
	return nil
}
