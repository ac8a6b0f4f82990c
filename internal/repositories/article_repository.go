package repositories

import (
	"errors"

	"archway_backend/internal/models"

	"gorm.io/gorm"
)

var ErrArticleNotFound = errors.New("article not found")

type ArticleFilters struct {
	Category string
	Author   string
}

type ArticleRepository interface {
	Create(db *gorm.DB, article *models.Article) error
	FindByID(db *gorm.DB, id string) (*models.Article, error)
	FindAll(db *gorm.DB, filters *ArticleFilters) ([]models.Article, error)
	FindWithLocalMedia(db *gorm.DB) ([]models.Article, error)
	Update(db *gorm.DB, article *models.Article) error
	Delete(db *gorm.DB, id string) error
}

type articleRepository struct{}

func NewArticleRepository() ArticleRepository {
	return &articleRepository{}
}

func (r *articleRepository) Create(db *gorm.DB, article *models.Article) error {
	return db.Create(article).Error
}

func (r *articleRepository) FindByID(db *gorm.DB, id string) (*models.Article, error) {
	var article models.Article
	if err := db.First(&article, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) FindAll(db *gorm.DB, filters *ArticleFilters) ([]models.Article, error) {
	query := db.Model(&models.Article{})

	if filters != nil {
		if filters.Category != "" {
			query = query.Where("category = ?", filters.Category)
		}
		if filters.Author != "" {
			query = query.Where("author = ?", filters.Author)
		}
	}

	var articles []models.Article
	if err := query.Order("created_at DESC").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) FindWithLocalMedia(db *gorm.DB) ([]models.Article, error) {
	var articles []models.Article
	pattern := "%" + models.LocalURLPrefix + "%"
	err := db.
		Where("images::text LIKE ?", pattern).
		Order("created_at ASC").
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) Update(db *gorm.DB, article *models.Article) error {
	return db.Save(article).Error
}

func (r *articleRepository) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Article{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrArticleNotFound
	}
	return nil
}
