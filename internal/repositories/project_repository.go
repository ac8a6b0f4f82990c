package repositories

import (
	"errors"

	"archway_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectFilters narrows project listings.
type ProjectFilters struct {
	Category string
	Status   string
	Year     int
}

type ProjectRepository interface {
	Create(db *gorm.DB, project *models.Project) error
	FindByID(db *gorm.DB, id string) (*models.Project, error)
	FindAll(db *gorm.DB, filters *ProjectFilters) ([]models.Project, error)
	// FindWithLocalMedia returns projects that still reference at least one
	// locally stored file. A coarse JSON text match; callers re-check each
	// reference's mode.
	FindWithLocalMedia(db *gorm.DB) ([]models.Project, error)
	Update(db *gorm.DB, project *models.Project) error
	Delete(db *gorm.DB, id string) error
}

type projectRepository struct{}

func NewProjectRepository() ProjectRepository {
	return &projectRepository{}
}

func (r *projectRepository) Create(db *gorm.DB, project *models.Project) error {
	return db.Create(project).Error
}

func (r *projectRepository) FindByID(db *gorm.DB, id string) (*models.Project, error) {
	var project models.Project
	if err := db.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) FindAll(db *gorm.DB, filters *ProjectFilters) ([]models.Project, error) {
	query := db.Model(&models.Project{})

	if filters != nil {
		if filters.Category != "" {
			query = query.Where("category = ?", filters.Category)
		}
		if filters.Status != "" {
			query = query.Where("status = ?", filters.Status)
		}
		if filters.Year != 0 {
			query = query.Where("year = ?", filters.Year)
		}
	}

	var projects []models.Project
	if err := query.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) FindWithLocalMedia(db *gorm.DB) ([]models.Project, error) {
	var projects []models.Project
	pattern := "%" + models.LocalURLPrefix + "%"
	err := db.
		Where("images::text LIKE ? OR videos::text LIKE ?", pattern, pattern).
		Order("created_at ASC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) Update(db *gorm.DB, project *models.Project) error {
	return db.Save(project).Error
}

func (r *projectRepository) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Project{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}
