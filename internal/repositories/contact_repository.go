package repositories

import (
	"errors"

	"archway_backend/internal/models"

	"gorm.io/gorm"
)

var ErrContactMessageNotFound = errors.New("contact message not found")

type ContactRepository interface {
	Create(db *gorm.DB, msg *models.ContactMessage) error
	FindAll(db *gorm.DB) ([]models.ContactMessage, error)
	MarkHandled(db *gorm.DB, id string) error
}

type contactRepository struct{}

func NewContactRepository() ContactRepository {
	return &contactRepository{}
}

func (r *contactRepository) Create(db *gorm.DB, msg *models.ContactMessage) error {
	return db.Create(msg).Error
}

func (r *contactRepository) FindAll(db *gorm.DB) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	if err := db.Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *contactRepository) MarkHandled(db *gorm.DB, id string) error {
	result := db.Model(&models.ContactMessage{}).Where("id = ?", id).
		Update("handled", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactMessageNotFound
	}
	return nil
}
