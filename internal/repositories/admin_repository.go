package repositories

import (
	"errors"
	"time"

	"archway_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminAlreadyExists = errors.New("admin already exists")
)

type AdminRepository interface {
	Create(db *gorm.DB, admin *models.Admin) error
	FindByID(db *gorm.DB, id string) (*models.Admin, error)
	FindByEmail(db *gorm.DB, email string) (*models.Admin, error)
	UpdatePassword(db *gorm.DB, id, passwordHash string) error
	TouchLastLogin(db *gorm.DB, id string) error
}

type adminRepository struct{}

func NewAdminRepository() AdminRepository {
	return &adminRepository{}
}

func (r *adminRepository) Create(db *gorm.DB, admin *models.Admin) error {
	err := db.Create(admin).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAdminAlreadyExists
	}
	return err
}

func (r *adminRepository) FindByID(db *gorm.DB, id string) (*models.Admin, error) {
	var admin models.Admin
	if err := db.First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) FindByEmail(db *gorm.DB, email string) (*models.Admin, error) {
	var admin models.Admin
	if err := db.First(&admin, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) UpdatePassword(db *gorm.DB, id, passwordHash string) error {
	return db.Model(&models.Admin{}).Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

func (r *adminRepository) TouchLastLogin(db *gorm.DB, id string) error {
	now := time.Now()
	return db.Model(&models.Admin{}).Where("id = ?", id).
		Update("last_login_at", &now).Error
}
