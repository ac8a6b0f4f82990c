package services

import (
	"context"

	"archway_backend/internal/auth"
	"archway_backend/internal/logger"
	"archway_backend/internal/models"
	"archway_backend/internal/repositories"
	"archway_backend/internal/services/dto"
	"archway_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	// Login verifies credentials and returns a bearer token plus the admin.
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (string, *models.Admin, error)
	GetAdmin(db *gorm.DB, id string) (*models.Admin, error)
	ChangePassword(ctx context.Context, db *gorm.DB, adminID string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	adminRepo repositories.AdminRepository
}

func NewAuthService(adminRepo repositories.AdminRepository) AuthService {
	return &authService{adminRepo: adminRepo}
}

func (s *authService) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (string, *models.Admin, error) {
	admin, err := s.adminRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAdminNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, admin.PasswordHash) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(admin.ID, admin.Email)
	if err != nil {
		return "", nil, apperrors.InternalError(err)
	}

	if err := s.adminRepo.TouchLastLogin(db, admin.ID); err != nil {
		logger.CtxWithError(ctx, "failed to update last login timestamp", err, "admin_id", admin.ID)
	}

	logger.CtxInfo(ctx, "admin logged in", "admin_id", admin.ID)
	return token, admin, nil
}

func (s *authService) GetAdmin(db *gorm.DB, id string) (*models.Admin, error) {
	admin, err := s.adminRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAdminNotFound) {
			return nil, apperrors.NewNotFoundError("Admin not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return admin, nil
}

func (s *authService) ChangePassword(ctx context.Context, db *gorm.DB, adminID string, req *dto.ChangePasswordRequest) error {
	admin, err := s.adminRepo.FindByID(db, adminID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAdminNotFound) {
			return apperrors.NewNotFoundError("Admin not found")
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, admin.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.NewBadRequestError(err.Error())
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.adminRepo.UpdatePassword(db, adminID, hash); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "admin password changed", "admin_id", adminID)
	return nil
}
