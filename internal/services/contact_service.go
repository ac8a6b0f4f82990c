package services

import (
	"context"
	"fmt"

	"archway_backend/internal/email"
	"archway_backend/internal/logger"
	"archway_backend/internal/models"
	"archway_backend/internal/repositories"
	"archway_backend/internal/services/dto"
	"archway_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ContactService interface {
	Submit(ctx context.Context, db *gorm.DB, req *dto.ContactRequest) (*models.ContactMessage, error)
	List(db *gorm.DB) ([]models.ContactMessage, error)
	MarkHandled(db *gorm.DB, id string) error
}

type contactService struct {
	repo     repositories.ContactRepository
	sender   email.Sender
	notifyTo string
}

func NewContactService(repo repositories.ContactRepository, sender email.Sender, notifyTo string) ContactService {
	return &contactService{
		repo:     repo,
		sender:   sender,
		notifyTo: notifyTo,
	}
}

func (s *contactService) Submit(ctx context.Context, db *gorm.DB, req *dto.ContactRequest) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}

	if err := s.repo.Create(db, msg); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Notification is best-effort; the stored record is the source of truth.
	if s.notifyTo != "" {
		go s.notify(msg)
	}

	logger.CtxInfo(ctx, "contact message received", "id", msg.ID, "from", msg.Email)
	return msg, nil
}

func (s *contactService) notify(msg *models.ContactMessage) {
	err := s.sender.Send(&email.Message{
		To:      []string{s.notifyTo},
		Subject: fmt.Sprintf("New contact inquiry from %s", msg.Name),
		Body: fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\n%s",
			msg.Name, msg.Email, msg.Phone, msg.Message),
	})
	if err != nil {
		logger.Error("failed to send contact notification", "error", err, "message_id", msg.ID)
	}
}

func (s *contactService) List(db *gorm.DB) ([]models.ContactMessage, error) {
	messages, err := s.repo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return messages, nil
}

func (s *contactService) MarkHandled(db *gorm.DB, id string) error {
	if err := s.repo.MarkHandled(db, id); err != nil {
		if apperrors.Is(err, repositories.ErrContactMessageNotFound) {
			return apperrors.NewNotFoundError("Contact message not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}
