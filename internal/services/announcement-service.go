package services

import (
	"errors"
	"strings"
	"time"

	"github.com/selyo-ustp/request_service/internal/apperr"
	"github.com/selyo-ustp/request_service/internal/domain"
	"github.com/selyo-ustp/request_service/internal/dto"
	"github.com/selyo-ustp/request_service/internal/repository"
	"gorm.io/gorm"
)

type AnnouncementService interface {
	Create(adminID uint, input dto.CreateAnnouncementRequest) (*domain.Announcement, error)
	Update(id uint, input dto.UpdateAnnouncementRequest) (*domain.Announcement, error)
	Delete(id uint) error
	ListAll() ([]domain.Announcement, error)
	ListActive() ([]domain.Announcement, error)
}

type announcementService struct {
	repo repository.AnnouncementRepository
}

func NewAnnouncementService(repo repository.AnnouncementRepository) AnnouncementService {
	return &announcementService{repo: repo}
}

func (s *announcementService) Create(adminID uint, input dto.CreateAnnouncementRequest) (*domain.Announcement, error) {
	title := strings.TrimSpace(input.Title)
	message := strings.TrimSpace(input.Message)

	if title == "" || message == "" {
		return nil, apperr.NewValidation("title and message are required")
	}
	if len(title) > 100 {
		return nil, apperr.NewValidation("title must be at most 100 characters")
	}
	if len(message) > 500 {
		return nil, apperr.NewValidation("message must be at most 500 characters")
	}

	aType := domain.AnnouncementTypeInfo
	if strings.TrimSpace(input.Type) != "" {
		aType = domain.AnnouncementType(strings.TrimSpace(input.Type))
		if !domain.IsValidAnnouncementType(aType) {
			return nil, apperr.NewValidation("type must be info, warning or urgent")
		}
	}

	expiresAt, err := parseExpiry(input.ExpiresAt)
	if err != nil {
		return nil, err
	}

	a := &domain.Announcement{
		Title:     title,
		Message:   message,
		Type:      aType,
		IsActive:  true,
		CreatedBy: adminID,
		ExpiresAt: expiresAt,
	}

	if err := s.repo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *announcementService) Update(id uint, input dto.UpdateAnnouncementRequest) (*domain.Announcement, error) {
	a, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("announcement not found")
		}
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" || len(title) > 100 {
			return nil, apperr.NewValidation("title must be 1-100 characters")
		}
		a.Title = title
	}
	if input.Message != nil {
		message := strings.TrimSpace(*input.Message)
		if message == "" || len(message) > 500 {
			return nil, apperr.NewValidation("message must be 1-500 characters")
		}
		a.Message = message
	}
	if input.Type != nil {
		aType := domain.AnnouncementType(strings.TrimSpace(*input.Type))
		if !domain.IsValidAnnouncementType(aType) {
			return nil, apperr.NewValidation("type must be info, warning or urgent")
		}
		a.Type = aType
	}
	if input.IsActive != nil {
		a.IsActive = *input.IsActive
	}
	if input.ExpiresAt != nil {
		expiresAt, err := parseExpiry(input.ExpiresAt)
		if err != nil {
			return nil, err
		}
		a.ExpiresAt = expiresAt
	}

	if err := s.repo.Save(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *announcementService) Delete(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NewNotFound("announcement not found")
		}
		return err
	}
	return nil
}

func (s *announcementService) ListAll() ([]domain.Announcement, error) {
	return s.repo.ListAll()
}

func (s *announcementService) ListActive() ([]domain.Announcement, error) {
	return s.repo.ListActive(time.Now())
}

func parseExpiry(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(*raw))
	if err != nil {
		return nil, apperr.NewValidation("expires_at must be RFC3339")
	}
	return &t, nil
}
