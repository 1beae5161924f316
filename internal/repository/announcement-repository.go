package repository

import (
	"time"

	"github.com/selyo-ustp/request_service/internal/domain"
	"gorm.io/gorm"
)

type AnnouncementRepository interface {
	Create(a *domain.Announcement) error
	FindByID(id uint) (*domain.Announcement, error)
	ListAll() ([]domain.Announcement, error)
	ListActive(now time.Time) ([]domain.Announcement, error)
	Save(a *domain.Announcement) error
	Delete(id uint) error
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(a *domain.Announcement) error {
	return r.db.Create(a).Error
}

func (r *announcementRepository) FindByID(id uint) (*domain.Announcement, error) {
	var a domain.Announcement
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *announcementRepository) ListAll() ([]domain.Announcement, error) {
	var as []domain.Announcement
	err := r.db.Preload("Author").Order("created_at DESC").Find(&as).Error
	if err != nil {
		return nil, err
	}
	return as, nil
}

func (r *announcementRepository) ListActive(now time.Time) ([]domain.Announcement, error) {
	var as []domain.Announcement
	err := r.db.
		Where("is_active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("created_at DESC").
		Find(&as).Error
	if err != nil {
		return nil, err
	}
	return as, nil
}

func (r *announcementRepository) Save(a *domain.Announcement) error {
	return r.db.Save(a).Error
}

func (r *announcementRepository) Delete(id uint) error {
	res := r.db.Delete(&domain.Announcement{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
