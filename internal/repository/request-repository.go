package repository

import (
	"github.com/selyo-ustp/request_service/internal/domain"
	"gorm.io/gorm"
)

type RequestRepository interface {
	Create(req *domain.Request) error
	FindByID(id uint) (*domain.Request, error)
	FindByPickupCode(code string) (*domain.Request, error)
	ListByStudent(studentID uint) ([]domain.Request, error)
	ListAll() ([]domain.Request, error)
	Save(req *domain.Request) error
	UpdateFields(id uint, fields map[string]any) error
	DeleteCascade(req *domain.Request) error
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(req *domain.Request) error {
	return r.db.Create(req).Error
}

func (r *requestRepository) FindByID(id uint) (*domain.Request, error) {
	var req domain.Request
	err := r.db.
		Preload("Student").
		Preload("Documents").
		Preload("Appointment").
		First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) FindByPickupCode(code string) (*domain.Request, error) {
	var req domain.Request
	err := r.db.
		Preload("Student").
		Preload("Documents").
		Preload("Appointment").
		Where("pickup_code = ?", code).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) ListByStudent(studentID uint) ([]domain.Request, error) {
	var reqs []domain.Request
	err := r.db.
		Preload("Documents").
		Preload("Appointment").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *requestRepository) ListAll() ([]domain.Request, error) {
	var reqs []domain.Request
	err := r.db.
		Preload("Student").
		Preload("Documents").
		Preload("Appointment").
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *requestRepository) Save(req *domain.Request) error {
	return r.db.Save(req).Error
}

func (r *requestRepository) UpdateFields(id uint, fields map[string]any) error {
	res := r.db.Model(&domain.Request{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCascade removes the appointment (if any), the document rows and the
// request itself in one transaction. Blob cleanup happens in the service
// beforehand (best-effort, outside the transaction).
func (r *requestRepository) DeleteCascade(req *domain.Request) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if req.AppointmentID != nil {
			if err := tx.Delete(&domain.Appointment{}, *req.AppointmentID).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("request_id = ?", req.ID).Delete(&domain.RequestDocument{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Request{}, req.ID).Error
	})
}
