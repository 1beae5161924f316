package repository

import (
	"time"

	"github.com/selyo-ustp/request_service/internal/domain"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	// Book inserts the appointment and links it to its request in one
	// transaction. The partial unique index on (date, time_slot) is the
	// final word on slot exclusivity: a violation surfaces as a pg error.
	Book(appt *domain.Appointment) error
	FindByID(id uint) (*domain.Appointment, error)
	Save(appt *domain.Appointment) error
	List(date *time.Time, status *domain.AppointmentStatus) ([]domain.Appointment, error)
	BookedSlots(date time.Time) ([]string, error)
	BookedSlotsExcluding(date time.Time, apptID uint) ([]string, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (a *appointmentRepository) Book(appt *domain.Appointment) error {
	return a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(appt).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Request{}).
			Where("id = ?", appt.RequestID).
			Updates(map[string]any{
				"appointment_id": appt.ID,
				"status":         domain.RequestStatusApptScheduled,
			}).Error
	})
}

func (a *appointmentRepository) FindByID(id uint) (*domain.Appointment, error) {
	var appt domain.Appointment
	err := a.db.Preload("Student").First(&appt, id).Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (a *appointmentRepository) Save(appt *domain.Appointment) error {
	return a.db.Save(appt).Error
}

func (a *appointmentRepository) List(date *time.Time, status *domain.AppointmentStatus) ([]domain.Appointment, error) {
	q := a.db.Preload("Student")

	if date != nil {
		q = q.Where("date = ?", date.Format("2006-01-02"))
	}
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var appts []domain.Appointment
	if err := q.Order("date ASC, time_slot ASC").Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (a *appointmentRepository) BookedSlots(date time.Time) ([]string, error) {
	var slots []string
	err := a.db.Model(&domain.Appointment{}).
		Where("date = ? AND status <> ?", date.Format("2006-01-02"), domain.AppointmentStatusCancelled).
		Pluck("time_slot", &slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// BookedSlotsExcluding leaves out one appointment so its own slot stays
// selectable while that appointment is being edited.
func (a *appointmentRepository) BookedSlotsExcluding(date time.Time, apptID uint) ([]string, error) {
	var slots []string
	err := a.db.Model(&domain.Appointment{}).
		Where("date = ? AND status <> ? AND id <> ?",
			date.Format("2006-01-02"), domain.AppointmentStatusCancelled, apptID).
		Pluck("time_slot", &slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}
