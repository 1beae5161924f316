package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/selyo-ustp/request_service/internal/apperr"
	"github.com/selyo-ustp/request_service/internal/domain"
	"github.com/selyo-ustp/request_service/internal/dto"
	"github.com/selyo-ustp/request_service/internal/helper"
	"github.com/selyo-ustp/request_service/internal/interfaces"
	"github.com/selyo-ustp/request_service/internal/repository"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Auto-comment written to a request when its student misses the visit.
const noShowComment = "Student did not show up for scheduled appointment"

type AppointmentService interface {
	AvailableSlots(date string) (*dto.SlotsResponse, error)
	// AvailableSlotsForEdit keeps the edited appointment's own slot
	// selectable even though it is booked.
	AvailableSlotsForEdit(date string, apptID uint) (*dto.SlotsResponse, error)
	Book(input dto.BookAppointmentRequest) (*domain.Appointment, error)
	Update(apptID uint, input dto.UpdateAppointmentRequest) (*domain.Appointment, error)
	List(date, status string) ([]domain.Appointment, error)
}

type appointmentService struct {
	repo        repository.AppointmentRepository
	requestRepo repository.RequestRepository
	producer    interfaces.ProducerHandler
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	requestRepo repository.RequestRepository,
	producer interfaces.ProducerHandler,
) AppointmentService {
	return &appointmentService{
		repo:        repo,
		requestRepo: requestRepo,
		producer:    producer,
	}
}

func (s *appointmentService) AvailableSlots(date string) (*dto.SlotsResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	booked, err := s.repo.BookedSlots(day)
	if err != nil {
		return nil, err
	}
	return buildSlotsResponse(date, booked), nil
}

func (s *appointmentService) AvailableSlotsForEdit(date string, apptID uint) (*dto.SlotsResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	booked, err := s.repo.BookedSlotsExcluding(day, apptID)
	if err != nil {
		return nil, err
	}
	return buildSlotsResponse(date, booked), nil
}

func (s *appointmentService) Book(input dto.BookAppointmentRequest) (*domain.Appointment, error) {
	day, err := parseDate(input.Date)
	if err != nil {
		return nil, err
	}
	slot := strings.TrimSpace(input.TimeSlot)
	if !domain.IsValidTimeSlot(slot) {
		return nil, apperr.NewValidation("unknown time slot")
	}

	req, err := s.requestRepo.FindByID(input.RequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("request not found")
		}
		return nil, err
	}

	// one appointment per request, for its whole lifetime
	if req.AppointmentID != nil {
		return nil, apperr.NewConflict("appointment already scheduled for this request")
	}

	// friendly pre-check; the unique index below is the real guarantee
	booked, err := s.repo.BookedSlots(day)
	if err != nil {
		return nil, err
	}
	for _, b := range booked {
		if b == slot {
			return nil, apperr.NewConflict("time slot is already booked")
		}
	}

	appt := &domain.Appointment{
		StudentID: req.StudentID,
		RequestID: req.ID,
		Date:      day,
		TimeSlot:  slot,
		Purpose:   req.RequestType,
		Status:    domain.AppointmentStatusScheduled,
		Notes:     strings.TrimSpace(input.Notes),
	}

	if err := s.repo.Book(appt); err != nil {
		// two admins raced for the same slot; exactly one insert wins
		if helper.IsSlotTaken(err) {
			return nil, apperr.NewConflict("time slot is already booked")
		}
		return nil, err
	}

	s.publish("appointment.booked", fmt.Sprintf(
		`{"appointment_id":%d,"request_id":%d,"student_id":%d,"date":"%s","time_slot":"%s"}`,
		appt.ID, appt.RequestID, appt.StudentID, input.Date, appt.TimeSlot,
	))

	return s.repo.FindByID(appt.ID)
}

func (s *appointmentService) Update(apptID uint, input dto.UpdateAppointmentRequest) (*domain.Appointment, error) {
	appt, err := s.repo.FindByID(apptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("appointment not found")
		}
		return nil, err
	}

	if input.Date != nil {
		day, err := parseDate(*input.Date)
		if err != nil {
			return nil, err
		}
		appt.Date = day
	}
	if input.TimeSlot != nil {
		slot := strings.TrimSpace(*input.TimeSlot)
		if !domain.IsValidTimeSlot(slot) {
			return nil, apperr.NewValidation("unknown time slot")
		}
		appt.TimeSlot = slot
	}

	var newStatus *domain.AppointmentStatus
	if input.Status != nil {
		status := domain.AppointmentStatus(strings.TrimSpace(*input.Status))
		switch status {
		case domain.AppointmentStatusCompleted, domain.AppointmentStatusNoShow, domain.AppointmentStatusCancelled:
			newStatus = &status
		default:
			return nil, apperr.NewValidation("status must be Completed, No-Show or Cancelled")
		}
		appt.Status = status
	}
	if input.Notes != nil {
		appt.Notes = strings.TrimSpace(*input.Notes)
	}

	// exclude this appointment: keeping your own slot is never a conflict
	if input.Date != nil || input.TimeSlot != nil {
		booked, err := s.repo.BookedSlotsExcluding(appt.Date, appt.ID)
		if err != nil {
			return nil, err
		}
		for _, b := range booked {
			if b == appt.TimeSlot && appt.Status != domain.AppointmentStatusCancelled {
				return nil, apperr.NewConflict("time slot is already booked")
			}
		}
	}

	if err := s.repo.Save(appt); err != nil {
		if helper.IsSlotTaken(err) {
			return nil, apperr.NewConflict("time slot is already booked")
		}
		return nil, err
	}

	if newStatus != nil {
		if err := s.cascadeRequestStatus(appt, *newStatus); err != nil {
			return nil, err
		}
	}

	return s.repo.FindByID(appt.ID)
}

func (s *appointmentService) List(date, status string) ([]domain.Appointment, error) {
	var day *time.Time
	if strings.TrimSpace(date) != "" {
		d, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		day = &d
	}

	var st *domain.AppointmentStatus
	if strings.TrimSpace(status) != "" {
		v := domain.AppointmentStatus(strings.TrimSpace(status))
		if !domain.IsValidAppointmentStatus(v) {
			return nil, apperr.NewValidation("unknown appointment status")
		}
		st = &v
	}

	return s.repo.List(day, st)
}

// cascadeRequestStatus mirrors appointment outcomes onto the owning request:
// Completed closes the request, No-Show sends it back to review with an
// auto-set admin comment. Cancelled only frees the slot.
func (s *appointmentService) cascadeRequestStatus(appt *domain.Appointment, status domain.AppointmentStatus) error {
	switch status {
	case domain.AppointmentStatusCompleted:
		return s.requestRepo.UpdateFields(appt.RequestID, map[string]any{
			"status": domain.RequestStatusCompleted,
		})
	case domain.AppointmentStatusNoShow:
		return s.requestRepo.UpdateFields(appt.RequestID, map[string]any{
			"status":        domain.RequestStatusUnderReview,
			"admin_comment": noShowComment,
		})
	}
	return nil
}

func (s *appointmentService) publish(key, payload string) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishMessage([]byte(key), []byte(payload)); err != nil {
		log.Printf("publish %s error: %v", key, err)
	}
}

func parseDate(date string) (time.Time, error) {
	day, err := time.Parse(dateLayout, strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, apperr.NewValidation("date must be YYYY-MM-DD")
	}
	return day, nil
}

func buildSlotsResponse(date string, booked []string) *dto.SlotsResponse {
	bookedSet := make(map[string]bool, len(booked))
	for _, b := range booked {
		bookedSet[b] = true
	}

	available := make([]string, 0, len(domain.TimeSlots))
	for _, slot := range domain.TimeSlots {
		if !bookedSet[slot] {
			available = append(available, slot)
		}
	}

	return &dto.SlotsResponse{
		Date:           date,
		AllSlots:       domain.TimeSlots,
		BookedSlots:    booked,
		AvailableSlots: available,
	}
}
