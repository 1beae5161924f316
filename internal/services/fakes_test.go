package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/selyo-ustp/request_service/internal/domain"
	"gorm.io/gorm"
)

// In-memory repositories backing the service tests. They mimic the postgres
// behavior the services rely on, including the partial unique index on
// (date, time_slot).

type fakeRequestRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*domain.Request

	// set when a test wires both repos together, so DeleteCascade can
	// drop the linked appointment like the real transaction does
	appts *fakeAppointmentRepo
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{nextID: 1, rows: map[uint]*domain.Request{}}
}

func (f *fakeRequestRepo) Create(req *domain.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req.ID = f.nextID
	f.nextID++
	for i := range req.Documents {
		req.Documents[i].RequestID = req.ID
	}
	cp := *req
	f.rows[req.ID] = &cp
	return nil
}

func (f *fakeRequestRepo) FindByID(id uint) (*domain.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *req
	return &cp, nil
}

func (f *fakeRequestRepo) FindByPickupCode(code string) (*domain.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, req := range f.rows {
		if req.PickupCode != nil && *req.PickupCode == code {
			cp := *req
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRequestRepo) ListByStudent(studentID uint) ([]domain.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Request
	for _, req := range f.rows {
		if req.StudentID == studentID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListAll() ([]domain.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Request
	for _, req := range f.rows {
		out = append(out, *req)
	}
	return out, nil
}

func (f *fakeRequestRepo) Save(req *domain.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[req.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *req
	f.rows[req.ID] = &cp
	return nil
}

func (f *fakeRequestRepo) UpdateFields(id uint, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "status":
			req.Status = v.(domain.RequestStatus)
		case "admin_comment":
			req.AdminComment = v.(string)
		case "appointment_id":
			apptID := v.(uint)
			req.AppointmentID = &apptID
		}
	}
	return nil
}

func (f *fakeRequestRepo) DeleteCascade(req *domain.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[req.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if req.AppointmentID != nil && f.appts != nil {
		f.appts.mu.Lock()
		delete(f.appts.rows, *req.AppointmentID)
		f.appts.mu.Unlock()
	}
	delete(f.rows, req.ID)
	return nil
}

type fakeAppointmentRepo struct {
	mu          sync.Mutex
	nextID      uint
	rows        map[uint]*domain.Appointment
	requestRepo *fakeRequestRepo
}

func newFakeAppointmentRepo(requests *fakeRequestRepo) *fakeAppointmentRepo {
	f := &fakeAppointmentRepo{nextID: 1, rows: map[uint]*domain.Appointment{}, requestRepo: requests}
	requests.appts = f
	return f
}

func slotTakenErr() error {
	return &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "uidx_appointments_date_slot_active",
	}
}

func (f *fakeAppointmentRepo) slotHeldLocked(date time.Time, slot string, excludeID uint) bool {
	day := date.Format("2006-01-02")
	for _, a := range f.rows {
		if a.ID == excludeID || a.Status == domain.AppointmentStatusCancelled {
			continue
		}
		if a.Date.Format("2006-01-02") == day && a.TimeSlot == slot {
			return true
		}
	}
	return false
}

func (f *fakeAppointmentRepo) Book(appt *domain.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.slotHeldLocked(appt.Date, appt.TimeSlot, 0) {
		return slotTakenErr()
	}
	appt.ID = f.nextID
	f.nextID++
	cp := *appt
	f.rows[appt.ID] = &cp

	return f.requestRepo.UpdateFields(appt.RequestID, map[string]any{
		"appointment_id": appt.ID,
		"status":         domain.RequestStatusApptScheduled,
	})
}

func (f *fakeAppointmentRepo) FindByID(id uint) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *appt
	return &cp, nil
}

func (f *fakeAppointmentRepo) Save(appt *domain.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[appt.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if appt.Status != domain.AppointmentStatusCancelled &&
		f.slotHeldLocked(appt.Date, appt.TimeSlot, appt.ID) {
		return slotTakenErr()
	}
	cp := *appt
	f.rows[appt.ID] = &cp
	return nil
}

func (f *fakeAppointmentRepo) List(date *time.Time, status *domain.AppointmentStatus) ([]domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Appointment
	for _, a := range f.rows {
		if date != nil && a.Date.Format("2006-01-02") != date.Format("2006-01-02") {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) BookedSlots(date time.Time) ([]string, error) {
	return f.BookedSlotsExcluding(date, 0)
}

func (f *fakeAppointmentRepo) BookedSlotsExcluding(date time.Time, apptID uint) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	day := date.Format("2006-01-02")
	var slots []string
	for _, a := range f.rows {
		if a.ID == apptID || a.Status == domain.AppointmentStatusCancelled {
			continue
		}
		if a.Date.Format("2006-01-02") == day {
			slots = append(slots, a.TimeSlot)
		}
	}
	return slots, nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditLog
}

func (f *fakeAuditRepo) Record(entry *domain.AuditLog) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *entry)
}

type fakeUploader struct {
	mu        sync.Mutex
	uploads   int
	destroyed []string
	failNext  bool
}

func (f *fakeUploader) UploadBytes(_ context.Context, folder, filename string, _ []byte) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		f.failNext = false
		return "", "", fmt.Errorf("upload failed")
	}
	f.uploads++
	publicID := folder + "/" + filename
	return "https://res.cloudinary.test/" + publicID, publicID, nil
}

func (f *fakeUploader) Destroy(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

type fakeProducer struct {
	mu   sync.Mutex
	keys []string
}

func (f *fakeProducer) PublishMessage(key, _ []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, string(key))
	return nil
}

func (f *fakeProducer) published(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range f.keys {
		if k == key {
			return true
		}
	}
	return false
}
