package services

import (
	"sync"
	"testing"

	"github.com/selyo-ustp/request_service/internal/apperr"
	"github.com/selyo-ustp/request_service/internal/domain"
	"github.com/selyo-ustp/request_service/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAppointmentServiceForTest() (AppointmentService, *fakeAppointmentRepo, *fakeRequestRepo, *fakeProducer) {
	requests := newFakeRequestRepo()
	appts := newFakeAppointmentRepo(requests)
	producer := &fakeProducer{}
	svc := NewAppointmentService(appts, requests, producer)
	return svc, appts, requests, producer
}

func str(s string) *string { return &s }

func TestAvailableSlots(t *testing.T) {
	svc, _, requests, _ := newAppointmentServiceForTest()

	t.Run("bad date", func(t *testing.T) {
		_, err := svc.AvailableSlots("15-09-2026")
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("empty day offers the whole catalog", func(t *testing.T) {
		res, err := svc.AvailableSlots("2026-09-15")
		require.NoError(t, err)
		assert.Len(t, res.AllSlots, 16)
		assert.Len(t, res.AvailableSlots, 16)
		assert.Empty(t, res.BookedSlots)
	})

	t.Run("booked slot drops out", func(t *testing.T) {
		req := seedRequest(t, requests, 1, "Petition for Subject", domain.RequestStatusUnderReview)
		_, err := svc.Book(dto.BookAppointmentRequest{
			RequestID: req.ID,
			Date:      "2026-09-15",
			TimeSlot:  "9:00 AM - 9:30 AM",
		})
		require.NoError(t, err)

		res, err := svc.AvailableSlots("2026-09-15")
		require.NoError(t, err)
		assert.Len(t, res.AvailableSlots, 15)
		assert.Contains(t, res.BookedSlots, "9:00 AM - 9:30 AM")
		assert.NotContains(t, res.AvailableSlots, "9:00 AM - 9:30 AM")
	})
}

func TestBookAppointment(t *testing.T) {
	t.Run("unknown slot", func(t *testing.T) {
		svc, _, requests, _ := newAppointmentServiceForTest()
		req := seedRequest(t, requests, 1, "Document Submission", domain.RequestStatusSubmitted)
		_, err := svc.Book(dto.BookAppointmentRequest{
			RequestID: req.ID,
			Date:      "2026-09-15",
			TimeSlot:  "12:00 PM - 12:30 PM", // lunch gap, not in the catalog
		})
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("missing request", func(t *testing.T) {
		svc, _, _, _ := newAppointmentServiceForTest()
		_, err := svc.Book(dto.BookAppointmentRequest{
			RequestID: 42,
			Date:      "2026-09-15",
			TimeSlot:  "9:00 AM - 9:30 AM",
		})
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("booking links the request and publishes", func(t *testing.T) {
		svc, _, requests, producer := newAppointmentServiceForTest()
		req := seedRequest(t, requests, 5, "Irregular Enrollment", domain.RequestStatusUnderReview)

		appt, err := svc.Book(dto.BookAppointmentRequest{
			RequestID: req.ID,
			Date:      "2026-09-15",
			TimeSlot:  "8:00 AM - 8:30 AM",
			Notes:     "bring originals",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(5), appt.StudentID)
		assert.Equal(t, "Irregular Enrollment", appt.Purpose)
		assert.Equal(t, domain.AppointmentStatusScheduled, appt.Status)
		assert.True(t, producer.published("appointment.booked"))

		got, err := requests.FindByID(req.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RequestStatusApptScheduled, got.Status)
		require.NotNil(t, got.AppointmentID)
		assert.Equal(t, appt.ID, *got.AppointmentID)
	})

	t.Run("a request books at most one appointment", func(t *testing.T) {
		svc, _, requests, _ := newAppointmentServiceForTest()
		req := seedRequest(t, requests, 1, "Document Submission", domain.RequestStatusSubmitted)

		_, err := svc.Book(dto.BookAppointmentRequest{
			RequestID: req.ID, Date: "2026-09-15", TimeSlot: "8:00 AM - 8:30 AM",
		})
		require.NoError(t, err)

		_, err = svc.Book(dto.BookAppointmentRequest{
			RequestID: req.ID, Date: "2026-09-16", TimeSlot: "8:00 AM - 8:30 AM",
		})
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("taken slot conflicts", func(t *testing.T) {
		svc, _, requests, _ := newAppointmentServiceForTest()
		first := seedRequest(t, requests, 1, "Document Submission", domain.RequestStatusSubmitted)
		second := seedRequest(t, requests, 2, "Petition for Subject", domain.RequestStatusSubmitted)

		_, err := svc.Book(dto.BookAppointmentRequest{
			RequestID: first.ID, Date: "2026-09-15", TimeSlot: "9:00 AM - 9:30 AM",
		})
		require.NoError(t, err)

		_, err = svc.Book(dto.BookAppointmentRequest{
			RequestID: second.ID, Date: "2026-09-15", TimeSlot: "9:00 AM - 9:30 AM",
		})
		assert.True(t, apperr.IsConflict(err))

		// same slot on another day is fine
		_, err = svc.Book(dto.BookAppointmentRequest{
			RequestID: second.ID, Date: "2026-09-16", TimeSlot: "9:00 AM - 9:30 AM",
		})
		require.NoError(t, err)
	})
}

// Many bookings race for the same (date, slot); exactly one may win.
func TestBookAppointmentConcurrent(t *testing.T) {
	svc, _, requests, _ := newAppointmentServiceForTest()

	const n = 32
	ids := make([]uint, n)
	for i := 0; i < n; i++ {
		req := seedRequest(t, requests, uint(i+1), "Document Submission", domain.RequestStatusSubmitted)
		ids[i] = req.ID
	}

	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(reqID uint) {
			defer wg.Done()
			_, err := svc.Book(dto.BookAppointmentRequest{
				RequestID: reqID,
				Date:      "2026-09-15",
				TimeSlot:  "10:00 AM - 10:30 AM",
			})
			results <- err
		}(ids[i])
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case apperr.IsConflict(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, n-1, conflicts)
}

func TestUpdateAppointment(t *testing.T) {
	book := func(t *testing.T, svc AppointmentService, requests *fakeRequestRepo, studentID uint, date, slot string) *domain.Appointment {
		t.Helper()
		req := seedRequest(t, requests, studentID, "Document Submission", domain.RequestStatusSubmitted)
		appt, err := svc.Book(dto.BookAppointmentRequest{RequestID: req.ID, Date: date, TimeSlot: slot})
		require.NoError(t, err)
		return appt
	}

	t.Run("keeping your own slot is not a conflict", func(t *testing.T) {
		svc, _, requests, _ := newAppointmentServiceForTest()
		appt := book(t, svc, requests, 1, "2026-09-15", "9:00 AM - 9:30 AM")

		got, err := svc.Update(appt.ID, dto.UpdateAppointmentRequest{
			TimeSlot: str("9:00 AM - 9:30 AM"),
			Notes:    str("updated notes"),
		})
		require.NoError(t, err)
		assert.Equal(t, "updated notes", got.Notes)
	})

	t.Run("reschedule into a taken slot conflicts", func(t *testing.T) {
		svc, _, requests, _ := newAppointmentServiceForTest()
		appt := book(t, svc, requests, 1, "2026-09-15", "9:00 AM - 9:30 AM")
		book(t, svc, requests, 2, "2026-09-15", "10:00 AM - 10:30 AM")

		_, err := svc.Update(appt.ID, dto.UpdateAppointmentRequest{
			TimeSlot: str("10:00 AM - 10:30 AM"),
		})
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("rescheduling frees the old slot", func(t *testing.T) {
		svc, _, requests, _ := newAppointmentServiceForTest()
		appt := book(t, svc, requests, 1, "2026-09-15", "9:00 AM - 9:30 AM")

		_, err := svc.Update(appt.ID, dto.UpdateAppointmentRequest{
			Date:     str("2026-09-16"),
			TimeSlot: str("10:00 AM - 10:30 AM"),
		})
		require.NoError(t, err)

		// the old slot is bookable again
		res, err := svc.AvailableSlots("2026-09-15")
		require.NoError(t, err)
		assert.Contains(t, res.AvailableSlots, "9:00 AM - 9:30 AM")

		// and the new one is held
		res, err = svc.AvailableSlots("2026-09-16")
		require.NoError(t, err)
		assert.Contains(t, res.BookedSlots, "10:00 AM - 10:30 AM")
	})

	t.Run("cancelling frees the slot", func(t *testing.T) {
		svc, _, requests, _ := newAppointmentServiceForTest()
		appt := book(t, svc, requests, 1, "2026-09-15", "9:00 AM - 9:30 AM")

		_, err := svc.Update(appt.ID, dto.UpdateAppointmentRequest{Status: str("Cancelled")})
		require.NoError(t, err)

		res, err := svc.AvailableSlots("2026-09-15")
		require.NoError(t, err)
		assert.Contains(t, res.AvailableSlots, "9:00 AM - 9:30 AM")
	})

	t.Run("scheduled is not a valid manual status", func(t *testing.T) {
		svc, _, requests, _ := newAppointmentServiceForTest()
		appt := book(t, svc, requests, 1, "2026-09-15", "9:00 AM - 9:30 AM")

		_, err := svc.Update(appt.ID, dto.UpdateAppointmentRequest{Status: str("Scheduled")})
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("completed closes the request", func(t *testing.T) {
		svc, _, requests, _ := newAppointmentServiceForTest()
		appt := book(t, svc, requests, 1, "2026-09-15", "9:00 AM - 9:30 AM")

		_, err := svc.Update(appt.ID, dto.UpdateAppointmentRequest{Status: str("Completed")})
		require.NoError(t, err)

		req, err := requests.FindByID(appt.RequestID)
		require.NoError(t, err)
		assert.Equal(t, domain.RequestStatusCompleted, req.Status)
	})

	t.Run("no-show sends the request back to review", func(t *testing.T) {
		svc, _, requests, _ := newAppointmentServiceForTest()
		appt := book(t, svc, requests, 1, "2026-09-15", "9:00 AM - 9:30 AM")

		_, err := svc.Update(appt.ID, dto.UpdateAppointmentRequest{Status: str("No-Show")})
		require.NoError(t, err)

		req, err := requests.FindByID(appt.RequestID)
		require.NoError(t, err)
		assert.Equal(t, domain.RequestStatusUnderReview, req.Status)
		assert.NotEmpty(t, req.AdminComment)
	})
}

func TestListAppointments(t *testing.T) {
	svc, _, requests, _ := newAppointmentServiceForTest()

	reqA := seedRequest(t, requests, 1, "Document Submission", domain.RequestStatusSubmitted)
	reqB := seedRequest(t, requests, 2, "Petition for Subject", domain.RequestStatusSubmitted)

	_, err := svc.Book(dto.BookAppointmentRequest{RequestID: reqA.ID, Date: "2026-09-15", TimeSlot: "8:00 AM - 8:30 AM"})
	require.NoError(t, err)
	_, err = svc.Book(dto.BookAppointmentRequest{RequestID: reqB.ID, Date: "2026-09-16", TimeSlot: "8:00 AM - 8:30 AM"})
	require.NoError(t, err)

	all, err := svc.List("", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	day, err := svc.List("2026-09-15", "")
	require.NoError(t, err)
	assert.Len(t, day, 1)

	_, err = svc.List("2026-09-15", "Pending")
	assert.True(t, apperr.IsValidation(err))
}
