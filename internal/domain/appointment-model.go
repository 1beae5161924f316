package domain

import (
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusNoShow    AppointmentStatus = "No-Show"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

func IsValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted,
		AppointmentStatusNoShow, AppointmentStatusCancelled:
		return true
	}
	return false
}

// TimeSlots is the fixed half-hour catalog, 8AM-5PM with a lunch gap.
// Loaded once, never mutated.
var TimeSlots = []string{
	"8:00 AM - 8:30 AM",
	"8:30 AM - 9:00 AM",
	"9:00 AM - 9:30 AM",
	"9:30 AM - 10:00 AM",
	"10:00 AM - 10:30 AM",
	"10:30 AM - 11:00 AM",
	"11:00 AM - 11:30 AM",
	"11:30 AM - 12:00 PM",
	"1:00 PM - 1:30 PM",
	"1:30 PM - 2:00 PM",
	"2:00 PM - 2:30 PM",
	"2:30 PM - 3:00 PM",
	"3:00 PM - 3:30 PM",
	"3:30 PM - 4:00 PM",
	"4:00 PM - 4:30 PM",
	"4:30 PM - 5:00 PM",
}

func IsValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// Appointment holds one counter visit. Slot exclusivity per date is enforced
// by a partial unique index on (date, time_slot) where status <> 'Cancelled';
// see server.go migration.
type Appointment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	StudentID uint `gorm:"not null;index" json:"student_id"` // denormalized from the request
	RequestID uint `gorm:"not null;index" json:"request_id"`

	Date     time.Time         `gorm:"type:date;not null;index" json:"date"`
	TimeSlot string            `gorm:"type:varchar(30);not null" json:"time_slot"`
	Purpose  string            `gorm:"type:varchar(50);not null" json:"purpose"`
	Status   AppointmentStatus `gorm:"type:varchar(20);not null;default:'Scheduled'" json:"status"`
	Notes    string            `gorm:"type:text" json:"notes"`

	// Student only; resolving Request here would recurse back into Appointment.
	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`

	gorm.Model
}
