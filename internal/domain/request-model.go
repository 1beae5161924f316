package domain

import (
	"gorm.io/gorm"
)

type RequestStatus string

const (
	RequestStatusSubmitted        RequestStatus = "Submitted"
	RequestStatusUnderReview      RequestStatus = "Under Review"
	RequestStatusPendingDean      RequestStatus = "Pending Dean Approval"
	RequestStatusApptScheduled    RequestStatus = "Appointment Scheduled"
	RequestStatusApproved         RequestStatus = "Approved"
	RequestStatusReadyForPickup   RequestStatus = "Ready for Pickup"
	RequestStatusRejected         RequestStatus = "Rejected"
	RequestStatusReleased         RequestStatus = "Released"
	RequestStatusCompleted        RequestStatus = "Completed"
)

// RequestTypeInfo describes one entry of the request type catalog.
type RequestTypeInfo struct {
	Label                string   `json:"label"`
	RequiresAppointment  bool     `json:"requiresAppointment"`
	RequiredDocuments    []string `json:"requiredDocuments"`
}

// RequestTypes is the static catalog shared by client and server validation.
// Loaded once, never mutated.
var RequestTypes = map[string]RequestTypeInfo{
	// Digital requests (no appointment needed)
	"TOR": {
		Label:               "Transcript of Records",
		RequiresAppointment: false,
		RequiredDocuments:   []string{},
	},
	"Shifting": {
		Label:               "Program Shifting",
		RequiresAppointment: false,
		RequiredDocuments:   []string{},
	},
	"Add/Drop": {
		Label:               "Add/Drop Form",
		RequiresAppointment: false,
		RequiredDocuments:   []string{},
	},
	// Physical visit requests (appointment needed)
	"Irregular Enrollment": {
		Label:               "Irregular / Transfer Enrollment",
		RequiresAppointment: true,
		RequiredDocuments: []string{
			"Grades / Transcript from Previous School",
			"Evaluation Form",
			"Certificate of Good Moral",
			"PSA Birth Certificate",
		},
	},
	"Document Submission": {
		Label:               "Document Submission",
		RequiresAppointment: true,
		RequiredDocuments: []string{
			"Original Copy of Required Documents",
		},
	},
	"Petition for Subject": {
		Label:               "Petition for Subject",
		RequiresAppointment: true,
		RequiredDocuments: []string{
			"Petition Form",
			"List of Petitioning Students with Signatures",
			"Course Syllabus (if applicable)",
		},
	},
}

func IsValidRequestType(t string) bool {
	_, ok := RequestTypes[t]
	return ok
}

func IsValidRequestStatus(s RequestStatus) bool {
	switch s {
	case RequestStatusSubmitted, RequestStatusUnderReview, RequestStatusPendingDean,
		RequestStatusApptScheduled, RequestStatusApproved, RequestStatusReadyForPickup,
		RequestStatusRejected, RequestStatusReleased, RequestStatusCompleted:
		return true
	}
	return false
}

// requestStatusFlow is the documented transition graph. Anything outside it
// needs an explicit admin override (which gets audited).
var requestStatusFlow = map[RequestStatus][]RequestStatus{
	RequestStatusSubmitted:      {RequestStatusUnderReview, RequestStatusApptScheduled, RequestStatusRejected},
	RequestStatusUnderReview:    {RequestStatusPendingDean, RequestStatusApptScheduled, RequestStatusRejected},
	RequestStatusPendingDean:    {RequestStatusApproved, RequestStatusApptScheduled, RequestStatusRejected},
	RequestStatusApptScheduled:  {RequestStatusCompleted, RequestStatusUnderReview, RequestStatusRejected},
	RequestStatusApproved:       {RequestStatusReadyForPickup, RequestStatusReleased, RequestStatusRejected},
	RequestStatusReadyForPickup: {RequestStatusReleased, RequestStatusRejected},
	// Rejected / Released / Completed are terminal
}

func CanTransition(from, to RequestStatus) bool {
	for _, next := range requestStatusFlow[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsTerminalStatus(s RequestStatus) bool {
	switch s {
	case RequestStatusRejected, RequestStatusReleased, RequestStatusCompleted:
		return true
	}
	return false
}

type Request struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	StudentID   uint          `gorm:"not null;index" json:"student_id"`
	RequestType string        `gorm:"type:varchar(50);not null" json:"request_type"`
	Reason      string        `gorm:"type:text" json:"reason"`
	Status      RequestStatus `gorm:"type:varchar(30);not null;default:'Submitted'" json:"status"`

	AdminComment string `gorm:"type:text" json:"admin_comment,omitempty"`

	// Minted once, on the first transition into Approved / Ready for Pickup.
	PickupCode *string `gorm:"uniqueIndex" json:"pickup_code,omitempty"`

	// Set at most once; reschedules mutate the same appointment.
	AppointmentID *uint `json:"appointment_id,omitempty"`

	// --- Relations ---
	Student     *User             `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Documents   []RequestDocument `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:RequestID" json:"documents,omitempty"`
	Appointment *Appointment      `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`

	gorm.Model
}

// TypeInfo resolves the catalog entry for this request's type.
func (r *Request) TypeInfo() RequestTypeInfo {
	return RequestTypes[r.RequestType]
}

type RequestDocument struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	RequestID uint   `gorm:"not null;index" json:"request_id"`
	DocName   string `gorm:"type:varchar(255);not null" json:"doc_name"`
	FileURL   string `gorm:"type:text;not null" json:"file_url"`
	PublicID  string `gorm:"type:varchar(255);not null" json:"-"` // cloudinary handle, used for cascade delete

	gorm.Model
}
