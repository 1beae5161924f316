package dto

// CreateRequestInput carries the multipart fields of POST /api/requests.
// Files come in separately through the multipart form ("documents").
type CreateRequestInput struct {
	RequestType string `json:"request_type" form:"requestType" validate:"required"`
	Reason      string `json:"reason" form:"reason"`
}

type DocumentFile struct {
	Filename string
	Bytes    []byte
}

type UpdateRequestStatus struct {
	Status       string `json:"status" validate:"required" example:"Under Review"`
	AdminComment string `json:"admin_comment,omitempty"`
	// Override applies a transition outside the documented graph.
	// It is recorded in the audit log.
	Override bool `json:"override,omitempty"`
}

type VerifyPickupResponse struct {
	Valid   bool        `json:"valid"`
	Reason  string      `json:"reason,omitempty"` // NotFound | NotReady
	Request interface{} `json:"request,omitempty"`
	Student interface{} `json:"student,omitempty"`
}
