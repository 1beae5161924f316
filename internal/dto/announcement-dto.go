package dto

type CreateAnnouncementRequest struct {
	Title     string  `json:"title" validate:"required,max=100"`
	Message   string  `json:"message" validate:"required,max=500"`
	Type      string  `json:"type,omitempty" example:"info"`
	ExpiresAt *string `json:"expires_at,omitempty" example:"2026-10-01T00:00:00Z"`
}

type UpdateAnnouncementRequest struct {
	Title     *string `json:"title,omitempty"`
	Message   *string `json:"message,omitempty"`
	Type      *string `json:"type,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
	ExpiresAt *string `json:"expires_at,omitempty"`
}
