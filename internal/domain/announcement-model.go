package domain

import (
	"time"

	"gorm.io/gorm"
)

type AnnouncementType string

const (
	AnnouncementTypeInfo    AnnouncementType = "info"
	AnnouncementTypeWarning AnnouncementType = "warning"
	AnnouncementTypeUrgent  AnnouncementType = "urgent"
)

func IsValidAnnouncementType(t AnnouncementType) bool {
	switch t {
	case AnnouncementTypeInfo, AnnouncementTypeWarning, AnnouncementTypeUrgent:
		return true
	}
	return false
}

type Announcement struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Title     string           `gorm:"type:varchar(100);not null" json:"title"`
	Message   string           `gorm:"type:varchar(500);not null" json:"message"`
	Type      AnnouncementType `gorm:"type:varchar(20);not null;default:'info'" json:"type"`
	IsActive  bool             `gorm:"not null;default:true;index" json:"is_active"`
	CreatedBy uint             `gorm:"not null" json:"created_by"`
	ExpiresAt *time.Time       `gorm:"index" json:"expires_at,omitempty"`

	Author *User `gorm:"foreignKey:CreatedBy" json:"author,omitempty"`

	gorm.Model
}
