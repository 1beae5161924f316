package repository

import (
	"log"

	"github.com/selyo-ustp/request_service/internal/domain"
	"gorm.io/gorm"
)

type AuditRepository interface {
	Record(entry *domain.AuditLog)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

// Record is best-effort: losing an audit row is logged, never fatal to the
// action being audited.
func (r *auditRepository) Record(entry *domain.AuditLog) {
	if err := r.db.Create(entry).Error; err != nil {
		log.Printf("audit log write error: %v", err)
	}
}
