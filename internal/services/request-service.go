package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/selyo-ustp/request_service/internal/apperr"
	"github.com/selyo-ustp/request_service/internal/domain"
	"github.com/selyo-ustp/request_service/internal/dto"
	"github.com/selyo-ustp/request_service/internal/helper/utils"
	"github.com/selyo-ustp/request_service/internal/interfaces"
	"github.com/selyo-ustp/request_service/internal/repository"
	"gorm.io/gorm"
)

const (
	maxDocuments   = 5
	maxDocumentLen = 5 * 1024 * 1024 // 5MB, same cap the old upload route had
)

var allowedDocExts = map[string]bool{
	".pdf": true, ".jpg": true, ".jpeg": true, ".png": true,
}

type RequestService interface {
	Create(ctx context.Context, studentID uint, input dto.CreateRequestInput, files []dto.DocumentFile) (*domain.Request, error)
	ListByStudent(studentID uint) ([]domain.Request, error)
	GetForStudent(studentID, requestID uint) (*domain.Request, error)
	ListAll() ([]domain.Request, error)
	GetByID(requestID uint) (*domain.Request, error)
	UpdateStatus(requestID uint, input dto.UpdateRequestStatus, adminID uint) (*domain.Request, error)
	Delete(ctx context.Context, requestID uint) error

	// Pickup verification (QR counter flow)
	VerifyPickupCode(code string) (*dto.VerifyPickupResponse, error)
	Release(requestID uint, adminID uint) (*domain.Request, error)
}

type requestService struct {
	repo      repository.RequestRepository
	auditRepo repository.AuditRepository
	uploader  interfaces.Uploader
	producer  interfaces.ProducerHandler
}

func NewRequestService(
	repo repository.RequestRepository,
	auditRepo repository.AuditRepository,
	uploader interfaces.Uploader,
	producer interfaces.ProducerHandler,
) RequestService {
	return &requestService{
		repo:      repo,
		auditRepo: auditRepo,
		uploader:  uploader,
		producer:  producer,
	}
}

func (s *requestService) Create(
	ctx context.Context,
	studentID uint,
	input dto.CreateRequestInput,
	files []dto.DocumentFile,
) (*domain.Request, error) {
	if studentID == 0 {
		return nil, apperr.NewValidation("invalid student id")
	}

	reqType := strings.TrimSpace(input.RequestType)
	if !domain.IsValidRequestType(reqType) {
		return nil, apperr.NewValidation("unknown request type")
	}

	if len(files) > maxDocuments {
		return nil, apperr.NewValidation(fmt.Sprintf("at most %d documents allowed", maxDocuments))
	}
	for i, f := range files {
		ext := strings.ToLower(filepath.Ext(f.Filename))
		if !allowedDocExts[ext] {
			return nil, apperr.NewValidation("only PDF, JPG, JPEG, and PNG files are allowed")
		}
		if len(f.Bytes) == 0 {
			return nil, apperr.NewValidation(fmt.Sprintf("document #%d is empty", i+1))
		}
		if len(f.Bytes) > maxDocumentLen {
			return nil, apperr.NewValidation(fmt.Sprintf("document #%d is too large (max 5MB)", i+1))
		}
	}

	// Upload files FIRST; the request row is only created once every blob
	// made it to storage.
	docs := make([]domain.RequestDocument, 0, len(files))
	for i, f := range files {
		publicName := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), filepath.Ext(f.Filename))
		url, publicID, err := s.uploader.UploadBytes(ctx, "selyo/documents", publicName, f.Bytes)
		if err != nil {
			return nil, fmt.Errorf("upload document #%d failed: %w", i+1, err)
		}
		docs = append(docs, domain.RequestDocument{
			DocName:  f.Filename,
			FileURL:  url,
			PublicID: publicID,
		})
	}

	req := &domain.Request{
		StudentID:   studentID,
		RequestType: reqType,
		Reason:      strings.TrimSpace(input.Reason),
		Status:      domain.RequestStatusSubmitted,
		Documents:   docs,
	}

	if err := s.repo.Create(req); err != nil {
		return nil, err
	}

	s.publish("request.submitted", fmt.Sprintf(
		`{"request_id":%d,"student_id":%d,"request_type":"%s"}`,
		req.ID, req.StudentID, req.RequestType,
	))

	return s.repo.FindByID(req.ID)
}

func (s *requestService) ListByStudent(studentID uint) ([]domain.Request, error) {
	if studentID == 0 {
		return nil, apperr.NewValidation("invalid student id")
	}
	return s.repo.ListByStudent(studentID)
}

func (s *requestService) GetForStudent(studentID, requestID uint) (*domain.Request, error) {
	req, err := s.getRequest(requestID)
	if err != nil {
		return nil, err
	}
	// own requests only; leak nothing about other students' requests
	if req.StudentID != studentID {
		return nil, apperr.NewNotFound("request not found")
	}
	return req, nil
}

func (s *requestService) ListAll() ([]domain.Request, error) {
	return s.repo.ListAll()
}

func (s *requestService) GetByID(requestID uint) (*domain.Request, error) {
	return s.getRequest(requestID)
}

func (s *requestService) UpdateStatus(requestID uint, input dto.UpdateRequestStatus, adminID uint) (*domain.Request, error) {
	status := domain.RequestStatus(strings.TrimSpace(input.Status))
	if !domain.IsValidRequestStatus(status) {
		return nil, apperr.NewValidation("unknown request status")
	}

	req, err := s.getRequest(requestID)
	if err != nil {
		return nil, err
	}

	comment := strings.TrimSpace(input.AdminComment)
	if status == domain.RequestStatusRejected && comment == "" {
		return nil, apperr.NewValidation("rejecting a request requires an admin comment")
	}

	// writing the current status again is not a transition: no event, no
	// audit, at most a comment update
	if status == req.Status {
		if comment == "" || comment == req.AdminComment {
			return req, nil
		}
		req.AdminComment = comment
		if err := s.repo.Save(req); err != nil {
			return nil, err
		}
		return s.repo.FindByID(req.ID)
	}

	if !domain.CanTransition(req.Status, status) {
		if !input.Override {
			return nil, apperr.NewInvalidState(fmt.Sprintf(
				"cannot move request from %q to %q", req.Status, status))
		}
		note := fmt.Sprintf("override: %s -> %s", req.Status, status)
		s.auditRepo.Record(&domain.AuditLog{
			ActorID:  adminID,
			Action:   "request.status_override",
			Entity:   "request",
			EntityID: req.ID,
			Note:     &note,
		})
	}

	prev := req.Status
	req.Status = status
	if comment != "" {
		req.AdminComment = comment
	}

	// Mint the pickup code on the first entry into Approved / Ready for
	// Pickup. Later writes keep the original code.
	if (status == domain.RequestStatusApproved || status == domain.RequestStatusReadyForPickup) && req.PickupCode == nil {
		code := utils.NewPickupCode(req.ID)
		req.PickupCode = &code
	}

	if err := s.repo.Save(req); err != nil {
		return nil, err
	}

	s.publish("request.status_changed", fmt.Sprintf(
		`{"request_id":%d,"student_id":%d,"from":"%s","to":"%s"}`,
		req.ID, req.StudentID, prev, req.Status,
	))

	return s.repo.FindByID(req.ID)
}

func (s *requestService) Delete(ctx context.Context, requestID uint) error {
	req, err := s.getRequest(requestID)
	if err != nil {
		return err
	}

	// Blob cleanup is best-effort: a stuck blob must not keep the record
	// around forever.
	for _, doc := range req.Documents {
		if doc.PublicID == "" {
			continue
		}
		if err := s.uploader.Destroy(ctx, doc.PublicID); err != nil {
			log.Printf("delete document blob %s error: %v", doc.PublicID, err)
		}
	}

	return s.repo.DeleteCascade(req)
}

/* =========================
   PICKUP VERIFIER
========================= */

func (s *requestService) VerifyPickupCode(code string) (*dto.VerifyPickupResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return &dto.VerifyPickupResponse{Valid: false, Reason: "NotFound"}, nil
	}

	req, err := s.repo.FindByPickupCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.VerifyPickupResponse{Valid: false, Reason: "NotFound"}, nil
		}
		return nil, err
	}

	switch req.Status {
	case domain.RequestStatusApproved, domain.RequestStatusReadyForPickup, domain.RequestStatusReleased:
		return &dto.VerifyPickupResponse{
			Valid:   true,
			Request: req,
			Student: req.Student,
		}, nil
	default:
		return &dto.VerifyPickupResponse{Valid: false, Reason: "NotReady"}, nil
	}
}

func (s *requestService) Release(requestID uint, adminID uint) (*domain.Request, error) {
	req, err := s.getRequest(requestID)
	if err != nil {
		return nil, err
	}

	// releasing twice is a no-op, not an error
	if req.Status == domain.RequestStatusReleased {
		return req, nil
	}

	if req.Status != domain.RequestStatusApproved && req.Status != domain.RequestStatusReadyForPickup {
		return nil, apperr.NewInvalidState("only approved requests can be marked as released")
	}

	req.Status = domain.RequestStatusReleased
	if err := s.repo.Save(req); err != nil {
		return nil, err
	}

	s.auditRepo.Record(&domain.AuditLog{
		ActorID:  adminID,
		Action:   "request.released",
		Entity:   "request",
		EntityID: req.ID,
	})
	s.publish("request.released", fmt.Sprintf(
		`{"request_id":%d,"student_id":%d}`, req.ID, req.StudentID,
	))

	return req, nil
}

func (s *requestService) getRequest(requestID uint) (*domain.Request, error) {
	req, err := s.repo.FindByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("request not found")
		}
		return nil, err
	}
	return req, nil
}

func (s *requestService) publish(key, payload string) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishMessage([]byte(key), []byte(payload)); err != nil {
		log.Printf("publish %s error: %v", key, err)
	}
}
