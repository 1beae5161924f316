package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/selyo-ustp/request_service/internal/domain"
	"github.com/selyo-ustp/request_service/internal/dto"
	"github.com/selyo-ustp/request_service/internal/helper/utils"
	"github.com/selyo-ustp/request_service/internal/services"
)

// RequestHandler serves the student-facing routes.
type RequestHandler struct {
	svc             services.RequestService
	announcementSvc services.AnnouncementService
}

func NewRequestHandler(svc services.RequestService, announcementSvc services.AnnouncementService) *RequestHandler {
	return &RequestHandler{svc: svc, announcementSvc: announcementSvc}
}

func (h *RequestHandler) Create(ctx *fiber.Ctx) error {
	studentID, ok := ctx.Locals("userID").(uint)
	if !ok || studentID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	input := dto.CreateRequestInput{
		RequestType: strings.TrimSpace(ctx.FormValue("requestType")),
		Reason:      ctx.FormValue("reason"),
	}

	var files []dto.DocumentFile
	if form, err := ctx.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["documents"] {
			f, err := fh.Open()
			if err != nil {
				return utils.ResponseError(ctx, fiber.StatusBadRequest, "cannot open uploaded file")
			}
			b, err := utils.ReadAllLimit(f, 5*1024*1024)
			f.Close()
			if err != nil {
				return utils.ResponseError(ctx, fiber.StatusBadRequest, "file too large (max 5MB)")
			}
			files = append(files, dto.DocumentFile{
				Filename: fh.Filename,
				Bytes:    b,
			})
		}
	}

	req, err := h.svc.Create(ctx.Context(), studentID, input, files)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusCreated, req)
}

func (h *RequestHandler) List(ctx *fiber.Ctx) error {
	studentID, ok := ctx.Locals("userID").(uint)
	if !ok || studentID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	reqs, err := h.svc.ListByStudent(studentID)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, reqs)
}

func (h *RequestHandler) Get(ctx *fiber.Ctx) error {
	studentID, ok := ctx.Locals("userID").(uint)
	if !ok || studentID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseID(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request id")
	}

	req, err := h.svc.GetForStudent(studentID, id)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, req)
}

func (h *RequestHandler) Types(ctx *fiber.Ctx) error {
	return utils.ResponseSuccess(ctx, fiber.StatusOK, domain.RequestTypes)
}

func (h *RequestHandler) Announcements(ctx *fiber.Ctx) error {
	as, err := h.announcementSvc.ListActive()
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, as)
}

func parseID(ctx *fiber.Ctx, name string) (uint, error) {
	raw := ctx.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}
