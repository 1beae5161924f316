package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/selyo-ustp/request_service/internal/domain"
	"github.com/selyo-ustp/request_service/internal/dto"
	"github.com/selyo-ustp/request_service/internal/helper/utils"
	"github.com/selyo-ustp/request_service/internal/services"
)

// AdminHandler serves the registrar-side routes: request review,
// appointment management, pickup verification and announcements.
type AdminHandler struct {
	requestSvc      services.RequestService
	appointmentSvc  services.AppointmentService
	announcementSvc services.AnnouncementService
}

func NewAdminHandler(
	requestSvc services.RequestService,
	appointmentSvc services.AppointmentService,
	announcementSvc services.AnnouncementService,
) *AdminHandler {
	return &AdminHandler{
		requestSvc:      requestSvc,
		appointmentSvc:  appointmentSvc,
		announcementSvc: announcementSvc,
	}
}

/* ==== requests ==== */

func (h *AdminHandler) RequestTypes(ctx *fiber.Ctx) error {
	return utils.ResponseSuccess(ctx, fiber.StatusOK, domain.RequestTypes)
}

func (h *AdminHandler) ListRequests(ctx *fiber.Ctx) error {
	reqs, err := h.requestSvc.ListAll()
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, reqs)
}

func (h *AdminHandler) GetRequest(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request id")
	}
	req, err := h.requestSvc.GetByID(id)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, req)
}

func (h *AdminHandler) UpdateRequestStatus(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request id")
	}

	input := dto.UpdateRequestStatus{}
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}

	admin, err := currentUserID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	req, err := h.requestSvc.UpdateStatus(id, input, admin)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, req)
}

func (h *AdminHandler) DeleteRequest(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request id")
	}
	if err := h.requestSvc.Delete(ctx.Context(), id); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"deleted": id})
}

/* ==== pickup counter ==== */

func (h *AdminHandler) VerifyPickup(ctx *fiber.Ctx) error {
	code := strings.TrimSpace(ctx.Params("code"))
	if code == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "missing pickup code")
	}
	result, err := h.requestSvc.VerifyPickupCode(code)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, result)
}

func (h *AdminHandler) Release(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request id")
	}
	admin, err := currentUserID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}
	req, err := h.requestSvc.Release(id, admin)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, req)
}

/* ==== appointments ==== */

func (h *AdminHandler) Slots(ctx *fiber.Ctx) error {
	date := ctx.Query("date")
	if date == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "missing date query parameter")
	}

	var (
		slots *dto.SlotsResponse
		err   error
	)
	if raw := ctx.QueryInt("appointmentId", 0); raw > 0 {
		slots, err = h.appointmentSvc.AvailableSlotsForEdit(date, uint(raw))
	} else {
		slots, err = h.appointmentSvc.AvailableSlots(date)
	}
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, slots)
}

func (h *AdminHandler) ListAppointments(ctx *fiber.Ctx) error {
	appts, err := h.appointmentSvc.List(ctx.Query("date"), ctx.Query("status"))
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, appts)
}

func (h *AdminHandler) BookAppointment(ctx *fiber.Ctx) error {
	input := dto.BookAppointmentRequest{}
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}
	appt, err := h.appointmentSvc.Book(input)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, appt)
}

func (h *AdminHandler) UpdateAppointment(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid appointment id")
	}
	input := dto.UpdateAppointmentRequest{}
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}
	appt, err := h.appointmentSvc.Update(id, input)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, appt)
}

/* ==== announcements ==== */

func (h *AdminHandler) ListAnnouncements(ctx *fiber.Ctx) error {
	as, err := h.announcementSvc.ListAll()
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, as)
}

func (h *AdminHandler) CreateAnnouncement(ctx *fiber.Ctx) error {
	input := dto.CreateAnnouncementRequest{}
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}
	admin, err := currentUserID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}
	a, err := h.announcementSvc.Create(admin, input)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, a)
}

func (h *AdminHandler) UpdateAnnouncement(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid announcement id")
	}
	input := dto.UpdateAnnouncementRequest{}
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}
	a, err := h.announcementSvc.Update(id, input)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, a)
}

func (h *AdminHandler) DeleteAnnouncement(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid announcement id")
	}
	if err := h.announcementSvc.Delete(id); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"deleted": id})
}

func currentUserID(ctx *fiber.Ctx) (uint, error) {
	id, ok := ctx.Locals("userID").(uint)
	if !ok || id == 0 {
		return 0, fiber.ErrUnauthorized
	}
	return id, nil
}
