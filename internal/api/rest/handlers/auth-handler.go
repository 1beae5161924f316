package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/selyo-ustp/request_service/internal/domain"
	"github.com/selyo-ustp/request_service/internal/dto"
	"github.com/selyo-ustp/request_service/internal/helper"
	"github.com/selyo-ustp/request_service/internal/helper/utils"
	"github.com/selyo-ustp/request_service/internal/services"
)

type AuthHandler struct {
	svc  services.UserService
	auth helper.Auth
}

func NewAuthHandler(svc services.UserService, auth helper.Auth) *AuthHandler {
	return &AuthHandler{svc: svc, auth: auth}
}

func (h *AuthHandler) Register(ctx *fiber.Ctx) error {
	var requestBody dto.RegisterRequest

	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	user, err := h.svc.Register(requestBody)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}

	token, err := h.auth.GenerateToken(int(user.ID), user.Email, user.Role)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "could not generate token")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusCreated, dto.LoginResponse{
		Token: token,
		User:  toProfile(user),
	})
}

func (h *AuthHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.UserLogin
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	user, err := h.svc.Login(requestBody)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	token, err := h.auth.GenerateToken(int(user.ID), user.Email, user.Role)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "could not generate token")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.LoginResponse{
		Token: token,
		User:  toProfile(user),
	})
}

func (h *AuthHandler) Me(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := h.svc.GetProfile(uint(claims.UserID))
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, toProfile(user))
}

func toProfile(u *domain.User) dto.UserProfileResponse {
	return dto.UserProfileResponse{
		ID:        u.ID,
		Role:      u.Role,
		StudentID: u.StudentID,
		Name:      u.Name,
		Email:     u.Email,
		Program:   u.Program,
		YearLevel: u.YearLevel,
	}
}
