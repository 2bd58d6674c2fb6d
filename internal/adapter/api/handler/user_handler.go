package handler

import (
	"github.com/labstack/echo/v4"

	"gearswap/internal/usecase"
	"gearswap/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	userID := c.Get("uid").(string)

	user, err := h.userUseCase.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) GetPublicProfile(c echo.Context) error {
	profile, err := h.userUseCase.GetPublicProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

type updateProfileRequest struct {
	Username  *string `json:"username"`
	FullName  *string `json:"full_name"`
	Phone     *string `json:"phone"`
	Bio       *string `json:"bio"`
	Address   *string `json:"address"`
	AvatarURL *string `json:"avatar_url"`
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), userID, usecase.UpdateProfileInput{
		Username:  req.Username,
		FullName:  req.FullName,
		Phone:     req.Phone,
		Bio:       req.Bio,
		Address:   req.Address,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) DeactivateAccount(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.userUseCase.DeactivateAccount(c.Request().Context(), userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deactivated"})
}
