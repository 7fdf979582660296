package handler

import (
	"worldmart/internal/usecase"
	"worldmart/pkg/errors"
	"worldmart/pkg/response"

	"github.com/labstack/echo/v4"
)

type ProfileHandler struct {
	profileUseCase *usecase.ProfileUseCase
}

func NewProfileHandler(profileUseCase *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

func (h *ProfileHandler) GetPublicProfile(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.Error(c, errors.BadRequest("Profile ID is required", nil))
	}

	profile, err := h.profileUseCase.GetPublicProfile(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}
