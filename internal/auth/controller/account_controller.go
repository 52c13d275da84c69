package controller

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/vominhduc11/NexHub-sub001/internal/auth/dto"
	"github.com/vominhduc11/NexHub-sub001/internal/auth/service"
	"github.com/vominhduc11/NexHub-sub001/internal/middleware"
	"github.com/vominhduc11/NexHub-sub001/pkg/errs"
	"github.com/vominhduc11/NexHub-sub001/pkg/response"
	"github.com/vominhduc11/NexHub-sub001/pkg/validation"
)

type Controller struct {
	service service.AccountService
}

func CreateController(e *echo.Group, service service.AccountService, serviceAPIKey string) {
	ac := Controller{
		service: service,
	}

	e.POST("/auth/login", ac.Login)

	internal := e.Group("/internal", middleware.RequireServiceKey(serviceAPIKey))
	internal.POST("/accounts", ac.CreateAccount)
	internal.DELETE("/accounts/:id", ac.DeleteAccount)
}

func (c *Controller) CreateAccount(e echo.Context) error {
	payload := dto.CreateAccountRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "CreateAccount").Msg("")
	}

	if err := e.Validate(&payload); err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, validation.FieldErrors(err))
	}

	resp, err := c.service.CreateAccount(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Account created successfully", resp)
}

func (c *Controller) DeleteAccount(e echo.Context) error {
	id := e.Param("id")
	idInt, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	err = c.service.DeleteAccount(e.Request().Context(), idInt)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Account deleted successfully", nil)
}

func (c *Controller) Login(e echo.Context) error {
	payload := dto.LoginRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "Login").Msg("")
	}

	resp, err := c.service.Login(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}
