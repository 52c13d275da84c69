package controller

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/vominhduc11/NexHub-sub001/internal/middleware"
	"github.com/vominhduc11/NexHub-sub001/internal/user/dto"
	"github.com/vominhduc11/NexHub-sub001/internal/user/service"
	pkgdto "github.com/vominhduc11/NexHub-sub001/pkg/dto"
	"github.com/vominhduc11/NexHub-sub001/pkg/errs"
	"github.com/vominhduc11/NexHub-sub001/pkg/response"
	"github.com/vominhduc11/NexHub-sub001/pkg/validation"
)

type Controller struct {
	service service.ResellerService
}

func CreateController(e *echo.Group, service service.ResellerService, serviceAPIKey string) {
	rc := Controller{
		service: service,
	}

	e.POST("/resellers", rc.RegisterReseller)

	admin := e.Group("/admin", middleware.RequireServiceKey(serviceAPIKey))
	admin.GET("/resellers", rc.GetResellers)
	admin.GET("/resellers/:id", rc.GetResellerByAccountID)
	admin.POST("/resellers/:id/approve", rc.ApproveReseller)
	admin.POST("/resellers/:id/reject", rc.RejectReseller)
	admin.DELETE("/resellers/:id", rc.DeleteReseller)
	admin.POST("/resellers/:id/restore", rc.RestoreReseller)
}

func (c *Controller) RegisterReseller(e echo.Context) error {
	payload := dto.ResellerRegistrationRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "RegisterReseller").Msg("")
	}

	if err := e.Validate(&payload); err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, validation.FieldErrors(err))
	}

	resp, err := c.service.RegisterReseller(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Reseller registered successfully", resp)
}

func (c *Controller) GetResellers(e echo.Context) error {
	filter := pkgdto.Filter{Limit: 20, Page: 1}

	if limit := e.QueryParam("limit"); limit != "" {
		limitInt, err := strconv.Atoi(limit)
		if err != nil || limitInt < 1 {
			return response.WriteErrorResponse(e, errs.ErrClient, nil)
		}
		filter.Limit = limitInt
	}

	if page := e.QueryParam("page"); page != "" {
		pageInt, err := strconv.Atoi(page)
		if err != nil || pageInt < 1 {
			return response.WriteErrorResponse(e, errs.ErrClient, nil)
		}
		filter.Page = pageInt
	}

	filter.Deleted = e.QueryParam("deleted") == "true"

	resp, err := c.service.GetResellers(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *Controller) GetResellerByAccountID(e echo.Context) error {
	accountID, err := c.accountIDParam(e)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.GetResellerByAccountID(e.Request().Context(), accountID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *Controller) ApproveReseller(e echo.Context) error {
	accountID, err := c.accountIDParam(e)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	adminID, err := c.adminAccountID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	err = c.service.ApproveReseller(e.Request().Context(), accountID, adminID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Reseller approved successfully", nil)
}

func (c *Controller) RejectReseller(e echo.Context) error {
	accountID, err := c.accountIDParam(e)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	adminID, err := c.adminAccountID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.RejectResellerRequest{}
	err = e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "RejectReseller").Msg("")
	}

	if err := e.Validate(&payload); err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, validation.FieldErrors(err))
	}

	err = c.service.RejectReseller(e.Request().Context(), accountID, payload.Reason, adminID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Reseller rejected successfully", nil)
}

func (c *Controller) DeleteReseller(e echo.Context) error {
	accountID, err := c.accountIDParam(e)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	err = c.service.DeleteReseller(e.Request().Context(), accountID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Reseller deleted successfully", nil)
}

func (c *Controller) RestoreReseller(e echo.Context) error {
	accountID, err := c.accountIDParam(e)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	err = c.service.RestoreReseller(e.Request().Context(), accountID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Reseller restored successfully", nil)
}

func (c *Controller) accountIDParam(e echo.Context) (int64, error) {
	return strconv.ParseInt(e.Param("id"), 10, 64)
}

// adminAccountID reads the acting admin's account id forwarded by the gateway.
func (c *Controller) adminAccountID(e echo.Context) (int64, error) {
	header := e.Request().Header.Get("X-Account-ID")
	if header == "" {
		return 0, errs.ErrMissingAccountID
	}

	adminID, err := strconv.ParseInt(header, 10, 64)
	if err != nil {
		return 0, errs.ErrMissingAccountID
	}

	return adminID, nil
}
