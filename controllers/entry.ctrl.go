package controllers

import (
	"net/http"

	"github.com/hisab-app/hisab-server/lib/responses"
	"github.com/hisab-app/hisab-server/lib/service"
	"github.com/labstack/echo/v4"
)

// EntryController : Entry CRUD controller
type EntryController struct {
	svc *service.HisabService
}

func NewEntryController(svc *service.HisabService) *EntryController {
	return &EntryController{svc: svc}
}

type CreateEntryRequestBody struct {
	AccountID   int64  `json:"account_id" validate:"required"`
	Amount      int64  `json:"amount" validate:"gte=0"`
	Type        string `json:"type" validate:"required,oneof=debit credit"`
	Description string `json:"description"`
}

type UpdateEntryRequestBody struct {
	Amount      int64  `json:"amount" validate:"gte=0"`
	Type        string `json:"type" validate:"required,oneof=debit credit"`
	Description string `json:"description"`
}

// List returns live entries with their account, most recent first.
func (controller *EntryController) List(c echo.Context) error {
	page, pageSize, err := paginationParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	result, err := controller.svc.Entries(c.Request().Context(), page, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (controller *EntryController) Create(c echo.Context) error {
	var body CreateEntryRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load entry request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	entry, err := controller.svc.CreateEntry(c.Request().Context(), body.AccountID, body.Amount, body.Type, body.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

func (controller *EntryController) Update(c echo.Context) error {
	entryId, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	var body UpdateEntryRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load entry request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	entry, err := controller.svc.UpdateEntry(c.Request().Context(), entryId, body.Amount, body.Type, body.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

func (controller *EntryController) Delete(c echo.Context) error {
	entryId, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	if err := controller.svc.DeleteEntry(c.Request().Context(), entryId); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
