package controllers

import (
	"net/http"
	"strconv"

	"github.com/hisab-app/hisab-server/lib/responses"
	"github.com/hisab-app/hisab-server/lib/service"
	"github.com/labstack/echo/v4"
)

// AccountController : Account CRUD and lookup controller
type AccountController struct {
	svc *service.HisabService
}

func NewAccountController(svc *service.HisabService) *AccountController {
	return &AccountController{svc: svc}
}

type AccountRequestBody struct {
	Name  string `json:"name" validate:"required"`
	Code  string `json:"code" validate:"required"`
	Phone string `json:"phone"`
}

type CodeExistsResponseBody struct {
	Exists bool `json:"exists"`
}

// List returns live accounts ordered by name, paginated.
func (controller *AccountController) List(c echo.Context) error {
	page, pageSize, err := paginationParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	result, err := controller.svc.Accounts(c.Request().Context(), page, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Show returns one account with its entries and folded balance.
func (controller *AccountController) Show(c echo.Context) error {
	accountId, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	result, err := controller.svc.AccountWithEntries(c.Request().Context(), accountId)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (controller *AccountController) Create(c echo.Context) error {
	var body AccountRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load account request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	account, err := controller.svc.CreateAccount(c.Request().Context(), body.Name, body.Code, body.Phone)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, account)
}

func (controller *AccountController) Update(c echo.Context) error {
	accountId, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	var body AccountRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load account request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	account, err := controller.svc.UpdateAccount(c.Request().Context(), accountId, body.Name, body.Code, body.Phone)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

func (controller *AccountController) Delete(c echo.Context) error {
	accountId, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	if err := controller.svc.DeleteAccount(c.Request().Context(), accountId); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Autocomplete returns up to ten live accounts whose name contains the
// search text.
func (controller *AccountController) Autocomplete(c echo.Context) error {
	accounts, err := controller.svc.AutocompleteAccounts(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

// CodeExists is the pre-emptive duplicate check used by entry forms.
func (controller *AccountController) CodeExists(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	exists, err := controller.svc.AccountCodeExists(c.Request().Context(), code)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &CodeExistsResponseBody{Exists: exists})
}

func idParam(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func paginationParams(c echo.Context) (page int, pageSize int, err error) {
	if raw := c.QueryParam("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 0 {
			return 0, 0, echo.ErrBadRequest
		}
	}
	if raw := c.QueryParam("page_size"); raw != "" {
		pageSize, err = strconv.Atoi(raw)
		if err != nil || pageSize < 0 {
			return 0, 0, echo.ErrBadRequest
		}
	}
	return page, pageSize, nil
}
