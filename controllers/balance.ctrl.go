package controllers

import (
	"net/http"

	"github.com/hisab-app/hisab-server/lib/service"
	"github.com/labstack/echo/v4"
)

// BalanceController : Accounts-with-balance controller
type BalanceController struct {
	svc *service.HisabService
}

func NewBalanceController(svc *service.HisabService) *BalanceController {
	return &BalanceController{svc: svc}
}

// Balances returns every live account with its folded balance.
// hide_zero=true drops accounts whose balance is exactly zero.
func (controller *BalanceController) Balances(c echo.Context) error {
	hideZero := c.QueryParam("hide_zero") == "true"

	accounts, err := controller.svc.AccountsWithBalance(c.Request().Context(), hideZero)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}
