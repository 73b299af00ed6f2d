package controllers

import (
	"net/http"

	"github.com/hisab-app/hisab-server/lib/service"
	"github.com/labstack/echo/v4"
)

// LedgerController : Consolidated ledger controller
type LedgerController struct {
	svc *service.HisabService
}

func NewLedgerController(svc *service.HisabService) *LedgerController {
	return &LedgerController{svc: svc}
}

// Ledger returns the debit/credit split of all account balances with
// per-column totals and the overall net.
func (controller *LedgerController) Ledger(c echo.Context) error {
	view, err := controller.svc.Ledger(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}
