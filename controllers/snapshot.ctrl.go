package controllers

import (
	"io"
	"net/http"
	"time"

	"github.com/hisab-app/hisab-server/lib/responses"
	"github.com/hisab-app/hisab-server/lib/service"
	"github.com/hisab-app/hisab-server/lib/snapshot"
	"github.com/labstack/echo/v4"
)

// SnapshotController : Snapshot export/import controller
type SnapshotController struct {
	svc *service.HisabService
}

func NewSnapshotController(svc *service.HisabService) *SnapshotController {
	return &SnapshotController{svc: svc}
}

// Export downloads the current balances as a snapshot artifact. Export is
// read-only and always includes zero-balance accounts.
func (controller *SnapshotController) Export(c echo.Context) error {
	snap, err := controller.svc.ExportSnapshot(c.Request().Context())
	if err != nil {
		return err
	}

	data, err := snapshot.Encode(snap)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+snapshot.Filename(time.Now())+`"`)
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

// Import restores a snapshot artifact from the request body. A non-empty
// database is refused unless force=true, which stands in for the desktop
// app's confirmation dialog.
func (controller *SnapshotController) Import(c echo.Context) error {
	ctx := c.Request().Context()

	if c.QueryParam("force") != "true" {
		notEmpty, err := controller.svc.HasAccounts(ctx)
		if err != nil {
			return err
		}
		if notEmpty {
			return c.JSON(http.StatusConflict, responses.StoreNotEmptyError)
		}
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	snap, err := snapshot.Decode(body)
	if err != nil {
		return err
	}

	if err := controller.svc.ImportSnapshot(ctx, snap); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int{"restored": len(snap.Accounts)})
}
