package transport

import (
	"github.com/hisab-app/hisab-server/controllers"
	"github.com/hisab-app/hisab-server/lib/service"
	"github.com/labstack/echo/v4"
)

func RegisterV2Endpoints(svc *service.HisabService, e *echo.Echo, strictRateLimitMiddleware echo.MiddlewareFunc, adminMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	accountCtrl := controllers.NewAccountController(svc)
	entryCtrl := controllers.NewEntryController(svc)
	balanceCtrl := controllers.NewBalanceController(svc)
	ledgerCtrl := controllers.NewLedgerController(svc)
	snapshotCtrl := controllers.NewSnapshotController(svc)

	e.GET("/", controllers.NewHomeController(svc).Home, logMw)

	e.GET("/v2/accounts", accountCtrl.List, logMw)
	e.GET("/v2/accounts/autocomplete", accountCtrl.Autocomplete, logMw)
	e.GET("/v2/accounts/code-exists", accountCtrl.CodeExists, logMw)
	e.GET("/v2/accounts/:id", accountCtrl.Show, logMw)
	e.POST("/v2/accounts", accountCtrl.Create, adminMw, logMw)
	e.PUT("/v2/accounts/:id", accountCtrl.Update, adminMw, logMw)
	e.DELETE("/v2/accounts/:id", accountCtrl.Delete, adminMw, logMw)

	e.GET("/v2/entries", entryCtrl.List, logMw)
	e.POST("/v2/entries", entryCtrl.Create, adminMw, logMw)
	e.PUT("/v2/entries/:id", entryCtrl.Update, adminMw, logMw)
	e.DELETE("/v2/entries/:id", entryCtrl.Delete, adminMw, logMw)

	e.GET("/v2/balances", balanceCtrl.Balances, logMw)
	e.GET("/v2/ledger", ledgerCtrl.Ledger, logMw)

	e.GET("/v2/snapshot", snapshotCtrl.Export, logMw)
	// restoring rewrites the store, so it gets the strict rate limit on top
	// of the admin token
	e.POST("/v2/snapshot", snapshotCtrl.Import, strictRateLimitMiddleware, adminMw, logMw)
}
