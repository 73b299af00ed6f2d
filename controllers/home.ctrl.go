package controllers

import (
	"net/http"

	"github.com/hisab-app/hisab-server/lib/service"
	"github.com/labstack/echo/v4"
)

// HomeController : Service info controller
type HomeController struct {
	svc *service.HisabService
}

func NewHomeController(svc *service.HisabService) *HomeController {
	return &HomeController{svc: svc}
}

type HomeResponseBody struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (controller *HomeController) Home(c echo.Context) error {
	name := "hisab"
	if controller.svc.Config.CustomName != "" {
		name = controller.svc.Config.CustomName
	}
	return c.JSON(http.StatusOK, &HomeResponseBody{
		Name:    name,
		Version: "1.0.0",
	})
}
