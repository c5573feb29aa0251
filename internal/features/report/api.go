package report

import (
	"go-vault/internal/config"
	"go-vault/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReportApi struct {
	controller *ReportController
	config     *config.Config
}

func NewReportApi(controller *ReportController, config *config.Config) *ReportApi {
	return &ReportApi{
		controller: controller,
		config:     config,
	}
}

func (h *ReportApi) Setup(app *fiber.App) {
	app.Get("/api/orgs/:orgId/files/export", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.ExportInventory)
}
