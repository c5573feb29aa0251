package share

import (
	"github.com/gofiber/fiber/v2"
)

type ShareApi struct {
	controller *ShareController
}

func NewShareApi(controller *ShareController) *ShareApi {
	return &ShareApi{controller: controller}
}

func (h *ShareApi) Setup(app *fiber.App) {
	// Public, no auth middleware: the snapshot is the authorization boundary.
	app.Get("/api/shared/+", h.controller.GetSharedLink)
}
