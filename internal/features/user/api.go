package user

import (
	"go-vault/internal/config"
	"go-vault/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserApi struct {
	controller *UserController
	config     *config.Config
}

func NewUserApi(controller *UserController, config *config.Config) *UserApi {
	return &UserApi{
		controller: controller,
		config:     config,
	}
}

func (h *UserApi) Setup(app *fiber.App) {
	app.Get("/api/me", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.GetMe)
	app.Get("/api/users/:id/profile", h.controller.GetUserProfile)
	app.Post("/api/sync/users", h.controller.SyncUsers)
}
