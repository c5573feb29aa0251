package file

import (
	"go-vault/internal/config"
	"go-vault/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type FileApi struct {
	controller *FileController
	config     *config.Config
}

func NewFileApi(controller *FileController, config *config.Config) *FileApi {
	return &FileApi{
		controller: controller,
		config:     config,
	}
}

func (h *FileApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	app.Post("/api/files/upload-url", auth, h.controller.IssueUploadURL)
	app.Put("/api/blobs/:ref", auth, h.controller.UploadBlob)
	app.Post("/api/files/upload", auth, h.controller.UploadFile)
	app.Post("/api/files", auth, h.controller.CreateFile)
	app.Get("/api/files", auth, h.controller.GetFiles)
	app.Patch("/api/files/:id/rename", auth, h.controller.RenameFile)
	app.Delete("/api/files/:id", auth, h.controller.DeleteFile)
	app.Post("/api/files/:id/restore", auth, h.controller.RestoreFile)
	app.Post("/api/files/:id/favorite", auth, h.controller.ToggleFavorite)
	app.Post("/api/files/:id/share", auth, h.controller.ToggleShare)

	// Local-driver blobs are served statically; S3 resolves presigned URLs.
	app.Static(h.config.FSURL, h.config.FSPath)
}
