package share

import (
	"github.com/gofiber/fiber/v2"
)

type ShareController struct {
	ShareRepo ShareRepository
}

func NewShareController(shareRepo ShareRepository) *ShareController {
	return &ShareController{ShareRepo: shareRepo}
}

// GetSharedLink godoc
// @Summary Public shared file
// @Description Get the public snapshot of a shared file by blob reference
// @Tags shares
// @Produce json
// @Param blobRef path string true "Blob reference"
// @Success 200 {object} SharedLink
// @Failure 404 {object} map[string]interface{}
// @Router /api/shared/{blobRef} [get]
func (ctrl *ShareController) GetSharedLink(c *fiber.Ctx) error {
	// Blob refs may contain slashes (S3 keys), hence the wildcard param.
	blobRef := c.Params("+")

	link, err := ctrl.ShareRepo.FindByBlobRef(c.UserContext(), blobRef)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error retrieving shared link",
		})
	}
	if link == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Shared link not found",
		})
	}

	return c.JSON(link)
}
