package report

import (
	"fmt"

	"go-vault/internal/common/apperr"
	"go-vault/internal/features/user"
	"go-vault/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	ReportService ReportService
	UserService   user.UserService
}

func NewReportController(reportService ReportService, userService user.UserService) *ReportController {
	return &ReportController{
		ReportService: reportService,
		UserService:   userService,
	}
}

// ExportInventory godoc
// @Summary Export file inventory
// @Description Download an XLSX inventory of the organization's files (org admins only)
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param orgId path string true "Organization ID"
// @Success 200 {file} file "Workbook"
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/orgs/{orgId}/files/export [get]
func (ctrl *ReportController) ExportInventory(c *fiber.Ctx) error {
	claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	caller, err := ctrl.UserService.ResolveCaller(c.UserContext(), claims.Identity)
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	data, filename, err := ctrl.ReportService.ExportInventory(c.UserContext(), caller, c.Params("orgId"))
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
