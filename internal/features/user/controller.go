package user

import (
	"go-vault/internal/common/apperr"
	"go-vault/internal/config"
	"go-vault/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserController struct {
	UserService UserService
	Config      *config.Config
	Logger      *zap.Logger
}

func NewUserController(userService UserService, cfg *config.Config, logger *zap.Logger) *UserController {
	return &UserController{
		UserService: userService,
		Config:      cfg,
		Logger:      logger,
	}
}

// GetMe godoc
// @Summary Current user
// @Description Resolve the caller's identity to their user record
// @Tags users
// @Produce json
// @Success 200 {object} User
// @Failure 401 {object} map[string]interface{}
// @Router /api/me [get]
func (ctrl *UserController) GetMe(c *fiber.Ctx) error {
	claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	user, err := ctrl.UserService.ResolveCaller(c.UserContext(), claims.Identity)
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(user)
}

// GetUserProfile godoc
// @Summary Public user profile
// @Description Get a user's display name and avatar
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Profile
// @Failure 404 {object} map[string]interface{}
// @Router /api/users/{id}/profile [get]
func (ctrl *UserController) GetUserProfile(c *fiber.Ctx) error {
	profile, err := ctrl.UserService.GetProfile(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(profile)
}

type syncEvent struct {
	Type     string `json:"type"`
	Identity string `json:"identity"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	OrgID    string `json:"org_id"`
	Role     Role   `json:"role"`
}

// SyncUsers godoc
// @Summary Identity sync webhook
// @Description Apply a user/membership event from the external organization manager
// @Tags users
// @Accept json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/sync/users [post]
func (ctrl *UserController) SyncUsers(c *fiber.Ctx) error {
	if ctrl.Config.SyncWebhookSecret == "" ||
		c.Get("X-Sync-Signature") != ctrl.Config.SyncWebhookSecret {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid sync signature"})
	}

	var event syncEvent
	if err := c.BodyParser(&event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid event payload"})
	}

	ctx := c.UserContext()
	var err error
	switch event.Type {
	case "user.created":
		err = ctrl.UserService.CreateUser(ctx, event.Identity, event.Name, event.Image)
	case "user.updated":
		err = ctrl.UserService.UpdateUser(ctx, event.Identity, event.Name, event.Image)
	case "orgMembership.created":
		err = ctrl.UserService.AddOrgMembership(ctx, event.Identity, event.OrgID, event.Role)
	case "orgMembership.updated":
		err = ctrl.UserService.UpdateOrgRole(ctx, event.Identity, event.OrgID, event.Role)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown event type"})
	}

	if err != nil {
		ctrl.Logger.Error("identity sync failed",
			zap.String("event", event.Type),
			zap.Error(err))
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Event applied"})
}
