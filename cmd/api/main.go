package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-vault/internal/blob"
	common_api "go-vault/internal/common/api"
	"go-vault/internal/config"
	"go-vault/internal/database"
	"go-vault/internal/features/audit"
	"go-vault/internal/features/favorite"
	"go-vault/internal/features/file"
	"go-vault/internal/features/report"
	"go-vault/internal/features/share"
	"go-vault/internal/features/sweeper"
	"go-vault/internal/features/user"
	"go-vault/internal/logger"
	"go-vault/internal/middleware"
	"go-vault/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d routes\n", len(routes))
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(
	lc fx.Lifecycle,
	userRepo user.UserRepository,
	fileRepo file.FileRepository,
	favoriteRepo favorite.FavoriteRepository,
	shareRepo share.ShareRepository,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := userRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure user indexes: %v", err)
				}
				if err := fileRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure file indexes: %v", err)
				}
				if err := favoriteRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure favorite indexes: %v", err)
				}
				if err := shareRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure shared link indexes: %v", err)
				}
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database & Blob Storage
			database.NewDatabase,
			blob.NewStore,

			// Initialize Repositories
			user.NewUserRepository,
			file.NewFileRepository,
			favorite.NewFavoriteRepository,
			share.NewShareRepository,
			audit.NewAuditRepository,

			// Initialize Services
			user.NewUserService,
			audit.NewAuditService,
			file.NewFileService,
			sweeper.NewSweeperService,
			report.NewReportService,

			// Initialize Controllers
			user.NewUserController,
			file.NewFileController,
			share.NewShareController,
			report.NewReportController,

			// Initialize API Routes
			AsRoute(user.NewUserApi),
			AsRoute(file.NewFileApi),
			AsRoute(share.NewShareApi),
			AsRoute(report.NewReportApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) {
				utils.SetSecret(cfg.JWTSecret)
			},

			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, sweeperService sweeper.SweeperService) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return sweeperService.InitializeScheduler(ctx)
					},
					OnStop: func(ctx context.Context) error {
						return sweeperService.StopScheduler()
					},
				})
			},
			InitializeIndexes,
		),
	)

	app.Run()
}
