package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"microsite-shop/internal/config"
	"microsite-shop/internal/handler"
	"microsite-shop/internal/logger"
	"microsite-shop/internal/middleware"
	"microsite-shop/internal/repository"
	"microsite-shop/internal/service"
	"microsite-shop/internal/ws"
	"microsite-shop/pkg/database"
	"microsite-shop/pkg/jwt"
	"microsite-shop/pkg/rajaongkir"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Load config
	cfg, envLoaded, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	log, err := logger.Init(cfg.Log)
	if err != nil {
		logrus.Fatalf("logger: %v", err)
	}
	if !envLoaded {
		log.Warn(".env file not found, relying on system env")
	}

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.DSN(), log)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	// AutoMigrate on boot; swap for a migration tool once the schema settles.
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	userRepo := repository.NewUserRepo(db)
	settingRepo := repository.NewSettingRepo(db)
	postRepo := repository.NewPostRepo(db)
	geoRepo := repository.NewGeographyRepo(db)

	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	shippingClient := rajaongkir.NewClient(cfg.RajaOngkir.BaseURL, cfg.RajaOngkir.APIKey, cfg.RajaOngkir.Timeout, nil)
	if !shippingClient.Configured() {
		log.Warn("RAJAONGKIR_API_KEY is not set, shipping lookups will fail until cached")
	}

	authService := service.NewAuthService(userRepo, tokens, service.AuthOptions{
		AdminPassword:    cfg.AdminPassword,
		LegacyAdminToken: cfg.LegacyAdminToken,
	})
	settingService := service.NewSettingService(settingRepo)

	// 5. Seed the settings row and the optional database admin
	seed(log, settingService, authService, cfg)

	handlers := handler.Handlers{
		Product:   handler.NewProductHandler(service.NewProductService(productRepo, categoryRepo, wsHub)),
		Category:  handler.NewCategoryHandler(service.NewCategoryService(categoryRepo, productRepo)),
		Order:     handler.NewOrderHandler(service.NewOrderService(db, productRepo, orderRepo, userRepo, wsHub)),
		Auth:      handler.NewAuthHandler(authService),
		Setting:   handler.NewSettingHandler(settingService),
		Post:      handler.NewPostHandler(service.NewPostService(postRepo)),
		Shipping:  handler.NewShippingHandler(service.NewShippingService(geoRepo, shippingClient)),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(orderRepo, productRepo)),
		Upload: handler.NewUploadHandler(service.NewUploadService(
			service.LocalStorage{Dir: cfg.UploadDir, URLPrefix: cfg.UploadURLPrefix},
			cfg.UploadMaxWidth,
		)),
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:   "Microsite Shop API",
		BodyLimit: 10 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			if code >= fiber.StatusInternalServerError {
				logger.WithRequest(c).WithError(err).Error("unhandled error")
				return c.Status(code).JSON(fiber.Map{"error": "Internal Server Error"})
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${locals:requestid} | ${status} | ${latency} | ${ip} | ${method} ${path}\n",
		Output: log.Writer(),
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	app.Static(cfg.UploadURLPrefix, cfg.UploadDir)

	// 7. Routes
	authenticator := middleware.NewAuthenticator(tokens, cfg.LegacyAdminToken, userRepo)
	handler.RegisterRoutes(app, handlers, authenticator, wsHub, handler.RouteConfig{
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
	})

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Panic("server stopped")
		}
	}()
	log.Infof("API listening on :%s", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("Server exited")
}

// seed creates the settings singleton and, when ADMIN_EMAIL is set, a database admin.
func seed(log *logrus.Logger, settings service.SettingService, auth service.AuthService, cfg *config.Config) {
	if _, err := settings.GetSettings(); err != nil {
		log.WithError(err).Warn("Failed to seed store settings")
	}

	if cfg.AdminEmail == "" {
		return
	}
	password := cfg.AdminSeedPassword
	if password == "" {
		password = cfg.AdminPassword
	}
	admin, err := auth.EnsureAdmin(cfg.AdminEmail, password, "Administrator")
	if err != nil {
		log.WithError(err).Warn("Failed to seed admin user")
		return
	}
	log.WithField("email", admin.Email).Info("Admin user ready")
}
