package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dgiraldo/stockia-api/internal/application/apikey"
	"github.com/dgiraldo/stockia-api/internal/application/auth"
	"github.com/dgiraldo/stockia-api/internal/application/report"
	"github.com/dgiraldo/stockia-api/internal/application/usecase"
	infracrypto "github.com/dgiraldo/stockia-api/internal/infrastructure/crypto"
	"github.com/dgiraldo/stockia-api/internal/infrastructure/notify"
	infrapdf "github.com/dgiraldo/stockia-api/internal/infrastructure/pdf"
	"github.com/dgiraldo/stockia-api/internal/infrastructure/postgres"
	httpRouter "github.com/dgiraldo/stockia-api/internal/interfaces/http"
	"github.com/dgiraldo/stockia-api/pkg/config"
	"github.com/dgiraldo/stockia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	apiKeyRepo := postgres.NewAPIKeyRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	settingRepo := postgres.NewSettingRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	hasher := infracrypto.NewBcryptHasher(cfg.Auth.BcryptCost)
	sender := notify.NewLogSender(log.Component("notify"))
	pdfGenerator := infrapdf.NewMarotoReportGenerator()

	authUC := auth.NewUseCase(userRepo, notificationRepo, hasher, sender, auth.ResetConfig{
		Secret: cfg.Auth.ResetSecret,
		TTL:    time.Duration(cfg.Auth.ResetTTLMinutes) * time.Minute,
	})
	userUC := usecase.NewUserUseCase(userRepo, hasher)
	productUC := usecase.NewProductUseCase(productRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	movementUC := usecase.NewMovementUseCase(txRunner, movementRepo, notificationRepo, sender)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo)
	settingUC := usecase.NewSettingUseCase(settingRepo)
	dashboardUC := usecase.NewDashboardUseCase(dashboardRepo)
	reportUC := report.NewUseCase(movementRepo, productRepo, userRepo, pdfGenerator)
	apiKeySvc := apikey.NewService(apiKeyRepo)

	authMW := httpRouter.NewAuthMiddleware(userRepo, apiKeySvc, cfg.Auth.CookieName, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stockia API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		ProductUC:      productUC,
		CategoryUC:     categoryUC,
		MovementUC:     movementUC,
		NotificationUC: notificationUC,
		SettingUC:      settingUC,
		DashboardUC:    dashboardUC,
		ReportUC:       reportUC,
		APIKeySvc:      apiKeySvc,
		Auth:           authMW,
		CookieName:     cfg.Auth.CookieName,
		SessionTTL:     time.Duration(cfg.Auth.SessionTTLMinutes) * time.Minute,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
