package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jbejarano/portal-casas-api/internal/application/auth"
	appnotify "github.com/jbejarano/portal-casas-api/internal/application/notify"
	"github.com/jbejarano/portal-casas-api/internal/application/payroll"
	"github.com/jbejarano/portal-casas-api/internal/application/usecase"
	"github.com/jbejarano/portal-casas-api/internal/infrastructure/mailer"
	infranotify "github.com/jbejarano/portal-casas-api/internal/infrastructure/notify"
	infrapdf "github.com/jbejarano/portal-casas-api/internal/infrastructure/pdf"
	"github.com/jbejarano/portal-casas-api/internal/infrastructure/postgres"
	"github.com/jbejarano/portal-casas-api/internal/infrastructure/storage"
	httpRouter "github.com/jbejarano/portal-casas-api/internal/interfaces/http"
	"github.com/jbejarano/portal-casas-api/pkg/config"
	"github.com/jbejarano/portal-casas-api/pkg/logger"
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

	houseRepo := postgres.NewHouseRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	expenseRepo := postgres.NewMarketExpenseRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)

	// Notificaciones: Resend si hay API key, Noop si no; en modo async el
	// mailer queda detrás de una cola en memoria y nunca bloquea requests.
	var notifier appnotify.Notifier
	if cfg.Mail.APIKey != "" {
		notifier = mailer.NewResendMailer(cfg.Mail.APIKey, cfg.Mail.FromEmail, log)
	} else {
		log.Warn().Msg("RESEND_API_KEY no configurada, notificaciones deshabilitadas")
		notifier = mailer.NewNoopNotifier(log)
	}
	if cfg.Notify.Mode != "sync" {
		notifier = infranotify.NewDispatcher(notifier, cfg.Notify.QueueSize, log)
	}

	// Documentos firmados: disco local o bucket S3 según driver.
	var docStorage payroll.DocumentStorage
	if cfg.Storage.Driver == "s3" {
		docStorage = storage.NewS3Storage(storage.S3Config{
			Bucket:    cfg.Storage.S3Bucket,
			Region:    cfg.Storage.S3Region,
			AccessKey: cfg.Storage.S3Key,
			SecretKey: cfg.Storage.S3Secret,
			Endpoint:  cfg.Storage.S3Endpoint,
		})
	} else {
		docStorage, err = storage.NewLocalStorage(cfg.Storage.LocalDir)
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento local de documentos")
		}
	}

	pdfGenerator := infrapdf.NewMarotoReceiptGenerator()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	houseUC := usecase.NewHouseUseCase(houseRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	expenseUC := usecase.NewMarketExpenseUseCase(expenseRepo, userRepo, notifier)
	paymentUC := payroll.NewPaymentUseCase(paymentRepo, employeeRepo, userRepo, pdfGenerator, docStorage, notifier)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    10 * 1024 * 1024, // documentos firmados y firmas base64
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		HouseUC:    houseUC,
		UserUC:     userUC,
		EmployeeUC: employeeUC,
		CategoryUC: categoryUC,
		ExpenseUC:  expenseUC,
		PaymentUC:  paymentUC,
		UserRepo:   userRepo,
		JWTSecret:  cfg.JWT.Secret,
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
