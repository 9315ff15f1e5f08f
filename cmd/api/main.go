// @title                       Elimu Hub API
// @version                     1.0
// @description                 Backend for CBC educators: curriculum documents, schemes of work, lesson plans, resource library and AI assistance.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/elimu-hub/docs"
	appanalytics "github.com/jhoicas/elimu-hub/internal/application/analytics"
	"github.com/jhoicas/elimu-hub/internal/application/auth"
	"github.com/jhoicas/elimu-hub/internal/application/export"
	"github.com/jhoicas/elimu-hub/internal/application/ingestion"
	"github.com/jhoicas/elimu-hub/internal/application/usecase"
	infraai "github.com/jhoicas/elimu-hub/internal/infrastructure/ai"
	infracsv "github.com/jhoicas/elimu-hub/internal/infrastructure/csv"
	infradocx "github.com/jhoicas/elimu-hub/internal/infrastructure/docx"
	"github.com/jhoicas/elimu-hub/internal/infrastructure/extract"
	infrapdf "github.com/jhoicas/elimu-hub/internal/infrastructure/pdf"
	"github.com/jhoicas/elimu-hub/internal/infrastructure/postgres"
	"github.com/jhoicas/elimu-hub/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/elimu-hub/internal/interfaces/http"
	"github.com/jhoicas/elimu-hub/pkg/config"
	"github.com/jhoicas/elimu-hub/pkg/logger"
)

// multipart overhead on top of the largest upload limit
const bodySlack = 10 << 20

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("ai_provider", cfg.AI.Provider).
		Msg("starting")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	disk, err := storage.NewDiskStorage(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Storage.UploadDir).Msg("prepare upload directory")
	}

	// ── Repositories ──────────────────────────────────────────────────────────
	userRepo := postgres.NewUserRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	templateRepo := postgres.NewTemplateRepository(pool)
	schemeRepo := postgres.NewSchemeRepository(pool)
	lessonRepo := postgres.NewLessonPlanRepository(pool)
	libraryRepo := postgres.NewLibraryRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	queryLogRepo := postgres.NewQueryLogRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)

	// ── Services ──────────────────────────────────────────────────────────────
	auditUC := usecase.NewAuditUseCase(auditRepo)
	extractor := extract.NewExtractor(disk)

	documents := ingestion.NewDocumentService(documentRepo, disk, extractor, auditUC, ingestion.DocumentConfig{
		MaxBytes:     cfg.Storage.MaxDocumentBytes(),
		ChunkSize:    cfg.Ingestion.ChunkSize,
		ChunkOverlap: cfg.Ingestion.ChunkOverlap,
	})
	templates := ingestion.NewTemplateService(templateRepo, disk, extractor, auditUC, cfg.Storage.MaxTemplateBytes())

	llm, err := infraai.NewCompletionService(cfg.AI)
	if err != nil {
		log.Fatal().Err(err).Msg("configure AI provider")
	}
	aiUC := usecase.NewAIUseCase(llm, templates, documents, queryLogRepo, usecase.AIConfig{
		MaxTokens:   cfg.AI.MaxTokens,
		Temperature: cfg.AI.Temperature,
		Timeout:     cfg.AI.Timeout(),
	})

	authUC := auth.NewAuthUseCase(userRepo, auditUC, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	exporter := export.NewService(cfg.Export.Delay(),
		infracsv.NewSchemeRenderer(),
		infrapdf.NewSchemeRenderer(),
		infradocx.NewSchemeRenderer(),
	)

	maxUpload := max(cfg.Storage.MaxDocumentBytes(), cfg.Storage.MaxTemplateBytes(), cfg.Storage.MaxLibraryBytes())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 60,
		WriteTimeout: time.Second * 120,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    int(maxUpload) + bodySlack,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(httpRouter.RequestContext())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Elimu Hub API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       usecase.NewUserUseCase(userRepo, auditUC),
		AuditUC:      auditUC,
		SchemeUC:     usecase.NewSchemeUseCase(schemeRepo, auditUC),
		LessonPlanUC: usecase.NewLessonPlanUseCase(lessonRepo, auditUC),
		LibraryUC:    usecase.NewLibraryUseCase(libraryRepo, disk, auditUC, cfg.Storage.MaxLibraryBytes()),
		CatalogUC:    usecase.NewCatalogUseCase(catalogRepo, auditUC),
		AIUC:         aiUC,
		DashboardUC:  appanalytics.NewDashboardUseCase(documentRepo, schemeRepo, lessonRepo, libraryRepo, queryLogRepo),
		Documents:    documents,
		Templates:    templates,
		Exporter:     exporter,

		MaxDocumentBytes: cfg.Storage.MaxDocumentBytes(),
		MaxTemplateBytes: cfg.Storage.MaxTemplateBytes(),
		MaxLibraryBytes:  cfg.Storage.MaxLibraryBytes(),

		JWTSecret: cfg.JWT.Secret,
		Users:     userRepo,
		Ping:      pool.Ping,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	// background extractions still hold the pool
	documents.Wait()

	log.Info().Msg("stopped")
}
