package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/elimu-hub/internal/application/analytics"
	"github.com/jhoicas/elimu-hub/internal/application/auth"
	"github.com/jhoicas/elimu-hub/internal/application/export"
	"github.com/jhoicas/elimu-hub/internal/application/ingestion"
	"github.com/jhoicas/elimu-hub/internal/application/usecase"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
)

// RouterDeps dependencies of the API routes.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	AuditUC      *usecase.AuditUseCase
	SchemeUC     *usecase.SchemeUseCase
	LessonPlanUC *usecase.LessonPlanUseCase
	LibraryUC    *usecase.LibraryUseCase
	CatalogUC    *usecase.CatalogUseCase
	AIUC         *usecase.AIUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	Documents    *ingestion.DocumentService
	Templates    *ingestion.TemplateService
	Exporter     *export.Service

	MaxDocumentBytes int64
	MaxTemplateBytes int64
	MaxLibraryBytes  int64

	JWTSecret string
	// Users backs AuthMiddleware's per-request account check.
	Users UserLookup
	// Ping checks the database for /health. Nil reports the DB as not configured.
	Ping func(ctx context.Context) error
}

// Router registers every API route on app.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.Ping))

	api := app.Group("/api")
	adminOnly := RequireRole(entity.RoleAdmin, entity.RoleSuperAdmin)

	// Auth (public)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Everything below requires a Bearer token
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Users))
	protected.Get("/auth/me", authHandler.Me)
	protected.Put("/auth/me", authHandler.UpdateMe)

	adminHandler := NewAdminHandler(deps.UserUC, deps.AuditUC)
	admin := protected.Group("/admin", adminOnly)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Put("/users/:id/role", adminHandler.ChangeRole)
	admin.Put("/users/:id/status", adminHandler.ChangeStatus)
	admin.Get("/audit-logs", adminHandler.AuditLogs)

	docHandler := NewDocumentHandler(deps.Documents, deps.MaxDocumentBytes)
	docs := protected.Group("/documents")
	docs.Post("/", docHandler.Upload)
	docs.Get("/", docHandler.List)
	docs.Get("/search", docHandler.Search)
	docs.Get("/:id", docHandler.Get)
	docs.Delete("/:id", adminOnly, docHandler.Delete)

	tplHandler := NewTemplateHandler(deps.Templates, deps.MaxTemplateBytes)
	templates := protected.Group("/templates")
	templates.Post("/", tplHandler.Upload)
	templates.Get("/", tplHandler.List)
	templates.Get("/:id", tplHandler.Get)
	templates.Delete("/:id", tplHandler.Delete)

	schemeHandler := NewSchemeHandler(deps.SchemeUC, deps.AIUC, deps.Exporter)
	schemes := protected.Group("/schemes")
	schemes.Post("/generate", schemeHandler.Generate)
	schemes.Post("/export", schemeHandler.ExportMany)
	schemes.Post("/export/:format", schemeHandler.ExportBody)
	schemes.Post("/", schemeHandler.Create)
	schemes.Get("/", schemeHandler.List)
	schemes.Get("/:id", schemeHandler.Get)
	schemes.Put("/:id", schemeHandler.Update)
	schemes.Delete("/:id", schemeHandler.Delete)
	schemes.Get("/:id/export/:format", schemeHandler.ExportSaved)

	lessonHandler := NewLessonPlanHandler(deps.LessonPlanUC, deps.AIUC)
	lessons := protected.Group("/lesson-plans")
	lessons.Post("/generate", lessonHandler.Generate)
	lessons.Post("/", lessonHandler.Create)
	lessons.Get("/", lessonHandler.List)
	lessons.Get("/:id", lessonHandler.Get)
	lessons.Put("/:id", lessonHandler.Update)
	lessons.Delete("/:id", lessonHandler.Delete)

	libHandler := NewLibraryHandler(deps.LibraryUC, deps.MaxLibraryBytes)
	library := protected.Group("/library")
	library.Post("/", libHandler.Upload)
	library.Get("/", libHandler.List)
	library.Get("/sections", libHandler.Sections)
	library.Get("/:id", libHandler.Get)
	library.Get("/:id/download", libHandler.Download)
	library.Put("/:id/approve", adminOnly, libHandler.Approve)
	library.Put("/:id/decline", adminOnly, libHandler.Decline)

	aiHandler := NewAIHandler(deps.AIUC)
	ai := protected.Group("/ai")
	ai.Post("/chat", aiHandler.Chat)
	ai.Post("/ask", aiHandler.Ask)

	dashHandler := NewDashboardHandler(deps.DashboardUC, deps.CatalogUC)
	protected.Get("/dashboard/stats", dashHandler.Stats)
	protected.Get("/catalog/subjects", dashHandler.Subjects)
	protected.Get("/catalog/education-levels", dashHandler.EducationLevels)

	superAdminOnly := RequireRole(entity.RoleSuperAdmin)
	protected.Post("/catalog/education-levels", superAdminOnly, dashHandler.CreateEducationLevel)
	protected.Put("/catalog/education-levels/:id", superAdminOnly, dashHandler.UpdateEducationLevel)
	protected.Delete("/catalog/education-levels/:id", superAdminOnly, dashHandler.DeleteEducationLevel)
}

// healthHandler godoc
// @Summary      Service and database status
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func healthHandler(ping func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ping == nil {
			return c.JSON(fiber.Map{"status": "ok", "database": "not configured"})
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "database": "unreachable"})
		}
		return c.JSON(fiber.Map{"status": "ok", "database": "connected"})
	}
}
