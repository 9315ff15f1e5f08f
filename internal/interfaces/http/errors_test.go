package http_test

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/usecase"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
	"github.com/jhoicas/elimu-hub/internal/domain/repository"
	"github.com/jhoicas/elimu-hub/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/elimu-hub/internal/interfaces/http"
)

// ── Body limit ───────────────────────────────────────────────────────────────

// serve runs app on a loopback listener; fasthttp enforces BodyLimit only on real connections.
func serve(t *testing.T, app *fiber.App) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.ShutdownWithTimeout(time.Second) })
	return "http://" + ln.Addr().String()
}

func TestErrorHandler_BodyOverServerLimit(t *testing.T) {
	app := fiber.New(fiber.Config{BodyLimit: 1024, ErrorHandler: apphttp.ErrorHandler, DisableStartupMessage: true})
	var reached atomic.Bool
	app.Post("/upload", func(c *fiber.Ctx) error {
		reached.Store(true)
		return c.SendStatus(fiber.StatusCreated)
	})
	base := serve(t, app)

	resp, err := http.Post(base+"/upload", "application/octet-stream", bytes.NewReader(make([]byte, 4<<10)))
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.False(t, body.Success)
	assert.Equal(t, "FILE_TOO_LARGE", body.Code)
	assert.False(t, reached.Load())

	// under the limit is untouched
	resp, err = http.Post(base+"/upload", "application/octet-stream", bytes.NewReader(make([]byte, 512)))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestErrorHandler_OtherFiberErrorsKeepStatus(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	resp := send(t, app, http.MethodGet, "/nowhere", "", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "HTTP_ERROR", body.Code)
}

// ── Malformed path ids ───────────────────────────────────────────────────────

// invalidUUID is what PostgreSQL answers when a non-uuid string is bound to a uuid column.
var invalidUUID = &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"}

// pgLibrary behaves like the SQL library repository on malformed ids.
type pgLibrary struct {
	*memLibrary
	lookups int
}

func (p *pgLibrary) GetByID(ctx context.Context, id string) (*entity.LibraryFile, error) {
	p.lookups++
	if _, err := uuid.Parse(id); err != nil {
		return nil, invalidUUID
	}
	return p.memLibrary.GetByID(ctx, id)
}

func TestLibrary_MalformedIDIsNotFound(t *testing.T) {
	disk, err := storage.NewDiskStorage(t.TempDir())
	require.NoError(t, err)
	repo := &pgLibrary{memLibrary: &memLibrary{files: map[string]*entity.LibraryFile{}}}
	h := apphttp.NewLibraryHandler(usecase.NewLibraryUseCase(repo, disk, nopAuditor{}, 1<<20), 1<<20)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	g := app.Group("/api/library", apphttp.AuthMiddleware(testJWTSecret, accounts))
	g.Get("/:id/download", h.Download)
	g.Put("/:id/approve", apphttp.RequireRole("admin", "super_admin"), h.Approve)

	for _, tc := range []struct{ method, path, auth string }{
		{http.MethodGet, "/api/library/abc/download", tokenFor(t, teacherA, "teacher")},
		{http.MethodGet, "/api/library/1%20OR%201=1/download", tokenFor(t, teacherA, "teacher")},
		{http.MethodPut, "/api/library/abc/approve", tokenFor(t, adminID, "admin")},
	} {
		resp := send(t, app, tc.method, tc.path, tc.auth, "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, tc.path)
		body := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, "NOT_FOUND", body.Code, tc.path)
	}
	assert.Zero(t, repo.lookups)
}

// pgSchemes rejects malformed ids the way the SQL scheme repository does.
type pgSchemes struct{ lookups int }

func (p *pgSchemes) Create(context.Context, *entity.SchemeOfWork) error { return nil }

func (p *pgSchemes) GetByID(_ context.Context, id string) (*entity.SchemeOfWork, error) {
	p.lookups++
	if _, err := uuid.Parse(id); err != nil {
		return nil, invalidUUID
	}
	return nil, nil
}

func (p *pgSchemes) Update(context.Context, *entity.SchemeOfWork) error { return nil }
func (p *pgSchemes) Delete(context.Context, string) error               { return nil }

func (p *pgSchemes) List(context.Context, repository.PlanFilter) ([]*entity.SchemeOfWork, int, error) {
	return nil, 0, nil
}

func (p *pgSchemes) Count(context.Context) (int, error) { return 0, nil }

func TestScheme_MalformedIDIsNotFound(t *testing.T) {
	repo := &pgSchemes{}
	h := apphttp.NewSchemeHandler(usecase.NewSchemeUseCase(repo, nopAuditor{}), nil, nil)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	g := app.Group("/api/schemes", apphttp.AuthMiddleware(testJWTSecret, accounts))
	g.Get("/:id", h.Get)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)

	auth := tokenFor(t, teacherA, "teacher")
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		resp := send(t, app, method, "/api/schemes/not-a-uuid", auth,
			fiber.MIMEApplicationJSON, strings.NewReader(schemeBody))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, method)
		resp.Body.Close()
	}
	assert.Zero(t, repo.lookups)

	// a well-formed id that does not exist is the same 404, after one lookup
	resp := send(t, app, http.MethodGet, "/api/schemes/"+uuid.NewString(), auth, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, 1, repo.lookups)
}
