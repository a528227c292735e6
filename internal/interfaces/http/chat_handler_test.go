package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-api/internal/application/usecase"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
	apphttp "github.com/taskhive/taskhive-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes: repositorios que no encuentran nada
// ──────────────────────────────────────────────────────────────────────────────

// emptyMessageRepo ningún mensaje existe.
type emptyMessageRepo struct{}

func (emptyMessageRepo) Create(ctx context.Context, m *entity.ChatMessage) error { return nil }
func (emptyMessageRepo) GetByID(ctx context.Context, id string) (*entity.ChatMessage, error) {
	return nil, nil
}
func (emptyMessageRepo) Update(ctx context.Context, m *entity.ChatMessage) error { return nil }
func (emptyMessageRepo) ListByRoom(ctx context.Context, roomID string, limit, offset int) ([]*entity.ChatMessage, error) {
	return nil, nil
}

// emptySopRepo ningún SOP existe.
type emptySopRepo struct{}

func (emptySopRepo) Create(ctx context.Context, s *entity.Sop) error { return nil }
func (emptySopRepo) GetByID(ctx context.Context, id, companyID string) (*entity.Sop, error) {
	return nil, nil
}
func (emptySopRepo) Update(ctx context.Context, s *entity.Sop) error { return nil }
func (emptySopRepo) List(ctx context.Context, companyID string, filter repository.SopFilter) ([]*entity.Sop, error) {
	return nil, nil
}
func (emptySopRepo) IncrementViewCount(ctx context.Context, id string) error       { return nil }
func (emptySopRepo) Stats(ctx context.Context, companyID string) (*repository.SopStats, error) {
	return nil, nil
}
func (emptySopRepo) Delete(ctx context.Context, id string) error { return nil }

// doJSONRequest lanza una petición con cuerpo JSON autenticada.
func doJSONRequest(t *testing.T, app *fiber.App, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests: entidad inexistente → 404, nunca 200 con cuerpo null
// ──────────────────────────────────────────────────────────────────────────────

func TestChatHandler_EditMessage_Inexistente_Retorna404(t *testing.T) {
	uc := usecase.NewChatUseCase(nil, emptyMessageRepo{}, nil, nil, nil)
	h := apphttp.NewChatHandler(uc)

	app := fiber.New()
	app.Put("/chat/messages/:id", apphttp.AuthMiddleware(testJWTSecret), h.EditMessage)

	resp := doJSONRequest(t, app, http.MethodPut, "/chat/messages/m-404",
		tokenForRole(t, entity.RoleUser), fiber.Map{"content": "editado"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode,
		"editar un mensaje inexistente debe responder 404")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "NOT_FOUND")
	assert.NotEqual(t, "null", string(body), "la respuesta no debe ser un cuerpo null")
}

func TestSopHandler_Approve_Inexistente_Retorna404(t *testing.T) {
	uc := usecase.NewSopUseCase(emptySopRepo{}, nil, nil)
	h := apphttp.NewSopHandler(uc)

	app := fiber.New()
	app.Post("/sops/:id/approve", apphttp.AuthMiddleware(testJWTSecret), h.Approve)

	resp := doJSONRequest(t, app, http.MethodPost, "/sops/s-404/approve",
		tokenForRole(t, entity.RoleQCAdmin), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode,
		"aprobar un SOP inexistente debe responder 404")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "NOT_FOUND")
}

func TestSopHandler_Reject_Inexistente_Retorna404(t *testing.T) {
	uc := usecase.NewSopUseCase(emptySopRepo{}, nil, nil)
	h := apphttp.NewSopHandler(uc)

	app := fiber.New()
	app.Post("/sops/:id/reject", apphttp.AuthMiddleware(testJWTSecret), h.Reject)

	resp := doJSONRequest(t, app, http.MethodPost, "/sops/s-404/reject",
		tokenForRole(t, entity.RoleCompanyAdmin), fiber.Map{"rejection_reason": "incompleto"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode,
		"rechazar un SOP inexistente debe responder 404")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "NOT_FOUND")
}
