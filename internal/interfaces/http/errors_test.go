package http

import (
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsync/chainsync-lite/internal/application/dto"
	"github.com/chainsync/chainsync-lite/internal/domain"
)

// doRespond monta un handler que devuelve err a través de respondError y
// ejecuta una petición contra él.
func doRespond(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})

	resp, reqErr := app.Test(httptest.NewRequest(nethttp.MethodGet, "/fail", nil))
	require.NoError(t, reqErr)
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)

	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out
}

func TestRespondError_StockInsuficienteIncluyeDisponible(t *testing.T) {
	err := fmt.Errorf("recordSale: %w", &domain.InsufficientStockError{
		ItemName:  "Widget",
		Available: 5,
		Requested: 8,
	})

	status, out := doRespond(t, err)

	assert.Equal(t, nethttp.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)
	require.NotNil(t, out.Available)
	assert.Equal(t, int64(5), *out.Available)
}

func TestRespondError_MapeoDeCodigos(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validacion", fmt.Errorf("upsert: %w", domain.ErrInvalidInput), nethttp.StatusBadRequest, "VALIDATION"},
		{"no encontrado", domain.ErrNotFound, nethttp.StatusNotFound, "NOT_FOUND"},
		{"no autenticado", domain.ErrUnauthorized, nethttp.StatusUnauthorized, "UNAUTHORIZED"},
		{"duplicado", domain.ErrDuplicate, nethttp.StatusConflict, "CONFLICT"},
		{"conflicto", domain.ErrConflict, nethttp.StatusConflict, "CONFLICT"},
		{"auditoria caida", domain.ErrAuditAppend, nethttp.StatusServiceUnavailable, "AUDIT_UNAVAILABLE"},
		{"desconocido", fmt.Errorf("algo explotó"), nethttp.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, out := doRespond(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, out.Code)
		})
	}
}
