package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/obrasoft/obra-api/internal/interfaces/http"
	pkgjwt "github.com/obrasoft/obra-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests RateLimiter — ventana fija en memoria por (tier, organización)
// ──────────────────────────────────────────────────────────────────────────────

func buildRateLimitedApp(limit int, window time.Duration) *fiber.App {
	app := fiber.New()
	app.Get("/ping",
		apphttp.RateLimiter("test", limit, window),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func pingN(t *testing.T, app *fiber.App, n int) []*http.Response {
	t.Helper()
	out := make([]*http.Response, 0, n)
	for i := 0; i < n; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		out = append(out, resp)
	}
	return out
}

func TestRateLimiter_BajoLimite_Pasa(t *testing.T) {
	app := buildRateLimitedApp(3, time.Minute)

	for i, resp := range pingN(t, app, 3) {
		assert.Equal(t, http.StatusOK, resp.StatusCode, "request %d debe pasar", i+1)
		resp.Body.Close()
	}
}

func TestRateLimiter_SobreLimite_429ConRetryAfter(t *testing.T) {
	app := buildRateLimitedApp(2, time.Minute)

	resps := pingN(t, app, 3)
	defer func() {
		for _, r := range resps {
			r.Body.Close()
		}
	}()

	assert.Equal(t, http.StatusOK, resps[0].StatusCode)
	assert.Equal(t, http.StatusOK, resps[1].StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, resps[2].StatusCode,
		"la tercera request con límite 2 debe rechazarse")

	assert.NotEmpty(t, resps[2].Header.Get("Retry-After"),
		"el rechazo debe indicar cuánto esperar")
	body, _ := io.ReadAll(resps[2].Body)
	assert.Contains(t, string(body), "RATE_LIMIT")
}

// Pasada la ventana, el contador se reinicia y vuelve a permitir requests.
func TestRateLimiter_VentanaExpirada_Reinicia(t *testing.T) {
	app := buildRateLimitedApp(1, 50*time.Millisecond)

	resps := pingN(t, app, 2)
	assert.Equal(t, http.StatusOK, resps[0].StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, resps[1].StatusCode)
	for _, r := range resps {
		r.Body.Close()
	}

	time.Sleep(60 * time.Millisecond)

	resp := pingN(t, app, 1)[0]
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "expirada la ventana debe permitir de nuevo")
}

// Cada organización autenticada tiene su propio contador: agotar el límite de
// una no afecta a la otra.
func TestRateLimiter_ContadorPorOrganizacion(t *testing.T) {
	app := fiber.New()
	app.Get("/ping",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RateLimiter("test", 1, time.Minute),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	tokenOrgA := tokenForRole(t, "admin") // organización testOrgID
	doAuth := func(authHeader string) *http.Response {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", authHeader)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	r1 := doAuth(tokenOrgA)
	r1.Body.Close()
	assert.Equal(t, http.StatusOK, r1.StatusCode)

	r2 := doAuth(tokenOrgA)
	r2.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, r2.StatusCode, "la org A agotó su límite")

	// Otra organización sigue teniendo su cupo intacto.
	tokB, err := pkgjwt.Generate(testJWTSecret, testUserID,
		"00000000-0000-0000-0000-000000000099", "admin", testIssuer, testExpMin)
	require.NoError(t, err)
	r3 := doAuth("Bearer " + tokB)
	r3.Body.Close()
	assert.Equal(t, http.StatusOK, r3.StatusCode, "la org B no comparte contador con la A")
}
