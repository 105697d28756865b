package main

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Textil-api/pkg/logger"
)

// chdir cambia el directorio de trabajo y lo restaura al terminar el test
// (equivalente a t.Chdir, disponible recién en Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

// Sin docs generados la API debe arrancar igual, solo sin /docs.
func TestMountSwagger_SinDocsGenerados_NoInterrumpeElArranque(t *testing.T) {
	chdir(t, t.TempDir())

	app := fiber.New()
	require.NotPanics(t, func() { mountSwagger(app, logger.Nop()) })

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// Con el swagger.json presente el middleware sirve la UI en /docs.
func TestMountSwagger_ConDocs_SirveLaUI(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "docs"), 0o755))
	spec := `{"swagger":"2.0","info":{"title":"Textil API","version":"1.0"},"paths":{}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "swagger.json"), []byte(spec), 0o644))
	chdir(t, dir)

	app := fiber.New()
	mountSwagger(app, logger.Nop())

	resp, err := app.Test(httptest.NewRequest("GET", "/docs", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
