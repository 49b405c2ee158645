package common

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_ADDR", "PORT", "GRPC_ADDR", "SERVICE_NAME", "MAX_UPLOAD_BYTES",
		"OCR_LANGUAGES", "OCR_CONTRAST", "PDF_BACKEND", "POPPLER_PATH", "PDF_DPI",
		"PDF_MAX_PAGES", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, ":8000", cfg.Server.HTTPAddr)
	assert.Equal(t, "", cfg.Server.GRPCAddr)
	assert.Equal(t, "Social Media Content Analyzer", cfg.Server.ServiceName)
	assert.EqualValues(t, 50*1024*1024, cfg.Server.MaxUploadBytes)
	assert.Equal(t, []string{"eng"}, cfg.OCR.Languages)
	assert.InDelta(t, 1.5, cfg.OCR.ContrastFactor, 1e-9)
	assert.Equal(t, BackendPoppler, cfg.PDF.Backend)
	assert.Equal(t, 200, cfg.PDF.DPI)
	assert.Equal(t, 0, cfg.PDF.MaxPages)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("PORT", "9090")
	t.Setenv("OCR_LANGUAGES", "eng+deu, fra")
	t.Setenv("PDF_BACKEND", "MuPDF")
	t.Setenv("POPPLER_PATH", "/opt/poppler/bin")
	t.Setenv("PDF_DPI", "not-a-number")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := LoadConfig()

	assert.Equal(t, ":9090", cfg.Server.HTTPAddr)
	assert.Equal(t, []string{"eng", "deu", "fra"}, cfg.OCR.Languages)
	assert.Equal(t, BackendMuPDF, cfg.PDF.Backend)
	assert.Equal(t, "/opt/poppler/bin", cfg.PDF.PopplerPath)
	assert.Equal(t, 200, cfg.PDF.DPI)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server: ServerConfig{HTTPAddr: ":8000", MaxUploadBytes: 1},
			OCR:    OCRConfig{ContrastFactor: 1.5},
			PDF:    PDFConfig{Backend: BackendPoppler, DPI: 200},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty addr", func(c *Config) { c.Server.HTTPAddr = "" }},
		{"zero upload limit", func(c *Config) { c.Server.MaxUploadBytes = 0 }},
		{"zero dpi", func(c *Config) { c.PDF.DPI = 0 }},
		{"negative max pages", func(c *Config) { c.PDF.MaxPages = -1 }},
		{"unknown backend", func(c *Config) { c.PDF.Backend = "ghostscript" }},
		{"zero contrast", func(c *Config) { c.OCR.ContrastFactor = 0 }},
		{"negative contrast", func(c *Config) { c.OCR.ContrastFactor = -0.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Equal(t, CodeConfig, CodeOf(err))
		})
	}
}

func TestZeroContrastFromEnvFailsValidation(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("OCR_CONTRAST", "0")

	err := LoadConfig().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OCR_CONTRAST")
}

func TestContrastOfOneIsValid(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("OCR_CONTRAST", "1.0")

	cfg := LoadConfig()
	assert.InDelta(t, 1.0, cfg.OCR.ContrastFactor, 1e-9)
	assert.NoError(t, cfg.Validate())
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HTTP_ADDR", "PORT", "GRPC_ADDR", "MAX_UPLOAD_BYTES", "OCR_LANGUAGES",
		"PDF_BACKEND", "PDF_DPI", "PDF_MAX_PAGES",
	} {
		t.Setenv(key, "")
	}
}
