package common

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/content-analyzer/constants"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	OCR    OCRConfig
	PDF    PDFConfig
	Log    LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr       string
	GRPCAddr       string // empty disables the gRPC health listener
	ServiceName    string
	StaticDir      string
	MaxUploadBytes int64
	TempDir        string
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Languages      []string
	TessdataDir    string
	ContrastFactor float64
}

// PDFConfig holds rasterization configuration
type PDFConfig struct {
	Backend     string // "poppler" | "mupdf"
	PopplerPath string // directory holding pdftoppm; empty -> PATH lookup
	DPI         int
	MaxPages    int // 0 = no limit
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level slog.Level
}

const (
	BackendPoppler = "poppler"
	BackendMuPDF   = "mupdf"
)

// LoadConfig loads configuration from a .env file (if present) and environment variables
func LoadConfig() *Config {
	_ = godotenv.Load()

	httpAddr := getEnv("HTTP_ADDR", "")
	if httpAddr == "" {
		httpAddr = ":" + getEnv("PORT", "8000")
	}

	return &Config{
		Server: ServerConfig{
			HTTPAddr:       httpAddr,
			GRPCAddr:       getEnv("GRPC_ADDR", ""),
			ServiceName:    getEnv("SERVICE_NAME", "Social Media Content Analyzer"),
			StaticDir:      getEnv("STATIC_DIR", "./static"),
			MaxUploadBytes: getEnvAsInt64("MAX_UPLOAD_BYTES", constants.MaxUploadBytes),
			TempDir:        getEnv("TMP_DIR", os.TempDir()),
		},
		OCR: OCRConfig{
			Languages:      getEnvAsList("OCR_LANGUAGES", []string{"eng"}),
			TessdataDir:    getEnv("TESSDATA_PREFIX", ""),
			ContrastFactor: getEnvAsFloat64("OCR_CONTRAST", 1.5),
		},
		PDF: PDFConfig{
			Backend:     strings.ToLower(getEnv("PDF_BACKEND", BackendPoppler)),
			PopplerPath: getEnv("POPPLER_PATH", ""),
			DPI:         getEnvAsInt("PDF_DPI", 200),
			MaxPages:    getEnvAsInt("PDF_MAX_PAGES", 0),
		},
		Log: LogConfig{
			Level: getEnvAsLevel("LOG_LEVEL", slog.LevelInfo),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		slog.Warn("config value is not an int, using default", "key", key, "value", value, "default", defaultValue)
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
		slog.Warn("config value is not an int, using default", "key", key, "value", value, "default", defaultValue)
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
		slog.Warn("config value is not a float, using default", "key", key, "value", value, "default", defaultValue)
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == '+' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvAsLevel(key string, defaultValue slog.Level) slog.Level {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(value)); err != nil {
		return defaultValue
	}
	return lvl
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return NewAppError(CodeConfig, "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return NewAppError(CodeConfig, "MAX_UPLOAD_BYTES must be positive", ErrInvalidInput)
	}
	if c.PDF.DPI <= 0 {
		return NewAppError(CodeConfig, "PDF_DPI must be positive", ErrInvalidInput)
	}
	if c.PDF.MaxPages < 0 {
		return NewAppError(CodeConfig, "PDF_MAX_PAGES must not be negative", ErrInvalidInput)
	}
	if c.OCR.ContrastFactor <= 0 {
		return NewAppError(CodeConfig, "OCR_CONTRAST must be positive (1.0 disables enhancement)", ErrInvalidInput)
	}
	switch c.PDF.Backend {
	case BackendPoppler, BackendMuPDF:
	default:
		return NewAppError(CodeConfig, "PDF_BACKEND must be one of: poppler | mupdf", ErrInvalidInput)
	}
	return nil
}
