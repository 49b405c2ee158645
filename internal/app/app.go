// Package app wires configuration into the extraction stack.
package app

import (
	"log/slog"

	"github.com/joseph-ayodele/content-analyzer/internal/common"
	"github.com/joseph-ayodele/content-analyzer/internal/extract"
	"github.com/joseph-ayodele/content-analyzer/internal/ocr"
	"github.com/joseph-ayodele/content-analyzer/internal/ocr/tesseract"
	"github.com/joseph-ayodele/content-analyzer/internal/pdf"
	"github.com/joseph-ayodele/content-analyzer/internal/pdf/mupdf"
	"github.com/joseph-ayodele/content-analyzer/internal/server"
)

type App struct {
	Config     *common.Config
	Capability *ocr.Capability
	Pipeline   *extract.Pipeline
	Server     *server.Server
}

// New builds the OCR capability, rasterizer, pipeline and HTTP server.
// A missing OCR engine does not fail startup; requests report it instead.
func New(cfg *common.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	capability := tesseract.NewCapability(tesseract.Config{
		Languages:   cfg.OCR.Languages,
		TessdataDir: cfg.OCR.TessdataDir,
	}, logger)

	return NewWithCapability(cfg, capability, logger), nil
}

// NewWithCapability wires everything around an existing OCR capability.
func NewWithCapability(cfg *common.Config, capability *ocr.Capability, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	reader := ocr.NewReader(capability, ocr.Config{ContrastFactor: cfg.OCR.ContrastFactor}, logger)
	pipeline := extract.NewPipeline(reader, NewRasterizer(cfg, logger), cfg.Server.TempDir, logger)

	srv := server.New(server.Config{
		Addr:           cfg.Server.HTTPAddr,
		ServiceName:    cfg.Server.ServiceName,
		StaticDir:      cfg.Server.StaticDir,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		TempDir:        cfg.Server.TempDir,
	}, pipeline, logger)

	logger.Info("extraction stack ready",
		"ocr_engine", capability.Name(),
		"ocr_available", capability.Available(),
		"pdf_backend", cfg.PDF.Backend,
		"pdf_dpi", cfg.PDF.DPI,
	)
	return &App{Config: cfg, Capability: capability, Pipeline: pipeline, Server: srv}
}

// NewRasterizer picks the PDF backend named by cfg.PDF.Backend.
func NewRasterizer(cfg *common.Config, logger *slog.Logger) pdf.Rasterizer {
	pcfg := pdf.Config{
		DPI:         cfg.PDF.DPI,
		MaxPages:    cfg.PDF.MaxPages,
		PopplerPath: cfg.PDF.PopplerPath,
		TempDir:     cfg.Server.TempDir,
	}
	if cfg.PDF.Backend == common.BackendMuPDF {
		return mupdf.New(pcfg, logger)
	}
	return pdf.NewPoppler(pcfg, logger)
}

func (a *App) Close() {
	if a.Capability != nil {
		_ = a.Capability.Close()
	}
}
