package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/content-analyzer/constants"
	"github.com/joseph-ayodele/content-analyzer/internal/api"
	"github.com/joseph-ayodele/content-analyzer/internal/common"
	"github.com/joseph-ayodele/content-analyzer/internal/extract"
	"github.com/joseph-ayodele/content-analyzer/internal/suggest"
)

//go:embed web/index.html
var webFS embed.FS

// multipartOverhead is allowed on top of the file limit for headers and
// boundaries before the body reader gives up.
const multipartOverhead = 1 << 20

type Handler struct {
	cfg       Config
	extractor extract.TextExtractor
	logger    *slog.Logger
}

func NewHandler(cfg Config, extractor extract.TextExtractor, logger *slog.Logger) *Handler {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = constants.MaxUploadBytes
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "Social Media Content Analyzer"
	}
	return &Handler{cfg: cfg, extractor: extractor, logger: logger}
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "index page missing")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.HealthResponse{Status: "healthy", Service: h.cfg.ServiceName})
}

// Extract handles a multipart upload in field "file": validate, stage to a
// temp file, extract text, suggest, respond.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	jobID := uuid.NewString()
	logger := common.LoggerFromContext(r.Context(), h.logger).With("job_id", jobID)
	ctx := common.WithLogger(r.Context(), logger)
	logger.Debug("extract request", "stage", constants.StageReceived)

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes+multipartOverhead)

	part, err := filePart(r)
	if err != nil {
		if isTooLarge(err) {
			h.fail(ctx, w, logger, http.StatusRequestEntityTooLarge, tooLargeMessage(h.cfg.MaxUploadBytes), err)
			return
		}
		h.fail(ctx, w, logger, http.StatusBadRequest, "No file uploaded", err)
		return
	}
	defer part.Close()

	filename := part.FileName()
	ext, kind, err := common.ValidateExtension(filename)
	if err != nil {
		msg := "File type not allowed. Supported: " + strings.Join(constants.SupportedExtensions(), ", ")
		h.fail(ctx, w, logger, http.StatusBadRequest, msg, err)
		return
	}
	logger = logger.With("filename", filename, "kind", kind)
	ctx = common.WithLogger(ctx, logger)
	logger.Debug("upload validated", "stage", constants.StageValidated)

	var res extract.Result
	var extractErr error
	err = common.WithTempFile(h.cfg.TempDir, fmt.Sprintf("upload-%s-*.%s", jobID, ext),
		func(dst io.Writer) error { return h.stage(dst, part) },
		func(path string) error {
			logger.Debug("upload staged", "stage", constants.StageStaged, "path", path)
			res, extractErr = h.extractor.Extract(ctx, path, kind)
			return nil
		})
	if err != nil {
		if common.IsCode(err, common.CodeFileTooLarge) || isTooLarge(err) {
			h.fail(ctx, w, logger, http.StatusRequestEntityTooLarge, tooLargeMessage(h.cfg.MaxUploadBytes), err)
			return
		}
		h.fail(ctx, w, logger, http.StatusInternalServerError, "Error processing file: "+err.Error(), err)
		return
	}
	if extractErr != nil {
		status, msg := extractionFailure(kind, extractErr)
		h.fail(ctx, w, logger, status, msg, extractErr)
		return
	}

	if strings.TrimSpace(res.Text) == "" {
		h.fail(ctx, w, logger, http.StatusUnprocessableEntity,
			"No text could be extracted from the file. Try a clearer image or different file.",
			common.NoTextExtracted("empty extraction result"))
		return
	}
	logger.Debug("text extracted", "stage", constants.StageExtracted, "pages", res.Pages, "duration_ms", res.Duration.Milliseconds())

	suggestions := suggest.Suggest(res.Text)
	logger.Debug("suggestions ready", "stage", constants.StageSuggested, "count", len(suggestions))

	writeJSON(w, http.StatusOK, api.NewExtractionResult(filename, res.Text, suggestions))
	logger.Info("extract ok", "stage", constants.StageResponded, "text_length", len(res.Text))
}

// stage copies the upload into dst, enforcing the size limit on the bytes
// actually received.
func (h *Handler) stage(dst io.Writer, src io.Reader) error {
	n, err := io.Copy(dst, io.LimitReader(src, h.cfg.MaxUploadBytes+1))
	if err != nil {
		return err
	}
	return common.ValidateSize(n, h.cfg.MaxUploadBytes)
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, logger *slog.Logger, status int, msg string, cause error) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.Log(ctx, level, "extract failed",
		"stage", constants.StageFailed,
		"status", status,
		"code", common.CodeOf(cause),
		"error", cause,
	)
	writeError(w, status, msg)
}

// filePart returns the first part of the multipart body named "file" that
// carries a filename.
func filePart(r *http.Request) (*multipart.Part, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, err
	}
	for {
		part, err := mr.NextPart()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("no file part")
			}
			return nil, err
		}
		if part.FormName() == "file" && part.FileName() != "" {
			return part, nil
		}
		_ = part.Close()
	}
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

func tooLargeMessage(limit int64) string {
	return fmt.Sprintf("File too large. Maximum size: %.0fMB", float64(limit)/1024/1024)
}
