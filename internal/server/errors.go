package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/joseph-ayodele/content-analyzer/constants"
	"github.com/joseph-ayodele/content-analyzer/internal/api"
	"github.com/joseph-ayodele/content-analyzer/internal/common"
)

// extractionFailure maps a pipeline error to status and client message.
// CAPABILITY_UNAVAILABLE is a server problem; every other extraction error is
// reported as unprocessable content.
func extractionFailure(kind constants.FileKind, err error) (int, string) {
	detail := err.Error()
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		detail = appErr.Detail()
	}

	switch common.CodeOf(err) {
	case common.CodeCapabilityUnavailable:
		return http.StatusInternalServerError, detail
	case common.CodeUnsupportedFileType:
		return http.StatusBadRequest, detail
	case common.CodeFileTooLarge:
		return http.StatusRequestEntityTooLarge, detail
	}

	if kind == constants.PDF {
		return http.StatusUnprocessableEntity, "PDF extraction error: " + detail + ". Try using images instead."
	}
	return http.StatusUnprocessableEntity, "Image extraction error: " + detail
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.NewErrorResponse(msg))
}
