package common

import (
	"errors"
	"fmt"
)

// Error codes. Each maps to one failure class of the extraction flow.
const (
	CodeCapabilityUnavailable = "CAPABILITY_UNAVAILABLE"
	CodeDecode                = "DECODE_ERROR"
	CodeRasterization         = "RASTERIZATION_ERROR"
	CodeRecognition           = "RECOGNITION_ERROR"
	CodeUnsupportedFileType   = "UNSUPPORTED_FILE_TYPE"
	CodeFileTooLarge          = "FILE_TOO_LARGE"
	CodeNoTextExtracted       = "NO_TEXT_EXTRACTED"
	CodeConfig                = "CONFIG_ERROR"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Detail is the human-facing message without the code prefix.
func (e *AppError) Detail() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Common application errors
var (
	ErrInvalidInput = errors.New("invalid input")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func CapabilityUnavailable(message string, cause error) *AppError {
	return NewAppError(CodeCapabilityUnavailable, message, cause)
}

func DecodeError(cause error) *AppError {
	return NewAppError(CodeDecode, "cannot decode image", cause)
}

func RasterizationError(message string, cause error) *AppError {
	return NewAppError(CodeRasterization, message, cause)
}

func RecognitionError(cause error) *AppError {
	return NewAppError(CodeRecognition, "text recognition failed", cause)
}

func UnsupportedFileType(ext string) *AppError {
	return NewAppError(CodeUnsupportedFileType, fmt.Sprintf("unsupported file type: %q", ext), nil)
}

func FileTooLarge(limit int64) *AppError {
	return NewAppError(CodeFileTooLarge, fmt.Sprintf("file exceeds %d bytes", limit), nil)
}

func NoTextExtracted(message string) *AppError {
	return NewAppError(CodeNoTextExtracted, message, nil)
}

// CodeOf returns the AppError code anywhere in err's chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsCode reports whether err carries the given AppError code.
func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}
