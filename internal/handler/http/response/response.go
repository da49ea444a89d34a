package response

import (
	"encoding/json"
	"net/http"
)

type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	// Section and Field point the form at the first failing field.
	Section string `json:"section,omitempty"`
	Field   string `json:"field,omitempty"`
}

// Error codes carried in ErrorDetail.Code.
const (
	CodeBadRequest     = "BAD_REQUEST"
	CodeValidation     = "VALIDATION_ERROR"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodeNotFound       = "NOT_FOUND"
	CodeInternal       = "INTERNAL_SERVER_ERROR"
	CodeEncodingFailed = "ENCODING_ERROR"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		_ = json.NewEncoder(w).Encode(Response{
			Error: &ErrorDetail{Code: CodeEncodingFailed, Message: "Failed to encode response"},
		})
	}
}

func fail(w http.ResponseWriter, statusCode int, detail ErrorDetail) {
	writeJSON(w, statusCode, Response{Error: &detail})
}

func Success(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func SuccessWithMessage(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func Created(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	fail(w, http.StatusBadRequest, ErrorDetail{Code: CodeBadRequest, Message: message, Details: details})
}

// ValidationError reports field failures; section and field may be empty when no
// failure could be located on a form section.
func ValidationError(w http.ResponseWriter, details map[string]string, section, field string) {
	fail(w, http.StatusUnprocessableEntity, ErrorDetail{
		Code:    CodeValidation,
		Message: "Validation failed",
		Details: details,
		Section: section,
		Field:   field,
	})
}

func Unauthorized(w http.ResponseWriter, message string) {
	fail(w, http.StatusUnauthorized, ErrorDetail{Code: CodeUnauthorized, Message: message})
}

func Forbidden(w http.ResponseWriter, message string) {
	fail(w, http.StatusForbidden, ErrorDetail{Code: CodeForbidden, Message: message})
}

func NotFound(w http.ResponseWriter, message string) {
	fail(w, http.StatusNotFound, ErrorDetail{Code: CodeNotFound, Message: message})
}

func InternalServerError(w http.ResponseWriter, message string) {
	fail(w, http.StatusInternalServerError, ErrorDetail{Code: CodeInternal, Message: message})
}

// Conflict carries a caller-chosen code so clients can tell conflicts apart.
func Conflict(w http.ResponseWriter, code, message string) {
	fail(w, http.StatusConflict, ErrorDetail{Code: code, Message: message})
}
