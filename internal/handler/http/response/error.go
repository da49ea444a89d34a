package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/validator"
	applicantService "github.com/cmlabs-hris/applicant-intake-go/internal/service/applicant"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		section, field, _ := applicantService.LocateFirst(validationErrs)
		ValidationError(w, validationErrs.ToMap(), string(section), field)
		return
	}

	var storeErr *applicant.StoreError

	switch {
	case errors.Is(err, applicant.ErrUnauthenticated):
		Unauthorized(w, err.Error())
	case errors.Is(err, applicant.ErrForbidden):
		Forbidden(w, "Not allowed to access this application")

	case errors.Is(err, applicant.ErrIdentityRequired):
		Conflict(w, "IDENTITY_REQUIRED", "Save the personal section first")
	case errors.Is(err, applicant.ErrSaveInProgress):
		Conflict(w, "SAVE_IN_PROGRESS", "Another save for this application is in progress")

	case errors.Is(err, applicant.ErrApplicantNotFound):
		NotFound(w, "Application not found")
	case errors.Is(err, applicant.ErrDocumentNotFound):
		NotFound(w, "Document not found")

	case errors.Is(err, applicant.ErrInvalidSection):
		BadRequest(w, "Unknown form section", nil)
	case errors.Is(err, applicant.ErrInvalidDocumentCategory):
		BadRequest(w, "Unknown document category", nil)
	case errors.Is(err, applicant.ErrInvalidFileType):
		BadRequest(w, err.Error(), nil)

	case errors.As(err, &storeErr):
		slog.Error("Storage failure", "section", storeErr.Section, "op", storeErr.Op, "error", storeErr.Err)
		InternalServerError(w, "Could not save your application, please try again")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
