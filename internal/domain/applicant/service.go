package applicant

import (
	"context"
	"io"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

// ApplicantService is the intake API used by the HTTP handlers. The caller's identity
// comes from the JWT claims in ctx.
type ApplicantService interface {
	// GetMyApplication returns the caller's application, or an empty draft when none is stored
	GetMyApplication(ctx context.Context) (ApplicationResponse, error)

	// GetApplication returns any application by ID (staff only)
	GetApplication(ctx context.Context, id string) (ApplicationResponse, error)

	// SaveSection validates and persists one section of the caller's application
	SaveSection(ctx context.Context, req SaveSectionRequest) (SaveSectionResponse, error)

	// ValidateApplication runs every section's validation against the stored record
	ValidateApplication(ctx context.Context) (ValidationReport, error)

	ListDocuments(ctx context.Context) ([]DocumentResponse, error)
	UploadDocument(ctx context.Context, req UploadDocumentRequest) (DocumentResponse, error)

	// UploadDocuments uploads several categories concurrently
	UploadDocuments(ctx context.Context, reqs []UploadDocumentRequest) ([]DocumentResponse, error)

	DownloadDocument(ctx context.Context, category DocumentCategory) (io.ReadCloser, DocumentAttachment, error)
	UploadProfileImage(ctx context.Context, req UploadProfileImageRequest) (ApplicationResponse, error)
}
