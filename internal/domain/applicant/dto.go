package applicant

import (
	"io"
	"strings"
	"time"

	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/validator"
)

// SaveSectionRequest carries raw form data for one section. Keys may use any known alias.
type SaveSectionRequest struct {
	Section Section        `json:"section"`
	Data    map[string]any `json:"data"`
}

func (r *SaveSectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Section.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "section",
			Message: "section must be one of personal, education, work, skills, position, documents",
		})
	}
	if r.Data == nil && r.Section != SectionDocuments {
		errs = append(errs, validator.ValidationError{
			Field:   "data",
			Message: "data is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UploadDocumentRequest struct {
	Category DocumentCategory
	File     io.Reader
	FileName string
	Size     int64
}

const MaxDocumentSize = 10 << 20

var allowedDocumentExts = []string{".pdf", ".jpg", ".jpeg", ".png"}

func (r *UploadDocumentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Category.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category is not a known document category",
		})
	}
	if r.File == nil || validator.IsEmpty(r.FileName) {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "file is required",
		})
	} else if !hasAllowedExt(r.FileName, allowedDocumentExts) {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "file must be pdf, jpg, jpeg or png",
		})
	}
	if r.Size > MaxDocumentSize {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "file must not exceed 10MB",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UploadProfileImageRequest struct {
	File     io.Reader
	FileName string
}

func (r *UploadProfileImageRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.File == nil || validator.IsEmpty(r.FileName) {
		errs = append(errs, validator.ValidationError{
			Field:   "profile_image",
			Message: "profile_image is required",
		})
	} else if !hasAllowedExt(r.FileName, []string{".jpg", ".jpeg", ".png"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "profile_image",
			Message: "profile_image must be jpg, jpeg or png",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func hasAllowedExt(filename string, allowed []string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range allowed {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ApplicationResponse is the display form of an application.
type ApplicationResponse struct {
	ID               string             `json:"id,omitempty"`
	ActiveSection    Section            `json:"active_section"`
	SectionStatus    map[Section]bool   `json:"section_status"`
	MissingDocuments []DocumentCategory `json:"missing_documents"`
	Record           map[string]any     `json:"record"`
}

type SaveSectionResponse struct {
	ApplicationResponse
	Created     bool    `json:"created"`
	SavedAs     Section `json:"saved_section"`
	NextSection Section `json:"next_section"`
}

type ValidationReport struct {
	Valid        bool                       `json:"valid"`
	FirstSection Section                    `json:"first_section,omitempty"`
	FirstField   string                     `json:"first_field,omitempty"`
	Errors       validator.ValidationErrors `json:"errors"`
	BySection    map[Section]int            `json:"by_section"`
}

type DocumentResponse struct {
	Category         DocumentCategory `json:"category"`
	Label            string           `json:"label"`
	FileID           string           `json:"file_id"`
	OriginalFileName string           `json:"original_file_name"`
	UploadedAt       *string          `json:"uploaded_at,omitempty"`
}

// NewDocumentResponse maps an attachment to its response shape.
func NewDocumentResponse(doc DocumentAttachment) DocumentResponse {
	var uploadedAt *string
	if doc.UploadedAt != nil {
		s := doc.UploadedAt.Format(time.DateTime)
		uploadedAt = &s
	}
	return DocumentResponse{
		Category:         doc.Category,
		Label:            doc.Category.Label(),
		FileID:           doc.FileID,
		OriginalFileName: doc.OriginalFileName,
		UploadedAt:       uploadedAt,
	}
}
