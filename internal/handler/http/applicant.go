package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant"
	"github.com/cmlabs-hris/applicant-intake-go/internal/handler/http/response"
)

const (
	// Room for the multipart envelope around one document.
	maxDocumentForm = applicant.MaxDocumentSize + 1<<20
	// Several documents in one request.
	maxDocumentsForm = 5*applicant.MaxDocumentSize + 1<<20
	maxProfileForm   = 5 << 20
	maxSectionBody   = 1 << 20
)

type ApplicantHandler interface {
	GetMine(w http.ResponseWriter, r *http.Request)
	SaveSection(w http.ResponseWriter, r *http.Request)
	Validate(w http.ResponseWriter, r *http.Request)
	ListDocuments(w http.ResponseWriter, r *http.Request)
	UploadDocument(w http.ResponseWriter, r *http.Request)
	UploadDocuments(w http.ResponseWriter, r *http.Request)
	DownloadDocument(w http.ResponseWriter, r *http.Request)
	UploadProfileImage(w http.ResponseWriter, r *http.Request)
	GetApplication(w http.ResponseWriter, r *http.Request)
}

type applicantHandlerImpl struct {
	applicantService applicant.ApplicantService
}

func NewApplicantHandler(applicantService applicant.ApplicantService) ApplicantHandler {
	return &applicantHandlerImpl{
		applicantService: applicantService,
	}
}

// GetMine implements ApplicantHandler
func (h *applicantHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	result, err := h.applicantService.GetMyApplication(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetApplication implements ApplicantHandler
func (h *applicantHandlerImpl) GetApplication(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Application ID is required", nil)
		return
	}

	result, err := h.applicantService.GetApplication(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SaveSection implements ApplicantHandler. The body is the section's form data, either
// bare or wrapped as {"data": {...}}; keys may use any known alias.
func (h *applicantHandlerImpl) SaveSection(w http.ResponseWriter, r *http.Request) {
	section := applicant.Section(chi.URLParam(r, "section"))
	if !section.IsValid() {
		response.HandleError(w, applicant.ErrInvalidSection)
		return
	}

	data, err := decodeSectionBody(http.MaxBytesReader(w, r.Body, maxSectionBody))
	if err != nil {
		slog.Warn("Failed to decode section body", "section", section, "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	req := applicant.SaveSectionRequest{
		Section: section,
		Data:    data,
	}

	result, err := h.applicantService.SaveSection(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Created {
		response.Created(w, "Application created", result)
		return
	}
	response.SuccessWithMessage(w, "Section saved", result)
}

func decodeSectionBody(body io.Reader) (map[string]any, error) {
	decoder := json.NewDecoder(body)
	decoder.UseNumber()

	var data map[string]any
	if err := decoder.Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	if data == nil {
		return map[string]any{}, nil
	}
	if len(data) == 1 {
		if inner, ok := data["data"].(map[string]any); ok {
			return inner, nil
		}
	}
	return data, nil
}

// Validate implements ApplicantHandler
func (h *applicantHandlerImpl) Validate(w http.ResponseWriter, r *http.Request) {
	report, err := h.applicantService.ValidateApplication(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// ListDocuments implements ApplicantHandler
func (h *applicantHandlerImpl) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.applicantService.ListDocuments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, docs)
}

// UploadDocument implements ApplicantHandler
func (h *applicantHandlerImpl) UploadDocument(w http.ResponseWriter, r *http.Request) {
	category := applicant.DocumentCategory(chi.URLParam(r, "category"))
	if !category.IsValid() {
		response.HandleError(w, applicant.ErrInvalidDocumentCategory)
		return
	}

	if err := r.ParseMultipartForm(maxDocumentForm); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.BadRequest(w, "File is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	req := applicant.UploadDocumentRequest{
		Category: category,
		File:     file,
		FileName: fileHeader.Filename,
		Size:     fileHeader.Size,
	}

	result, err := h.applicantService.UploadDocument(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document uploaded successfully", result)
}

// UploadDocuments implements ApplicantHandler. Each form file field is named after its
// document category.
func (h *applicantHandlerImpl) UploadDocuments(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxDocumentsForm); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	var reqs []applicant.UploadDocumentRequest
	for _, field := range slices.Sorted(maps.Keys(r.MultipartForm.File)) {
		for _, fileHeader := range r.MultipartForm.File[field] {
			file, err := fileHeader.Open()
			if err != nil {
				slog.Error("Failed to open uploaded file", "field", field, "error", err)
				response.BadRequest(w, "Invalid file upload", nil)
				return
			}
			defer file.Close()

			reqs = append(reqs, applicant.UploadDocumentRequest{
				Category: applicant.DocumentCategory(field),
				File:     file,
				FileName: fileHeader.Filename,
				Size:     fileHeader.Size,
			})
		}
	}

	results, err := h.applicantService.UploadDocuments(r.Context(), reqs)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, fmt.Sprintf("%d documents uploaded successfully", len(results)), results)
}

// DownloadDocument implements ApplicantHandler
func (h *applicantHandlerImpl) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	category := applicant.DocumentCategory(chi.URLParam(r, "category"))

	rc, doc, err := h.applicantService.DownloadDocument(r.Context(), category)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(doc.FileID)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	name := doc.OriginalFileName
	if name == "" {
		name = filepath.Base(doc.FileID)
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		slog.Warn("Failed to stream document", "category", category, "error", err)
	}
}

// UploadProfileImage implements ApplicantHandler
func (h *applicantHandlerImpl) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxProfileForm); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := formFile(r, "profile_image", "photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.BadRequest(w, "Profile image is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	req := applicant.UploadProfileImageRequest{
		File:     file,
		FileName: fileHeader.Filename,
	}

	result, err := h.applicantService.UploadProfileImage(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile image uploaded successfully", result)
}

// formFile returns the first file under any of the given field names.
func formFile(r *http.Request, fields ...string) (multipart.File, *multipart.FileHeader, error) {
	for _, field := range fields {
		file, header, err := r.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		return file, header, err
	}
	return nil, nil, http.ErrMissingFile
}
