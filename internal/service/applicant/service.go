package applicant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-chi/jwtauth/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/savelock"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/validator"
	"github.com/cmlabs-hris/applicant-intake-go/internal/service/file"
)

var tracer = otel.Tracer("applicant")

type ApplicantServiceImpl struct {
	reconciler    *Reconciler
	applicantRepo applicant.ApplicantRepository
	documentRepo  applicant.DocumentRepository
	fileService   file.FileService
	guard         savelock.Guard
	metrics       *metrics.Metrics
}

func NewApplicantService(
	reconciler *Reconciler,
	applicantRepo applicant.ApplicantRepository,
	documentRepo applicant.DocumentRepository,
	fileService file.FileService,
	guard savelock.Guard,
	metrics *metrics.Metrics,
) applicant.ApplicantService {
	if reconciler == nil {
		reconciler = NewReconciler()
	}
	if guard == nil {
		guard = savelock.NewMemory()
	}
	return &ApplicantServiceImpl{
		reconciler:    reconciler,
		applicantRepo: applicantRepo,
		documentRepo:  documentRepo,
		fileService:   fileService,
		guard:         guard,
		metrics:       metrics,
	}
}

// Helper function to extract the caller from the JWT claims
func ownerFromContext(ctx context.Context) (applicant.Owner, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return applicant.Owner{}, fmt.Errorf("%w: %v", applicant.ErrUnauthenticated, err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return applicant.Owner{}, fmt.Errorf("%w: user_id claim is missing", applicant.ErrUnauthenticated)
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return applicant.Owner{UserID: userID, Email: email, Role: role}, nil
}

// loadOwn returns the caller's record, or an empty draft when nothing is stored yet.
func (s *ApplicantServiceImpl) loadOwn(ctx context.Context, owner applicant.Owner) (applicant.ApplicantRecord, error) {
	stored, err := s.applicantRepo.GetByUserID(ctx, owner.UserID)
	if err != nil {
		if errors.Is(err, applicant.ErrApplicantNotFound) {
			return s.reconciler.Reconcile(nil), nil
		}
		return applicant.ApplicantRecord{}, &applicant.StoreError{Op: "load application", Err: err}
	}
	return s.fromStored(stored), nil
}

func (s *ApplicantServiceImpl) fromStored(stored applicant.StoredApplicant) applicant.ApplicantRecord {
	rec := s.reconciler.Reconcile(stored.Data)
	rec.ID = stored.ID
	return rec
}

// requireStored returns the caller's stored application or ErrIdentityRequired.
func (s *ApplicantServiceImpl) requireStored(ctx context.Context, owner applicant.Owner) (applicant.StoredApplicant, error) {
	stored, err := s.applicantRepo.GetByUserID(ctx, owner.UserID)
	if err != nil {
		if errors.Is(err, applicant.ErrApplicantNotFound) {
			return applicant.StoredApplicant{}, applicant.ErrIdentityRequired
		}
		return applicant.StoredApplicant{}, &applicant.StoreError{Op: "load application", Err: err}
	}
	return stored, nil
}

func (s *ApplicantServiceImpl) persistedDocuments(ctx context.Context, applicantID string) ([]applicant.DocumentAttachment, error) {
	if applicantID == "" {
		return nil, nil
	}
	docs, err := s.documentRepo.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, &applicant.StoreError{Op: "list documents", Err: err}
	}
	return docs, nil
}

func (s *ApplicantServiceImpl) GetMyApplication(ctx context.Context) (applicant.ApplicationResponse, error) {
	owner, err := ownerFromContext(ctx)
	if err != nil {
		return applicant.ApplicationResponse{}, err
	}

	rec, err := s.loadOwn(ctx, owner)
	if err != nil {
		return applicant.ApplicationResponse{}, err
	}

	persisted, err := s.persistedDocuments(ctx, rec.ID)
	if err != nil {
		return applicant.ApplicationResponse{}, err
	}

	return buildResponse(rec, persisted), nil
}

func (s *ApplicantServiceImpl) GetApplication(ctx context.Context, id string) (applicant.ApplicationResponse, error) {
	owner, err := ownerFromContext(ctx)
	if err != nil {
		return applicant.ApplicationResponse{}, err
	}
	if !applicant.CanReview(owner.Role) {
		return applicant.ApplicationResponse{}, applicant.ErrForbidden
	}

	stored, err := s.applicantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, applicant.ErrApplicantNotFound) {
			return applicant.ApplicationResponse{}, err
		}
		return applicant.ApplicationResponse{}, &applicant.StoreError{Op: "load application", Err: err}
	}

	persisted, err := s.persistedDocuments(ctx, stored.ID)
	if err != nil {
		return applicant.ApplicationResponse{}, err
	}

	return buildResponse(s.fromStored(stored), persisted), nil
}

func (s *ApplicantServiceImpl) SaveSection(ctx context.Context, req applicant.SaveSectionRequest) (applicant.SaveSectionResponse, error) {
	ctx, span := tracer.Start(ctx, "Applicant.Service.SaveSection")
	defer span.End()
	span.SetAttributes(attribute.String("section", string(req.Section)))

	if err := req.Validate(); err != nil {
		return applicant.SaveSectionResponse{}, err
	}

	owner, err := ownerFromContext(ctx)
	if err != nil {
		return applicant.SaveSectionResponse{}, err
	}

	// Held across load, merge and store so concurrent requests cannot interleave.
	release, err := s.guard.Acquire(ctx, "user:"+owner.UserID)
	if err != nil {
		if errors.Is(err, savelock.ErrLocked) {
			s.metrics.IncrementSectionSave(string(req.Section), "conflict")
			return applicant.SaveSectionResponse{}, applicant.ErrSaveInProgress
		}
		span.RecordError(err)
		return applicant.SaveSectionResponse{}, &applicant.StoreError{Section: req.Section, Op: "lock", Err: err}
	}
	defer release()

	existing, err := s.loadOwn(ctx, owner)
	if err != nil {
		span.RecordError(err)
		return applicant.SaveSectionResponse{}, err
	}

	incoming := s.reconciler.Reconcile(req.Data)
	merged := s.reconciler.MergeSection(existing, incoming, req.Section)

	ctrl := NewController(ControllerDeps{
		Reconciler: s.reconciler,
		Applicants: s.applicantRepo,
		Documents:  s.documentRepo,
		Guard:      s.guard,
		Metrics:    s.metrics,
	}, owner, merged)

	result, err := ctrl.SaveSection(ctx, req.Section)
	if err != nil {
		span.RecordError(err)
		return applicant.SaveSectionResponse{}, err
	}
	span.SetAttributes(attribute.String("applicant_id", result.StoredID), attribute.Bool("created", result.Created))

	persisted, err := s.persistedDocuments(ctx, result.StoredID)
	if err != nil {
		return applicant.SaveSectionResponse{}, err
	}

	resp := buildResponse(result.Record, persisted)
	resp.ActiveSection = result.Next

	return applicant.SaveSectionResponse{
		ApplicationResponse: resp,
		Created:             result.Created,
		SavedAs:             req.Section,
		NextSection:         result.Next,
	}, nil
}

func (s *ApplicantServiceImpl) ValidateApplication(ctx context.Context) (applicant.ValidationReport, error) {
	owner, err := ownerFromContext(ctx)
	if err != nil {
		return applicant.ValidationReport{}, err
	}

	rec, err := s.loadOwn(ctx, owner)
	if err != nil {
		return applicant.ValidationReport{}, err
	}

	persisted, err := s.persistedDocuments(ctx, rec.ID)
	if err != nil {
		return applicant.ValidationReport{}, err
	}

	errs := ValidateAll(rec, persisted)
	report := applicant.ValidationReport{
		Valid:     len(errs) == 0,
		Errors:    errs,
		BySection: map[applicant.Section]int{},
	}
	if report.Errors == nil {
		report.Errors = validator.ValidationErrors{}
	}
	for _, e := range errs {
		if section, ok := Locate(e.Field); ok {
			report.BySection[section]++
		}
	}
	report.FirstSection, report.FirstField, _ = LocateFirst(errs)

	return report, nil
}

func (s *ApplicantServiceImpl) ListDocuments(ctx context.Context) ([]applicant.DocumentResponse, error) {
	owner, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	responses := []applicant.DocumentResponse{}
	stored, err := s.requireStored(ctx, owner)
	if errors.Is(err, applicant.ErrIdentityRequired) {
		return responses, nil
	}
	if err != nil {
		return nil, err
	}

	docs, err := s.persistedDocuments(ctx, stored.ID)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		responses = append(responses, applicant.NewDocumentResponse(doc))
	}
	return responses, nil
}

func (s *ApplicantServiceImpl) UploadDocument(ctx context.Context, req applicant.UploadDocumentRequest) (applicant.DocumentResponse, error) {
	ctx, span := tracer.Start(ctx, "Applicant.Service.UploadDocument")
	defer span.End()
	span.SetAttributes(attribute.String("category", string(req.Category)))

	if err := req.Validate(); err != nil {
		return applicant.DocumentResponse{}, err
	}

	owner, err := ownerFromContext(ctx)
	if err != nil {
		return applicant.DocumentResponse{}, err
	}

	stored, err := s.requireStored(ctx, owner)
	if err != nil {
		return applicant.DocumentResponse{}, err
	}

	resp, err := s.attachDocument(ctx, stored.ID, req)
	if err != nil {
		span.RecordError(err)
	}
	return resp, err
}

// UploadDocuments uploads distinct categories concurrently. The first failure cancels
// the uploads still running; attachments already stored are kept.
func (s *ApplicantServiceImpl) UploadDocuments(ctx context.Context, reqs []applicant.UploadDocumentRequest) ([]applicant.DocumentResponse, error) {
	ctx, span := tracer.Start(ctx, "Applicant.Service.UploadDocuments")
	defer span.End()
	span.SetAttributes(attribute.Int("count", len(reqs)))

	var errs validator.ValidationErrors
	if len(reqs) == 0 {
		errs.Add("files", "at least one file is required")
	}
	seen := make(map[applicant.DocumentCategory]bool, len(reqs))
	for _, req := range reqs {
		if seen[req.Category] {
			errs.Add("documents."+string(req.Category), "only one file per category may be uploaded at a time")
		}
		seen[req.Category] = true
		if err := req.Validate(); err != nil {
			var reqErrs validator.ValidationErrors
			if errors.As(err, &reqErrs) {
				for _, e := range reqErrs {
					errs.Add("documents."+string(req.Category)+"."+e.Field, e.Message)
				}
			}
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	owner, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	stored, err := s.requireStored(ctx, owner)
	if err != nil {
		return nil, err
	}

	results := make([]applicant.DocumentResponse, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		g.Go(func() error {
			resp, err := s.attachDocument(gctx, stored.ID, req)
			if err != nil {
				return err
			}
			results[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	return results, nil
}

// attachDocument stores the blob, then records it. The displaced blob is removed once
// the new attachment is recorded.
func (s *ApplicantServiceImpl) attachDocument(ctx context.Context, applicantID string, req applicant.UploadDocumentRequest) (applicant.DocumentResponse, error) {
	fileID, err := s.fileService.UploadDocument(ctx, applicantID, req.Category, req.File, req.FileName)
	if err != nil {
		s.metrics.IncrementDocumentUpload(string(req.Category), "failed")
		if errors.Is(err, applicant.ErrInvalidFileType) {
			return applicant.DocumentResponse{}, err
		}
		return applicant.DocumentResponse{}, &applicant.StoreError{Op: "upload " + string(req.Category), Err: err}
	}

	saved, replaced, err := s.documentRepo.Replace(ctx, applicantID, applicant.DocumentAttachment{
		Category:         req.Category,
		FileID:           fileID,
		OriginalFileName: req.FileName,
	})
	if err != nil {
		s.metrics.IncrementDocumentUpload(string(req.Category), "failed")
		if delErr := s.fileService.DeleteFile(ctx, fileID); delErr != nil {
			slog.Warn("Failed to remove orphaned upload", "file_id", fileID, "error", delErr)
		}
		return applicant.DocumentResponse{}, &applicant.StoreError{Op: "attach " + string(req.Category), Err: err}
	}

	if replaced != nil && replaced.FileID != "" && replaced.FileID != fileID {
		if err := s.fileService.DeleteFile(ctx, replaced.FileID); err != nil {
			slog.Warn("Failed to remove replaced document", "file_id", replaced.FileID, "error", err)
		}
	}

	s.metrics.IncrementDocumentUpload(string(req.Category), "ok")
	slog.Info("Document attached", "applicant_id", applicantID, "category", req.Category)

	return applicant.NewDocumentResponse(saved), nil
}

func (s *ApplicantServiceImpl) DownloadDocument(ctx context.Context, category applicant.DocumentCategory) (io.ReadCloser, applicant.DocumentAttachment, error) {
	if !category.IsValid() {
		return nil, applicant.DocumentAttachment{}, applicant.ErrInvalidDocumentCategory
	}

	owner, err := ownerFromContext(ctx)
	if err != nil {
		return nil, applicant.DocumentAttachment{}, err
	}

	stored, err := s.requireStored(ctx, owner)
	if err != nil {
		if errors.Is(err, applicant.ErrIdentityRequired) {
			return nil, applicant.DocumentAttachment{}, applicant.ErrDocumentNotFound
		}
		return nil, applicant.DocumentAttachment{}, err
	}

	doc, err := s.documentRepo.GetByCategory(ctx, stored.ID, category)
	if err != nil {
		if errors.Is(err, applicant.ErrDocumentNotFound) {
			return nil, applicant.DocumentAttachment{}, err
		}
		return nil, applicant.DocumentAttachment{}, &applicant.StoreError{Op: "load document", Err: err}
	}

	rc, err := s.fileService.Open(ctx, doc.FileID)
	if err != nil {
		if errors.Is(err, applicant.ErrDocumentNotFound) {
			return nil, applicant.DocumentAttachment{}, err
		}
		return nil, applicant.DocumentAttachment{}, &applicant.StoreError{Op: "open document", Err: err}
	}

	return rc, doc, nil
}

func (s *ApplicantServiceImpl) UploadProfileImage(ctx context.Context, req applicant.UploadProfileImageRequest) (applicant.ApplicationResponse, error) {
	ctx, span := tracer.Start(ctx, "Applicant.Service.UploadProfileImage")
	defer span.End()

	if err := req.Validate(); err != nil {
		return applicant.ApplicationResponse{}, err
	}

	owner, err := ownerFromContext(ctx)
	if err != nil {
		return applicant.ApplicationResponse{}, err
	}

	stored, err := s.requireStored(ctx, owner)
	if err != nil {
		return applicant.ApplicationResponse{}, err
	}
	previous := s.fromStored(stored).ProfileImageID

	fileID, err := s.fileService.UploadProfileImage(ctx, stored.ID, req.File, req.FileName)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, applicant.ErrInvalidFileType) {
			return applicant.ApplicationResponse{}, err
		}
		return applicant.ApplicationResponse{}, &applicant.StoreError{Op: "upload profile image", Err: err}
	}

	updated, err := s.applicantRepo.Update(ctx, stored.ID, map[string]any{"profileImageId": fileID})
	if err != nil {
		span.RecordError(err)
		if delErr := s.fileService.DeleteFile(ctx, fileID); delErr != nil {
			slog.Warn("Failed to remove orphaned profile image", "file_id", fileID, "error", delErr)
		}
		return applicant.ApplicationResponse{}, &applicant.StoreError{Op: "update profile image", Err: err}
	}

	if previous != "" && previous != fileID {
		if err := s.fileService.DeleteFile(ctx, previous); err != nil {
			slog.Warn("Failed to remove previous profile image", "file_id", previous, "error", err)
		}
	}

	persisted, err := s.persistedDocuments(ctx, updated.ID)
	if err != nil {
		return applicant.ApplicationResponse{}, err
	}

	return buildResponse(s.fromStored(updated), persisted), nil
}

// buildResponse renders rec for display: enumerations gain their Thai labels and
// every section reports whether it currently validates.
func buildResponse(rec applicant.ApplicantRecord, persisted []applicant.DocumentAttachment) applicant.ApplicationResponse {
	status := make(map[applicant.Section]bool, len(applicant.Sections()))
	for _, section := range applicant.Sections() {
		status[section] = len(ValidateSection(rec, section, persisted)) == 0
	}

	record := ToRaw(rec)
	if rec.Gender != "" {
		record["genderLabel"] = rec.Gender.Display()
	}
	if rec.MaritalStatus != "" {
		record["maritalStatusLabel"] = rec.MaritalStatus.Display()
	}

	return applicant.ApplicationResponse{
		ID:               rec.ID,
		ActiveSection:    firstFailingSection(rec, persisted),
		SectionStatus:    status,
		MissingDocuments: MissingDocuments(rec, persisted),
		Record:           record,
	}
}
