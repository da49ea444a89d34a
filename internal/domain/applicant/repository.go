package applicant

import "context"

//go:generate mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks

// ApplicantRepository persists applicant data as a canonical-name map. Update merges
// the payload into the stored map so keys outside the payload are left untouched.
type ApplicantRepository interface {
	Create(ctx context.Context, owner Owner, payload map[string]any) (StoredApplicant, error)
	Update(ctx context.Context, id string, payload map[string]any) (StoredApplicant, error)
	GetByID(ctx context.Context, id string) (StoredApplicant, error)
	GetByUserID(ctx context.Context, userID string) (StoredApplicant, error)
}

// DocumentRepository keeps at most one attachment per category. Replace returns the
// attachment it displaced, or nil when the category was empty.
type DocumentRepository interface {
	Replace(ctx context.Context, applicantID string, doc DocumentAttachment) (DocumentAttachment, *DocumentAttachment, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]DocumentAttachment, error)
	GetByCategory(ctx context.Context, applicantID string, category DocumentCategory) (DocumentAttachment, error)
}
