package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/database"
)

type applicantRepositoryImpl struct {
	db *database.DB
}

func NewApplicantRepository(db *database.DB) applicant.ApplicantRepository {
	return &applicantRepositoryImpl{db: db}
}

const applicantColumns = `id::text, user_id, email, data, created_at, updated_at`

func scanApplicant(row pgx.Row) (applicant.StoredApplicant, error) {
	var a applicant.StoredApplicant
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Email,
		&a.Data,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return applicant.StoredApplicant{}, err
	}
	if a.Data == nil {
		a.Data = map[string]any{}
	}
	return a, nil
}

// Create implements applicant.ApplicantRepository. A second create for the same user
// merges into the existing row instead of failing.
func (r *applicantRepositoryImpl) Create(ctx context.Context, owner applicant.Owner, payload map[string]any) (applicant.StoredApplicant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO applicants (user_id, email, data)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (user_id) DO UPDATE
		SET data = applicants.data || EXCLUDED.data, updated_at = NOW()
		RETURNING ` + applicantColumns

	created, err := scanApplicant(q.QueryRow(ctx, query, owner.UserID, owner.Email, payload))
	if err != nil {
		return applicant.StoredApplicant{}, fmt.Errorf("failed to create applicant: %w", err)
	}

	return created, nil
}

// Update implements applicant.ApplicantRepository. Top-level keys in payload replace
// the stored ones; other keys are kept.
func (r *applicantRepositoryImpl) Update(ctx context.Context, id string, payload map[string]any) (applicant.StoredApplicant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE applicants
		SET data = data || $2::jsonb, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + applicantColumns

	updated, err := scanApplicant(q.QueryRow(ctx, query, id, payload))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return applicant.StoredApplicant{}, applicant.ErrApplicantNotFound
		}
		return applicant.StoredApplicant{}, fmt.Errorf("failed to update applicant: %w", err)
	}

	return updated, nil
}

// GetByID implements applicant.ApplicantRepository.
func (r *applicantRepositoryImpl) GetByID(ctx context.Context, id string) (applicant.StoredApplicant, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + applicantColumns + ` FROM applicants WHERE id::text = $1`

	found, err := scanApplicant(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return applicant.StoredApplicant{}, applicant.ErrApplicantNotFound
		}
		return applicant.StoredApplicant{}, fmt.Errorf("failed to get applicant: %w", err)
	}

	return found, nil
}

// GetByUserID implements applicant.ApplicantRepository.
func (r *applicantRepositoryImpl) GetByUserID(ctx context.Context, userID string) (applicant.StoredApplicant, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + applicantColumns + ` FROM applicants WHERE user_id = $1`

	found, err := scanApplicant(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return applicant.StoredApplicant{}, applicant.ErrApplicantNotFound
		}
		return applicant.StoredApplicant{}, fmt.Errorf("failed to get applicant by user: %w", err)
	}

	return found, nil
}
