package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/database"
)

type documentRepositoryImpl struct {
	db *database.DB
}

func NewDocumentRepository(db *database.DB) applicant.DocumentRepository {
	return &documentRepositoryImpl{db: db}
}

const documentColumns = `category, file_id, original_file_name, uploaded_at`

func scanDocument(row pgx.Row) (applicant.DocumentAttachment, error) {
	var doc applicant.DocumentAttachment
	err := row.Scan(
		&doc.Category,
		&doc.FileID,
		&doc.OriginalFileName,
		&doc.UploadedAt,
	)
	return doc, err
}

// Replace implements applicant.DocumentRepository.
func (r *documentRepositoryImpl) Replace(ctx context.Context, applicantID string, doc applicant.DocumentAttachment) (applicant.DocumentAttachment, *applicant.DocumentAttachment, error) {
	var (
		saved    applicant.DocumentAttachment
		replaced *applicant.DocumentAttachment
	)

	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		lockQuery := `
			SELECT ` + documentColumns + `
			FROM applicant_documents
			WHERE applicant_id = $1 AND category = $2
			FOR UPDATE
		`
		previous, err := scanDocument(q.QueryRow(txCtx, lockQuery, applicantID, doc.Category))
		switch {
		case err == nil:
			replaced = &previous
		case !errors.Is(err, pgx.ErrNoRows):
			return fmt.Errorf("failed to lock document: %w", err)
		}

		upsertQuery := `
			INSERT INTO applicant_documents (applicant_id, category, file_id, original_file_name, uploaded_at)
			VALUES ($1, $2, $3, $4, NOW())
			ON CONFLICT (applicant_id, category) DO UPDATE
			SET file_id = EXCLUDED.file_id,
				original_file_name = EXCLUDED.original_file_name,
				uploaded_at = EXCLUDED.uploaded_at
			RETURNING ` + documentColumns

		saved, err = scanDocument(q.QueryRow(txCtx, upsertQuery, applicantID, doc.Category, doc.FileID, doc.OriginalFileName))
		if err != nil {
			return fmt.Errorf("failed to save document: %w", err)
		}
		return nil
	})
	if err != nil {
		return applicant.DocumentAttachment{}, nil, err
	}

	return saved, replaced, nil
}

// ListByApplicant implements applicant.DocumentRepository.
func (r *documentRepositoryImpl) ListByApplicant(ctx context.Context, applicantID string) ([]applicant.DocumentAttachment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + documentColumns + `
		FROM applicant_documents
		WHERE applicant_id = $1
		ORDER BY uploaded_at
	`

	rows, err := q.Query(ctx, query, applicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := []applicant.DocumentAttachment{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return docs, nil
}

// GetByCategory implements applicant.DocumentRepository.
func (r *documentRepositoryImpl) GetByCategory(ctx context.Context, applicantID string, category applicant.DocumentCategory) (applicant.DocumentAttachment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + documentColumns + `
		FROM applicant_documents
		WHERE applicant_id = $1 AND category = $2
	`

	doc, err := scanDocument(q.QueryRow(ctx, query, applicantID, category))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return applicant.DocumentAttachment{}, applicant.ErrDocumentNotFound
		}
		return applicant.DocumentAttachment{}, fmt.Errorf("failed to get document: %w", err)
	}

	return doc, nil
}
