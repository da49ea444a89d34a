package applicant

import (
	"errors"
	"fmt"
)

var (
	ErrApplicantNotFound       = errors.New("applicant not found")
	ErrDocumentNotFound        = errors.New("document not found")
	ErrIdentityRequired        = errors.New("complete the personal section first")
	ErrSaveInProgress          = errors.New("another save for this application is in progress")
	ErrInvalidSection          = errors.New("unknown form section")
	ErrInvalidDocumentCategory = errors.New("unknown document category")
	ErrInvalidFileType         = errors.New("invalid file type")
	ErrForbidden               = errors.New("not allowed to access this application")
	ErrUnauthenticated         = errors.New("missing or invalid user identity")
)

// StoreError reports a failed storage call together with what was being attempted.
type StoreError struct {
	Section Section
	Op      string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s section failed: %v", e.Op, e.Section, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
