package applicant

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/savelock"
)

// ControllerDeps are the collaborators shared by every Controller.
type ControllerDeps struct {
	Reconciler *Reconciler
	Applicants applicant.ApplicantRepository
	Documents  applicant.DocumentRepository
	Guard      savelock.Guard
	Metrics    *metrics.Metrics
}

// SaveResult is the controller state after a successful save.
type SaveResult struct {
	Record   applicant.ApplicantRecord
	StoredID string
	Created  bool
	Next     applicant.Section
}

// Controller owns one applicant's in-memory record, its stored identity and the active
// section. It persists one section at a time and allows a single save in flight.
type Controller struct {
	deps  ControllerDeps
	owner applicant.Owner

	mu       sync.Mutex
	saving   bool
	record   applicant.ApplicantRecord
	storedID string
	active   applicant.Section
}

// NewController starts from rec. rec.ID, when set, is the stored identity.
func NewController(deps ControllerDeps, owner applicant.Owner, rec applicant.ApplicantRecord) *Controller {
	if deps.Reconciler == nil {
		deps.Reconciler = NewReconciler()
	}
	if deps.Guard == nil {
		deps.Guard = savelock.NewMemory()
	}
	return &Controller{
		deps:     deps,
		owner:    owner,
		record:   rec,
		storedID: rec.ID,
		active:   applicant.SectionPersonal,
	}
}

func (c *Controller) Record() applicant.ApplicantRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record
}

func (c *Controller) StoredID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.storedID
}

func (c *Controller) ActiveSection() applicant.Section {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// SetRecord replaces the in-memory record, keeping the stored identity.
func (c *Controller) SetRecord(rec applicant.ApplicantRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec.ID = c.storedID
	c.record = rec
}

// Resume moves the active section to the first section that does not validate.
func (c *Controller) Resume(persisted []applicant.DocumentAttachment) applicant.Section {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = firstFailingSection(c.record, persisted)
	return c.active
}

// SaveSection validates section and stores the fields it owns.
//
// A record without a stored identity may only save the personal section, which
// creates it; this is checked before validation and before any store call. On a
// validation failure the validator.ValidationErrors are returned and storage is not
// contacted. Store failures are returned as *applicant.StoreError. On any failure the
// in-memory record, identity and active section are unchanged. A second call while
// one is running fails with applicant.ErrSaveInProgress.
func (c *Controller) SaveSection(ctx context.Context, section applicant.Section) (SaveResult, error) {
	if !section.IsValid() {
		return SaveResult{}, applicant.ErrInvalidSection
	}

	c.mu.Lock()
	if c.saving {
		c.mu.Unlock()
		c.deps.Metrics.IncrementSectionSave(string(section), "conflict")
		return SaveResult{}, applicant.ErrSaveInProgress
	}
	c.saving = true
	record, storedID := c.record, c.storedID
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.saving = false
		c.mu.Unlock()
	}()

	start := time.Now()
	defer func() { c.deps.Metrics.ObserveSaveLatency(time.Since(start)) }()

	if storedID == "" && section != applicant.SectionPersonal {
		return SaveResult{}, applicant.ErrIdentityRequired
	}

	var persisted []applicant.DocumentAttachment
	if section == applicant.SectionDocuments {
		docs, err := c.deps.Documents.ListByApplicant(ctx, storedID)
		if err != nil {
			c.deps.Metrics.IncrementSectionSave(string(section), "failed")
			return SaveResult{}, &applicant.StoreError{Section: section, Op: "list documents", Err: err}
		}
		persisted = docs
	}

	if errs := ValidateSection(record, section, persisted); len(errs) > 0 {
		c.deps.Metrics.IncrementSectionSave(string(section), "invalid")
		c.deps.Metrics.AddValidationFailures(string(section), len(errs))
		return SaveResult{}, errs
	}

	release, err := c.deps.Guard.Acquire(ctx, c.lockKey(storedID))
	if err != nil {
		if errors.Is(err, savelock.ErrLocked) {
			c.deps.Metrics.IncrementSectionSave(string(section), "conflict")
			return SaveResult{}, applicant.ErrSaveInProgress
		}
		return SaveResult{}, &applicant.StoreError{Section: section, Op: "lock", Err: err}
	}
	defer release()

	payload := BuildPayload(record, section)

	var (
		stored applicant.StoredApplicant
		op     string
	)
	if storedID == "" {
		op = "create"
		stored, err = c.deps.Applicants.Create(ctx, c.owner, payload)
	} else {
		op = "update"
		stored, err = c.deps.Applicants.Update(ctx, storedID, payload)
	}
	if err != nil {
		slog.Error("Failed to save applicant section", "section", section, "op", op, "applicant_id", storedID, "error", err)
		c.deps.Metrics.IncrementSectionSave(string(section), "failed")
		return SaveResult{}, &applicant.StoreError{Section: section, Op: op, Err: err}
	}

	// The server copy is authoritative; attachments picked but not yet uploaded stay local.
	updated := c.deps.Reconciler.Reconcile(stored.Data)
	updated.ID = stored.ID
	updated.Documents = maps.Clone(record.Documents)
	if updated.Documents == nil {
		updated.Documents = map[applicant.DocumentCategory]applicant.DocumentAttachment{}
	}

	next := section.Next()

	c.mu.Lock()
	c.record = updated
	c.storedID = stored.ID
	c.active = next
	c.mu.Unlock()

	c.deps.Metrics.IncrementSectionSave(string(section), op+"d")
	slog.Info("Applicant section saved", "section", section, "op", op, "applicant_id", stored.ID)

	return SaveResult{
		Record:   updated,
		StoredID: stored.ID,
		Created:  storedID == "",
		Next:     next,
	}, nil
}

// lockKey addresses the stored record, or the owner before a record exists.
func (c *Controller) lockKey(storedID string) string {
	if storedID != "" {
		return "applicant:" + storedID
	}
	return "owner:" + c.owner.UserID
}

func firstFailingSection(rec applicant.ApplicantRecord, persisted []applicant.DocumentAttachment) applicant.Section {
	for _, section := range applicant.Sections() {
		if len(ValidateSection(rec, section, persisted)) > 0 {
			return section
		}
	}
	return applicant.SectionDocuments
}
