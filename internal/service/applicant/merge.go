package applicant

import (
	"maps"

	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant"
)

// MergeSection overlays the fields section owns from incoming onto base. Fields of
// other sections, the identity and the profile image come from base; in-memory
// attachments from both are kept, incoming winning per category.
func (r *Reconciler) MergeSection(base, incoming applicant.ApplicantRecord, section applicant.Section) applicant.ApplicantRecord {
	raw := ToRaw(base)
	maps.Copy(raw, BuildPayload(incoming, section))

	merged := r.Reconcile(raw)
	merged.ID = base.ID
	maps.Copy(merged.Documents, incoming.Documents)
	return merged
}
