package applicant

import (
	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant"
)

// requiredDocuments are needed from every applicant, in display order.
var requiredDocuments = []applicant.DocumentCategory{
	applicant.DocumentIDCard,
	applicant.DocumentHouseRegistration,
	applicant.DocumentEducationCertificate,
}

// RequiredDocuments returns the categories rec must supply. The military service
// certificate is added when gender resolves to male.
func RequiredDocuments(rec applicant.ApplicantRecord) []applicant.DocumentCategory {
	required := make([]applicant.DocumentCategory, 0, len(requiredDocuments)+1)
	required = append(required, requiredDocuments...)
	if applicant.NormalizeGender(string(rec.Gender)) == applicant.GenderMale {
		required = append(required, applicant.DocumentMilitaryCertificate)
	}
	return required
}

// MissingDocuments returns the required categories with neither a persisted attachment
// nor a non-empty in-memory one, in required order.
func MissingDocuments(rec applicant.ApplicantRecord, persisted []applicant.DocumentAttachment) []applicant.DocumentCategory {
	have := make(map[applicant.DocumentCategory]bool, len(persisted)+len(rec.Documents))
	for _, doc := range persisted {
		if !doc.IsEmpty() {
			have[doc.Category] = true
		}
	}
	for category, doc := range rec.Documents {
		if !doc.IsEmpty() {
			have[category] = true
		}
	}

	missing := []applicant.DocumentCategory{}
	for _, category := range RequiredDocuments(rec) {
		if !have[category] {
			missing = append(missing, category)
		}
	}
	return missing
}
