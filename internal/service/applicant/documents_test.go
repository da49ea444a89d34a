package applicant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant"
)

func TestMissingDocuments_Baseline(t *testing.T) {
	rec := NewReconciler().Reconcile(nil)

	assert.Equal(t, []applicant.DocumentCategory{
		applicant.DocumentIDCard,
		applicant.DocumentHouseRegistration,
		applicant.DocumentEducationCertificate,
	}, MissingDocuments(rec, nil))
}

func TestMissingDocuments_MilitaryCertificateOnlyForMale(t *testing.T) {
	male := validPersonal()
	male.Gender = applicant.GenderMale
	assert.Contains(t, MissingDocuments(male, nil), applicant.DocumentMilitaryCertificate)

	female := validPersonal()
	female.Gender = applicant.GenderFemale
	assert.NotContains(t, MissingDocuments(female, nil), applicant.DocumentMilitaryCertificate)

	// A female record never needs it, whatever is attached.
	female.Documents[applicant.DocumentMilitaryCertificate] = attachment(applicant.DocumentMilitaryCertificate, "")
	assert.NotContains(t, MissingDocuments(female, nil), applicant.DocumentMilitaryCertificate)

	synonym := validPersonal()
	synonym.Gender = "ชาย"
	assert.Contains(t, MissingDocuments(synonym, nil), applicant.DocumentMilitaryCertificate)
}

func TestMissingDocuments_EitherSourceSatisfies(t *testing.T) {
	rec := validPersonal()
	rec.Documents[applicant.DocumentIDCard] = attachment(applicant.DocumentIDCard, "local-1")
	rec.Documents[applicant.DocumentHouseRegistration] = attachment(applicant.DocumentHouseRegistration, "  ")

	persisted := []applicant.DocumentAttachment{
		attachment(applicant.DocumentEducationCertificate, "stored-1"),
		attachment(applicant.DocumentMilitaryCertificate, "stored-2"),
		attachment(applicant.DocumentTranscript, "stored-3"),
	}

	assert.Equal(t, []applicant.DocumentCategory{applicant.DocumentHouseRegistration}, MissingDocuments(rec, persisted))

	rec.Documents[applicant.DocumentHouseRegistration] = attachment(applicant.DocumentHouseRegistration, "local-2")
	assert.Empty(t, MissingDocuments(rec, persisted))
}
