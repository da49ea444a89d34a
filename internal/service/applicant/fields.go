package applicant

import (
	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant"
)

// sectionFields lists the top-level canonical fields each section owns. A section's
// save payload carries exactly these keys, and the error locator resolves field keys
// through the same table.
var sectionFields = map[applicant.Section][]string{
	applicant.SectionPersonal: {
		"prefix", "firstName", "lastName", "nickname",
		"nationalId", "nationalIdIssuedAt", "nationalIdIssueDate", "nationalIdExpiryDate",
		"birthDate", "gender", "nationality", "ethnicity", "religion", "height", "weight",
		"maritalStatus", "spouseName", "phone", "email",
		"registeredAddress", "registeredAddressText", "currentAddress", "currentAddressText",
		"emergencyName", "emergencyRelationship", "emergencyPhone",
		"emergencyAddress", "emergencyAddressText", "emergencyWorkplace",
	},
	applicant.SectionEducation: {
		"education",
	},
	applicant.SectionWork: {
		"workExperience", "priorGovernmentService",
	},
	applicant.SectionSkills: {
		"skills", "languages", "computerSkills", "certificates", "references",
	},
	applicant.SectionPosition: {
		"expectedPosition", "department", "expectedSalary", "availableDate",
		"medicalRights", "multipleEmployers", "staffInfo",
	},
	applicant.SectionDocuments: {},
}

// Fields written outside the section saves but still shown on a section.
var displayOnlyFields = map[string]applicant.Section{
	"profileImageId": applicant.SectionPersonal,
	"documents":      applicant.SectionDocuments,
}

// SectionFields returns the canonical top-level fields owned by section.
func SectionFields(section applicant.Section) []string {
	fields := sectionFields[section]
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

var fieldSection = func() map[string]applicant.Section {
	index := make(map[string]applicant.Section)
	for section, fields := range sectionFields {
		for _, f := range fields {
			index[f] = section
		}
	}
	for f, section := range displayOnlyFields {
		index[f] = section
	}
	return index
}()
