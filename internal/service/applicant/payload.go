package applicant

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant"
)

// BuildPayload returns the store payload for section: only the fields that section
// owns, under canonical names. Empty dates and numbers become nil, numbers are
// decimal.Decimal, and enumerations use their canonical spelling. The documents
// section owns no record fields; its attachments are stored separately.
func BuildPayload(rec applicant.ApplicantRecord, section applicant.Section) map[string]any {
	switch section {
	case applicant.SectionPersonal:
		return personalPayload(rec)
	case applicant.SectionEducation:
		return map[string]any{"education": educationPayload(rec.Education)}
	case applicant.SectionWork:
		return map[string]any{
			"workExperience":         workPayload(rec.WorkExperience),
			"priorGovernmentService": governmentPayload(rec.PriorGovernmentService),
		}
	case applicant.SectionSkills:
		return map[string]any{
			"skills":         rec.Skills,
			"languages":      rec.Languages,
			"computerSkills": rec.ComputerSkills,
			"certificates":   rec.Certificates,
			"references":     rec.References,
		}
	case applicant.SectionPosition:
		return positionPayload(rec)
	}
	return map[string]any{}
}

func personalPayload(rec applicant.ApplicantRecord) map[string]any {
	return map[string]any{
		"prefix":                rec.Prefix,
		"firstName":             rec.FirstName,
		"lastName":              rec.LastName,
		"nickname":              rec.Nickname,
		"nationalId":            strings.NewReplacer(" ", "", "-", "").Replace(rec.NationalID),
		"nationalIdIssuedAt":    rec.NationalIDIssuedAt,
		"nationalIdIssueDate":   optionalString(rec.NationalIDIssueDate),
		"nationalIdExpiryDate":  optionalString(rec.NationalIDExpiryDate),
		"birthDate":             optionalString(rec.BirthDate),
		"gender":                optionalString(string(applicant.NormalizeGender(string(rec.Gender)))),
		"nationality":           rec.Nationality,
		"ethnicity":             rec.Ethnicity,
		"religion":              rec.Religion,
		"height":                optionalDecimal(rec.Height),
		"weight":                optionalDecimal(rec.Weight),
		"maritalStatus":         optionalString(string(applicant.NormalizeMaritalStatus(string(rec.MaritalStatus)))),
		"spouseName":            rec.SpouseName,
		"phone":                 rec.Phone,
		"email":                 rec.Email,
		"registeredAddress":     addressPayload(rec.RegisteredAddress),
		"registeredAddressText": rec.RegisteredAddressText,
		"currentAddress":        addressPayload(rec.CurrentAddress),
		"currentAddressText":    rec.CurrentAddressText,
		"emergencyName":         rec.EmergencyName,
		"emergencyRelationship": rec.EmergencyRelationship,
		"emergencyPhone":        rec.EmergencyPhone,
		"emergencyAddress":      addressPayload(rec.EmergencyAddress),
		"emergencyAddressText":  rec.EmergencyAddressText,
		"emergencyWorkplace": map[string]any{
			"name":     rec.EmergencyWorkplace.Name,
			"district": rec.EmergencyWorkplace.District,
			"province": rec.EmergencyWorkplace.Province,
			"phone":    rec.EmergencyWorkplace.Phone,
		},
	}
}

func addressPayload(a applicant.Address) map[string]any {
	return map[string]any{
		"houseNumber":   a.HouseNumber,
		"villageNumber": a.VillageNumber,
		"alley":         a.Alley,
		"road":          a.Road,
		"subDistrict":   a.SubDistrict,
		"district":      a.District,
		"province":      a.Province,
		"postalCode":    a.PostalCode,
		"phone":         a.Phone,
		"mobile":        a.Mobile,
	}
}

func educationPayload(entries []applicant.EducationEntry) []map[string]any {
	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, map[string]any{
			"level":          e.Level,
			"institution":    e.Institution,
			"major":          e.Major,
			"graduationYear": optionalInt(e.GraduationYear),
			"gpa":            optionalDecimal(e.GPA),
		})
	}
	return out
}

func workPayload(entries []applicant.WorkExperienceEntry) []map[string]any {
	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, map[string]any{
			"position":         e.Position,
			"company":          e.Company,
			"startDate":        optionalString(e.StartDate),
			"endDate":          optionalString(e.EndDate),
			"salary":           optionalDecimal(e.Salary),
			"reasonForLeaving": e.ReasonForLeaving,
			"isCurrent":        e.IsCurrent,
		})
	}
	return out
}

func governmentPayload(entries []applicant.PriorGovernmentServiceEntry) []map[string]any {
	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, map[string]any{
			"position":         e.Position,
			"agency":           e.Agency,
			"startDate":        optionalString(e.StartDate),
			"endDate":          optionalString(e.EndDate),
			"reasonForLeaving": e.ReasonForLeaving,
		})
	}
	return out
}

func positionPayload(rec applicant.ApplicantRecord) map[string]any {
	employers := make([]string, 0, len(rec.MultipleEmployers))
	employers = append(employers, rec.MultipleEmployers...)

	m := rec.MedicalRights
	return map[string]any{
		"expectedPosition": rec.ExpectedPosition,
		"department":       rec.Department,
		"expectedSalary":   optionalDecimal(rec.ExpectedSalary),
		"availableDate":    optionalString(rec.AvailableDate),
		"medicalRights": map[string]any{
			"hasSocialSecurity":         m.HasSocialSecurity,
			"socialSecurityHospital":    m.SocialSecurityHospital,
			"hasUniversalCoverage":      m.HasUniversalCoverage,
			"universalCoverageHospital": m.UniversalCoverageHospital,
			"wantsHospitalChange":       m.WantsHospitalChange,
			"preferredHospital":         m.PreferredHospital,
		},
		"multipleEmployers": employers,
		"staffInfo": map[string]any{
			"position":   rec.StaffInfo.Position,
			"department": rec.StaffInfo.Department,
			"startDate":  optionalString(rec.StaffInfo.StartDate),
		},
	}
}

func optionalString(v string) any {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return v
}

func optionalDecimal(v string) any {
	v = strings.ReplaceAll(strings.TrimSpace(v), ",", "")
	if v == "" {
		return nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil
	}
	return d
}

func optionalInt(v string) any {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return n
}
