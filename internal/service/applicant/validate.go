package applicant

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/validator"
)

const maxFreeTextLength = 2000

var (
	maxGPA         = decimal.NewFromInt(4)
	minBirthYear   = 1900
	maxPersonField = 255
)

// check inspects a non-empty value and returns the failure message suffix.
type check func(value string) (string, bool)

type fieldRule struct {
	key      string
	required bool
	get      func(r *applicant.ApplicantRecord) string
	checks   []check
}

// crossRule covers lists, sub-records and conditional requirements.
type crossRule func(rec *applicant.ApplicantRecord, persisted []applicant.DocumentAttachment, errs *validator.ValidationErrors)

type sectionRules struct {
	fields []fieldRule
	cross  []crossRule
}

func isDate(v string) (string, bool) {
	_, ok := validator.IsValidDate(v)
	return "must be a date in YYYY-MM-DD format", ok
}

func isPhone(v string) (string, bool) {
	return "must be 9-10 digits", validator.IsValidPhoneNumber(v)
}

func isEmail(v string) (string, bool) {
	return "must be a valid email address", validator.IsValidEmail(v)
}

func isDecimal(v string) (string, bool) {
	return "must be a number", validator.IsDecimal(v)
}

func isNationalID(v string) (string, bool) {
	return "must be 13 digits", validator.IsValidNationalID(v)
}

func isGender(v string) (string, bool) {
	return "must be one of male, female, other", applicant.NormalizeGender(v).IsValid()
}

func isMaritalStatus(v string) (string, bool) {
	return "must be one of single, married, divorced, widowed, separated", applicant.NormalizeMaritalStatus(v).IsValid()
}

func isPastBirthDate(v string) (string, bool) {
	date, _ := validator.IsValidDate(v)
	return "must be a realistic birth date", date.Year() >= minBirthYear && date.Before(today())
}

func maxLength(n int) check {
	return func(v string) (string, bool) {
		return fmt.Sprintf("must not exceed %d characters", n), utf8.RuneCountInString(v) <= n
	}
}

var rulesBySection = map[applicant.Section]sectionRules{
	applicant.SectionPersonal: {
		fields: []fieldRule{
			{"prefix", true, func(r *applicant.ApplicantRecord) string { return r.Prefix }, nil},
			{"firstName", true, func(r *applicant.ApplicantRecord) string { return r.FirstName }, []check{maxLength(maxPersonField)}},
			{"lastName", true, func(r *applicant.ApplicantRecord) string { return r.LastName }, []check{maxLength(maxPersonField)}},
			{"nationalId", true, func(r *applicant.ApplicantRecord) string { return r.NationalID }, []check{isNationalID}},
			{"nationalIdIssueDate", false, func(r *applicant.ApplicantRecord) string { return r.NationalIDIssueDate }, []check{isDate}},
			{"nationalIdExpiryDate", false, func(r *applicant.ApplicantRecord) string { return r.NationalIDExpiryDate }, []check{isDate}},
			{"birthDate", true, func(r *applicant.ApplicantRecord) string { return r.BirthDate }, []check{isDate, isPastBirthDate}},
			{"gender", true, func(r *applicant.ApplicantRecord) string { return string(r.Gender) }, []check{isGender}},
			{"maritalStatus", true, func(r *applicant.ApplicantRecord) string { return string(r.MaritalStatus) }, []check{isMaritalStatus}},
			{"height", false, func(r *applicant.ApplicantRecord) string { return r.Height }, []check{isDecimal}},
			{"weight", false, func(r *applicant.ApplicantRecord) string { return r.Weight }, []check{isDecimal}},
			{"phone", true, func(r *applicant.ApplicantRecord) string { return r.Phone }, []check{isPhone}},
			{"email", false, func(r *applicant.ApplicantRecord) string { return r.Email }, []check{isEmail}},
			{"emergencyName", true, func(r *applicant.ApplicantRecord) string { return r.EmergencyName }, nil},
			{"emergencyRelationship", true, func(r *applicant.ApplicantRecord) string { return r.EmergencyRelationship }, nil},
			{"emergencyPhone", true, func(r *applicant.ApplicantRecord) string { return r.EmergencyPhone }, []check{isPhone}},
			{"emergencyWorkplace.phone", false, func(r *applicant.ApplicantRecord) string { return r.EmergencyWorkplace.Phone }, []check{isPhone}},
		},
		cross: []crossRule{
			spouseNameRule,
			addressRule("registeredAddress", func(r *applicant.ApplicantRecord) applicant.Address { return r.RegisteredAddress }),
			addressRule("currentAddress", func(r *applicant.ApplicantRecord) applicant.Address { return r.CurrentAddress }),
			addressRule("emergencyAddress", func(r *applicant.ApplicantRecord) applicant.Address { return r.EmergencyAddress }),
			idCardDatesRule,
		},
	},
	applicant.SectionEducation: {
		cross: []crossRule{educationRule},
	},
	applicant.SectionWork: {
		cross: []crossRule{workExperienceRule, governmentServiceRule},
	},
	applicant.SectionSkills: {
		fields: []fieldRule{
			{"skills", false, func(r *applicant.ApplicantRecord) string { return r.Skills }, []check{maxLength(maxFreeTextLength)}},
			{"languages", false, func(r *applicant.ApplicantRecord) string { return r.Languages }, []check{maxLength(maxFreeTextLength)}},
			{"computerSkills", false, func(r *applicant.ApplicantRecord) string { return r.ComputerSkills }, []check{maxLength(maxFreeTextLength)}},
			{"certificates", false, func(r *applicant.ApplicantRecord) string { return r.Certificates }, []check{maxLength(maxFreeTextLength)}},
			{"references", false, func(r *applicant.ApplicantRecord) string { return r.References }, []check{maxLength(maxFreeTextLength)}},
		},
	},
	applicant.SectionPosition: {
		fields: []fieldRule{
			{"expectedPosition", true, func(r *applicant.ApplicantRecord) string { return r.ExpectedPosition }, []check{maxLength(maxPersonField)}},
			{"department", true, func(r *applicant.ApplicantRecord) string { return r.Department }, nil},
			{"expectedSalary", false, func(r *applicant.ApplicantRecord) string { return r.ExpectedSalary }, []check{isDecimal}},
			{"availableDate", false, func(r *applicant.ApplicantRecord) string { return r.AvailableDate }, []check{isDate}},
			{"staffInfo.startDate", false, func(r *applicant.ApplicantRecord) string { return r.StaffInfo.StartDate }, []check{isDate}},
		},
		cross: []crossRule{medicalRightsRule, multipleEmployersRule},
	},
	applicant.SectionDocuments: {
		cross: []crossRule{documentsRule},
	},
}

// ValidateSection returns the failures of section only. persisted is the stored
// attachment list and is consulted by the documents section. rec is never modified.
func ValidateSection(rec applicant.ApplicantRecord, section applicant.Section, persisted []applicant.DocumentAttachment) validator.ValidationErrors {
	rules, ok := rulesBySection[section]
	if !ok {
		return validator.ValidationErrors{{Field: "section", Message: "unknown section " + string(section)}}
	}

	var errs validator.ValidationErrors
	for _, f := range rules.fields {
		v := strings.TrimSpace(f.get(&rec))
		if v == "" {
			if f.required {
				errs.Add(f.key, f.key+" is required")
			}
			continue
		}
		for _, c := range f.checks {
			if msg, ok := c(v); !ok {
				errs.Add(f.key, f.key+" "+msg)
				break
			}
		}
	}
	for _, rule := range rules.cross {
		rule(&rec, persisted, &errs)
	}
	return errs
}

// ValidateAll is the union of every section's failures, in section order.
func ValidateAll(rec applicant.ApplicantRecord, persisted []applicant.DocumentAttachment) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for _, section := range applicant.Sections() {
		errs = append(errs, ValidateSection(rec, section, persisted)...)
	}
	return errs
}

func spouseNameRule(rec *applicant.ApplicantRecord, _ []applicant.DocumentAttachment, errs *validator.ValidationErrors) {
	if applicant.NormalizeMaritalStatus(string(rec.MaritalStatus)) != applicant.MaritalMarried {
		return
	}
	if validator.IsEmpty(rec.SpouseName) {
		errs.Add("spouseName", "spouseName is required when married")
	}
}

// addressRule checks the postal code only once a locality is given.
func addressRule(key string, get func(r *applicant.ApplicantRecord) applicant.Address) crossRule {
	return func(rec *applicant.ApplicantRecord, _ []applicant.DocumentAttachment, errs *validator.ValidationErrors) {
		addr := get(rec)
		if addr.HasLocality() && !validator.IsEmpty(addr.PostalCode) && !validator.IsValidPostalCode(addr.PostalCode) {
			errs.Add(key+".postalCode", key+".postalCode must be 5 digits")
		}
		if !validator.IsEmpty(addr.Phone) && !validator.IsValidPhoneNumber(addr.Phone) {
			errs.Add(key+".phone", key+".phone must be 9-10 digits")
		}
		if !validator.IsEmpty(addr.Mobile) && !validator.IsValidPhoneNumber(addr.Mobile) {
			errs.Add(key+".mobile", key+".mobile must be 9-10 digits")
		}
	}
}

func idCardDatesRule(rec *applicant.ApplicantRecord, _ []applicant.DocumentAttachment, errs *validator.ValidationErrors) {
	issued, ok1 := validator.IsValidDate(rec.NationalIDIssueDate)
	expiry, ok2 := validator.IsValidDate(rec.NationalIDExpiryDate)
	if ok1 && ok2 && expiry.Before(issued) {
		errs.Add("nationalIdExpiryDate", "nationalIdExpiryDate must not be before nationalIdIssueDate")
	}
}

func educationRule(rec *applicant.ApplicantRecord, _ []applicant.DocumentAttachment, errs *validator.ValidationErrors) {
	if len(rec.Education) == 0 {
		errs.Add("education", "at least one education entry is required")
		return
	}
	for i, e := range rec.Education {
		key := entryKey("education", i)
		requireField(errs, key+"level", e.Level)
		requireField(errs, key+"institution", e.Institution)
		if year := strings.TrimSpace(e.GraduationYear); year != "" && !validator.IsDigits(year, 4) {
			errs.Add(key+"graduationYear", key+"graduationYear must be a 4-digit year")
		}
		if gpa := strings.TrimSpace(e.GPA); gpa != "" {
			value, err := decimal.NewFromString(gpa)
			if err != nil || value.IsNegative() || value.GreaterThan(maxGPA) {
				errs.Add(key+"gpa", key+"gpa must be a number between 0.00 and 4.00")
			}
		}
	}
}

func workExperienceRule(rec *applicant.ApplicantRecord, _ []applicant.DocumentAttachment, errs *validator.ValidationErrors) {
	for i, e := range rec.WorkExperience {
		key := entryKey("workExperience", i)
		requireField(errs, key+"position", e.Position)
		requireField(errs, key+"company", e.Company)
		if !e.IsCurrent {
			requireField(errs, key+"endDate", e.EndDate)
		}
		checkDateRange(errs, key, e.StartDate, e.EndDate)
		if salary := strings.TrimSpace(e.Salary); salary != "" && !validator.IsDecimal(salary) {
			errs.Add(key+"salary", key+"salary must be a number")
		}
	}
}

func governmentServiceRule(rec *applicant.ApplicantRecord, _ []applicant.DocumentAttachment, errs *validator.ValidationErrors) {
	for i, e := range rec.PriorGovernmentService {
		key := entryKey("priorGovernmentService", i)
		requireField(errs, key+"position", e.Position)
		requireField(errs, key+"agency", e.Agency)
		checkDateRange(errs, key, e.StartDate, e.EndDate)
	}
}

// medicalRightsRule requires each hospital exactly when its flag is set.
func medicalRightsRule(rec *applicant.ApplicantRecord, _ []applicant.DocumentAttachment, errs *validator.ValidationErrors) {
	m := rec.MedicalRights
	pairs := []struct {
		flag     bool
		hospital string
		key      string
	}{
		{m.HasSocialSecurity, m.SocialSecurityHospital, "medicalRights.socialSecurityHospital"},
		{m.HasUniversalCoverage, m.UniversalCoverageHospital, "medicalRights.universalCoverageHospital"},
		{m.WantsHospitalChange, m.PreferredHospital, "medicalRights.preferredHospital"},
	}
	for _, p := range pairs {
		if p.flag && validator.IsEmpty(p.hospital) {
			errs.Add(p.key, p.key+" is required")
		}
	}
}

func multipleEmployersRule(rec *applicant.ApplicantRecord, _ []applicant.DocumentAttachment, errs *validator.ValidationErrors) {
	for i, employer := range rec.MultipleEmployers {
		if utf8.RuneCountInString(employer) > maxPersonField {
			key := "multipleEmployers." + strconv.Itoa(i)
			errs.Add(key, fmt.Sprintf("%s must not exceed %d characters", key, maxPersonField))
		}
	}
}

func documentsRule(rec *applicant.ApplicantRecord, persisted []applicant.DocumentAttachment, errs *validator.ValidationErrors) {
	for _, category := range MissingDocuments(*rec, persisted) {
		errs.Add("documents."+string(category), category.Label()+" is required")
	}
}

func entryKey(list string, i int) string {
	return list + "." + strconv.Itoa(i) + "."
}

func requireField(errs *validator.ValidationErrors, key, value string) {
	if validator.IsEmpty(value) {
		errs.Add(key, key+" is required")
	}
}

func checkDateRange(errs *validator.ValidationErrors, key, start, end string) {
	startDate, startOK := validDate(errs, key+"startDate", start)
	endDate, endOK := validDate(errs, key+"endDate", end)
	if startOK && endOK && endDate.Before(startDate) {
		errs.Add(key+"endDate", key+"endDate must not be before startDate")
	}
}

// validDate reports a present, well-formed date. Malformed values are recorded.
func validDate(errs *validator.ValidationErrors, key, value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	date, ok := validator.IsValidDate(value)
	if !ok {
		errs.Add(key, key+" must be a date in YYYY-MM-DD format")
	}
	return date, ok
}

var now = time.Now

func today() time.Time {
	return now().Truncate(24 * time.Hour)
}
