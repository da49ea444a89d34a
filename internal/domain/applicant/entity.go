package applicant

import (
	"strings"
	"time"
)

// ApplicantRecord is the canonical applicant shape. JSON tags are the canonical field names.
type ApplicantRecord struct {
	ID string `json:"id"`

	Prefix               string        `json:"prefix"`
	FirstName            string        `json:"firstName"`
	LastName             string        `json:"lastName"`
	Nickname             string        `json:"nickname"`
	NationalID           string        `json:"nationalId"`
	NationalIDIssuedAt   string        `json:"nationalIdIssuedAt"`
	NationalIDIssueDate  string        `json:"nationalIdIssueDate"`
	NationalIDExpiryDate string        `json:"nationalIdExpiryDate"`
	BirthDate            string        `json:"birthDate"`
	Gender               Gender        `json:"gender"`
	Nationality          string        `json:"nationality"`
	Ethnicity            string        `json:"ethnicity"`
	Religion             string        `json:"religion"`
	Height               string        `json:"height"`
	Weight               string        `json:"weight"`
	MaritalStatus        MaritalStatus `json:"maritalStatus"`
	SpouseName           string        `json:"spouseName"`
	Phone                string        `json:"phone"`
	Email                string        `json:"email"`
	ProfileImageID       string        `json:"profileImageId"`

	// The *AddressText fields keep legacy free text whether or not it could be extracted.
	RegisteredAddress     Address `json:"registeredAddress"`
	RegisteredAddressText string  `json:"registeredAddressText"`
	CurrentAddress        Address `json:"currentAddress"`
	CurrentAddressText    string  `json:"currentAddressText"`

	EmergencyName         string             `json:"emergencyName"`
	EmergencyRelationship string             `json:"emergencyRelationship"`
	EmergencyPhone        string             `json:"emergencyPhone"`
	EmergencyAddress      Address            `json:"emergencyAddress"`
	EmergencyAddressText  string             `json:"emergencyAddressText"`
	EmergencyWorkplace    EmergencyWorkplace `json:"emergencyWorkplace"`

	Education              []EducationEntry              `json:"education"`
	WorkExperience         []WorkExperienceEntry         `json:"workExperience"`
	PriorGovernmentService []PriorGovernmentServiceEntry `json:"priorGovernmentService"`

	Skills         string `json:"skills"`
	Languages      string `json:"languages"`
	ComputerSkills string `json:"computerSkills"`
	Certificates   string `json:"certificates"`
	References     string `json:"references"`

	ExpectedPosition  string            `json:"expectedPosition"`
	Department        string            `json:"department"`
	ExpectedSalary    string            `json:"expectedSalary"`
	AvailableDate     string            `json:"availableDate"`
	MedicalRights     MedicalRightsInfo `json:"medicalRights"`
	MultipleEmployers []string          `json:"multipleEmployers"`
	StaffInfo         StaffInfo         `json:"staffInfo"`

	Documents map[DocumentCategory]DocumentAttachment `json:"documents"`
}

// Address is a structured postal address. All fields are optional.
type Address struct {
	HouseNumber   string `json:"houseNumber"`
	VillageNumber string `json:"villageNumber"`
	Alley         string `json:"alley"`
	Road          string `json:"road"`
	SubDistrict   string `json:"subDistrict"`
	District      string `json:"district"`
	Province      string `json:"province"`
	PostalCode    string `json:"postalCode"`
	Phone         string `json:"phone"`
	Mobile        string `json:"mobile"`
}

// HasLocality reports whether any of house number, sub-district, district or province is set.
func (a Address) HasLocality() bool {
	return a.HouseNumber != "" || a.SubDistrict != "" || a.District != "" || a.Province != ""
}

type EmergencyWorkplace struct {
	Name     string `json:"name"`
	District string `json:"district"`
	Province string `json:"province"`
	Phone    string `json:"phone"`
}

type EducationEntry struct {
	Level          string `json:"level"`
	Institution    string `json:"institution"`
	Major          string `json:"major"`
	GraduationYear string `json:"graduationYear"`
	GPA            string `json:"gpa"`
}

type WorkExperienceEntry struct {
	Position         string `json:"position"`
	Company          string `json:"company"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	Salary           string `json:"salary"`
	ReasonForLeaving string `json:"reasonForLeaving"`
	IsCurrent        bool   `json:"isCurrent"`
}

type PriorGovernmentServiceEntry struct {
	Position         string `json:"position"`
	Agency           string `json:"agency"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	ReasonForLeaving string `json:"reasonForLeaving"`
}

// MedicalRightsInfo pairs each entitlement flag with the hospital it names.
type MedicalRightsInfo struct {
	HasSocialSecurity         bool   `json:"hasSocialSecurity"`
	SocialSecurityHospital    string `json:"socialSecurityHospital"`
	HasUniversalCoverage      bool   `json:"hasUniversalCoverage"`
	UniversalCoverageHospital string `json:"universalCoverageHospital"`
	WantsHospitalChange       bool   `json:"wantsHospitalChange"`
	PreferredHospital         string `json:"preferredHospital"`
}

// StaffInfo is filled when the applicant is already on staff.
type StaffInfo struct {
	Position   string `json:"position"`
	Department string `json:"department"`
	StartDate  string `json:"startDate"`
}

type DocumentAttachment struct {
	Category         DocumentCategory `json:"category"`
	FileID           string           `json:"fileId"`
	OriginalFileName string           `json:"originalFileName"`
	UploadedAt       *time.Time       `json:"uploadedAt,omitempty"`
}

// IsEmpty reports whether the attachment has no stored file.
func (d DocumentAttachment) IsEmpty() bool {
	return strings.TrimSpace(d.FileID) == ""
}

type DocumentCategory string

const (
	DocumentIDCard               DocumentCategory = "idCard"
	DocumentHouseRegistration    DocumentCategory = "houseRegistration"
	DocumentEducationCertificate DocumentCategory = "educationCertificate"
	DocumentMilitaryCertificate  DocumentCategory = "militaryCertificate"
	DocumentTranscript           DocumentCategory = "transcript"
	DocumentMedicalCertificate   DocumentCategory = "medicalCertificate"
	DocumentOther                DocumentCategory = "other"
)

// DocumentCategories lists every accepted category.
var DocumentCategories = []DocumentCategory{
	DocumentIDCard,
	DocumentHouseRegistration,
	DocumentEducationCertificate,
	DocumentMilitaryCertificate,
	DocumentTranscript,
	DocumentMedicalCertificate,
	DocumentOther,
}

func (c DocumentCategory) IsValid() bool {
	for _, known := range DocumentCategories {
		if c == known {
			return true
		}
	}
	return false
}

var documentLabels = map[DocumentCategory]string{
	DocumentIDCard:               "สำเนาบัตรประชาชน",
	DocumentHouseRegistration:    "สำเนาทะเบียนบ้าน",
	DocumentEducationCertificate: "สำเนาวุฒิการศึกษา",
	DocumentMilitaryCertificate:  "สำเนาใบผ่านการเกณฑ์ทหาร (สด.8/สด.43)",
	DocumentTranscript:           "ใบแสดงผลการเรียน",
	DocumentMedicalCertificate:   "ใบรับรองแพทย์",
	DocumentOther:                "เอกสารอื่น ๆ",
}

// Label returns the Thai display label of the category.
func (c DocumentCategory) Label() string {
	if label, ok := documentLabels[c]; ok {
		return label
	}
	return string(c)
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

var genderSynonyms = map[string]Gender{
	"male":   GenderMale,
	"m":      GenderMale,
	"ชาย":    GenderMale,
	"female": GenderFemale,
	"f":      GenderFemale,
	"หญิง":   GenderFemale,
	"other":  GenderOther,
	"อื่นๆ":  GenderOther,
	"อื่น ๆ": GenderOther,
}

var genderDisplay = map[Gender]string{
	GenderMale:   "ชาย",
	GenderFemale: "หญิง",
	GenderOther:  "อื่นๆ",
}

// NormalizeGender maps a known spelling or synonym to the enumerated value.
// Unknown values are returned unchanged.
func NormalizeGender(raw string) Gender {
	trimmed := strings.TrimSpace(raw)
	if g, ok := genderSynonyms[strings.ToLower(trimmed)]; ok {
		return g
	}
	return Gender(trimmed)
}

func (g Gender) IsValid() bool {
	_, ok := genderDisplay[g]
	return ok
}

// Display returns the human-readable synonym, or the raw value when unknown.
func (g Gender) Display() string {
	if label, ok := genderDisplay[g]; ok {
		return label
	}
	return string(g)
}

type MaritalStatus string

const (
	MaritalSingle    MaritalStatus = "single"
	MaritalMarried   MaritalStatus = "married"
	MaritalDivorced  MaritalStatus = "divorced"
	MaritalWidowed   MaritalStatus = "widowed"
	MaritalSeparated MaritalStatus = "separated"
)

var maritalSynonyms = map[string]MaritalStatus{
	"single":     MaritalSingle,
	"โสด":        MaritalSingle,
	"married":    MaritalMarried,
	"สมรส":       MaritalMarried,
	"แต่งงาน":    MaritalMarried,
	"divorced":   MaritalDivorced,
	"หย่า":       MaritalDivorced,
	"หย่าร้าง":   MaritalDivorced,
	"widowed":    MaritalWidowed,
	"หม้าย":      MaritalWidowed,
	"separated":  MaritalSeparated,
	"แยกกันอยู่": MaritalSeparated,
}

var maritalDisplay = map[MaritalStatus]string{
	MaritalSingle:    "โสด",
	MaritalMarried:   "สมรส",
	MaritalDivorced:  "หย่าร้าง",
	MaritalWidowed:   "หม้าย",
	MaritalSeparated: "แยกกันอยู่",
}

// NormalizeMaritalStatus maps a known spelling or synonym to the enumerated value.
// Unknown values are returned unchanged.
func NormalizeMaritalStatus(raw string) MaritalStatus {
	trimmed := strings.TrimSpace(raw)
	if s, ok := maritalSynonyms[strings.ToLower(trimmed)]; ok {
		return s
	}
	return MaritalStatus(trimmed)
}

func (s MaritalStatus) IsValid() bool {
	_, ok := maritalDisplay[s]
	return ok
}

func (s MaritalStatus) Display() string {
	if label, ok := maritalDisplay[s]; ok {
		return label
	}
	return string(s)
}

// Section is one tab of the application form.
type Section string

const (
	SectionPersonal  Section = "personal"
	SectionEducation Section = "education"
	SectionWork      Section = "work"
	SectionSkills    Section = "skills"
	SectionPosition  Section = "position"
	SectionDocuments Section = "documents"
)

var sectionOrder = []Section{
	SectionPersonal,
	SectionEducation,
	SectionWork,
	SectionSkills,
	SectionPosition,
	SectionDocuments,
}

// Sections returns the sections in form order.
func Sections() []Section {
	out := make([]Section, len(sectionOrder))
	copy(out, sectionOrder)
	return out
}

func (s Section) IsValid() bool {
	return s.index() >= 0
}

// Next returns the following section. The documents section is terminal and returns itself.
func (s Section) Next() Section {
	i := s.index()
	if i < 0 || i == len(sectionOrder)-1 {
		return s
	}
	return sectionOrder[i+1]
}

func (s Section) index() int {
	for i, known := range sectionOrder {
		if s == known {
			return i
		}
	}
	return -1
}

// StoredApplicant is the persisted row behind an ApplicantRecord.
type StoredApplicant struct {
	ID        string
	UserID    string
	Email     string
	Data      map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Owner identifies the authenticated user an application belongs to.
type Owner struct {
	UserID string
	Email  string
	Role   string
}

// Roles carried in the access token.
const (
	RoleApplicant = "applicant"
	RoleStaff     = "staff"
	RoleAdmin     = "admin"
)

// CanReview reports whether role may read other users' applications.
func CanReview(role string) bool {
	return role == RoleStaff || role == RoleAdmin
}
