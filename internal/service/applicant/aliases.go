package applicant

import (
	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant"
)

// Alias tables. The canonical name is always listed first; later entries are legacy
// spellings. A dotted alias ("emergencyWorkplace.name") descends into a nested object.
// The first alias holding a present, non-empty value wins.

type stringField struct {
	aliases []string
	target  func(r *applicant.ApplicantRecord) *string
}

type boolField struct {
	aliases []string
	target  func(r *applicant.ApplicantRecord) *bool
}

var stringFields = []stringField{
	{[]string{"prefix", "title", "namePrefix", "name_prefix"}, func(r *applicant.ApplicantRecord) *string { return &r.Prefix }},
	{[]string{"firstName", "first_name", "firstname", "fname", "name"}, func(r *applicant.ApplicantRecord) *string { return &r.FirstName }},
	{[]string{"lastName", "last_name", "lastname", "lname", "surname"}, func(r *applicant.ApplicantRecord) *string { return &r.LastName }},
	{[]string{"nickname", "nickName", "nick_name"}, func(r *applicant.ApplicantRecord) *string { return &r.Nickname }},
	{[]string{"nationalId", "national_id", "idCardNumber", "citizenId", "idNumber"}, func(r *applicant.ApplicantRecord) *string { return &r.NationalID }},
	{[]string{"nationalIdIssuedAt", "idCardIssuedAt", "idCardIssuePlace", "issuedAt"}, func(r *applicant.ApplicantRecord) *string { return &r.NationalIDIssuedAt }},
	{[]string{"nationalIdIssueDate", "idCardIssueDate", "issueDate"}, func(r *applicant.ApplicantRecord) *string { return &r.NationalIDIssueDate }},
	{[]string{"nationalIdExpiryDate", "idCardExpiryDate", "idCardExpireDate", "expiryDate"}, func(r *applicant.ApplicantRecord) *string { return &r.NationalIDExpiryDate }},
	{[]string{"birthDate", "birth_date", "dateOfBirth", "dob", "birthday"}, func(r *applicant.ApplicantRecord) *string { return &r.BirthDate }},
	{[]string{"nationality"}, func(r *applicant.ApplicantRecord) *string { return &r.Nationality }},
	{[]string{"ethnicity", "race"}, func(r *applicant.ApplicantRecord) *string { return &r.Ethnicity }},
	{[]string{"religion"}, func(r *applicant.ApplicantRecord) *string { return &r.Religion }},
	{[]string{"height", "heightCm"}, func(r *applicant.ApplicantRecord) *string { return &r.Height }},
	{[]string{"weight", "weightKg"}, func(r *applicant.ApplicantRecord) *string { return &r.Weight }},
	{[]string{"spouseName", "spouse_name", "spouseFullName", "spouse"}, func(r *applicant.ApplicantRecord) *string { return &r.SpouseName }},
	{[]string{"phone", "phoneNumber", "phone_number", "mobilePhone", "mobile", "tel"}, func(r *applicant.ApplicantRecord) *string { return &r.Phone }},
	{[]string{"email", "emailAddress", "email_address"}, func(r *applicant.ApplicantRecord) *string { return &r.Email }},
	{[]string{"profileImageId", "profileImage", "profile_image", "photoFileId", "photo"}, func(r *applicant.ApplicantRecord) *string { return &r.ProfileImageID }},
	{[]string{"registeredAddressText", "houseRegistrationAddressText", "permanentAddressText"}, func(r *applicant.ApplicantRecord) *string { return &r.RegisteredAddressText }},
	{[]string{"currentAddressText", "addressText", "address", "fullAddress"}, func(r *applicant.ApplicantRecord) *string { return &r.CurrentAddressText }},
	{[]string{"emergencyAddressText", "emergencyContactAddressText"}, func(r *applicant.ApplicantRecord) *string { return &r.EmergencyAddressText }},

	{[]string{"emergencyName", "emergencyContactName", "emergency_contact_name", "emergencyContact"}, func(r *applicant.ApplicantRecord) *string { return &r.EmergencyName }},
	{[]string{"emergencyRelationship", "emergencyContactRelationship", "emergency_relationship", "relationship"}, func(r *applicant.ApplicantRecord) *string { return &r.EmergencyRelationship }},
	{[]string{"emergencyPhone", "emergencyContactPhone", "emergency_phone", "emergencyTel"}, func(r *applicant.ApplicantRecord) *string { return &r.EmergencyPhone }},
	{[]string{"emergencyWorkplace.name", "emergencyWorkplace.workplaceName", "emergencyWorkplaceName", "emergencyWorkName"}, func(r *applicant.ApplicantRecord) *string { return &r.EmergencyWorkplace.Name }},
	{[]string{"emergencyWorkplace.district", "emergencyWorkplace.amphoe", "emergencyWorkplaceDistrict"}, func(r *applicant.ApplicantRecord) *string { return &r.EmergencyWorkplace.District }},
	{[]string{"emergencyWorkplace.province", "emergencyWorkplaceProvince"}, func(r *applicant.ApplicantRecord) *string { return &r.EmergencyWorkplace.Province }},
	{[]string{"emergencyWorkplace.phone", "emergencyWorkplace.tel", "emergencyWorkplacePhone", "emergencyWorkPhone"}, func(r *applicant.ApplicantRecord) *string { return &r.EmergencyWorkplace.Phone }},

	{[]string{"skills", "specialSkills", "special_skills", "abilities"}, func(r *applicant.ApplicantRecord) *string { return &r.Skills }},
	{[]string{"languages", "languageSkills", "language_skills"}, func(r *applicant.ApplicantRecord) *string { return &r.Languages }},
	{[]string{"computerSkills", "computer_skills", "computerAbility"}, func(r *applicant.ApplicantRecord) *string { return &r.ComputerSkills }},
	{[]string{"certificates", "certifications", "trainings"}, func(r *applicant.ApplicantRecord) *string { return &r.Certificates }},
	{[]string{"references", "referencePersons", "reference"}, func(r *applicant.ApplicantRecord) *string { return &r.References }},

	{[]string{"expectedPosition", "appliedPosition", "applied_position", "desiredPosition", "positionApplied", "position"}, func(r *applicant.ApplicantRecord) *string { return &r.ExpectedPosition }},
	{[]string{"department", "desiredDepartment", "departmentName", "department_name"}, func(r *applicant.ApplicantRecord) *string { return &r.Department }},
	{[]string{"expectedSalary", "expected_salary", "desiredSalary", "salaryExpectation"}, func(r *applicant.ApplicantRecord) *string { return &r.ExpectedSalary }},
	{[]string{"availableDate", "available_date", "availableStartDate", "earliestStartDate"}, func(r *applicant.ApplicantRecord) *string { return &r.AvailableDate }},

	{[]string{"medicalRights.socialSecurityHospital", "socialSecurityHospital", "ssoHospital"}, func(r *applicant.ApplicantRecord) *string { return &r.MedicalRights.SocialSecurityHospital }},
	{[]string{"medicalRights.universalCoverageHospital", "universalCoverageHospital", "goldCardHospital"}, func(r *applicant.ApplicantRecord) *string { return &r.MedicalRights.UniversalCoverageHospital }},
	{[]string{"medicalRights.preferredHospital", "preferredHospital", "newHospital"}, func(r *applicant.ApplicantRecord) *string { return &r.MedicalRights.PreferredHospital }},

	{[]string{"staffInfo.position", "staffInfo.currentPosition", "staffPosition", "currentStaffPosition"}, func(r *applicant.ApplicantRecord) *string { return &r.StaffInfo.Position }},
	{[]string{"staffInfo.department", "staffInfo.currentDepartment", "staffDepartment"}, func(r *applicant.ApplicantRecord) *string { return &r.StaffInfo.Department }},
	{[]string{"staffInfo.startDate", "staffInfo.employedSince", "staffStartDate"}, func(r *applicant.ApplicantRecord) *string { return &r.StaffInfo.StartDate }},
}

var boolFields = []boolField{
	{[]string{"medicalRights.hasSocialSecurity", "hasSocialSecurity", "socialSecurity"}, func(r *applicant.ApplicantRecord) *bool { return &r.MedicalRights.HasSocialSecurity }},
	{[]string{"medicalRights.hasUniversalCoverage", "hasUniversalCoverage", "goldCard"}, func(r *applicant.ApplicantRecord) *bool { return &r.MedicalRights.HasUniversalCoverage }},
	{[]string{"medicalRights.wantsHospitalChange", "wantsHospitalChange", "changeHospital"}, func(r *applicant.ApplicantRecord) *bool { return &r.MedicalRights.WantsHospitalChange }},
}

var (
	idAliases            = []string{"id", "_id", "applicantId", "applicationId"}
	genderAliases        = []string{"gender", "sex"}
	maritalStatusAliases = []string{"maritalStatus", "marital_status", "maritalStatusText"}
)

// addressSpec describes where one address field may be found in a raw record.
type addressSpec struct {
	containers []string
	prefixes   []string
	legacy     []string
	target     func(r *applicant.ApplicantRecord) *applicant.Address
	text       func(r *applicant.ApplicantRecord) *string
}

type addressComponent struct {
	names  []string
	suffix []string
	target func(a *applicant.Address) *string
	// Locality components decide whether the legacy free-text string is consulted.
	locality bool
}

var addressComponents = []addressComponent{
	{[]string{"houseNumber", "houseNo", "house_number", "addressNo"}, []string{"HouseNumber", "HouseNo"}, func(a *applicant.Address) *string { return &a.HouseNumber }, true},
	{[]string{"villageNumber", "villageNo", "moo", "village_number"}, []string{"VillageNumber", "Moo"}, func(a *applicant.Address) *string { return &a.VillageNumber }, true},
	{[]string{"alley", "soi", "lane"}, []string{"Alley", "Soi"}, func(a *applicant.Address) *string { return &a.Alley }, true},
	{[]string{"road", "street", "thanon"}, []string{"Road", "Street"}, func(a *applicant.Address) *string { return &a.Road }, true},
	{[]string{"subDistrict", "subdistrict", "sub_district", "tambon"}, []string{"SubDistrict", "Tambon"}, func(a *applicant.Address) *string { return &a.SubDistrict }, true},
	{[]string{"district", "amphoe", "amphur"}, []string{"District", "Amphoe"}, func(a *applicant.Address) *string { return &a.District }, true},
	{[]string{"province", "changwat"}, []string{"Province"}, func(a *applicant.Address) *string { return &a.Province }, true},
	{[]string{"postalCode", "zipCode", "zipcode", "postcode", "postal_code"}, []string{"PostalCode", "ZipCode", "Zipcode"}, func(a *applicant.Address) *string { return &a.PostalCode }, true},
	{[]string{"phone", "tel", "telephone"}, []string{"AddressPhone", "AddressTel"}, func(a *applicant.Address) *string { return &a.Phone }, false},
	{[]string{"mobile", "mobilePhone", "cell"}, []string{"AddressMobile"}, func(a *applicant.Address) *string { return &a.Mobile }, false},
}

var addressSpecs = []addressSpec{
	{
		containers: []string{"registeredAddress", "registered_address", "houseRegistrationAddress", "permanentAddress"},
		prefixes:   []string{"registered", "houseReg", "permanent"},
		legacy:     []string{"registeredAddressText", "houseRegistrationAddressText", "permanentAddressText"},
		target:     func(r *applicant.ApplicantRecord) *applicant.Address { return &r.RegisteredAddress },
		text:       func(r *applicant.ApplicantRecord) *string { return &r.RegisteredAddressText },
	},
	{
		containers: []string{"currentAddress", "current_address", "presentAddress"},
		prefixes:   []string{"current", "present"},
		legacy:     []string{"currentAddressText", "addressText", "address", "fullAddress"},
		target:     func(r *applicant.ApplicantRecord) *applicant.Address { return &r.CurrentAddress },
		text:       func(r *applicant.ApplicantRecord) *string { return &r.CurrentAddressText },
	},
	{
		containers: []string{"emergencyAddress", "emergency_address", "emergencyContactAddress"},
		prefixes:   []string{"emergency", "emergencyContact"},
		legacy:     []string{"emergencyAddressText", "emergencyContactAddressText"},
		target:     func(r *applicant.ApplicantRecord) *applicant.Address { return &r.EmergencyAddress },
		text:       func(r *applicant.ApplicantRecord) *string { return &r.EmergencyAddressText },
	},
}

// componentAliases returns the nested and flat-prefixed aliases of one component of spec.
func (spec addressSpec) componentAliases(c addressComponent) []string {
	aliases := make([]string, 0, len(spec.containers)*len(c.names)+len(spec.prefixes)*len(c.suffix))
	for _, container := range spec.containers {
		for _, name := range c.names {
			aliases = append(aliases, container+"."+name)
		}
	}
	for _, prefix := range spec.prefixes {
		for _, suffix := range c.suffix {
			aliases = append(aliases, prefix+suffix)
		}
	}
	return aliases
}

// List fields and the per-entry aliases of their items.
var (
	educationAliases = []string{"education", "educations", "educationHistory", "education_history"}
	educationEntry   = []struct {
		aliases []string
		target  func(e *applicant.EducationEntry) *string
	}{
		{[]string{"level", "educationLevel", "degree"}, func(e *applicant.EducationEntry) *string { return &e.Level }},
		{[]string{"institution", "school", "university", "schoolName", "institute"}, func(e *applicant.EducationEntry) *string { return &e.Institution }},
		{[]string{"major", "fieldOfStudy", "faculty", "program"}, func(e *applicant.EducationEntry) *string { return &e.Major }},
		{[]string{"graduationYear", "yearGraduated", "gradYear", "year"}, func(e *applicant.EducationEntry) *string { return &e.GraduationYear }},
		{[]string{"gpa", "gpax", "grade"}, func(e *applicant.EducationEntry) *string { return &e.GPA }},
	}

	workAliases = []string{"workExperience", "workExperiences", "work_experience", "experiences", "employmentHistory"}
	workEntry   = []struct {
		aliases []string
		target  func(e *applicant.WorkExperienceEntry) *string
	}{
		{[]string{"position", "jobTitle", "title"}, func(e *applicant.WorkExperienceEntry) *string { return &e.Position }},
		{[]string{"company", "companyName", "employer", "organization"}, func(e *applicant.WorkExperienceEntry) *string { return &e.Company }},
		{[]string{"startDate", "start_date", "dateFrom", "from"}, func(e *applicant.WorkExperienceEntry) *string { return &e.StartDate }},
		{[]string{"endDate", "end_date", "dateTo", "to"}, func(e *applicant.WorkExperienceEntry) *string { return &e.EndDate }},
		{[]string{"salary", "lastSalary", "monthlySalary"}, func(e *applicant.WorkExperienceEntry) *string { return &e.Salary }},
		{[]string{"reasonForLeaving", "reason_for_leaving", "leaveReason", "reason"}, func(e *applicant.WorkExperienceEntry) *string { return &e.ReasonForLeaving }},
	}
	workCurrentAliases = []string{"isCurrent", "is_current", "currentlyWorking", "current"}

	governmentAliases = []string{"priorGovernmentService", "prior_government_service", "governmentService", "governmentExperience"}
	governmentEntry   = []struct {
		aliases []string
		target  func(e *applicant.PriorGovernmentServiceEntry) *string
	}{
		{[]string{"position", "jobTitle", "title"}, func(e *applicant.PriorGovernmentServiceEntry) *string { return &e.Position }},
		{[]string{"agency", "department", "organization", "ministry"}, func(e *applicant.PriorGovernmentServiceEntry) *string { return &e.Agency }},
		{[]string{"startDate", "start_date", "dateFrom", "from"}, func(e *applicant.PriorGovernmentServiceEntry) *string { return &e.StartDate }},
		{[]string{"endDate", "end_date", "dateTo", "to"}, func(e *applicant.PriorGovernmentServiceEntry) *string { return &e.EndDate }},
		{[]string{"reasonForLeaving", "reason_for_leaving", "leaveReason", "reason"}, func(e *applicant.PriorGovernmentServiceEntry) *string { return &e.ReasonForLeaving }},
	}

	multipleEmployersAliases = []string{"multipleEmployers", "multiple_employers", "otherEmployers"}

	documentsAliases      = []string{"documents", "attachments"}
	documentFileAliases   = []string{"fileId", "fileID", "file_id", "storedFileId"}
	documentNameAliases   = []string{"originalFileName", "originalName", "fileName", "filename"}
	documentCategoryAlias = []string{"category", "type"}
)
