package applicant

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant"
)

// decode parses a JSON object the way request bodies and stored rows arrive.
func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &raw))
	return raw
}

// validPersonal is a record whose personal section passes validation.
func validPersonal() applicant.ApplicantRecord {
	rec := NewReconciler().Reconcile(nil)
	rec.Prefix = "นาย"
	rec.FirstName = "สมชาย"
	rec.LastName = "ใจดี"
	rec.NationalID = "1101700203451"
	rec.BirthDate = "1995-04-12"
	rec.Gender = applicant.GenderMale
	rec.MaritalStatus = applicant.MaritalSingle
	rec.Phone = "0812345678"
	rec.EmergencyName = "สมหญิง ใจดี"
	rec.EmergencyRelationship = "มารดา"
	rec.EmergencyPhone = "0891234567"
	return rec
}

const validPersonalJSON = `{
	"title": "นาย",
	"first_name": "สมชาย",
	"surname": "ใจดี",
	"idCardNumber": "1-1017-00203-45-1",
	"dob": "1995-04-12",
	"sex": "ชาย",
	"marital_status": "โสด",
	"phoneNumber": "081-234-5678",
	"emergencyContactName": "สมหญิง ใจดี",
	"relationship": "มารดา",
	"emergencyContactPhone": "0891234567",
	"address": "123 หมู่ 4 ตำบลสุเทพ อำเภอเมือง จังหวัดเชียงใหม่ 50200"
}`

func attachment(category applicant.DocumentCategory, fileID string) applicant.DocumentAttachment {
	return applicant.DocumentAttachment{Category: category, FileID: fileID, OriginalFileName: string(category) + ".pdf"}
}
