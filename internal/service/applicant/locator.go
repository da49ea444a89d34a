package applicant

import (
	"strings"
	"unicode"

	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/validator"
)

// Locate maps a failing field key to the section that displays it. Keys may be dotted
// ("workExperience.0.position"), compact list keys ("workExperience0Position") or
// flattened sub-record keys ("emergencyWorkplaceName"). Unknown keys report false.
func Locate(fieldKey string) (applicant.Section, bool) {
	key := strings.TrimSpace(fieldKey)
	if key == "" {
		return "", false
	}
	if section, ok := fieldSection[key]; ok {
		return section, true
	}

	head := key
	if i := strings.IndexFunc(head, func(r rune) bool { return r == '.' || unicode.IsDigit(r) }); i > 0 {
		head = head[:i]
	}
	if section, ok := fieldSection[head]; ok {
		return section, true
	}

	// Longest known field that prefixes the key wins.
	best, bestLen := applicant.Section(""), 0
	for field, section := range fieldSection {
		if len(field) > bestLen && strings.HasPrefix(key, field) {
			best, bestLen = section, len(field)
		}
	}
	return best, bestLen > 0
}

// LocateFirst returns the section and field of the first failure that can be located.
func LocateFirst(errs validator.ValidationErrors) (applicant.Section, string, bool) {
	for _, e := range errs {
		if section, ok := Locate(e.Field); ok {
			return section, e.Field, true
		}
	}
	return "", "", false
}
