package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

// ToMap keeps the first message per field.
func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		if _, exists := result[err.Field]; !exists {
			result[err.Field] = err.Message
		}
	}
	return result
}

// Fields returns the failing field keys in order.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for _, err := range v {
		fields = append(fields, err.Field)
	}
	return fields
}

// Add appends a failure for field.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

var decimalRegex = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// IsDecimal accepts unsigned numbers with an optional fraction, thousands separators allowed.
func IsDecimal(s string) bool {
	return decimalRegex.MatchString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsDigits reports whether s is exactly n ASCII digits.
func IsDigits(s string, n int) bool {
	return len(s) == n && IsNumeric(s)
}

// IsValidNationalID checks a Thai national ID: 13 digits, dashes and spaces ignored.
func IsValidNationalID(id string) bool {
	return IsDigits(stripSeparators(id), 13)
}

// IsValidPostalCode checks a Thai postal code (5 digits).
func IsValidPostalCode(code string) bool {
	return IsDigits(strings.TrimSpace(code), 5)
}

// Phone number validation: 9-10 digits after removing separators.
func IsValidPhoneNumber(phone string) bool {
	phone = stripSeparators(phone)
	if len(phone) < 9 || len(phone) > 10 {
		return false
	}
	return IsNumeric(phone)
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

func stripSeparators(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}
