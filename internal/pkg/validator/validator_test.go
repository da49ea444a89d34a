package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsDecimal(t *testing.T) {
	valid := []string{"3.50", "25000", "25,000", " 18000.75 "}
	invalid := []string{"", "abc", "3.", "-1", "1.2.3"}
	for _, s := range valid {
		if !IsDecimal(s) {
			t.Errorf("IsDecimal(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsDecimal(s) {
			t.Errorf("IsDecimal(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidNationalID(t *testing.T) {
	valid := []string{"1101700203451", "1-1017-00203-45-1", "1 1017 00203 45 1"}
	invalid := []string{"110170020345", "11017002034512", "abcdefghijklm", "110170020345x"}
	for _, id := range valid {
		if !IsValidNationalID(id) {
			t.Errorf("IsValidNationalID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidNationalID(id) {
			t.Errorf("IsValidNationalID(%q) = true, want false", id)
		}
	}
}

func TestIsValidPostalCode(t *testing.T) {
	valid := []string{"50200", "10110", " 10400 "}
	invalid := []string{"5020", "502000", "5020a", ""}
	for _, code := range valid {
		if !IsValidPostalCode(code) {
			t.Errorf("IsValidPostalCode(%q) = false, want true", code)
		}
	}
	for _, code := range invalid {
		if IsValidPostalCode(code) {
			t.Errorf("IsValidPostalCode(%q) = true, want false", code)
		}
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"0812345678", "053123456", "081-234-5678", "02 123 4567"}
	invalid := []string{"12345678", "08123456789", "abc0812345", "081234567a", ""}
	for _, phone := range valid {
		if !IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", phone)
		}
	}
	for _, phone := range invalid {
		if IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", phone)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.Error()
	want := "email: invalid; phone: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	var errs ValidationErrors
	errs.Add("email", "invalid")
	errs.Add("phone", "required")
	errs.Add("phone", "must be 9-10 digits")

	got := errs.ToMap()
	want := map[string]string{"email": "invalid", "phone": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
	if fields := errs.Fields(); len(fields) != 3 || fields[0] != "email" {
		t.Errorf("ValidationErrors.Fields() = %v", fields)
	}
}
