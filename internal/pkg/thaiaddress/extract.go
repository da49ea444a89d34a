// Package thaiaddress pulls structured components out of free-text Thai postal addresses.
package thaiaddress

import (
	"regexp"
	"strings"
)

// Address holds the components recognised in a free-text address. Unrecognised components are empty.
type Address struct {
	HouseNumber   string `json:"houseNumber"`
	VillageNumber string `json:"villageNumber"`
	Alley         string `json:"alley"`
	Road          string `json:"road"`
	SubDistrict   string `json:"subDistrict"`
	District      string `json:"district"`
	Province      string `json:"province"`
	PostalCode    string `json:"postalCode"`
}

// IsZero reports whether no component was extracted.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Method names the rule that produced an extraction result.
type Method string

const (
	MethodFull          Method = "full"
	MethodNoAlley       Method = "no-alley"
	MethodNoRoad        Method = "no-road"
	MethodNoVillage     Method = "no-village"
	MethodNoAlleyNoRoad Method = "no-alley-no-road"
	MethodRoadOnly      Method = "road-only"
	MethodAlleyOnly     Method = "alley-only"
	MethodHouseOnly     Method = "house-only"
	MethodVillageOnly   Method = "village-only"
	MethodCommaSplit    Method = "comma-split"
	MethodNone          Method = "none"
)

const (
	minCommaSegments = 4
	maxCommaSegments = 8
)

type component int

const (
	houseNumber component = iota
	villageNumber
	alley
	road
	subDistrict
	district
	province
	postalCode
)

// Each fragment has exactly one capture group.
var fragments = map[component]string{
	houseNumber:   `(?:บ้านเลขที่|เลขที่)?\s*([0-9][^\s,]*)`,
	villageNumber: `(?:หมู่ที่|หมู่|ม\.)\s*([0-9]+)`,
	alley:         `(?:ซอย|ซ\.)\s*([^,]+?)`,
	road:          `(?:ถนน|ถ\.)\s*([^,]+?)`,
	subDistrict:   `(?:ตำบล|แขวง|ต\.)\s*([^,\s]+)`,
	district:      `(?:อำเภอ|เขต|อ\.)\s*([^,\s]+)`,
	province:      `(?:จังหวัด|จ\.)\s*([^,\s]+)`,
	postalCode:    `([0-9]{5})`,
}

type rule struct {
	method  Method
	pattern *regexp.Regexp
	extract func(match []string) Address
}

// rules run in order; the first full match wins and nothing is merged across rules.
var rules = []rule{
	newRule(MethodFull, houseNumber, villageNumber, alley, road, subDistrict, district, province, postalCode),
	newRule(MethodNoAlley, houseNumber, villageNumber, road, subDistrict, district, province, postalCode),
	newRule(MethodNoRoad, houseNumber, villageNumber, alley, subDistrict, district, province, postalCode),
	newRule(MethodNoVillage, houseNumber, alley, road, subDistrict, district, province, postalCode),
	newRule(MethodNoAlleyNoRoad, houseNumber, villageNumber, subDistrict, district, province, postalCode),
	newRule(MethodRoadOnly, houseNumber, road, subDistrict, district, province, postalCode),
	newRule(MethodAlleyOnly, houseNumber, alley, subDistrict, district, province, postalCode),
	newRule(MethodHouseOnly, houseNumber, subDistrict, district, province, postalCode),
	newRule(MethodVillageOnly, villageNumber, subDistrict, district, province, postalCode),
}

func newRule(method Method, components ...component) rule {
	parts := make([]string, 0, len(components))
	for _, c := range components {
		parts = append(parts, fragments[c])
	}
	pattern := regexp.MustCompile(`^\s*` + strings.Join(parts, `[\s,]*`) + `\s*$`)

	return rule{
		method:  method,
		pattern: pattern,
		extract: func(match []string) Address {
			var addr Address
			for i, c := range components {
				addr.set(c, match[i+1])
			}
			return addr
		},
	}
}

func (a *Address) set(c component, value string) {
	value = strings.TrimSpace(value)
	switch c {
	case houseNumber:
		a.HouseNumber = value
	case villageNumber:
		a.VillageNumber = value
	case alley:
		a.Alley = value
	case road:
		a.Road = value
	case subDistrict:
		a.SubDistrict = value
	case district:
		a.District = value
	case province:
		a.Province = value
	case postalCode:
		a.PostalCode = value
	}
}

var thaiDigits = strings.NewReplacer(
	"๐", "0", "๑", "1", "๒", "2", "๓", "3", "๔", "4",
	"๕", "5", "๖", "6", "๗", "7", "๘", "8", "๙", "9",
)

// Extract parses raw into address components. See ExtractWith.
func Extract(raw string) Address {
	addr, _ := ExtractWith(raw)
	return addr
}

// ExtractWith parses raw and reports which rule produced the result.
//
// Marker-anchored rules are tried from most to least specific. When none matches, the
// string is split on commas and the first eight segments are assigned positionally;
// fewer than four segments yields an empty Address and MethodNone. The comma fallback
// does not check that segments are plausible (a word can land in PostalCode).
func ExtractWith(raw string) (Address, Method) {
	normalized := thaiDigits.Replace(raw)

	for _, r := range rules {
		if match := r.pattern.FindStringSubmatch(normalized); match != nil {
			return r.extract(match), r.method
		}
	}

	segments := strings.Split(normalized, ",")
	if len(segments) < minCommaSegments {
		return Address{}, MethodNone
	}
	if len(segments) > maxCommaSegments {
		segments = segments[:maxCommaSegments]
	}

	var addr Address
	for i, segment := range segments {
		addr.set(component(i), segment)
	}
	return addr, MethodCommaSplit
}
