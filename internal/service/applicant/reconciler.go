package applicant

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/thaiaddress"
)

// AddressExtractor turns a legacy free-text address into components.
type AddressExtractor func(raw string) thaiaddress.Address

// Reconciler maps raw applicant data, keyed by any known alias, onto the canonical record.
type Reconciler struct {
	extract AddressExtractor
}

type ReconcilerOption func(*Reconciler)

// WithAddressExtractor replaces the extractor used for legacy free-text addresses.
func WithAddressExtractor(fn AddressExtractor) ReconcilerOption {
	return func(r *Reconciler) {
		if fn != nil {
			r.extract = fn
		}
	}
}

func NewReconciler(opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{extract: thaiaddress.Extract}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile builds a canonical record from raw. It never fails: missing or malformed
// values leave the field empty, list fields are always non-nil, and an ID is only set
// when raw carries one. Reconcile(ToRaw(Reconcile(x))) equals Reconcile(x).
func (r *Reconciler) Reconcile(raw map[string]any) applicant.ApplicantRecord {
	rec := applicant.ApplicantRecord{
		Education:              []applicant.EducationEntry{},
		WorkExperience:         []applicant.WorkExperienceEntry{},
		PriorGovernmentService: []applicant.PriorGovernmentServiceEntry{},
		MultipleEmployers:      []string{},
		Documents:              map[applicant.DocumentCategory]applicant.DocumentAttachment{},
	}
	if raw == nil {
		return rec
	}

	if id, ok := firstString(raw, idAliases); ok {
		rec.ID = id
	}
	for _, f := range stringFields {
		if v, ok := firstString(raw, f.aliases); ok {
			*f.target(&rec) = v
		}
	}
	for _, f := range boolFields {
		if v, ok := firstBool(raw, f.aliases); ok {
			*f.target(&rec) = v
		}
	}
	if v, ok := firstString(raw, genderAliases); ok {
		rec.Gender = applicant.NormalizeGender(v)
	}
	if v, ok := firstString(raw, maritalStatusAliases); ok {
		rec.MaritalStatus = applicant.NormalizeMaritalStatus(v)
	}

	for _, spec := range addressSpecs {
		*spec.target(&rec) = r.resolveAddress(raw, spec)
		// A bare string under the address key is the legacy text itself.
		if text := spec.text(&rec); *text == "" {
			if v, ok := firstString(raw, spec.containers); ok {
				*text = v
			}
		}
	}

	rec.Education = reconcileEducation(raw)
	rec.WorkExperience = reconcileWork(raw)
	rec.PriorGovernmentService = reconcileGovernment(raw)
	rec.MultipleEmployers = reconcileStrings(raw, multipleEmployersAliases)
	rec.Documents = reconcileDocuments(raw)

	return rec
}

// resolveAddress prefers discrete components. The legacy text is consulted only when no
// locality component is present anywhere; phone and mobile are always taken as given.
func (r *Reconciler) resolveAddress(raw map[string]any, spec addressSpec) applicant.Address {
	var addr applicant.Address
	discrete := false
	for _, c := range addressComponents {
		if v, ok := firstString(raw, spec.componentAliases(c)); ok {
			*c.target(&addr) = v
			if c.locality {
				discrete = true
			}
		}
	}
	if discrete {
		return addr
	}

	legacy := make([]string, 0, len(spec.containers)+len(spec.legacy))
	legacy = append(legacy, spec.containers...)
	legacy = append(legacy, spec.legacy...)
	text, ok := firstString(raw, legacy)
	if !ok {
		return addr
	}

	extracted := r.extract(text)
	if extracted.IsZero() {
		slog.Debug("legacy address kept as free text", "field", spec.containers[0])
		return addr
	}
	addr.HouseNumber = extracted.HouseNumber
	addr.VillageNumber = extracted.VillageNumber
	addr.Alley = extracted.Alley
	addr.Road = extracted.Road
	addr.SubDistrict = extracted.SubDistrict
	addr.District = extracted.District
	addr.Province = extracted.Province
	addr.PostalCode = extracted.PostalCode
	return addr
}

func reconcileEducation(raw map[string]any) []applicant.EducationEntry {
	entries := []applicant.EducationEntry{}
	for _, item := range firstList(raw, educationAliases) {
		var e applicant.EducationEntry
		for _, f := range educationEntry {
			if v, ok := firstString(item, f.aliases); ok {
				*f.target(&e) = v
			}
		}
		entries = append(entries, e)
	}
	return entries
}

func reconcileWork(raw map[string]any) []applicant.WorkExperienceEntry {
	entries := []applicant.WorkExperienceEntry{}
	for _, item := range firstList(raw, workAliases) {
		var e applicant.WorkExperienceEntry
		for _, f := range workEntry {
			if v, ok := firstString(item, f.aliases); ok {
				*f.target(&e) = v
			}
		}
		if v, ok := firstBool(item, workCurrentAliases); ok {
			e.IsCurrent = v
		}
		entries = append(entries, e)
	}
	return entries
}

func reconcileGovernment(raw map[string]any) []applicant.PriorGovernmentServiceEntry {
	entries := []applicant.PriorGovernmentServiceEntry{}
	for _, item := range firstList(raw, governmentAliases) {
		var e applicant.PriorGovernmentServiceEntry
		for _, f := range governmentEntry {
			if v, ok := firstString(item, f.aliases); ok {
				*f.target(&e) = v
			}
		}
		entries = append(entries, e)
	}
	return entries
}

func reconcileStrings(raw map[string]any, aliases []string) []string {
	out := []string{}
	for _, alias := range aliases {
		v, ok := lookup(raw, alias)
		if !ok {
			continue
		}
		switch x := v.(type) {
		case []any:
			for _, item := range x {
				if s, ok := stringValue(item); ok {
					out = append(out, s)
				}
			}
		case []string:
			for _, item := range x {
				if s := strings.TrimSpace(item); s != "" {
					out = append(out, s)
				}
			}
		default:
			if s, ok := stringValue(x); ok {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return out
}

// reconcileDocuments accepts either a map keyed by category or a list of entries that
// name their category. Entries without a file identifier are dropped.
func reconcileDocuments(raw map[string]any) map[applicant.DocumentCategory]applicant.DocumentAttachment {
	docs := map[applicant.DocumentCategory]applicant.DocumentAttachment{}
	for _, alias := range documentsAliases {
		v, ok := lookup(raw, alias)
		if !ok {
			continue
		}
		switch x := v.(type) {
		case map[string]any:
			for key, entry := range x {
				if doc, ok := documentFrom(applicant.DocumentCategory(strings.TrimSpace(key)), entry); ok {
					docs[doc.Category] = doc
				}
			}
		case []any:
			for _, entry := range x {
				m, ok := entry.(map[string]any)
				if !ok {
					continue
				}
				category, ok := firstString(m, documentCategoryAlias)
				if !ok {
					continue
				}
				if doc, ok := documentFrom(applicant.DocumentCategory(category), m); ok {
					docs[doc.Category] = doc
				}
			}
		}
		if len(docs) > 0 {
			return docs
		}
	}
	return docs
}

func documentFrom(category applicant.DocumentCategory, entry any) (applicant.DocumentAttachment, bool) {
	if category == "" {
		return applicant.DocumentAttachment{}, false
	}
	doc := applicant.DocumentAttachment{Category: category}
	if m, ok := entry.(map[string]any); ok {
		doc.FileID, _ = firstString(m, documentFileAliases)
		doc.OriginalFileName, _ = firstString(m, documentNameAliases)
	} else {
		doc.FileID, _ = stringValue(entry)
	}
	if doc.IsEmpty() {
		return applicant.DocumentAttachment{}, false
	}
	return doc, true
}

// ToRaw serializes rec under canonical names, the inverse of Reconcile.
func ToRaw(rec applicant.ApplicantRecord) map[string]any {
	raw := map[string]any{}
	data, err := json.Marshal(rec)
	if err != nil {
		return raw
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return map[string]any{}
	}
	return raw
}

// lookup resolves a dotted path through nested objects.
func lookup(raw map[string]any, path string) (any, bool) {
	current := raw
	parts := strings.Split(path, ".")
	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

func firstString(raw map[string]any, aliases []string) (string, bool) {
	for _, alias := range aliases {
		v, ok := lookup(raw, alias)
		if !ok {
			continue
		}
		if s, ok := stringValue(v); ok {
			return s, true
		}
	}
	return "", false
}

func firstBool(raw map[string]any, aliases []string) (bool, bool) {
	for _, alias := range aliases {
		v, ok := lookup(raw, alias)
		if !ok {
			continue
		}
		if b, ok := boolValue(v); ok {
			return b, true
		}
	}
	return false, false
}

func firstList(raw map[string]any, aliases []string) []map[string]any {
	for _, alias := range aliases {
		v, ok := lookup(raw, alias)
		if !ok {
			continue
		}
		switch items := v.(type) {
		case []map[string]any:
			if len(items) > 0 {
				return items
			}
		case []any:
			if len(items) == 0 {
				continue
			}
			out := make([]map[string]any, 0, len(items))
			for _, item := range items {
				if m, ok := item.(map[string]any); ok {
					out = append(out, m)
				}
			}
			return out
		}
	}
	return nil
}

// stringValue reports a scalar as trimmed text. Objects, lists and blank strings are absent.
func stringValue(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		s := strings.TrimSpace(x)
		return s, s != ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case json.Number:
		s := x.String()
		return s, s != ""
	case bool:
		return strconv.FormatBool(x), true
	case fmt.Stringer:
		s := strings.TrimSpace(x.String())
		return s, s != ""
	}
	return "", false
}

func boolValue(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case float64:
		return x != 0, true
	case int:
		return x != 0, true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return false, false
		}
		return f != 0, true
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "1", "yes", "y", "on", "มี", "ใช่":
			return true, true
		case "false", "0", "no", "n", "off", "ไม่มี", "ไม่ใช่":
			return false, true
		}
	}
	return false, false
}
