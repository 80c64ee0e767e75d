package search

import (
	"strconv"
	"strings"

	"github.com/tbourn/go-taxcode-search/internal/domain"
)

// Criteria is a conjunctive filter. Empty fields do not constrain.
type Criteria struct {
	PrimaryCategory       string `json:"primary_category,omitempty"`
	SubCategory           string `json:"sub_category,omitempty"`
	IsOnerousProvision    string `json:"is_onerous_provision,omitempty"`
	IsForeignAcquisition  string `json:"is_foreign_acquisition,omitempty"`
	TaxIncidencePlace     string `json:"tax_incidence_place,omitempty"`
	TaxClassificationCode string `json:"tax_classification_code,omitempty"` // "code" or "code - name"
	TaxTreatmentFamily    string `json:"tax_treatment_family,omitempty"`
	LegalCodeGroup        string `json:"legal_code_group,omitempty"` // "17" or "17 - description"
}

// IsZero reports whether c places no constraint at all.
func (c Criteria) IsZero() bool { return c == Criteria{} }

type predicate func(it *domain.ServiceItem) bool

// Filter returns the items satisfying every set criterion, in input order.
// It never fails; an empty result is valid.
func (e *Engine) Filter(items []domain.ServiceItem, c Criteria) []domain.ServiceItem {
	preds := e.predicates(c)
	if len(preds) == 0 {
		return items
	}
	out := make([]domain.ServiceItem, 0, len(items))
next:
	for i := range items {
		for _, p := range preds {
			if !p(&items[i]) {
				continue next
			}
		}
		out = append(out, items[i])
	}
	return out
}

// predicates returns the active criteria, cheapest first: plain item fields,
// then scans over harmonized entries, then classification lookups.
func (e *Engine) predicates(c Criteria) []predicate {
	var ps []predicate
	if v := c.PrimaryCategory; v != "" {
		ps = append(ps, func(it *domain.ServiceItem) bool { return it.PrimaryCategory == v })
	}
	if v := c.SubCategory; v != "" {
		ps = append(ps, func(it *domain.ServiceItem) bool { return it.SubCategory == v })
	}
	if c.LegalCodeGroup != "" {
		want, ok := parseGroupNumber(c.LegalCodeGroup)
		ps = append(ps, func(it *domain.ServiceItem) bool {
			if !ok {
				return false
			}
			got, err := strconv.Atoi(it.Group())
			return err == nil && got == want
		})
	}
	if v := c.IsOnerousProvision; v != "" {
		ps = append(ps, anyEntry(func(h *domain.HarmonizedEntry) bool { return h.IsOnerousProvision == v }))
	}
	if v := c.IsForeignAcquisition; v != "" {
		ps = append(ps, anyEntry(func(h *domain.HarmonizedEntry) bool { return h.IsForeignAcquisition == v }))
	}
	if v := c.TaxIncidencePlace; v != "" {
		ps = append(ps, anyEntry(func(h *domain.HarmonizedEntry) bool { return h.TaxIncidencePlace == v }))
	}
	if c.TaxClassificationCode != "" {
		code := classificationCodePart(c.TaxClassificationCode)
		ps = append(ps, anyClassification(func(tc *domain.TaxClassification) bool { return tc.Code == code }))
	}
	if c.TaxTreatmentFamily != "" {
		family := strings.ToLower(c.TaxTreatmentFamily)
		ps = append(ps, anyClassification(func(tc *domain.TaxClassification) bool {
			return strings.Contains(strings.ToLower(e.advisor.Describe(tc.Code).Category), family)
		}))
	}
	return ps
}

func anyEntry(match func(*domain.HarmonizedEntry) bool) predicate {
	return func(it *domain.ServiceItem) bool {
		for i := range it.HarmonizedEntries {
			if match(&it.HarmonizedEntries[i]) {
				return true
			}
		}
		return false
	}
}

func anyClassification(match func(*domain.TaxClassification) bool) predicate {
	return anyEntry(func(h *domain.HarmonizedEntry) bool {
		for i := range h.TaxClassifications {
			if match(&h.TaxClassifications[i]) {
				return true
			}
		}
		return false
	})
}

// classificationCodePart returns the code of a "code - name" display string.
func classificationCodePart(s string) string {
	if i := strings.Index(s, " - "); i >= 0 {
		return s[:i]
	}
	return s
}

// parseGroupNumber extracts the group number from "17", "17." or
// "17 - Technical support".
func parseGroupNumber(s string) (int, bool) {
	if i := strings.Index(s, " - "); i >= 0 {
		s = s[:i]
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	return n, err == nil
}
