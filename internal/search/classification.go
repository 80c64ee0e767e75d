package search

// Tax-treatment family names. An advisor category always starts with one of
// these, except for the fallback category.
const (
	FamilyFullTaxation = "Full Taxation"
	FamilyReducedRate  = "Reduced Rate"
	FamilySpecial      = "Special Regime"
	FamilyExemption    = "Exemption/Non-Incidence"
	FamilyImmunity     = "Immunity"

	// CategoryOther is reported for codes no table knows about.
	CategoryOther = "Other"
)

const (
	fallbackColor = "#757575"
	fallbackIcon  = "📋"
)

// Classification is the human-facing description of a tax classification
// code.
type Classification struct {
	Code        string `json:"code"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

// PrefixInfo describes every code sharing a three-character prefix.
type PrefixInfo struct {
	Category string
	Color    string
	Icon     string
}

// Family is one of the tax-treatment families offered as a filter.
type Family struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// ClassificationTable is the lookup data behind an Advisor.
type ClassificationTable struct {
	Exact  map[string]Classification
	Prefix map[string]PrefixInfo
}

// DefaultClassificationTable returns the built-in exact and prefix tables.
func DefaultClassificationTable() ClassificationTable {
	return ClassificationTable{
		Exact: map[string]Classification{
			"000001": {Category: FamilyFullTaxation, Description: "Service fully taxed by IBS/CBS", Color: "#4CAF50", Icon: "💰"},
			"200029": {Category: FamilyReducedRate, Description: "Human health services (Annex III) with reduced rate", Color: "#2196F3", Icon: "🏥"},
			"200039": {Category: FamilyReducedRate, Description: "National artistic productions (Annex X) with reduced rate", Color: "#9C27B0", Icon: "🎭"},
			"200040": {Category: FamilySpecial, Description: "Institutional communication to the public administration", Color: "#FF9800", Icon: "📢"},
			"200052": {Category: FamilyReducedRate, Description: "Intellectual professions with reduced rate", Color: "#00BCD4", Icon: "🎓"},
			"011001": {Category: FamilySpecial, Description: "Funeral assistance plans", Color: "#795548", Icon: "📋"},
			"400001": {Category: FamilyExemption, Description: "Operation exempt from IBS/CBS", Color: "#607D8B", Icon: "🚫"},
			"410001": {Category: FamilyImmunity, Description: "Immune operation (export of services)", Color: "#9E9E9E", Icon: "🌍"},
		},
		Prefix: map[string]PrefixInfo{
			"000": {Category: FamilyFullTaxation, Color: "#4CAF50", Icon: "💰"},
			"011": {Category: FamilySpecial, Color: "#FF9800", Icon: "📋"},
			"200": {Category: FamilyReducedRate, Color: "#2196F3", Icon: "📉"},
			"220": {Category: FamilyReducedRate, Color: "#2196F3", Icon: "📉"},
			"400": {Category: FamilyExemption, Color: "#607D8B", Icon: "🚫"},
			"410": {Category: FamilyImmunity, Color: "#9E9E9E", Icon: "🌍"},
			"510": {Category: FamilySpecial, Color: "#FF9800", Icon: "⚙️"},
			"550": {Category: FamilySpecial, Color: "#FF9800", Icon: "⚙️"},
		},
	}
}

// Advisor maps classification codes to descriptive categories. The zero
// value only ever answers with the fallback; use NewAdvisor.
type Advisor struct {
	table ClassificationTable
}

// NewAdvisor builds an Advisor over table.
func NewAdvisor(table ClassificationTable) *Advisor {
	return &Advisor{table: table}
}

// Describe resolves code by exact match, then by three-character prefix
// (the whole code when shorter), then falls back to CategoryOther. It never
// fails.
func (a *Advisor) Describe(code string) Classification {
	if a != nil {
		if c, ok := a.table.Exact[code]; ok {
			c.Code = code
			return c
		}
		if p, ok := a.table.Prefix[codePrefix(code)]; ok {
			return Classification{
				Code:        code,
				Category:    p.Category,
				Description: "Classification " + code,
				Color:       p.Color,
				Icon:        p.Icon,
			}
		}
	}
	return Classification{
		Code:        code,
		Category:    CategoryOther,
		Description: "Classification " + code,
		Color:       fallbackColor,
		Icon:        fallbackIcon,
	}
}

// codePrefix returns the first three characters of code, or all of it when
// shorter.
func codePrefix(code string) string {
	n := 0
	for i := range code {
		if n == 3 {
			return code[:i]
		}
		n++
	}
	return code
}

// Families lists the tax-treatment families in display order.
func (a *Advisor) Families() []Family {
	return []Family{
		{Name: FamilyFullTaxation, Description: "Service subject to the standard IBS/CBS rate", Icon: "💰", Color: "#4CAF50"},
		{Name: FamilyReducedRate, Description: "Service benefiting from a reduced rate", Icon: "📉", Color: "#2196F3"},
		{Name: FamilySpecial, Description: "Service subject to a special tax regime", Icon: "⚙️", Color: "#FF9800"},
		{Name: FamilyExemption, Description: "Service not subject to IBS/CBS (exemptions)", Icon: "🚫", Color: "#607D8B"},
		{Name: FamilyImmunity, Description: "Immune service (e.g. exports)", Icon: "🌍", Color: "#9E9E9E"},
	}
}
