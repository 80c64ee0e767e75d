package catalog

import (
	"sort"

	"github.com/tbourn/go-taxcode-search/internal/domain"
)

// FilterOptions are the distinct, sorted values offered by filter pickers.
type FilterOptions struct {
	PrimaryCategories  []string `json:"primary_categories"`
	SubCategories      []string `json:"sub_categories"`
	HarmonizedCodes    []string `json:"harmonized_codes"`
	TaxIncidencePlaces []string `json:"tax_incidence_places"`
	TaxClassifications []string `json:"tax_classifications"` // "code - name"
}

// ExtractFilterOptions collects the filter option tables from items. Blank
// values are skipped.
func ExtractFilterOptions(items []domain.ServiceItem) FilterOptions {
	var (
		cats    = stringSet{}
		subs    = stringSet{}
		codes   = stringSet{}
		places  = stringSet{}
		classes = stringSet{}
	)
	for i := range items {
		it := &items[i]
		cats.add(it.PrimaryCategory)
		subs.add(it.SubCategory)
		for j := range it.HarmonizedEntries {
			e := &it.HarmonizedEntries[j]
			codes.add(e.NBSCode)
			places.add(e.TaxIncidencePlace)
			for _, c := range e.TaxClassifications {
				if c.Code != "" {
					classes.add(c.Label())
				}
			}
		}
	}
	return FilterOptions{
		PrimaryCategories:  cats.sorted(),
		SubCategories:      subs.sorted(),
		HarmonizedCodes:    codes.sorted(),
		TaxIncidencePlaces: places.sorted(),
		TaxClassifications: classes.sorted(),
	}
}

// Summary holds catalog totals.
type Summary struct {
	Items              int `json:"items"`
	HarmonizedEntries  int `json:"harmonized_entries"`
	TaxClassifications int `json:"tax_classifications"`
	PrimaryCategories  int `json:"primary_categories"`
	SubCategories      int `json:"sub_categories"`
}

// Summarize counts items, nested entries, classifications and the distinct
// categories and sub-categories.
func Summarize(items []domain.ServiceItem) Summary {
	s := Summary{Items: len(items)}
	cats, subs := stringSet{}, stringSet{}
	for i := range items {
		it := &items[i]
		cats.add(it.PrimaryCategory)
		subs.add(it.SubCategory)
		s.HarmonizedEntries += len(it.HarmonizedEntries)
		for j := range it.HarmonizedEntries {
			s.TaxClassifications += len(it.HarmonizedEntries[j].TaxClassifications)
		}
	}
	s.PrimaryCategories = len(cats)
	s.SubCategories = len(subs)
	return s
}

type stringSet map[string]struct{}

func (s stringSet) add(v string) {
	if v != "" {
		s[v] = struct{}{}
	}
}

func (s stringSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
