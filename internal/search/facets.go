package search

import (
	"sort"
	"strconv"

	"github.com/tbourn/go-taxcode-search/internal/domain"
)

// legalCodeGroups names the groups of the legal service list.
var legalCodeGroups = map[int]string{
	1:  "IT services and related",
	2:  "Research and development",
	3:  "Rental of movable goods",
	4:  "Health, assistance and related services",
	5:  "Veterinary medicine and assistance",
	6:  "Personal care, aesthetics and related",
	7:  "Engineering, architecture, geology, etc.",
	8:  "Education, teaching, pedagogical guidance",
	9:  "Lodging, tourism, travel and related",
	10: "Intermediation and related",
	11: "Custody, parking and related",
	12: "Amusement, leisure, entertainment",
	13: "Photography and cinematography",
	14: "Reprography and digitization",
	15: "Metalwork, locksmiths and related",
	16: "Transport, storage, cargo and related",
	17: "Technical and administrative support and related",
	18: "Regulation and inspection",
	19: "Lodging and tourism",
	20: "Port, airport and related",
	21: "Public, registry and notarial records",
	22: "Highway operation",
	23: "Visual programming, industrial design",
	24: "Locksmiths, stamp making and related",
	25: "Funeral services",
	26: "Collection, dispatch and delivery of correspondence",
	27: "Social assistance",
	28: "Asset appraisal",
	29: "Library science",
	30: "Biology, biotechnology and chemistry",
	31: "Technical services in buildings",
	32: "Technical drawings",
	33: "Customs clearance, dispatchers",
	34: "Private investigations, detectives",
	35: "Reporting, journalism, public relations",
	36: "Meteorology",
	37: "Artists, athletes, models",
	38: "Museology",
	39: "Goldsmithing and lapidary",
	40: "Commissioned works of art",
}

// LegalCodeGroup is a group of the legal service list present in a catalog.
type LegalCodeGroup struct {
	Number      string `json:"number"`
	Description string `json:"description"`
	Display     string `json:"display"`
}

// SubCategoriesOf returns the sorted, unique non-empty sub-categories of the
// items in category.
func SubCategoriesOf(items []domain.ServiceItem, category string) []string {
	set := make(map[string]struct{})
	for i := range items {
		if items[i].PrimaryCategory == category && items[i].SubCategory != "" {
			set[items[i].SubCategory] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// AvailableLegalCodeGroups lists the groups that occur in items, in numeric
// order. Groups missing from the statutory table are described as "Group N".
func AvailableLegalCodeGroups(items []domain.ServiceItem) []LegalCodeGroup {
	seen := make(map[int]string)
	for i := range items {
		if items[i].Code == "" {
			continue
		}
		g := items[i].Group()
		n, err := strconv.Atoi(g)
		if err != nil {
			continue
		}
		if _, ok := seen[n]; !ok {
			seen[n] = g
		}
	}
	nums := make([]int, 0, len(seen))
	for n := range seen {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	out := make([]LegalCodeGroup, 0, len(nums))
	for _, n := range nums {
		desc, ok := legalCodeGroups[n]
		if !ok {
			desc = "Group " + seen[n]
		}
		out = append(out, LegalCodeGroup{
			Number:      seen[n],
			Description: desc,
			Display:     seen[n] + " - " + desc,
		})
	}
	return out
}

// FacetCounts tallies the filter dimensions of a result set. Group counts
// are per item; every other count is per harmonized entry (or per
// classification for families).
type FacetCounts struct {
	Families           map[string]int `json:"families"`
	LegalCodeGroups    map[string]int `json:"legal_code_groups"`
	TaxIncidencePlaces map[string]int `json:"tax_incidence_places"`
	OnerousProvision   map[string]int `json:"onerous_provision"`
	ForeignAcquisition map[string]int `json:"foreign_acquisition"`
}

// FacetCounts counts items by filter dimension.
func (e *Engine) FacetCounts(items []domain.ServiceItem) FacetCounts {
	fc := FacetCounts{
		Families:           map[string]int{},
		LegalCodeGroups:    map[string]int{},
		TaxIncidencePlaces: map[string]int{},
		OnerousProvision:   map[string]int{domain.FlagYes: 0, domain.FlagNo: 0},
		ForeignAcquisition: map[string]int{domain.FlagYes: 0, domain.FlagNo: 0},
	}
	for i := range items {
		it := &items[i]
		if it.Code != "" {
			fc.LegalCodeGroups[it.Group()]++
		}
		for _, h := range it.HarmonizedEntries {
			if _, ok := fc.OnerousProvision[h.IsOnerousProvision]; ok {
				fc.OnerousProvision[h.IsOnerousProvision]++
			}
			if _, ok := fc.ForeignAcquisition[h.IsForeignAcquisition]; ok {
				fc.ForeignAcquisition[h.IsForeignAcquisition]++
			}
			if h.TaxIncidencePlace != "" {
				fc.TaxIncidencePlaces[h.TaxIncidencePlace]++
			}
			for _, tc := range h.TaxClassifications {
				fc.Families[e.advisor.Describe(tc.Code).Category]++
			}
		}
	}
	return fc
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
