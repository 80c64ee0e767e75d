package search

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tbourn/go-taxcode-search/internal/domain"
)

// SortKey selects the order of a result list.
type SortKey string

const (
	SortRelevance      SortKey = "relevance"
	SortLegalCode      SortKey = "legal_code"
	SortHarmonizedCode SortKey = "harmonized_code"
)

// ParseSortKey maps user input to a SortKey; empty selects SortRelevance.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortRelevance, nil
	case SortRelevance, SortLegalCode, SortHarmonizedCode:
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// SortHits reorders hits in place. Relevance keeps the current order (the
// engine already ranks by score); code orders compare dotted codes
// segment by segment, numerically. Items without harmonized entries sort
// last under SortHarmonizedCode.
func SortHits(hits []Hit, key SortKey) {
	switch key {
	case SortLegalCode:
		sort.SliceStable(hits, func(i, j int) bool {
			return compareDotted(hits[i].Item.Code, hits[j].Item.Code) < 0
		})
	case SortHarmonizedCode:
		sort.SliceStable(hits, func(i, j int) bool {
			a, aok := firstHarmonizedCode(&hits[i].Item)
			b, bok := firstHarmonizedCode(&hits[j].Item)
			if aok != bok {
				return aok
			}
			return compareDotted(a, b) < 0
		})
	}
}

func firstHarmonizedCode(it *domain.ServiceItem) (string, bool) {
	if len(it.HarmonizedEntries) == 0 {
		return "", false
	}
	return it.HarmonizedEntries[0].NBSCode, true
}

// compareDotted orders "2.01" before "10.01". Non-numeric segments compare
// as strings after numeric ones.
func compareDotted(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		switch {
		case aerr == nil && berr == nil:
			if an != bn {
				if an < bn {
					return -1
				}
				return 1
			}
		case aerr == nil:
			return -1
		case berr == nil:
			return 1
		default:
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}
		}
	}
	return len(as) - len(bs)
}
