package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tbourn/go-taxcode-search/internal/domain"
)

// Suggestion kinds.
const (
	KindLegalCode      = "legal_code"
	KindService        = "service"
	KindHarmonizedCode = "harmonized_code"
)

// Suggestion is one autocomplete entry.
type Suggestion struct {
	Text  string  `json:"text"`
	Kind  string  `json:"kind"`
	Code  string  `json:"code"`
	Score float64 `json:"score"`
}

// Suggest returns at most limit suggestions for a partial query, best first.
// Each legal code, service description and harmonized code is suggested at
// most once. limit <= 0 selects the engine default.
func (e *Engine) Suggest(items []domain.ServiceItem, partial string, limit int) []Suggestion {
	if e.tooShort(partial) {
		return []Suggestion{}
	}
	if limit <= 0 {
		limit = e.cfg.maxSuggestions
	}
	q := Normalize(partial)
	if q == "" {
		return []Suggestion{}
	}
	looksLikeCode, _ := ClassifyCode(partial)

	out := make([]Suggestion, 0, limit)
	seen := make(map[string]struct{})
	add := func(s Suggestion) {
		key := s.Kind + "\x00" + s.Code
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}

	for i := range items {
		it := &items[i]
		if it.Code != "" && strings.HasPrefix(Normalize(it.Code), q) {
			add(Suggestion{
				Text:  it.Code + " - " + clipRunes(it.Description, 50),
				Kind:  KindLegalCode,
				Code:  it.Code,
				Score: pick(looksLikeCode, 100, 80),
			})
		}
		if desc := Normalize(it.Description); strings.Contains(desc, q) {
			add(Suggestion{
				Text:  clipRunes(it.Description, 60) + "... (" + it.Code + ")",
				Kind:  KindService,
				Code:  it.Code,
				Score: pick(strings.HasPrefix(desc, q), 90, 70),
			})
		}
		for _, h := range it.HarmonizedEntries {
			if h.NBSCode != "" && strings.HasPrefix(Normalize(h.NBSCode), q) {
				add(Suggestion{
					Text:  h.NBSCode + " - " + clipRunes(h.Description, 40),
					Kind:  KindHarmonizedCode,
					Code:  h.NBSCode,
					Score: pick(looksLikeCode, 95, 75),
				})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func pick(cond bool, yes, no float64) float64 {
	if cond {
		return yes
	}
	return no
}

// clipRunes returns the first n runes of s.
func clipRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
