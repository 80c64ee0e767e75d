package search

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tbourn/go-taxcode-search/internal/domain"
)

// Base scores. Primary fields are the configured item fields; harmonized
// scores apply to the entries nested under an item.
const (
	scorePrefix          = 100.0
	scoreSubstring       = 80.0
	scoreOriginalBonus   = 20.0
	scoreExact           = 100.0
	scoreFuzzyBonus      = 10.0
	scorePattern         = 80.0
	scorePatternFallback = 70.0

	scoreHarmonizedText  = 60.0
	scoreHarmonizedBonus = 10.0
	scoreHarmonizedCode  = 90.0
	harmonizedFuzzyScale = 0.7
)

// rule scores one item against every term. The item score is the maximum
// over all rules.
type rule func(s *scorer, it *domain.ServiceItem) float64

var rules = []rule{
	(*scorer).primaryFields,
	(*scorer).harmonizedEntries,
}

// term is a query term prepared for the active mode.
type term struct {
	text     string
	original bool
	re       *regexp.Regexp // pattern mode; nil when malformed
}

type scorer struct {
	mode      Mode
	terms     []term
	fields    []Field
	threshold float64
}

func newScorer(mode Mode, terms []string, original string, cfg config) *scorer {
	s := &scorer{
		mode:      mode,
		fields:    cfg.fields,
		threshold: cfg.fuzzyThreshold,
		terms:     make([]term, 0, len(terms)),
	}
	for _, t := range terms {
		if t == "" {
			continue
		}
		s.terms = append(s.terms, term{text: t, original: t == original})
	}
	return s
}

// withPattern compiles every term as a case-insensitive expression. The
// original query keeps its metacharacters (only case and diacritics are
// folded); expansion terms are literal words.
func (s *scorer) withPattern(rawQuery string) *scorer {
	for i := range s.terms {
		src := s.terms[i].text
		if s.terms[i].original {
			src = foldPattern(rawQuery)
		}
		if re, err := regexp.Compile("(?i)" + src); err == nil {
			s.terms[i].re = re
		}
	}
	return s
}

func (s *scorer) score(it *domain.ServiceItem) float64 {
	best := 0.0
	for _, r := range rules {
		if v := r(s, it); v > best {
			best = v
		}
	}
	return best
}

func (s *scorer) primaryFields(it *domain.ServiceItem) float64 {
	best := 0.0
	for _, f := range s.fields {
		raw := f.value(it)
		if raw == "" {
			continue
		}
		value := Normalize(raw)
		for i := range s.terms {
			if v := s.matchPrimary(&s.terms[i], value); v > best {
				best = v
			}
		}
	}
	return best
}

func (s *scorer) matchPrimary(t *term, value string) float64 {
	switch s.mode {
	case ModeExact:
		if value == t.text {
			return scoreExact
		}
	case ModeFuzzy:
		if r := partialRatio(t.text, value); r >= s.threshold && r > 0 {
			if t.original {
				r += scoreFuzzyBonus
			}
			return r
		}
	case ModePattern:
		if t.re != nil {
			if t.re.MatchString(value) {
				return scorePattern
			}
			return 0
		}
		if t.text != "" && strings.Contains(value, t.text) {
			return scorePatternFallback
		}
	default:
		if !strings.Contains(value, t.text) {
			return 0
		}
		v := scoreSubstring
		if strings.HasPrefix(value, t.text) {
			v = scorePrefix
		}
		if t.original {
			v += scoreOriginalBonus
		}
		return v
	}
	return 0
}

func (s *scorer) harmonizedEntries(it *domain.ServiceItem) float64 {
	best := 0.0
	for hi := range it.HarmonizedEntries {
		h := &it.HarmonizedEntries[hi]
		desc := Normalize(h.Description)
		code := Normalize(h.NBSCode)
		for i := range s.terms {
			t := &s.terms[i]
			if t.text != "" && code != "" && strings.Contains(code, t.text) {
				best = max(best, scoreHarmonizedCode)
			}
			if desc != "" {
				best = max(best, s.matchHarmonizedText(t, desc))
			}
		}
	}
	return best
}

func (s *scorer) matchHarmonizedText(t *term, desc string) float64 {
	hit := false
	switch s.mode {
	case ModeFuzzy:
		if r := partialRatio(t.text, desc); r >= s.threshold && r > 0 {
			return r * harmonizedFuzzyScale
		}
		return 0
	case ModeExact:
		hit = desc == t.text
	case ModePattern:
		if t.re != nil {
			hit = t.re.MatchString(desc)
		} else {
			hit = strings.Contains(desc, t.text)
		}
	default:
		hit = strings.Contains(desc, t.text)
	}
	if !hit {
		return 0
	}
	if t.original {
		return scoreHarmonizedText + scoreHarmonizedBonus
	}
	return scoreHarmonizedText
}

// foldPattern strips diacritics from s and leaves every other rune in place.
// Case is kept because escapes such as \D and \S differ from \d and \s;
// the compiled expression is case-insensitive instead.
func foldPattern(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		return s
	}
	return out
}
