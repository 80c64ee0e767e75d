// Package search implements the lookup engine over the service catalog:
// text normalization, synonym expansion, code detection, relevance scoring,
// filtering, autocomplete, classification lookup and highlighting.
//
//   - No logging and no I/O in the library (callers decide how/what to log)
//   - Functional options (Option pattern) for every tunable
//   - Immutable after construction (an *Engine is safe for concurrent use)
//   - Deterministic: ties keep input order (stable sorts everywhere)
//
// Items are passed in by the caller on every call; the engine never retains
// or mutates them.
package search

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tbourn/go-taxcode-search/internal/domain"
)

// Mode selects how query terms are compared with item text.
type Mode string

const (
	ModeContains Mode = "contains"
	ModeExact    Mode = "exact"
	ModeFuzzy    Mode = "fuzzy"
	ModePattern  Mode = "pattern"
)

// ParseMode maps user input to a Mode. The empty string selects
// ModeContains; "regex" is accepted for ModePattern.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "contains":
		return ModeContains, nil
	case "exact":
		return ModeExact, nil
	case "fuzzy":
		return ModeFuzzy, nil
	case "pattern", "regex":
		return ModePattern, nil
	}
	return "", fmt.Errorf("unknown search mode %q", s)
}

// Field is an item text field eligible for primary scoring.
type Field int

const (
	FieldDescription Field = iota
	FieldLegalCode
)

func (f Field) value(it *domain.ServiceItem) string {
	switch f {
	case FieldDescription:
		return it.Description
	case FieldLegalCode:
		return it.Code
	}
	return ""
}

// ----------------------------------------------------------------------------
// Options

type Option func(*config)

type config struct {
	minSearchLength int
	fuzzyThreshold  float64
	maxSuggestions  int
	synonyms        []SynonymGroup
	fields          []Field
	table           *ClassificationTable
}

func defaultConfig() config {
	return config{
		minSearchLength: 2,
		fuzzyThreshold:  65,
		maxSuggestions:  8,
		synonyms:        DefaultSynonyms(),
		fields:          []Field{FieldDescription, FieldLegalCode},
	}
}

// WithMinSearchLength sets the shortest query (in characters) that is searched.
func WithMinSearchLength(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.minSearchLength = n
		}
	}
}

// WithFuzzyThreshold sets the minimum partial ratio, in [0,100], that counts
// as a fuzzy match.
func WithFuzzyThreshold(t float64) Option {
	return func(c *config) {
		if t >= 0 && t <= 100 {
			c.fuzzyThreshold = t
		}
	}
}

// WithMaxSuggestions sets the default autocomplete cap.
func WithMaxSuggestions(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxSuggestions = n
		}
	}
}

// WithSynonyms replaces the synonym table. A nil slice disables expansion.
func WithSynonyms(groups []SynonymGroup) Option {
	return func(c *config) { c.synonyms = groups }
}

// WithSearchFields sets the item fields scored as primary text.
func WithSearchFields(fields ...Field) Option {
	return func(c *config) {
		if len(fields) > 0 {
			c.fields = append([]Field(nil), fields...)
		}
	}
}

// WithClassificationTable replaces the advisor tables.
func WithClassificationTable(t ClassificationTable) Option {
	return func(c *config) { c.table = &t }
}

// ----------------------------------------------------------------------------
// Engine

// Engine is the configured, immutable search engine.
type Engine struct {
	cfg      config
	synonyms *SynonymIndex
	advisor  *Advisor
}

// New builds an Engine. Without options it uses the built-in synonym and
// classification tables, a minimum query length of 2, a fuzzy threshold of 65
// and at most 8 suggestions.
func New(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	table := DefaultClassificationTable()
	if cfg.table != nil {
		table = *cfg.table
	}
	return &Engine{
		cfg:      cfg,
		synonyms: NewSynonymIndex(cfg.synonyms),
		advisor:  NewAdvisor(table),
	}
}

// Advisor returns the engine's classification advisor.
func (e *Engine) Advisor() *Advisor { return e.advisor }

// Synonyms returns the engine's synonym index.
func (e *Engine) Synonyms() *SynonymIndex { return e.synonyms }

// MinSearchLength returns the configured minimum query length.
func (e *Engine) MinSearchLength() int { return e.cfg.minSearchLength }

// FuzzyThreshold returns the configured fuzzy threshold.
func (e *Engine) FuzzyThreshold() float64 { return e.cfg.fuzzyThreshold }

// MaxSuggestions returns the default autocomplete cap.
func (e *Engine) MaxSuggestions() int { return e.cfg.maxSuggestions }

// Hit is a matched item with its relevance score.
type Hit struct {
	Item  domain.ServiceItem
	Score float64
}

// QueryPlan describes how a query is going to be executed.
type QueryPlan struct {
	Query      string   `json:"query"`
	Normalized string   `json:"normalized"`
	Skipped    bool     `json:"skipped"` // too short: items pass through
	IsCode     bool     `json:"is_code"`
	CodeKind   string   `json:"code_kind,omitempty"`
	Mode       Mode     `json:"mode"`
	Terms      []string `json:"terms,omitempty"`
}

// Analyze reports the execution plan for query without touching any item.
func (e *Engine) Analyze(query string, mode Mode, useSynonyms bool) QueryPlan {
	p := QueryPlan{Query: query, Normalized: Normalize(query), Mode: mode}
	if e.tooShort(query) {
		p.Skipped = true
		return p
	}
	if ok, kind := ClassifyCode(query); ok {
		p.IsCode, p.CodeKind = true, kind.String()
		return p
	}
	p.Terms = e.terms(query, mode, useSynonyms)
	return p
}

// tooShort reports whether q has fewer characters than the configured minimum.
func (e *Engine) tooShort(q string) bool {
	return q == "" || utf8.RuneCountInString(q) < e.cfg.minSearchLength
}

func (e *Engine) terms(query string, mode Mode, useSynonyms bool) []string {
	if useSynonyms && mode != ModeExact {
		return e.synonyms.Expand(query)
	}
	return []string{Normalize(query)}
}

// Search returns the items matching query, most relevant first. Queries
// shorter than the configured minimum return items unchanged. Code-like
// queries return code matches in input order.
func (e *Engine) Search(items []domain.ServiceItem, query string, mode Mode, useSynonyms bool) []domain.ServiceItem {
	if e.tooShort(query) {
		return items
	}
	hits := e.SearchHits(items, query, mode, useSynonyms)
	out := make([]domain.ServiceItem, len(hits))
	for i, h := range hits {
		out[i] = h.Item
	}
	return out
}

// SearchHits is Search with scores. Pass-through and code results carry a
// score of 100.
func (e *Engine) SearchHits(items []domain.ServiceItem, query string, mode Mode, useSynonyms bool) []Hit {
	if e.tooShort(query) {
		return passThrough(items)
	}
	if ok, _ := ClassifyCode(query); ok {
		return e.searchByCode(items, Normalize(query))
	}

	sc := newScorer(mode, e.terms(query, mode, useSynonyms), Normalize(query), e.cfg)
	if mode == ModePattern {
		sc.withPattern(query)
	}
	if len(sc.terms) == 0 {
		return []Hit{}
	}
	hits := make([]Hit, 0, len(items))
	for i := range items {
		if s := sc.score(&items[i]); s > 0 {
			hits = append(hits, Hit{Item: items[i], Score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	return hits
}

func passThrough(items []domain.ServiceItem) []Hit {
	hits := make([]Hit, len(items))
	for i := range items {
		hits[i] = Hit{Item: items[i], Score: 100}
	}
	return hits
}

func (e *Engine) searchByCode(items []domain.ServiceItem, q string) []Hit {
	hits := make([]Hit, 0)
	for i := range items {
		if codeMatches(&items[i], q) {
			hits = append(hits, Hit{Item: items[i], Score: 100})
		}
	}
	return hits
}

func codeMatches(it *domain.ServiceItem, q string) bool {
	code := Normalize(it.Code)
	if strings.HasPrefix(code, q) || strings.Contains(code, q) {
		return true
	}
	for _, h := range it.HarmonizedEntries {
		if strings.Contains(Normalize(h.NBSCode), q) {
			return true
		}
	}
	return false
}
