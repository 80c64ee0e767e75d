package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/unicode/norm"
)

// nonSpacingMarks matches the combining marks left behind by canonical
// decomposition (acute, tilde, cedilla, ...).
var nonSpacingMarks = runes.In(unicode.Mn)

// Normalize folds text into the canonical comparison form used by every
// matcher: lowercase, diacritics removed, anything other than letters, digits
// and '.' treated as a separator, separator runs collapsed to one space, and
// surrounding space trimmed. Normalize is total and idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return fold(text, nil).String()
}

// mapped is the normalized form of a text plus, for every normalized rune,
// the byte span in the source text that produced it.
type mapped struct {
	runes []rune
	start []int
	end   []int
}

func (m *mapped) String() string { return string(m.runes) }

// normalizeMapped is Normalize with an offset table back into text.
func normalizeMapped(text string) *mapped {
	m := &mapped{}
	fold(text, m)
	return m
}

// folded accumulates normalized output; m may be nil when offsets are not
// needed.
type folded struct {
	b        strings.Builder
	m        *mapped
	pendingS int
	pendingE int
	pending  bool
	wrote    bool
}

func (f *folded) String() string { return f.b.String() }

func (f *folded) emit(r rune, start, end int) {
	if f.pending && f.wrote {
		f.b.WriteByte(' ')
		if f.m != nil {
			f.m.runes = append(f.m.runes, ' ')
			f.m.start = append(f.m.start, f.pendingS)
			f.m.end = append(f.m.end, f.pendingE)
		}
	}
	f.pending = false
	f.wrote = true
	f.b.WriteRune(r)
	if f.m != nil {
		f.m.runes = append(f.m.runes, r)
		f.m.start = append(f.m.start, start)
		f.m.end = append(f.m.end, end)
	}
}

func (f *folded) separator(start, end int) {
	if !f.pending {
		f.pendingS, f.pendingE = start, end
		f.pending = true
	}
}

func fold(text string, m *mapped) *folded {
	f := &folded{m: m}
	f.b.Grow(len(text))
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		start, end := i, i+size
		i = end

		if r < utf8.RuneSelf {
			foldRune(f, unicode.ToLower(r), start, end)
			continue
		}
		for _, d := range norm.NFD.String(string(r)) {
			if nonSpacingMarks.Contains(d) {
				continue
			}
			foldRune(f, unicode.ToLower(d), start, end)
		}
	}
	return f
}

func foldRune(f *folded, r rune, start, end int) {
	switch {
	case r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r):
		f.emit(r, start, end)
	default:
		f.separator(start, end)
	}
}

// isCodeLike reports whether s consists only of digits and periods.
func isCodeLike(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '.' && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
