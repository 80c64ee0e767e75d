package search

import "regexp"

// CodeKind is the kind of code a query looks like.
type CodeKind int

const (
	CodeNone CodeKind = iota
	CodeLegal
	CodeHarmonized
	CodePartial
)

func (k CodeKind) String() string {
	switch k {
	case CodeLegal:
		return "legal"
	case CodeHarmonized:
		return "harmonized"
	case CodePartial:
		return "partial"
	default:
		return ""
	}
}

var (
	legalCodeRE      = regexp.MustCompile(`^\d{1,2}\.\d{2}$`)
	harmonizedCodeRE = regexp.MustCompile(`^\d\.\d{4}\.\d{2}\.\d{2}$`)
)

// ClassifyCode reports whether query should be treated as a code lookup and,
// if so, which kind of code it resembles. Rules are checked in order: a full
// legal code, a full harmonized code, then any run of digits and periods at
// least two bytes long.
func ClassifyCode(query string) (bool, CodeKind) {
	q := Normalize(query)
	switch {
	case legalCodeRE.MatchString(q):
		return true, CodeLegal
	case harmonizedCodeRE.MatchString(q):
		return true, CodeHarmonized
	case len(q) >= 2 && isCodeLike(q):
		return true, CodePartial
	}
	return false, CodeNone
}
