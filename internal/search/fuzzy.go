package search

import (
	"github.com/xrash/smetrics"
)

// ratio is the normalized indel similarity of a and b in [0,100]:
// 100 * (1 - d/(len(a)+len(b))) where d counts insertions and deletions
// (a substitution costs two).
func ratio(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	d := smetrics.WagnerFischer(a, b, 1, 1, 2)
	return 100 * (1 - float64(d)/float64(total))
}

// partialRatio scores how well the shorter string aligns with any same-length
// window of the longer one, including windows clipped at either edge. An
// empty argument scores 0.
func partialRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	needle := string(short)
	n, m := len(short), len(long)

	best := 0.0
	consider := func(window []rune) bool {
		if r := ratio(needle, string(window)); r > best {
			best = r
		}
		return best >= 100
	}

	for i := 0; i+n <= m; i++ {
		if consider(long[i : i+n]) {
			return 100
		}
	}
	for k := 1; k < n && k <= m; k++ {
		if consider(long[:k]) || consider(long[m-k:]) {
			return 100
		}
	}
	return best
}
