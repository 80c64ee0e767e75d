package utils

import (
	"math"
	"testing"
)

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		s    string
		def  int
		want int
	}{
		// empty -> default
		{"", 10, 10},
		// valid ints
		{"42", 0, 42},
		{"-13", 1, -13},
		{"0012", 99, 12},
		// invalid -> default (no trim)
		{"x", 5, 5},
		{" 42", 7, 7},
		// overflow -> default
		{"999999999999999999999999", -1, -1},
	}

	for _, tc := range cases {
		if got := AtoiDefault(tc.s, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d; want %d", tc.s, tc.def, got, tc.want)
		}
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	got, p := Paginate(items, 2, 2, 50, 100)
	if len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Fatalf("page 2 = %v", got)
	}
	if p != (Page{Page: 2, PageSize: 2, Total: 5, Pages: 3}) {
		t.Fatalf("meta = %+v", p)
	}

	got, _ = Paginate(items, 3, 2, 50, 100)
	if len(got) != 1 || got[0] != 5 {
		t.Fatalf("last partial page = %v", got)
	}

	got, p = Paginate(items, 9, 2, 50, 100)
	if got == nil || len(got) != 0 || p.Pages != 3 {
		t.Fatalf("page past the end = %v %+v", got, p)
	}

	// defaults and caps
	_, p = Paginate(items, 0, 0, 3, 100)
	if p.Page != 1 || p.PageSize != 3 {
		t.Fatalf("defaults not applied: %+v", p)
	}
	_, p = Paginate(items, 1, 500, 3, 100)
	if p.PageSize != 100 {
		t.Fatalf("cap not applied: %+v", p)
	}

	gotEmpty, p := Paginate([]string{}, 1, 10, 10, 0)
	if len(gotEmpty) != 0 || p.Total != 0 || p.Pages != 0 {
		t.Fatalf("empty input = %v %+v", gotEmpty, p)
	}
}

func TestPaginate_HugeValues(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	got, p := Paginate(items, 461168601842738792, 20, 50, 100)
	if got == nil || len(got) != 0 || p.Pages != 1 || p.Page != 461168601842738792 {
		t.Fatalf("huge page = %v %+v", got, p)
	}

	got, _ = Paginate(items, math.MaxInt, math.MaxInt, 50, 0)
	if len(got) != 0 {
		t.Fatalf("max page and size = %v", got)
	}

	got, p = Paginate(items, 1, math.MaxInt, 50, 0)
	if len(got) != 5 || p.Pages != 1 {
		t.Fatalf("uncapped size = %v %+v", got, p)
	}
}
