package search

import "testing"

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":                     "",
		"Análise de Sistemas!": "analise de sistemas",
		"  Ação -- Crédito  ":  "acao credito",
		"1.05":                 "1.05",
		"São Paulo/SP":         "sao paulo sp",
		"PROGRAMAÇÃO":          "programacao",
		"help\tdesk\n":         "help desk",
		"***":                  "",
		"Serviço 1.2001.01.02": "servico 1.2001.01.02",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, s := range []string{
		"Análise e desenvolvimento de sistemas.",
		"  Tele-medicina / ÇÃO  ",
		"İstanbul Ωmega ǅ",
		"1.2001.01.02 -- código",
	} {
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Fatalf("not idempotent for %q: %q then %q", s, once, twice)
		}
	}
}

func TestNormalizeMapped_OffsetsPointAtSource(t *testing.T) {
	text := "Ação, já"
	m := normalizeMapped(text)
	if m.String() != "acao ja" {
		t.Fatalf("normalized = %q", m.String())
	}
	if len(m.runes) != len(m.start) || len(m.start) != len(m.end) {
		t.Fatalf("offset tables out of sync")
	}
	// 'ç' is two bytes in the source.
	if got := text[m.start[1]:m.end[1]]; got != "ç" {
		t.Fatalf("rune 1 maps to %q; want ç", got)
	}
	// the separator maps to the comma
	if got := text[m.start[4]:m.end[4]]; got != "," {
		t.Fatalf("separator maps to %q; want ,", got)
	}
}

func TestIsCodeLike(t *testing.T) {
	if !isCodeLike("1.05") || !isCodeLike("17") {
		t.Fatalf("digits and periods should be code-like")
	}
	if isCodeLike("") || isCodeLike("1a") || isCodeLike("1 05") {
		t.Fatalf("non-code strings reported as code-like")
	}
}
