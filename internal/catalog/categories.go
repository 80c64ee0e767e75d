package catalog

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tbourn/go-taxcode-search/internal/domain"
)

// OtherCategory is always listed last.
const OtherCategory = "16. OUTROS SERVIÇOS"

const (
	fallbackCategoryIcon  = "📋"
	fallbackCategoryColor = "#757575"
)

type categoryStyle struct {
	icon  string
	color string
}

// The fixed top-level categories assigned by the source spreadsheet.
var categoryStyles = map[string]categoryStyle{
	"1. SERVIÇOS FINANCEIROS E BANCÁRIOS":   {"💼", "#95a5a6"},
	"2. SERVIÇOS DE SAÚDE HUMANA":           {"🏥", "#27ae60"},
	"3. SERVIÇOS JURÍDICOS E CONTÁBEIS":     {"⚖️", "#9b59b6"},
	"4. ENGENHARIA E CONSTRUÇÃO CIVIL":      {"🏗️", "#f39c12"},
	"5. TECNOLOGIA DA INFORMAÇÃO":           {"💻", "#3498db"},
	"6. CONSULTORIA E ASSESSORIA":           {"💡", "#1abc9c"},
	"7. TRANSPORTE E LOGÍSTICA":             {"🚚", "#34495e"},
	"8. EDUCAÇÃO E TREINAMENTO":             {"📚", "#e74c3c"},
	"9. COMUNICAÇÃO, PUBLICIDADE E EVENTOS": {"📢", "#e91e63"},
	"10. ENTRETENIMENTO E LAZER":            {"🎭", "#9c27b0"},
	"11. BELEZA E ESTÉTICA":                 {"✨", "#ff5722"},
	"12. LIMPEZA E CONSERVAÇÃO":             {"🧹", "#00bcd4"},
	"13. SEGURANÇA":                         {"🔒", "#607d8b"},
	"14. MANUTENÇÃO E REPARAÇÃO":            {"🔧", "#8bc34a"},
	"15. RECURSOS HUMANOS":                  {"👥", "#4caf50"},
	OtherCategory:                           {"🎯", "#795548"},
}

// Category is one tile of the category grid.
type Category struct {
	Key     string `json:"key"` // value stored on items, e.g. "5. TECNOLOGIA DA INFORMAÇÃO"
	Number  int    `json:"number"`
	Name    string `json:"name"` // display form, e.g. "Tecnologia da Informação"
	Icon    string `json:"icon"`
	Color   string `json:"color"`
	Items   int    `json:"items"`
	Entries int    `json:"entries"` // harmonized entries under the category
}

// Categories returns the fixed categories plus any unknown category found on
// items, ordered by their number with OtherCategory last. Counts are taken
// from items; categories with no items are still listed.
func Categories(items []domain.ServiceItem) []Category {
	byKey := make(map[string]*Category, len(categoryStyles))
	for key := range categoryStyles {
		byKey[key] = newCategory(key)
	}
	for i := range items {
		key := items[i].PrimaryCategory
		if key == "" {
			continue
		}
		c, ok := byKey[key]
		if !ok {
			c = newCategory(key)
			byKey[key] = c
		}
		c.Items++
		c.Entries += len(items[i].HarmonizedEntries)
	}

	out := make([]Category, 0, len(byKey))
	for _, c := range byKey {
		out = append(out, *c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.Key == OtherCategory) != (b.Key == OtherCategory) {
			return b.Key == OtherCategory
		}
		if a.Number != b.Number {
			return a.Number < b.Number
		}
		return a.Key < b.Key
	})
	return out
}

// SubCategoryCounts counts harmonized entries per sub-category within one
// primary category.
func SubCategoryCounts(items []domain.ServiceItem, category string) map[string]int {
	out := map[string]int{}
	for i := range items {
		it := &items[i]
		if it.PrimaryCategory != category || it.SubCategory == "" {
			continue
		}
		out[it.SubCategory] += len(it.HarmonizedEntries)
	}
	return out
}

func newCategory(key string) *Category {
	style, ok := categoryStyles[key]
	if !ok {
		style = categoryStyle{fallbackCategoryIcon, fallbackCategoryColor}
	}
	num, name := splitCategoryKey(key)
	return &Category{
		Key:    key,
		Number: num,
		Name:   DisplayName(name),
		Icon:   style.icon,
		Color:  style.color,
	}
}

// splitCategoryKey splits "5. TECNOLOGIA" into 5 and "TECNOLOGIA". Keys
// without a numeric prefix get number 0.
func splitCategoryKey(key string) (int, string) {
	head, rest, ok := strings.Cut(key, ". ")
	if !ok {
		return 0, key
	}
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, key
	}
	return n, rest
}

// Portuguese articles and conjunctions stay lowercase inside a title.
var minorWords = map[string]bool{
	"a": true, "o": true, "e": true, "da": true, "de": true, "do": true,
	"das": true, "dos": true, "em": true, "na": true, "no": true,
}

// DisplayName title-cases an upper-case category label:
// "TECNOLOGIA DA INFORMAÇÃO" becomes "Tecnologia da Informação".
func DisplayName(label string) string {
	title := cases.Title(language.BrazilianPortuguese)
	lower := cases.Lower(language.BrazilianPortuguese)
	words := strings.Fields(label)
	for i, w := range words {
		lw := lower.String(w)
		if i > 0 && minorWords[lw] {
			words[i] = lw
			continue
		}
		words[i] = title.String(w)
	}
	return strings.Join(words, " ")
}
