package search

import (
	"github.com/tbourn/go-taxcode-search/internal/domain"
)

const (
	catIT     = "5. TECNOLOGIA DA INFORMAÇÃO"
	catHealth = "3. SAÚDE"
)

func entry(code, desc, onerous, foreign, place string, classes ...domain.TaxClassification) domain.HarmonizedEntry {
	return domain.HarmonizedEntry{
		NBSCode:              code,
		Description:          desc,
		IsOnerousProvision:   onerous,
		IsForeignAcquisition: foreign,
		TaxIncidencePlace:    place,
		TaxClassifications:   classes,
	}
}

func class(code, name string) domain.TaxClassification {
	return domain.TaxClassification{Code: code, Name: name}
}

// fixtureItems is a small catalog shaped like the real one.
func fixtureItems() []domain.ServiceItem {
	return []domain.ServiceItem{
		{
			Code:            "1.01",
			Description:     "Análise e desenvolvimento de sistemas.",
			PrimaryCategory: catIT,
			SubCategory:     "Desenvolvimento",
			HarmonizedEntries: []domain.HarmonizedEntry{
				entry("1.1501.10.00", "Serviços de desenvolvimento de software sob encomenda", "S", "N", "Local do prestador",
					class("000001", "Tributação integral")),
			},
		},
		{
			Code:            "1.02",
			Description:     "Programação.",
			PrimaryCategory: catIT,
			SubCategory:     "Desenvolvimento",
			HarmonizedEntries: []domain.HarmonizedEntry{
				entry("1.1502.10.00", "Licenciamento de programas de computador", "", "S", "Local do adquirente",
					class("200052", "Profissões intelectuais"), class("410001", "Exportação")),
			},
		},
		{
			Code:            "4.01",
			Description:     "Medicina e biomedicina.",
			PrimaryCategory: catHealth,
			SubCategory:     "Medicina",
			HarmonizedEntries: []domain.HarmonizedEntry{
				entry("1.2301.11.00", "Serviços médicos hospitalares", "S", "N", "Local do prestador",
					class("200029", "Saúde humana")),
			},
		},
		{
			Code:            "17.01",
			Description:     "Assessoria ou consultoria de qualquer natureza",
			PrimaryCategory: "7. CONSULTORIA",
		},
		{
			Code:            "1.03",
			Description:     "Desenvolvimento de programas de computador",
			PrimaryCategory: catIT,
			SubCategory:     "Software",
			HarmonizedEntries: []domain.HarmonizedEntry{
				entry("1.1501.20.00", "Outros serviços", "N", "", "",
					class("999999", "Desconhecida")),
			},
		},
	}
}

func codesOf(items []domain.ServiceItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Code
	}
	return out
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
