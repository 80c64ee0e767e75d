// Package catalog decodes the correlation document (LC116 items, their NBS
// entries and cClassTrib classifications) into domain models, and derives the
// lookup tables that the search layer and the HTTP surface expose: filter
// options, totals and the category grid.
//
// The package performs file I/O only in LoadFile; everything else is a pure
// function of the decoded items.
package catalog

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tbourn/go-taxcode-search/internal/domain"
)

var (
	// ErrEmptyCatalog is returned when the document carries no items.
	ErrEmptyCatalog = errors.New("catalog has no items")
	// ErrDuplicateCode is returned when two items share a legal code.
	ErrDuplicateCode = errors.New("duplicate legal code")
	// ErrMissingCode is returned when an item has a blank legal code.
	ErrMissingCode = errors.New("item without legal code")
)

// Document is a decoded catalog together with its provenance.
type Document struct {
	Source   string
	Sheet    string
	Checksum string // hex SHA-256 of the raw document
	Items    []domain.ServiceItem
}

// Meta returns the provenance row stored next to the imported items.
func (d *Document) Meta() domain.CatalogMeta {
	return domain.CatalogMeta{
		ID:        1,
		Source:    d.Source,
		Sheet:     d.Sheet,
		Checksum:  d.Checksum,
		ItemCount: len(d.Items),
	}
}

// wire format of the source JSON
type rawDocument struct {
	Source string    `json:"fonte"`
	Sheet  string    `json:"sheet"`
	Items  []rawItem `json:"itens"`
}

type rawItem struct {
	Code            string     `json:"item_lc116"`
	Description     string     `json:"descricao_item"`
	PrimaryCategory string     `json:"filtro_principal"`
	SubCategory     string     `json:"subcategoria"`
	Entries         []rawEntry `json:"nbs_entries"`
}

type rawEntry struct {
	NBSCode         string              `json:"nbs_code"`
	Description     string              `json:"descricao_nbs"`
	Onerous         string              `json:"ps_onerosa"`
	Foreign         string              `json:"adq_exterior"`
	Indop           string              `json:"indop"`
	IncidencePlace  string              `json:"local_incidencia_ibs"`
	Classifications []rawClassification `json:"cclasstrib"`
}

type rawClassification struct {
	Code string `json:"codigo"`
	Name string `json:"nome"`
}

// LoadFile reads and decodes the catalog at path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode reads a whole catalog document from r. Items keep document order;
// codes and flags are trimmed. A document without items, with a blank legal
// code, or with a repeated legal code is rejected.
func Decode(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	sum := sha256.Sum256(raw)

	var doc rawDocument
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(doc.Items) == 0 {
		return nil, ErrEmptyCatalog
	}

	items := make([]domain.ServiceItem, 0, len(doc.Items))
	seen := make(map[string]int, len(doc.Items))
	for i, ri := range doc.Items {
		code := strings.TrimSpace(ri.Code)
		if code == "" {
			return nil, fmt.Errorf("item %d: %w", i, ErrMissingCode)
		}
		if prev, dup := seen[code]; dup {
			return nil, fmt.Errorf("%w %q (items %d and %d)", ErrDuplicateCode, code, prev, i)
		}
		seen[code] = i
		items = append(items, toItem(ri, code, i))
	}

	return &Document{
		Source:   doc.Source,
		Sheet:    doc.Sheet,
		Checksum: hex.EncodeToString(sum[:]),
		Items:    items,
	}, nil
}

func toItem(ri rawItem, code string, pos int) domain.ServiceItem {
	it := domain.ServiceItem{
		Code:            code,
		Description:     ri.Description,
		PrimaryCategory: strings.TrimSpace(ri.PrimaryCategory),
		SubCategory:     strings.TrimSpace(ri.SubCategory),
		Position:        pos,
	}
	if len(ri.Entries) > 0 {
		it.HarmonizedEntries = make([]domain.HarmonizedEntry, len(ri.Entries))
	}
	for j, re := range ri.Entries {
		e := domain.HarmonizedEntry{
			ServiceCode:          code,
			Position:             j,
			NBSCode:              strings.TrimSpace(re.NBSCode),
			Description:          re.Description,
			IsOnerousProvision:   strings.ToUpper(strings.TrimSpace(re.Onerous)),
			IsForeignAcquisition: strings.ToUpper(strings.TrimSpace(re.Foreign)),
			OperationIndicator:   strings.TrimSpace(re.Indop),
			TaxIncidencePlace:    strings.TrimSpace(re.IncidencePlace),
		}
		if len(re.Classifications) > 0 {
			e.TaxClassifications = make([]domain.TaxClassification, len(re.Classifications))
		}
		for k, rc := range re.Classifications {
			e.TaxClassifications[k] = domain.TaxClassification{
				Position: k,
				Code:     strings.TrimSpace(rc.Code),
				Name:     rc.Name,
			}
		}
		it.HarmonizedEntries[j] = e
	}
	return it
}
