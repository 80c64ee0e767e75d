// Package domain defines the catalog models: legal service items, the
// harmonized (NBS) entries correlated with each item, and the tax
// classifications attached to each entry. These types are mapped with GORM
// and are treated as immutable once a catalog has been loaded.
package domain

import (
	"time"
)

// Yes/no flag values used by the source catalog.
const (
	FlagYes = "S"
	FlagNo  = "N"
)

// ServiceItem is one entry of the legal service list (LC116). It is the unit
// returned by search and filtering.
//
// Fields:
//   - Code: dotted numeric legal code ("1.01", "17.12"), unique.
//   - Description: statutory description of the service.
//   - PrimaryCategory: one of the fixed display categories, may be empty.
//   - SubCategory: free-form refinement within the primary category.
//   - HarmonizedEntries: correlated NBS entries in source order.
type ServiceItem struct {
	Code              string            `json:"code"               gorm:"type:varchar(16);primaryKey"`
	Description       string            `json:"description"        gorm:"type:text;not null"`
	PrimaryCategory   string            `json:"primary_category"   gorm:"type:varchar(128);index:idx_items_category"`
	SubCategory       string            `json:"sub_category"       gorm:"type:varchar(255)"`
	Position          int               `json:"-"                  gorm:"not null;index"`
	HarmonizedEntries []HarmonizedEntry `json:"harmonized_entries" gorm:"foreignKey:ServiceCode;references:Code;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt         time.Time         `json:"-"`
	UpdatedAt         time.Time         `json:"-"`
}

// TableName returns the database table name for ServiceItem.
func (ServiceItem) TableName() string { return "service_items" }

// Group returns the legal-code group: the text before the first '.'.
func (it ServiceItem) Group() string {
	for i := 0; i < len(it.Code); i++ {
		if it.Code[i] == '.' {
			return it.Code[:i]
		}
	}
	return it.Code
}

// HarmonizedEntry is an NBS code correlated with a service item, together
// with the tax attributes of that correlation.
type HarmonizedEntry struct {
	ID                   uint                `json:"-"                      gorm:"primaryKey;autoIncrement"`
	ServiceCode          string              `json:"-"                      gorm:"type:varchar(16);not null;index:idx_entries_item,priority:1"`
	Position             int                 `json:"-"                      gorm:"not null;index:idx_entries_item,priority:2"`
	NBSCode              string              `json:"nbs_code"               gorm:"type:varchar(32);not null;index"`
	Description          string              `json:"description"            gorm:"type:text"`
	IsOnerousProvision   string              `json:"is_onerous_provision"   gorm:"type:varchar(1)"`
	IsForeignAcquisition string              `json:"is_foreign_acquisition" gorm:"type:varchar(1)"`
	OperationIndicator   string              `json:"operation_indicator"    gorm:"type:varchar(32)"`
	TaxIncidencePlace    string              `json:"tax_incidence_place"    gorm:"type:varchar(255)"`
	TaxClassifications   []TaxClassification `json:"tax_classifications"    gorm:"foreignKey:EntryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for HarmonizedEntry.
func (HarmonizedEntry) TableName() string { return "harmonized_entries" }

// PrimaryClassification returns the first classification of the entry, if any.
func (e HarmonizedEntry) PrimaryClassification() (TaxClassification, bool) {
	if len(e.TaxClassifications) == 0 {
		return TaxClassification{}, false
	}
	return e.TaxClassifications[0], true
}

// TaxClassification is a cClassTrib code attached to a harmonized entry.
// Codes are fixed-width numeric strings and repeat across entries.
type TaxClassification struct {
	ID       uint   `json:"-"    gorm:"primaryKey;autoIncrement"`
	EntryID  uint   `json:"-"    gorm:"not null;index:idx_class_entry,priority:1"`
	Position int    `json:"-"    gorm:"not null;index:idx_class_entry,priority:2"`
	Code     string `json:"code" gorm:"type:varchar(16);not null;index"`
	Name     string `json:"name" gorm:"type:text"`
}

// TableName returns the database table name for TaxClassification.
func (TaxClassification) TableName() string { return "tax_classifications" }

// Label renders the classification as "code - name", the form used by
// filter option lists.
func (c TaxClassification) Label() string {
	if c.Name == "" {
		return c.Code
	}
	return c.Code + " - " + c.Name
}

// CatalogMeta records the provenance of the imported catalog. There is at
// most one row (ID 1).
type CatalogMeta struct {
	ID         uint      `json:"-"           gorm:"primaryKey"`
	ImportID   string    `json:"import_id"   gorm:"type:char(36)"`
	Source     string    `json:"source"      gorm:"type:text"`
	Sheet      string    `json:"sheet"       gorm:"type:text"`
	Checksum   string    `json:"checksum"    gorm:"type:char(64);not null"`
	ItemCount  int       `json:"item_count"`
	ImportedAt time.Time `json:"imported_at"`
	UpdatedAt  time.Time `json:"-"`
}

// TableName returns the database table name for CatalogMeta.
func (CatalogMeta) TableName() string { return "catalog_meta" }
