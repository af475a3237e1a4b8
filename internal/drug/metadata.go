package drug

import (
	"strings"

	"github.com/jjtimmons/biohack/internal/table"
)

// NotAvailable is shown for metadata the table doesn't have.
const NotAvailable = "N/A"

// Metadata describes how a genuine drug looks and where it comes from.
type Metadata struct {
	DrugName     string
	DosageForms  string
	Appearance   string
	Color        string
	Manufacturer string
	Packaging    string
	Batch        string
}

// Fields returns the metadata as label/value pairs, in display order.
func (m Metadata) Fields() [][2]string {
	return [][2]string{
		{"Dosage Forms", m.DosageForms},
		{"Physical Appearance", m.Appearance},
		{"Color", m.Color},
		{"Manufacturer", m.Manufacturer},
		{"Packaging", m.Packaging},
		{"Batch Info", m.Batch},
	}
}

// MetadataIndex finds the metadata of a drug by its name.
type MetadataIndex struct {
	entries []Metadata
}

// LoadMetadata reads a metadata table. Only the drug name column is
// required, other missing columns read as N/A. encoding is the WHATWG
// label of the file's encoding, ex "cp1252", or empty for UTF-8.
func LoadMetadata(path, encoding string) (*MetadataIndex, error) {
	t, err := table.Read(path, table.Options{Encoding: encoding})
	if err != nil {
		return nil, err
	}
	return MetadataFromTable(t)
}

// MetadataFromTable converts the rows of a table to a MetadataIndex.
func MetadataFromTable(t *table.Table) (*MetadataIndex, error) {
	if err := t.Require(colName); err != nil {
		return nil, err
	}

	get := func(r table.Record, col string) string {
		if v := r.Get(col); v != "" {
			return v
		}
		return NotAvailable
	}

	idx := &MetadataIndex{}
	for _, r := range t.Records() {
		idx.entries = append(idx.entries, Metadata{
			DrugName:     r.Get(colName),
			DosageForms:  get(r, "dosage_forms"),
			Appearance:   get(r, "physical_appearance"),
			Color:        get(r, "color"),
			Manufacturer: get(r, "manufacturer"),
			Packaging:    get(r, "packaging"),
			Batch:        get(r, "batch_numbers"),
		})
	}
	return idx, nil
}

// Find returns the first metadata entry for a drug name, case-insensitive.
func (m *MetadataIndex) Find(name string) (Metadata, bool) {
	if m == nil {
		return Metadata{}, false
	}

	name = strings.TrimSpace(name)
	for _, e := range m.entries {
		if strings.EqualFold(e.DrugName, name) {
			return e, true
		}
	}
	return Metadata{}, false
}
