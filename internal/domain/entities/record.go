// Package entities contains the Names Registry record types.
package entities

import "time"

// Kind identifies a record model. The string value is what gets stored in
// the revisions table and used to name search indices.
type Kind string

const (
	KindPerson         Kind = "person"
	KindFarRecord      Kind = "farrecord"
	KindWraRecord      Kind = "wrarecord"
	KindIreiRecord     Kind = "ireirecord"
	KindFacility       Kind = "facility"
	KindPersonFacility Kind = "personfacility"
)

// Kinds lists every loadable model, in the order they appear in CLI help.
var Kinds = []Kind{
	KindPerson,
	KindFarRecord,
	KindWraRecord,
	KindIreiRecord,
	KindFacility,
	KindPersonFacility,
}

// IsValid reports whether k names a known model.
func (k Kind) IsValid() bool {
	for _, kind := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// FieldValue is one storable column of a record, stringified for diffing
// and CSV export. Declared order matters: diffs walk fields in the order
// FieldValues returns them.
type FieldValue struct {
	Name  string
	Value string
}

// Record is a revision-tracked registry record. FieldValues returns every
// storable column except the timestamp, in declared order; relation and
// reverse-relation descriptors are never included.
type Record interface {
	Kind() Kind
	NaturalKey() string
	FieldValues() []FieldValue
	LastUpdated() time.Time
	Touch(t time.Time)
}

// FieldMap indexes a record's fields by name, adding the timestamp column.
// Used by CSV dumps, which may request any column.
func FieldMap(r Record) map[string]string {
	m := make(map[string]string, 40)
	for _, fv := range r.FieldValues() {
		m[fv.Name] = fv.Value
	}
	if !r.LastUpdated().IsZero() {
		m["timestamp"] = r.LastUpdated().Format(time.RFC3339)
	} else {
		m["timestamp"] = ""
	}
	return m
}

// DumpRowd returns the requested columns of a record, in order, for
// inclusion in a CSV row. Unknown columns come back empty.
func DumpRowd(r Record, cols []string) []string {
	m := FieldMap(r)
	row := make([]string, len(cols))
	for i, col := range cols {
		row[i] = m[col]
	}
	return row
}

// FieldNames returns the column names of a record, timestamp last.
func FieldNames(r Record) []string {
	fvs := r.FieldValues()
	names := make([]string, 0, len(fvs)+1)
	for _, fv := range fvs {
		names = append(names, fv.Name)
	}
	return append(names, "timestamp")
}
