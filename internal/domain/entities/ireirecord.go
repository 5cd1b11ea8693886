package entities

import (
	"fmt"
	"time"
)

// IreiRecord is one entry from the Irei memorial name records, fetched
// from the Ireizo API and reconciled against Person.
type IreiRecord struct {
	IreiID        string    `json:"irei_id"`
	Name          string    `json:"name"`
	LastName      string    `json:"lastname"`
	FirstName     string    `json:"firstname"`
	MiddleName    string    `json:"middlename"`
	PreferredName string    `json:"preferredname"`
	Birthday      string    `json:"birthday"`
	Year          string    `json:"year"`
	Camp          string    `json:"camp"`
	FetchTS       string    `json:"fetch_ts"`
	PersonID      string    `json:"person_id"`
	Timestamp     time.Time `json:"timestamp"`
}

func (r *IreiRecord) Kind() Kind             { return KindIreiRecord }
func (r *IreiRecord) NaturalKey() string     { return r.IreiID }
func (r *IreiRecord) LastUpdated() time.Time { return r.Timestamp }
func (r *IreiRecord) Touch(t time.Time)      { r.Timestamp = t }

func (r *IreiRecord) String() string {
	return fmt.Sprintf("%s %s %s", r.LastName, r.FirstName, r.IreiID)
}

func (r *IreiRecord) FieldValues() []FieldValue {
	return []FieldValue{
		{"irei_id", r.IreiID},
		{"name", r.Name},
		{"lastname", r.LastName},
		{"firstname", r.FirstName},
		{"middlename", r.MiddleName},
		{"preferredname", r.PreferredName},
		{"birthday", r.Birthday},
		{"year", r.Year},
		{"camp", r.Camp},
		{"fetch_ts", r.FetchTS},
		{"person_id", r.PersonID},
	}
}

// ApplyRowd applies an import row. Empty cells never overwrite existing
// values.
func (r *IreiRecord) ApplyRowd(rowd map[string]string) {
	for key, val := range rowd {
		if val == "" {
			continue
		}
		r.setField(key, CleanValue(val))
	}
}

func (r *IreiRecord) setField(name, value string) bool {
	switch name {
	case "irei_id", "id":
		r.IreiID = value
	case "name":
		r.Name = value
	case "lastname":
		r.LastName = value
	case "firstname":
		r.FirstName = value
	case "middlename":
		r.MiddleName = value
	case "preferredname":
		r.PreferredName = value
	case "birthday":
		r.Birthday = value
	case "year":
		r.Year = value
	case "camp":
		r.Camp = value
	case "fetch_ts":
		r.FetchTS = value
	case "person_id":
		r.PersonID = value
	default:
		return false
	}
	return true
}

// DisplayName is the text embedded for fuzzy name search.
func (r *IreiRecord) DisplayName() string {
	return fmt.Sprintf("%s, %s", r.LastName, r.FirstName)
}
