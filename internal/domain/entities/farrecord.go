package entities

import (
	"fmt"
	"time"
)

// FarRecord is one row of a FAR (Final Accountability Roster) ledger.
// The natural key is derived from the ledger id plus the row's original
// order; dates stay as transcribed strings.
type FarRecord struct {
	FarRecordID          string    `json:"far_record_id"`
	Facility             string    `json:"facility"`
	OriginalOrder        string    `json:"original_order"`
	FamilyNumber         string    `json:"family_number"`
	FarLineID            string    `json:"far_line_id"`
	LastName             string    `json:"last_name"`
	FirstName            string    `json:"first_name"`
	OtherNames           string    `json:"other_names"`
	DateOfBirth          string    `json:"date_of_birth"`
	YearOfBirth          string    `json:"year_of_birth"`
	Sex                  string    `json:"sex"`
	MaritalStatus        string    `json:"marital_status"`
	Citizenship          string    `json:"citizenship"`
	AlienRegistrationNo  string    `json:"alien_registration_no"`
	EntryTypeCode        string    `json:"entry_type_code"`
	EntryType            string    `json:"entry_type"`
	EntryCategory        string    `json:"entry_category"`
	EntryFacility        string    `json:"entry_facility"`
	PreEvacuationAddress string    `json:"pre_evacuation_address"`
	PreEvacuationState   string    `json:"pre_evacuation_state"`
	DateOfOriginalEntry  string    `json:"date_of_original_entry"`
	DepartureTypeCode    string    `json:"departure_type_code"`
	DepartureType        string    `json:"departure_type"`
	DepartureCategory    string    `json:"departure_category"`
	DepartureFacility    string    `json:"departure_facility"`
	DepartureDate        string    `json:"departure_date"`
	DepartureState       string    `json:"departure_state"`
	CampAddressOriginal  string    `json:"camp_address_original"`
	CampAddressBlock     string    `json:"camp_address_block"`
	CampAddressBarracks  string    `json:"camp_address_barracks"`
	CampAddressRoom      string    `json:"camp_address_room"`
	Reference            string    `json:"reference"`
	OriginalNotes        string    `json:"original_notes"`
	PersonID             string    `json:"person_id"`
	Timestamp            time.Time `json:"timestamp"`
}

func (r *FarRecord) Kind() Kind             { return KindFarRecord }
func (r *FarRecord) NaturalKey() string     { return r.FarRecordID }
func (r *FarRecord) LastUpdated() time.Time { return r.Timestamp }
func (r *FarRecord) Touch(t time.Time)      { r.Timestamp = t }

func (r *FarRecord) String() string {
	return fmt.Sprintf("%s %s (%s) %s %s",
		r.LastName, r.FirstName, r.Sex, r.Facility, r.FarRecordID)
}

func (r *FarRecord) FieldValues() []FieldValue {
	return []FieldValue{
		{"far_record_id", r.FarRecordID},
		{"facility", r.Facility},
		{"original_order", r.OriginalOrder},
		{"family_number", r.FamilyNumber},
		{"far_line_id", r.FarLineID},
		{"last_name", r.LastName},
		{"first_name", r.FirstName},
		{"other_names", r.OtherNames},
		{"date_of_birth", r.DateOfBirth},
		{"year_of_birth", r.YearOfBirth},
		{"sex", r.Sex},
		{"marital_status", r.MaritalStatus},
		{"citizenship", r.Citizenship},
		{"alien_registration_no", r.AlienRegistrationNo},
		{"entry_type_code", r.EntryTypeCode},
		{"entry_type", r.EntryType},
		{"entry_category", r.EntryCategory},
		{"entry_facility", r.EntryFacility},
		{"pre_evacuation_address", r.PreEvacuationAddress},
		{"pre_evacuation_state", r.PreEvacuationState},
		{"date_of_original_entry", r.DateOfOriginalEntry},
		{"departure_type_code", r.DepartureTypeCode},
		{"departure_type", r.DepartureType},
		{"departure_category", r.DepartureCategory},
		{"departure_facility", r.DepartureFacility},
		{"departure_date", r.DepartureDate},
		{"departure_state", r.DepartureState},
		{"camp_address_original", r.CampAddressOriginal},
		{"camp_address_block", r.CampAddressBlock},
		{"camp_address_barracks", r.CampAddressBarracks},
		{"camp_address_room", r.CampAddressRoom},
		{"reference", r.Reference},
		{"original_notes", r.OriginalNotes},
		{"person_id", r.PersonID},
	}
}

// ApplyRowd applies an import row. Empty cells never overwrite existing
// values; person links under the alias headers are validated and
// resolved by the loader, not here.
func (r *FarRecord) ApplyRowd(rowd map[string]string) {
	for key, val := range rowd {
		if val == "" {
			continue
		}
		r.setField(key, CleanValue(val))
	}
}

func (r *FarRecord) setField(name, value string) bool {
	switch name {
	case "far_record_id":
		r.FarRecordID = value
	case "facility":
		r.Facility = value
	case "original_order":
		r.OriginalOrder = value
	case "family_number":
		r.FamilyNumber = value
	case "far_line_id":
		r.FarLineID = value
	case "last_name":
		r.LastName = value
	case "first_name":
		r.FirstName = value
	case "other_names":
		r.OtherNames = value
	case "date_of_birth":
		r.DateOfBirth = value
	case "year_of_birth":
		r.YearOfBirth = value
	case "sex":
		r.Sex = value
	case "marital_status":
		r.MaritalStatus = value
	case "citizenship":
		r.Citizenship = value
	case "alien_registration_no":
		r.AlienRegistrationNo = value
	case "entry_type_code":
		r.EntryTypeCode = value
	case "entry_type":
		r.EntryType = value
	case "entry_category":
		r.EntryCategory = value
	case "entry_facility":
		r.EntryFacility = value
	case "pre_evacuation_address":
		r.PreEvacuationAddress = value
	case "pre_evacuation_state":
		r.PreEvacuationState = value
	case "date_of_original_entry":
		r.DateOfOriginalEntry = value
	case "departure_type_code":
		r.DepartureTypeCode = value
	case "departure_type":
		r.DepartureType = value
	case "departure_category":
		r.DepartureCategory = value
	case "departure_facility":
		r.DepartureFacility = value
	case "departure_date":
		r.DepartureDate = value
	case "departure_state":
		r.DepartureState = value
	case "camp_address_original":
		r.CampAddressOriginal = value
	case "camp_address_block":
		r.CampAddressBlock = value
	case "camp_address_barracks":
		r.CampAddressBarracks = value
	case "camp_address_room":
		r.CampAddressRoom = value
	case "reference":
		r.Reference = value
	case "original_notes":
		r.OriginalNotes = value
	case "person_id":
		r.PersonID = value
	default:
		return false
	}
	return true
}

// DisplayName is the text embedded for fuzzy name search.
func (r *FarRecord) DisplayName() string {
	return fmt.Sprintf("%s, %s", r.LastName, r.FirstName)
}

// Dict returns the JSON-serializable search document for the record.
func (r *FarRecord) Dict(related *RelatedContext) map[string]any {
	d := map[string]any{"id": r.FarRecordID}
	for _, fv := range r.FieldValues() {
		if fv.Name == "person_id" {
			continue
		}
		d[fv.Name] = fv.Value
	}
	d["person"] = nil
	if related != nil {
		if person, ok := related.PersonsByFar[r.FarRecordID]; ok {
			d["person"] = map[string]any{
				"id":   person.NRID,
				"name": person.PreferredName,
			}
		}
	}
	return d
}
