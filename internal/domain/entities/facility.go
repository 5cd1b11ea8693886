package entities

import (
	"fmt"
	"time"
)

// Facility is a controlled-vocabulary entry for a camp or detention site.
// Facilities are reference data and are not revision-tracked.
type Facility struct {
	FacilityID   string `json:"facility_id"`
	FacilityType string `json:"facility_type"`
	FacilityName string `json:"facility_name"`
}

func (f *Facility) String() string {
	return fmt.Sprintf("%s (%s)", f.FacilityName, f.FacilityID)
}

// FacilityFromRowd builds a Facility from an import row, accepting the
// header aliases seen in vocabulary exports.
func FacilityFromRowd(rowd map[string]string) *Facility {
	f := &Facility{}
	f.FacilityID = firstValue(rowd, "facility_id", "id")
	f.FacilityName = firstValue(rowd, "facility_name", "name")
	f.FacilityType = firstValue(rowd, "facility_type", "type", "category")
	if f.FacilityType == "" {
		f.FacilityType = "other"
	}
	return f
}

// PersonFacility records one person's stay at one facility.
type PersonFacility struct {
	ID         int64      `json:"id"`
	PersonID   string     `json:"person_id"`
	FacilityID string     `json:"facility_id"`
	EntryDate  *time.Time `json:"entry_date"`
	ExitDate   *time.Time `json:"exit_date"`
}

// PersonFacilityFromRowd builds a PersonFacility from an import row.
// Person and facility references are validated by the loader.
func PersonFacilityFromRowd(rowd map[string]string) (*PersonFacility, error) {
	pf := &PersonFacility{
		PersonID:   firstValue(rowd, "nr_id", "person_id"),
		FacilityID: firstValue(rowd, "facility", "facility_id"),
	}
	entry, err := ParseDate(firstValue(rowd, "facility_entry_date", "entry_date"))
	if err != nil {
		return nil, fmt.Errorf("parsing entry_date: %w", err)
	}
	exit, err := ParseDate(firstValue(rowd, "facility_exit_date", "exit_date"))
	if err != nil {
		return nil, fmt.Errorf("parsing exit_date: %w", err)
	}
	pf.EntryDate = entry
	pf.ExitDate = exit
	return pf, nil
}

// firstValue returns the first non-empty rowd value among the given
// header aliases.
func firstValue(rowd map[string]string, keys ...string) string {
	for _, key := range keys {
		if val := CleanValue(rowd[key]); val != "" {
			return val
		}
	}
	return ""
}
