package entities

// PersonSummary is the linked-person stub embedded in FAR/WRA search
// documents.
type PersonSummary struct {
	NRID          string `json:"nr_id"`
	PreferredName string `json:"preferred_name"`
}

// FacilityStay is one person-facility association as it appears in Person
// search documents.
type FacilityStay struct {
	FacilityID string `json:"facility_id"`
	EntryDate  string `json:"entry_date"`
	ExitDate   string `json:"exit_date"`
}

// FarSummary is a linked FAR record stub in Person search documents.
type FarSummary struct {
	FarRecordID string `json:"far_record_id"`
	LastName    string `json:"last_name"`
	FirstName   string `json:"first_name"`
}

// WraSummary is a linked WRA record stub in Person search documents.
type WraSummary struct {
	WraRecordID string `json:"wra_record_id"`
	LastName    string `json:"lastname"`
	FirstName   string `json:"firstname"`
}

// RelatedContext holds the precomputed relational maps consumed by Dict
// projections during a publish run. Built once per run with a handful of
// join queries instead of one query per record.
type RelatedContext struct {
	// keyed by nr_id
	Facilities map[string][]FacilityStay
	FarLinks   map[string][]FarSummary
	WraLinks   map[string][]WraSummary
	// keyed by source record id
	PersonsByFar map[string]PersonSummary
	PersonsByWra map[string]PersonSummary
}
