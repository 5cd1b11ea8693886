package entities

import (
	"fmt"
	"time"
)

// WraRecord is one row of the WRA Form 26 census ledger. Most columns are
// WRA-coded values kept exactly as transcribed.
type WraRecord struct {
	WraRecordID       string    `json:"wra_record_id"`
	Facility          string    `json:"facility"`
	LastName          string    `json:"lastname"`
	FirstName         string    `json:"firstname"`
	MiddleInitial     string    `json:"middleinitial"`
	BirthYear         string    `json:"birthyear"`
	Gender            string    `json:"gender"`
	OriginalState     string    `json:"originalstate"`
	FamilyNo          string    `json:"familyno"`
	IndividualNo      string    `json:"individualno"`
	Notes             string    `json:"notes"`
	AssemblyCenter    string    `json:"assemblycenter"`
	OriginalAddress   string    `json:"originaladdress"`
	BirthCountry      string    `json:"birthcountry"`
	FatherOccupUS     string    `json:"fatheroccupus"`
	FatherOccupAbr    string    `json:"fatheroccupabr"`
	YearsSchoolJapan  string    `json:"yearsschooljapan"`
	GradeJapan        string    `json:"gradejapan"`
	SchoolDegree      string    `json:"schooldegree"`
	YearOfUsArrival   string    `json:"yearofusarrival"`
	TimeInJapan       string    `json:"timeinjapan"`
	AgeInJapan        string    `json:"ageinjapan"`
	MilitaryService   string    `json:"militaryservice"`
	MaritalStatus     string    `json:"maritalstatus"`
	Ethnicity         string    `json:"ethnicity"`
	BirthPlace        string    `json:"birthplace"`
	CitizenshipStatus string    `json:"citizenshipstatus"`
	HighestGrade      string    `json:"highestgrade"`
	Language          string    `json:"language"`
	Religion          string    `json:"religion"`
	OccupQual1        string    `json:"occupqual1"`
	OccupQual2        string    `json:"occupqual2"`
	OccupQual3        string    `json:"occupqual3"`
	OccupPotn1        string    `json:"occuppotn1"`
	OccupPotn2        string    `json:"occuppotn2"`
	WraFileNumber     string    `json:"wra_filenumber"`
	PersonID          string    `json:"person_id"`
	Timestamp         time.Time `json:"timestamp"`
}

func (r *WraRecord) Kind() Kind             { return KindWraRecord }
func (r *WraRecord) NaturalKey() string     { return r.WraRecordID }
func (r *WraRecord) LastUpdated() time.Time { return r.Timestamp }
func (r *WraRecord) Touch(t time.Time)      { r.Timestamp = t }

func (r *WraRecord) String() string {
	return fmt.Sprintf("%s %s (%s) %s %s",
		r.LastName, r.FirstName, r.Gender, r.Facility, r.WraRecordID)
}

func (r *WraRecord) FieldValues() []FieldValue {
	return []FieldValue{
		{"wra_record_id", r.WraRecordID},
		{"facility", r.Facility},
		{"lastname", r.LastName},
		{"firstname", r.FirstName},
		{"middleinitial", r.MiddleInitial},
		{"birthyear", r.BirthYear},
		{"gender", r.Gender},
		{"originalstate", r.OriginalState},
		{"familyno", r.FamilyNo},
		{"individualno", r.IndividualNo},
		{"notes", r.Notes},
		{"assemblycenter", r.AssemblyCenter},
		{"originaladdress", r.OriginalAddress},
		{"birthcountry", r.BirthCountry},
		{"fatheroccupus", r.FatherOccupUS},
		{"fatheroccupabr", r.FatherOccupAbr},
		{"yearsschooljapan", r.YearsSchoolJapan},
		{"gradejapan", r.GradeJapan},
		{"schooldegree", r.SchoolDegree},
		{"yearofusarrival", r.YearOfUsArrival},
		{"timeinjapan", r.TimeInJapan},
		{"ageinjapan", r.AgeInJapan},
		{"militaryservice", r.MilitaryService},
		{"maritalstatus", r.MaritalStatus},
		{"ethnicity", r.Ethnicity},
		{"birthplace", r.BirthPlace},
		{"citizenshipstatus", r.CitizenshipStatus},
		{"highestgrade", r.HighestGrade},
		{"language", r.Language},
		{"religion", r.Religion},
		{"occupqual1", r.OccupQual1},
		{"occupqual2", r.OccupQual2},
		{"occupqual3", r.OccupQual3},
		{"occuppotn1", r.OccupPotn1},
		{"occuppotn2", r.OccupPotn2},
		{"wra_filenumber", r.WraFileNumber},
		{"person_id", r.PersonID},
	}
}

// ApplyRowd applies an import row. Empty cells never overwrite existing
// values.
func (r *WraRecord) ApplyRowd(rowd map[string]string) {
	for key, val := range rowd {
		if val == "" {
			continue
		}
		r.setField(key, CleanValue(val))
	}
}

func (r *WraRecord) setField(name, value string) bool {
	switch name {
	case "wra_record_id":
		r.WraRecordID = value
	case "facility":
		r.Facility = value
	case "lastname":
		r.LastName = value
	case "firstname":
		r.FirstName = value
	case "middleinitial":
		r.MiddleInitial = value
	case "birthyear":
		r.BirthYear = value
	case "gender":
		r.Gender = value
	case "originalstate":
		r.OriginalState = value
	case "familyno":
		r.FamilyNo = value
	case "individualno":
		r.IndividualNo = value
	case "notes":
		r.Notes = value
	case "assemblycenter":
		r.AssemblyCenter = value
	case "originaladdress":
		r.OriginalAddress = value
	case "birthcountry":
		r.BirthCountry = value
	case "fatheroccupus":
		r.FatherOccupUS = value
	case "fatheroccupabr":
		r.FatherOccupAbr = value
	case "yearsschooljapan":
		r.YearsSchoolJapan = value
	case "gradejapan":
		r.GradeJapan = value
	case "schooldegree":
		r.SchoolDegree = value
	case "yearofusarrival":
		r.YearOfUsArrival = value
	case "timeinjapan":
		r.TimeInJapan = value
	case "ageinjapan":
		r.AgeInJapan = value
	case "militaryservice":
		r.MilitaryService = value
	case "maritalstatus":
		r.MaritalStatus = value
	case "ethnicity":
		r.Ethnicity = value
	case "birthplace":
		r.BirthPlace = value
	case "citizenshipstatus":
		r.CitizenshipStatus = value
	case "highestgrade":
		r.HighestGrade = value
	case "language":
		r.Language = value
	case "religion":
		r.Religion = value
	case "occupqual1":
		r.OccupQual1 = value
	case "occupqual2":
		r.OccupQual2 = value
	case "occupqual3":
		r.OccupQual3 = value
	case "occuppotn1":
		r.OccupPotn1 = value
	case "occuppotn2":
		r.OccupPotn2 = value
	case "wra_filenumber":
		r.WraFileNumber = value
	case "person_id":
		r.PersonID = value
	default:
		return false
	}
	return true
}

// DisplayName is the text embedded for fuzzy name search.
func (r *WraRecord) DisplayName() string {
	return fmt.Sprintf("%s, %s", r.LastName, r.FirstName)
}

// Dict returns the JSON-serializable search document for the record.
func (r *WraRecord) Dict(related *RelatedContext) map[string]any {
	d := map[string]any{"id": r.WraRecordID}
	for _, fv := range r.FieldValues() {
		if fv.Name == "person_id" {
			continue
		}
		d[fv.Name] = fv.Value
	}
	d["person"] = nil
	if related != nil {
		if person, ok := related.PersonsByWra[r.WraRecordID]; ok {
			d["person"] = map[string]any{
				"id":   person.NRID,
				"name": person.PreferredName,
			}
		}
	}
	return d
}
