package entities

import (
	"fmt"
	"strings"
	"time"
)

// Person is the canonical identity record. The NRID is minted externally
// and never changes once assigned.
type Person struct {
	NRID                        string     `json:"nr_id"`
	FamilyName                  string     `json:"family_name"`
	GivenName                   string     `json:"given_name"`
	GivenNameAlt                string     `json:"given_name_alt"`
	OtherNames                  string     `json:"other_names"`
	MiddleName                  string     `json:"middle_name"`
	PrefixName                  string     `json:"prefix_name"`
	SuffixName                  string     `json:"suffix_name"`
	JpName                      string     `json:"jp_name"`
	PreferredName               string     `json:"preferred_name"`
	BirthDate                   *time.Time `json:"birth_date"`
	BirthDateText               string     `json:"birth_date_text"`
	BirthPlace                  string     `json:"birth_place"`
	DeathDate                   *time.Time `json:"death_date"`
	DeathDateText               string     `json:"death_date_text"`
	WraFamilyNo                 string     `json:"wra_family_no"`
	WraIndividualNo             string     `json:"wra_individual_no"`
	Citizenship                 string     `json:"citizenship"`
	AlienRegistrationNo         string     `json:"alien_registration_no"`
	Gender                      string     `json:"gender"`
	PreexclusionResidenceCity   string     `json:"preexclusion_residence_city"`
	PreexclusionResidenceState  string     `json:"preexclusion_residence_state"`
	PostexclusionResidenceCity  string     `json:"postexclusion_residence_city"`
	PostexclusionResidenceState string     `json:"postexclusion_residence_state"`
	ExclusionOrderTitle         string     `json:"exclusion_order_title"`
	ExclusionOrderID            string     `json:"exclusion_order_id"`
	Timestamp                   time.Time  `json:"timestamp"`
}

func (p *Person) Kind() Kind             { return KindPerson }
func (p *Person) NaturalKey() string     { return p.NRID }
func (p *Person) LastUpdated() time.Time { return p.Timestamp }
func (p *Person) Touch(t time.Time)      { p.Timestamp = t }

func (p *Person) String() string {
	return fmt.Sprintf("%s (%s)", p.PreferredName, p.NRID)
}

// FieldValues returns the storable columns in declared order, timestamp
// excluded.
func (p *Person) FieldValues() []FieldValue {
	return []FieldValue{
		{"nr_id", p.NRID},
		{"family_name", p.FamilyName},
		{"given_name", p.GivenName},
		{"given_name_alt", p.GivenNameAlt},
		{"other_names", p.OtherNames},
		{"middle_name", p.MiddleName},
		{"prefix_name", p.PrefixName},
		{"suffix_name", p.SuffixName},
		{"jp_name", p.JpName},
		{"preferred_name", p.PreferredName},
		{"birth_date", formatDate(p.BirthDate)},
		{"birth_date_text", p.BirthDateText},
		{"birth_place", p.BirthPlace},
		{"death_date", formatDate(p.DeathDate)},
		{"death_date_text", p.DeathDateText},
		{"wra_family_no", p.WraFamilyNo},
		{"wra_individual_no", p.WraIndividualNo},
		{"citizenship", p.Citizenship},
		{"alien_registration_no", p.AlienRegistrationNo},
		{"gender", p.Gender},
		{"preexclusion_residence_city", p.PreexclusionResidenceCity},
		{"preexclusion_residence_state", p.PreexclusionResidenceState},
		{"postexclusion_residence_city", p.PostexclusionResidenceCity},
		{"postexclusion_residence_state", p.PostexclusionResidenceState},
		{"exclusion_order_title", p.ExclusionOrderTitle},
		{"exclusion_order_id", p.ExclusionOrderID},
	}
}

// ApplyRowd applies an import row to the person. Empty cells never
// overwrite existing values. Dates that fail to parse leave the parsed
// field alone; the free-text fallback columns capture them instead.
func (p *Person) ApplyRowd(rowd map[string]string) {
	rowd = cloneRowd(rowd)

	// other_names arrives as a Python-style list literal in some exports
	if names := rowd["other_names"]; names != "" {
		delete(rowd, "other_names")
		p.OtherNames = normalizeOtherNames(names)
	}
	if raw := rowd["birth_date"]; raw != "" {
		delete(rowd, "birth_date")
		if t, err := ParseDate(CleanValue(raw)); err == nil && t != nil {
			p.BirthDate = t
		}
	}
	if raw := rowd["death_date"]; raw != "" {
		delete(rowd, "death_date")
		if t, err := ParseDate(CleanValue(raw)); err == nil && t != nil {
			p.DeathDate = t
		}
	}
	// facility associations load through the personfacility model
	delete(rowd, "facility")

	for key, val := range rowd {
		if val == "" {
			continue
		}
		p.setField(key, CleanValue(val))
	}
}

func (p *Person) setField(name, value string) bool {
	switch name {
	case "nr_id":
		p.NRID = value
	case "family_name":
		p.FamilyName = value
	case "given_name":
		p.GivenName = value
	case "given_name_alt":
		p.GivenNameAlt = value
	case "other_names":
		p.OtherNames = value
	case "middle_name":
		p.MiddleName = value
	case "prefix_name":
		p.PrefixName = value
	case "suffix_name":
		p.SuffixName = value
	case "jp_name":
		p.JpName = value
	case "preferred_name":
		p.PreferredName = value
	case "birth_date_text":
		p.BirthDateText = value
	case "birth_place":
		p.BirthPlace = value
	case "death_date_text":
		p.DeathDateText = value
	case "wra_family_no":
		p.WraFamilyNo = value
	case "wra_individual_no":
		p.WraIndividualNo = value
	case "citizenship":
		p.Citizenship = value
	case "alien_registration_no":
		p.AlienRegistrationNo = value
	case "gender":
		p.Gender = value
	case "preexclusion_residence_city":
		p.PreexclusionResidenceCity = value
	case "preexclusion_residence_state":
		p.PreexclusionResidenceState = value
	case "postexclusion_residence_city":
		p.PostexclusionResidenceCity = value
	case "postexclusion_residence_state":
		p.PostexclusionResidenceState = value
	case "exclusion_order_title":
		p.ExclusionOrderTitle = value
	case "exclusion_order_id":
		p.ExclusionOrderID = value
	default:
		return false
	}
	return true
}

// Dict returns the JSON-serializable search document for the person,
// including precomputed relational context.
func (p *Person) Dict(related *RelatedContext) map[string]any {
	d := map[string]any{"id": p.NRID}
	for _, fv := range p.FieldValues() {
		var value any
		if fv.Value != "" {
			value = fv.Value
		}
		d[fv.Name] = value
	}
	d["facilities"] = nil
	d["far_records"] = nil
	d["wra_records"] = nil
	if related != nil {
		if stays := related.Facilities[p.NRID]; len(stays) > 0 {
			out := make([]any, len(stays))
			for i, stay := range stays {
				out[i] = map[string]any{
					"facility_id": stay.FacilityID,
					"entry_date":  stay.EntryDate,
					"exit_date":   stay.ExitDate,
				}
			}
			d["facilities"] = out
		}
		if links := related.FarLinks[p.NRID]; len(links) > 0 {
			out := make([]any, len(links))
			for i, link := range links {
				out[i] = map[string]any{
					"far_record_id": link.FarRecordID,
					"last_name":     link.LastName,
					"first_name":    link.FirstName,
				}
			}
			d["far_records"] = out
		}
		if links := related.WraLinks[p.NRID]; len(links) > 0 {
			out := make([]any, len(links))
			for i, link := range links {
				out[i] = map[string]any{
					"wra_record_id": link.WraRecordID,
					"lastname":      link.LastName,
					"firstname":     link.FirstName,
				}
			}
			d["wra_records"] = out
		}
	}
	return d
}

// normalizeOtherNames turns a Python-style list literal into one name per
// line, e.g. `['Tom', "Tommy"]` becomes "Tom\nTommy".
func normalizeOtherNames(names string) string {
	names = strings.NewReplacer("[", "", "]", "", "'", "", `"`, "").Replace(names)
	parts := strings.Split(names, ",")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			cleaned = append(cleaned, part)
		}
	}
	return strings.Join(cleaned, "\n")
}

func cloneRowd(rowd map[string]string) map[string]string {
	out := make(map[string]string, len(rowd))
	for k, v := range rowd {
		out[k] = v
	}
	return out
}
