package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerson_ApplyRowd(t *testing.T) {
	p := &Person{}
	p.ApplyRowd(map[string]string{
		"nr_id":          "88922/nr005",
		"family_name":    "Tanaka",
		"given_name":     "Kiyoshi",
		"preferred_name": "Tanaka, Kiyoshi",
		"gender":         "M",
	})

	assert.Equal(t, "88922/nr005", p.NRID)
	assert.Equal(t, "Tanaka", p.FamilyName)
	assert.Equal(t, "Kiyoshi", p.GivenName)
	assert.Equal(t, "Tanaka, Kiyoshi", p.PreferredName)
	assert.Equal(t, "M", p.Gender)
}

func TestPerson_ApplyRowd_EmptyCellsNeverOverwrite(t *testing.T) {
	p := &Person{FamilyName: "Tanaka", GivenName: "Kiyoshi"}
	p.ApplyRowd(map[string]string{
		"family_name": "",
		"given_name":  "Ken",
	})

	assert.Equal(t, "Tanaka", p.FamilyName)
	assert.Equal(t, "Ken", p.GivenName)
}

func TestPerson_ApplyRowd_BirthDate(t *testing.T) {
	p := &Person{}
	p.ApplyRowd(map[string]string{"birth_date": "1923-05-01 00:00:00"})

	require.NotNil(t, p.BirthDate)
	assert.Equal(t, "1923-05-01", p.BirthDate.Format("2006-01-02"))
}

func TestPerson_ApplyRowd_UnparseableDateLeavesFieldAlone(t *testing.T) {
	p := &Person{}
	p.ApplyRowd(map[string]string{
		"birth_date":      "about 1923",
		"birth_date_text": "about 1923",
	})

	assert.Nil(t, p.BirthDate)
	assert.Equal(t, "about 1923", p.BirthDateText)
}

func TestPerson_ApplyRowd_OtherNamesListLiteral(t *testing.T) {
	p := &Person{}
	p.ApplyRowd(map[string]string{"other_names": `['Tom', "Tommy"]`})

	assert.Equal(t, "Tom\nTommy", p.OtherNames)
}

func TestPerson_ApplyRowd_IgnoresFacilityColumn(t *testing.T) {
	p := &Person{}
	p.ApplyRowd(map[string]string{"facility": "7-manzanar", "family_name": "Abe"})

	assert.Equal(t, "Abe", p.FamilyName)
}

func TestPerson_FieldValues_ExcludesTimestamp(t *testing.T) {
	p := &Person{NRID: "88922/nr001", Timestamp: time.Now()}

	for _, fv := range p.FieldValues() {
		assert.NotEqual(t, "timestamp", fv.Name)
	}
}

func TestFieldNames_TimestampLast(t *testing.T) {
	names := FieldNames(&Person{})

	require.NotEmpty(t, names)
	assert.Equal(t, "nr_id", names[0])
	assert.Equal(t, "timestamp", names[len(names)-1])
}

func TestDumpRowd(t *testing.T) {
	p := &Person{NRID: "88922/nr001", FamilyName: "Tanaka"}

	row := DumpRowd(p, []string{"family_name", "nr_id", "no_such_col"})
	assert.Equal(t, []string{"Tanaka", "88922/nr001", ""}, row)
}

func TestCleanValue(t *testing.T) {
	assert.Equal(t, "1942-05-09", CleanValue(" 1942-05-09 00:00:00 "))
	assert.Equal(t, "", CleanValue("00:00:00"))
	assert.Equal(t, "Tanaka", CleanValue("Tanaka"))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1923-05-01", "1923-05-01"},
		{"5/1/1923", "1923-05-01"},
		{"January 2, 1944", "1944-01-02"},
		{"1923", "1923-01-01"},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.input)
		require.NoError(t, err, tt.input)
		require.NotNil(t, got, tt.input)
		assert.Equal(t, tt.want, got.Format("2006-01-02"), tt.input)
	}

	got, err := ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseDate("not a date")
	assert.Error(t, err)
}

func TestFacilityFromRowd_Aliases(t *testing.T) {
	f := FacilityFromRowd(map[string]string{"id": "7-manzanar", "name": "Manzanar"})

	assert.Equal(t, "7-manzanar", f.FacilityID)
	assert.Equal(t, "Manzanar", f.FacilityName)
	assert.Equal(t, "other", f.FacilityType)
}

func TestPersonFacilityFromRowd(t *testing.T) {
	pf, err := PersonFacilityFromRowd(map[string]string{
		"nr_id":               "88922/nr001",
		"facility":            "7-manzanar",
		"facility_entry_date": "1942-05-09",
	})

	require.NoError(t, err)
	assert.Equal(t, "88922/nr001", pf.PersonID)
	assert.Equal(t, "7-manzanar", pf.FacilityID)
	require.NotNil(t, pf.EntryDate)
	assert.Equal(t, "1942-05-09", pf.EntryDate.Format("2006-01-02"))
	assert.Nil(t, pf.ExitDate)
}
