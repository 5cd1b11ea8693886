package converters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextToRolePeople_Empty(t *testing.T) {
	assert.Empty(t, TextToRolePeople(""))
	assert.Empty(t, TextToRolePeople("   \r\n  "))
}

func TestTextToRolePeople_PlainName(t *testing.T) {
	people := TextToRolePeople("Kashiwagi, Sadako")

	require.Len(t, people, 1)
	assert.Equal(t, "Kashiwagi, Sadako", people[0].NamePart)
	assert.Equal(t, DefaultRole, people[0].Role)
	assert.Zero(t, people[0].ID)
}

func TestTextToRolePeople_NameWithRole(t *testing.T) {
	people := TextToRolePeople("Sadako Kashiwagi:narrator")

	require.Len(t, people, 1)
	assert.Equal(t, "Sadako Kashiwagi", people[0].NamePart)
	assert.Equal(t, "narrator", people[0].Role)
}

func TestTextToRolePeople_PipeFormat(t *testing.T) {
	people := TextToRolePeople("namepart:Sadako Kashiwagi|role:narrator|id:856")

	require.Len(t, people, 1)
	assert.Equal(t, "Sadako Kashiwagi", people[0].NamePart)
	assert.Equal(t, "narrator", people[0].Role)
	assert.Equal(t, 856, people[0].ID)
}

func TestTextToRolePeople_BracketID(t *testing.T) {
	people := TextToRolePeople("Masuda, Kikuye [42]")

	require.Len(t, people, 1)
	assert.Equal(t, "Masuda, Kikuye", people[0].NamePart)
	assert.Equal(t, 42, people[0].ID)
	assert.Equal(t, DefaultRole, people[0].Role)
}

func TestTextToRolePeople_BracketIDWithRole(t *testing.T) {
	people := TextToRolePeople("Masuda, Kikuye [42]:narrator")

	require.Len(t, people, 1)
	assert.Equal(t, "Masuda, Kikuye", people[0].NamePart)
	assert.Equal(t, 42, people[0].ID)
	assert.Equal(t, "narrator", people[0].Role)
}

func TestTextToRolePeople_MultipleSegments(t *testing.T) {
	people := TextToRolePeople("Abe, Frank:author; Herzig-Yoshinaga, Aiko:interviewer")

	require.Len(t, people, 2)
	assert.Equal(t, "Abe, Frank", people[0].NamePart)
	assert.Equal(t, "author", people[0].Role)
	assert.Equal(t, "Herzig-Yoshinaga, Aiko", people[1].NamePart)
	assert.Equal(t, "interviewer", people[1].Role)
}

func TestRolePeopleFromStrings_UnrollsEmbeddedSemicolons(t *testing.T) {
	// one spreadsheet cell glued two people together; order must hold
	people := RolePeopleFromStrings([]string{
		"Abe, Frank; Herzig-Yoshinaga, Aiko",
		"Kashiwagi, Sadako",
	})

	require.Len(t, people, 3)
	assert.Equal(t, "Abe, Frank", people[0].NamePart)
	assert.Equal(t, "Herzig-Yoshinaga, Aiko", people[1].NamePart)
	assert.Equal(t, "Kashiwagi, Sadako", people[2].NamePart)
}

func TestTextToRolePeople_JSON(t *testing.T) {
	people := TextToRolePeople(`[{"namepart": "Tomita, Teiko", "role": "poet", "id": 123}]`)

	require.Len(t, people, 1)
	assert.Equal(t, "Tomita, Teiko", people[0].NamePart)
	assert.Equal(t, "poet", people[0].Role)
	assert.Equal(t, 123, people[0].ID)
}

func TestTextToRolePeople_JSONStringID(t *testing.T) {
	people := TextToRolePeople(`[{"namepart": "Tomita, Teiko", "id": "123"}]`)

	require.Len(t, people, 1)
	assert.Equal(t, 123, people[0].ID)
	assert.Equal(t, DefaultRole, people[0].Role)
}

func TestTextToRolePeople_DirtyJSON(t *testing.T) {
	people := TextToRolePeople(`[{u'namepart': u'Tomita, Teiko', u'role': u'poet'}]`)

	require.Len(t, people, 1)
	assert.Equal(t, "Tomita, Teiko", people[0].NamePart)
	assert.Equal(t, "poet", people[0].Role)
}

func TestTextToRolePeople_JSONWithNRID(t *testing.T) {
	people := TextToRolePeople(`[{"namepart": "Tomita, Teiko", "role": "poet", "nr_id": "88922/nr007"}]`)

	require.Len(t, people, 1)
	assert.Equal(t, "88922/nr007", people[0].NRID)
}

func TestTextToRolePeople_FiltersEmptyNameparts(t *testing.T) {
	people := TextToRolePeople(`[{"namepart": "", "role": "author"}, {"namepart": "Abe, Frank"}]`)

	require.Len(t, people, 1)
	assert.Equal(t, "Abe, Frank", people[0].NamePart)
}

func TestRolePeopleToText(t *testing.T) {
	text := RolePeopleToText([]RolePerson{
		{NamePart: "Kashiwagi, Sadako", Role: "narrator", ID: 856},
		{NamePart: "Abe, Frank", Role: "author", NRID: "88922/nr012"},
	})

	assert.Equal(t,
		"namepart: Kashiwagi, Sadako | role: narrator | id: 856; namepart: Abe, Frank | role: author | nr_id: 88922/nr012",
		text)
}

func TestRolePeople_RoundTrip(t *testing.T) {
	original := []RolePerson{
		{NamePart: "Kashiwagi, Sadako", Role: "narrator", ID: 856},
		{NamePart: "Abe, Frank", Role: "author"},
	}

	decoded := TextToRolePeople(RolePeopleToText(original))
	assert.Equal(t, original, decoded)

	// a second pass must be stable
	again := TextToRolePeople(RolePeopleToText(decoded))
	assert.Equal(t, decoded, again)
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "a\nb", NormalizeText("  a\r\nb \r\n"))
	assert.Equal(t, "a\nb", NormalizeText("a\rb"))
}
