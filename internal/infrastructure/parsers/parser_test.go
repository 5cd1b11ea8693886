package parsers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVParser_Parse(t *testing.T) {
	input := "nr_id,family_name,given_name\n88922/nr001,Tanaka,Kiyoshi\n88922/nr002,Sato,\n"

	rowds, err := (&CSVParser{}).Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, rowds, 2)
	assert.Equal(t, "Tanaka", rowds[0]["family_name"])
	assert.Equal(t, "", rowds[1]["given_name"])
}

func TestCSVParser_Parse_RaggedRows(t *testing.T) {
	input := "nr_id,family_name,given_name\n88922/nr001,Tanaka\n"

	rowds, err := (&CSVParser{}).Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, rowds, 1)
	assert.Equal(t, "Tanaka", rowds[0]["family_name"])
	assert.Equal(t, "", rowds[0]["given_name"])
}

func TestCSVParser_Parse_Empty(t *testing.T) {
	rowds, err := (&CSVParser{}).Parse(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, rowds)
}

func TestJSONParser_Parse(t *testing.T) {
	input := `[{"nr_id": "88922/nr001", "family_name": "Tanaka", "wra_family_no": 16423, "deceased": true}]`

	rowds, err := (&JSONParser{}).Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, rowds, 1)
	assert.Equal(t, "Tanaka", rowds[0]["family_name"])
	assert.Equal(t, "16423", rowds[0]["wra_family_no"])
	assert.Equal(t, "True", rowds[0]["deceased"])
}

func TestForFormat(t *testing.T) {
	assert.IsType(t, &JSONParser{}, ForFormat("json"))
	assert.IsType(t, &CSVParser{}, ForFormat("CSV"))
	assert.Nil(t, ForFormat("xml"))
}

func TestForFile(t *testing.T) {
	assert.IsType(t, &JSONParser{}, ForFile("/tmp/persons.json"))
	assert.IsType(t, &CSVParser{}, ForFile("/tmp/persons.csv"))
	assert.IsType(t, &CSVParser{}, ForFile("/tmp/persons"))
	assert.Nil(t, ForFile("/tmp/persons.txt"))
	assert.Nil(t, ForFile("/tmp/persons.xml"))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer

	err := WriteCSV(&buf, []string{"nr_id", "family_name"}, [][]string{
		{"88922/nr001", "Tanaka"},
	})

	require.NoError(t, err)
	assert.Equal(t, "nr_id,family_name\n88922/nr001,Tanaka\n", buf.String())
}

func TestReadCSVRows(t *testing.T) {
	rows, err := ReadCSVRows(strings.NewReader("a,b\nc,d,e\n"))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"c", "d", "e"}, rows[1])
}
