package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denshoproject/namesdb-editor/internal/domain/entities"
	"github.com/denshoproject/namesdb-editor/internal/domain/mocks"
	"github.com/denshoproject/namesdb-editor/internal/domain/services"
)

func setupLoadHandler(t *testing.T) (*LoadHandler, *mocks.RegistryDB) {
	t.Helper()
	db := mocks.NewRegistryDB()
	return NewLoadHandler(services.NewLoadService(db, &mocks.Minter{})), db
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadHandler_CSV(t *testing.T) {
	handler, db := setupLoadHandler(t)
	path := writeTempFile(t, "persons.csv",
		"nr_id,family_name,given_name\n88922/nr011,Yamada,Taro\n88922/nr012,Sato,Hana\n")

	result, err := handler.Handle(context.Background(), "person", path, LoadOptions{})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Saved)
	assert.Empty(t, result.Errors)
	assert.Len(t, db.Persons, 2)
	assert.Equal(t, "Yamada", db.Persons["88922/nr011"].FamilyName)
}

func TestLoadHandler_JSON(t *testing.T) {
	handler, db := setupLoadHandler(t)
	path := writeTempFile(t, "persons.json",
		`[{"nr_id": "88922/nr011", "family_name": "Yamada", "given_name": "Taro"}]`)

	result, err := handler.Handle(context.Background(), "person", path, LoadOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Saved)
	assert.Len(t, db.Persons, 1)
}

func TestLoadHandler_ExplicitFormat(t *testing.T) {
	handler, db := setupLoadHandler(t)
	// csv content behind a non-csv extension
	path := writeTempFile(t, "persons.txt",
		"nr_id,family_name\n88922/nr011,Yamada\n")

	result, err := handler.Handle(context.Background(), "person", path, LoadOptions{Format: "csv"})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Saved)
	assert.Len(t, db.Persons, 1)
}

func TestLoadHandler_UnknownKind(t *testing.T) {
	handler, _ := setupLoadHandler(t)
	path := writeTempFile(t, "persons.csv", "nr_id\n88922/nr011\n")

	_, err := handler.Handle(context.Background(), "bogus", path, LoadOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown record kind")
}

func TestLoadHandler_UnsupportedFormat(t *testing.T) {
	handler, _ := setupLoadHandler(t)
	path := writeTempFile(t, "persons.xml", "<persons/>")

	_, err := handler.Handle(context.Background(), "person", path, LoadOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestLoadHandler_MissingFile(t *testing.T) {
	handler, _ := setupLoadHandler(t)

	_, err := handler.Handle(context.Background(), "person", "/nope/persons.csv", LoadOptions{})

	assert.Error(t, err)
}

func TestLoadHandler_EmptyFile(t *testing.T) {
	handler, db := setupLoadHandler(t)
	path := writeTempFile(t, "persons.csv", "")

	result, err := handler.Handle(context.Background(), "person", path, LoadOptions{})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Saved)
	assert.Empty(t, db.Persons)
}

func TestLoadHandler_RecordsRevisionActor(t *testing.T) {
	handler, db := setupLoadHandler(t)
	path := writeTempFile(t, "persons.csv",
		"nr_id,family_name\n88922/nr011,Yamada\n")

	_, err := handler.Handle(context.Background(), "person", path, LoadOptions{
		Username: "tomoyo",
		Note:     "initial import",
	})

	require.NoError(t, err)
	require.Len(t, db.Revisions, 1)
	assert.Equal(t, "tomoyo", db.Revisions[0].Username)
	assert.Equal(t, "initial import", db.Revisions[0].Note)
	assert.Equal(t, entities.KindPerson, db.Revisions[0].Model)
}
