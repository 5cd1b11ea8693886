package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denshoproject/namesdb-editor/internal/domain/entities"
	"github.com/denshoproject/namesdb-editor/internal/domain/mocks"
)

func TestRevisionService_Stage_Creation(t *testing.T) {
	svc := NewRevisionService(mocks.NewRegistryDB())
	rec := &entities.Person{NRID: "88922/nr001"}

	diff, changed := svc.Stage(rec, nil)

	assert.True(t, changed)
	assert.Equal(t, "88922/nr001: object created", diff)
}

func TestRevisionService_Stage_NoChange(t *testing.T) {
	svc := NewRevisionService(mocks.NewRegistryDB())
	old := &entities.Person{NRID: "88922/nr001", FamilyName: "Tanaka", Timestamp: time.Now()}
	rec := &entities.Person{NRID: "88922/nr001", FamilyName: "Tanaka", Timestamp: time.Now()}

	diff, changed := svc.Stage(rec, old)

	assert.False(t, changed)
	assert.Empty(t, diff)
}

func TestRevisionService_Stage_TimestampAloneIsNotAChange(t *testing.T) {
	svc := NewRevisionService(mocks.NewRegistryDB())
	old := &entities.Person{NRID: "88922/nr001", Timestamp: time.Now().Add(-time.Hour)}
	rec := &entities.Person{NRID: "88922/nr001", Timestamp: time.Now()}

	_, changed := svc.Stage(rec, old)
	assert.False(t, changed)
}

func TestRevisionService_Stage_ClearedFieldIsNotAChange(t *testing.T) {
	// existing audit data depends on empty incoming values never
	// counting as changes
	svc := NewRevisionService(mocks.NewRegistryDB())
	old := &entities.Person{NRID: "88922/nr001", FamilyName: "Tanaka"}
	rec := &entities.Person{NRID: "88922/nr001", FamilyName: ""}

	_, changed := svc.Stage(rec, old)
	assert.False(t, changed)
}

func TestRevisionService_Stage_ChangedField(t *testing.T) {
	svc := NewRevisionService(mocks.NewRegistryDB())
	oldTS := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	newTS := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	old := &entities.Person{NRID: "88922/nr001", FamilyName: "Tanaka", Timestamp: oldTS}
	rec := &entities.Person{NRID: "88922/nr001", FamilyName: "Sato", Timestamp: newTS}

	diff, changed := svc.Stage(rec, old)

	require.True(t, changed)
	assert.Contains(t, diff, oldTS.Format(time.RFC3339))
	assert.Contains(t, diff, newTS.Format(time.RFC3339))
	assert.Contains(t, diff, `-{"family_name":"Tanaka"}`)
	assert.Contains(t, diff, `+{"family_name":"Sato"}`)
	assert.NotContains(t, diff, "\n\n")
}

func TestRevisionService_Stage_NewValueOnEmptyField(t *testing.T) {
	svc := NewRevisionService(mocks.NewRegistryDB())
	old := &entities.Person{NRID: "88922/nr001"}
	rec := &entities.Person{NRID: "88922/nr001", FamilyName: "Tanaka"}

	diff, changed := svc.Stage(rec, old)

	require.True(t, changed)
	assert.Contains(t, diff, `+{"family_name":"Tanaka"}`)
}

func TestRevisionService_Commit_Defaults(t *testing.T) {
	db := mocks.NewRegistryDB()
	svc := NewRevisionService(db)
	rec := &entities.Person{NRID: "88922/nr001"}

	err := svc.Commit(context.Background(), rec, "88922/nr001: object created", "", "")

	require.NoError(t, err)
	require.Len(t, db.Revisions, 1)
	rev := db.Revisions[0]
	assert.Equal(t, entities.UnknownUsername, rev.Username)
	assert.Equal(t, entities.DefaultNote, rev.Note)
	assert.Equal(t, entities.KindPerson, rev.Model)
	assert.Equal(t, "88922/nr001", rev.RecordID)
	assert.NotEmpty(t, rev.ID)
}

func TestRevisionService_Commit_ExplicitActor(t *testing.T) {
	db := mocks.NewRegistryDB()
	svc := NewRevisionService(db)
	rec := &entities.Person{NRID: "88922/nr001"}

	err := svc.Commit(context.Background(), rec, "diff", "gfroh", "fixed birth date")

	require.NoError(t, err)
	require.Len(t, db.Revisions, 1)
	assert.Equal(t, "gfroh", db.Revisions[0].Username)
	assert.Equal(t, "fixed birth date", db.Revisions[0].Note)
}

func TestJSONLines_OnePerField(t *testing.T) {
	rec := &entities.Person{NRID: "88922/nr001", FamilyName: "Tanaka"}

	lines := jsonLines(rec)

	require.NotEmpty(t, lines)
	assert.Equal(t, "{\"nr_id\":\"88922/nr001\"}\n", lines[0])
	for _, line := range lines {
		assert.True(t, strings.HasSuffix(line, "\n"))
		assert.NotContains(t, line, "timestamp")
	}
}
