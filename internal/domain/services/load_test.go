package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denshoproject/namesdb-editor/internal/domain/entities"
	"github.com/denshoproject/namesdb-editor/internal/domain/mocks"
)

func TestLoadService_LoadPersons(t *testing.T) {
	db := mocks.NewRegistryDB()
	svc := NewLoadService(db, &mocks.Minter{})

	rowds := []map[string]string{
		{"nr_id": "88922/nr001", "family_name": "Tanaka", "given_name": "Kiyoshi"},
		{"nr_id": "88922/nr002", "family_name": "Sato", "given_name": "Yuki"},
	}
	result, err := svc.LoadRowds(context.Background(), entities.KindPerson, rowds, LoadOptions{Username: "gfroh"})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Saved)
	assert.Empty(t, result.Errors)
	assert.Len(t, db.Persons, 2)
	assert.Len(t, db.Revisions, 2)
}

func TestLoadService_LoadPersons_Idempotent(t *testing.T) {
	db := mocks.NewRegistryDB()
	svc := NewLoadService(db, &mocks.Minter{})
	rowds := []map[string]string{
		{"nr_id": "88922/nr001", "family_name": "Tanaka"},
	}

	_, err := svc.LoadRowds(context.Background(), entities.KindPerson, rowds, LoadOptions{})
	require.NoError(t, err)
	_, err = svc.LoadRowds(context.Background(), entities.KindPerson, rowds, LoadOptions{})
	require.NoError(t, err)

	assert.Len(t, db.Persons, 1)
	// reloading identical rows must not grow the audit log
	assert.Len(t, db.Revisions, 1)
}

func TestLoadService_LoadPersons_BlankCellsPreserveValues(t *testing.T) {
	db := mocks.NewRegistryDB()
	svc := NewLoadService(db, &mocks.Minter{})

	_, err := svc.LoadRowds(context.Background(), entities.KindPerson, []map[string]string{
		{"nr_id": "88922/nr001", "family_name": "Tanaka", "given_name": "Kiyoshi"},
	}, LoadOptions{})
	require.NoError(t, err)

	_, err = svc.LoadRowds(context.Background(), entities.KindPerson, []map[string]string{
		{"nr_id": "88922/nr001", "family_name": "", "given_name": "Ken"},
	}, LoadOptions{})
	require.NoError(t, err)

	p := db.Persons["88922/nr001"]
	require.NotNil(t, p)
	assert.Equal(t, "Tanaka", p.FamilyName)
	assert.Equal(t, "Ken", p.GivenName)
}

func TestLoadService_LoadPersons_MintsBatchUpFront(t *testing.T) {
	db := mocks.NewRegistryDB()
	minter := &mocks.Minter{}
	svc := NewLoadService(db, minter)

	rowds := []map[string]string{
		{"family_name": "Tanaka"},
		{"family_name": "Sato"},
		{"nr_id": "88922/nr099", "family_name": "Abe"},
	}
	result, err := svc.LoadRowds(context.Background(), entities.KindPerson, rowds, LoadOptions{})

	require.NoError(t, err)
	assert.Equal(t, 3, result.Saved)
	// one batch request for the two new persons, never one per row
	assert.Equal(t, 1, minter.MintCallCount)
	assert.Equal(t, 2, minter.Minted)
}

func TestLoadService_LoadPersons_MinterFailureAbortsRun(t *testing.T) {
	db := mocks.NewRegistryDB()
	svc := NewLoadService(db, &mocks.Minter{Err: errors.New("service down")})

	_, err := svc.LoadRowds(context.Background(), entities.KindPerson, []map[string]string{
		{"family_name": "Tanaka"},
	}, LoadOptions{})

	require.Error(t, err)
	assert.Empty(t, db.Persons)
}

func TestLoadService_OffsetAndLimit(t *testing.T) {
	db := mocks.NewRegistryDB()
	svc := NewLoadService(db, &mocks.Minter{})

	rowds := []map[string]string{
		{"nr_id": "88922/nr001", "family_name": "A"},
		{"nr_id": "88922/nr002", "family_name": "B"},
		{"nr_id": "88922/nr003", "family_name": "C"},
	}
	result, err := svc.LoadRowds(context.Background(), entities.KindPerson, rowds, LoadOptions{Offset: 1, Limit: 1})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Saved)
	assert.Contains(t, db.Persons, "88922/nr002")
	assert.NotContains(t, db.Persons, "88922/nr001")
	assert.NotContains(t, db.Persons, "88922/nr003")
}

func TestLoadService_LoadFarRecords_ResolvesPersonLinks(t *testing.T) {
	db := mocks.NewRegistryDB()
	db.Persons["88922/nr001"] = &entities.Person{NRID: "88922/nr001", PreferredName: "Tanaka, Kiyoshi"}
	svc := NewLoadService(db, &mocks.Minter{})

	rowds := []map[string]string{
		{"far_record_id": "1-topaz_2-123", "last_name": "Tanaka", "person_id": "88922/nr001"},
		{"far_record_id": "1-topaz_2-124", "last_name": "Ito", "person_id": "88922/nr999"},
	}
	result, err := svc.LoadRowds(context.Background(), entities.KindFarRecord, rowds, LoadOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Saved)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "88922/nr999")
	assert.Equal(t, "88922/nr001", db.FarRecords["1-topaz_2-123"].PersonID)
	assert.NotContains(t, db.FarRecords, "1-topaz_2-124")
}

func TestLoadService_LoadFarRecords_MissingKeyIsRowError(t *testing.T) {
	db := mocks.NewRegistryDB()
	svc := NewLoadService(db, &mocks.Minter{})

	result, err := svc.LoadRowds(context.Background(), entities.KindFarRecord, []map[string]string{
		{"last_name": "Tanaka"},
	}, LoadOptions{})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Saved)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "far_record_id")
}

func TestLoadService_LoadFacilities(t *testing.T) {
	db := mocks.NewRegistryDB()
	svc := NewLoadService(db, &mocks.Minter{})

	result, err := svc.LoadRowds(context.Background(), entities.KindFacility, []map[string]string{
		{"facility_id": "7-manzanar", "facility_name": "Manzanar", "facility_type": "concentration_camp"},
	}, LoadOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Saved)
	require.Contains(t, db.Facilities, "7-manzanar")
	// reference data never touches the audit log
	assert.Empty(t, db.Revisions)
}

func TestLoadService_LoadPersonFacilities(t *testing.T) {
	db := mocks.NewRegistryDB()
	db.Persons["88922/nr001"] = &entities.Person{NRID: "88922/nr001"}
	db.Facilities["7-manzanar"] = &entities.Facility{FacilityID: "7-manzanar"}
	svc := NewLoadService(db, &mocks.Minter{})

	rowds := []map[string]string{
		{"nr_id": "88922/nr001", "facility": "7-manzanar", "facility_entry_date": "1942-05-09"},
	}
	result, err := svc.LoadRowds(context.Background(), entities.KindPersonFacility, rowds, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Saved)
	require.Len(t, db.PersonFacilities, 1)

	// loading again updates the stay instead of duplicating it
	rowds[0]["facility_exit_date"] = "1945-09-01"
	_, err = svc.LoadRowds(context.Background(), entities.KindPersonFacility, rowds, LoadOptions{})
	require.NoError(t, err)
	require.Len(t, db.PersonFacilities, 1)
	assert.NotNil(t, db.PersonFacilities[0].ExitDate)
}

func TestLoadService_LoadPersonFacilities_UnknownRefsAreRowErrors(t *testing.T) {
	db := mocks.NewRegistryDB()
	db.Persons["88922/nr001"] = &entities.Person{NRID: "88922/nr001"}
	svc := NewLoadService(db, &mocks.Minter{})

	result, err := svc.LoadRowds(context.Background(), entities.KindPersonFacility, []map[string]string{
		{"nr_id": "88922/nr002", "facility": "7-manzanar"},
		{"nr_id": "88922/nr001", "facility": "no-such-camp"},
	}, LoadOptions{})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Saved)
	assert.Len(t, result.Errors, 2)
}

func TestLoadService_UnknownKind(t *testing.T) {
	svc := NewLoadService(mocks.NewRegistryDB(), &mocks.Minter{})

	_, err := svc.LoadRowds(context.Background(), entities.Kind("bogus"), nil, LoadOptions{})
	assert.Error(t, err)
}
