package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denshoproject/namesdb-editor/internal/domain/entities"
	"github.com/denshoproject/namesdb-editor/internal/domain/mocks"
	"github.com/denshoproject/namesdb-editor/internal/domain/ports"
)

func TestReconcileService_SearchMulti_SQL(t *testing.T) {
	db := mocks.NewRegistryDB()
	db.Persons["88922/nr001"] = &entities.Person{NRID: "88922/nr001", PreferredName: "Kashiwagi, Sadako"}
	svc := NewReconcileService(db, &mocks.Docstore{}, &mocks.Embedder{})

	rows := [][]string{
		{"id", "fieldname", "names"},
		{"ddr-densho-1000-1", "creditline", "Kashiwagi:narrator"},
	}
	matches, err := svc.SearchMulti(context.Background(), rows, MethodSQL)

	require.NoError(t, err)
	require.Len(t, matches, 1)
	m := matches[0]
	assert.Equal(t, "ddr-densho-1000-1", m.ObjectID)
	assert.Equal(t, "creditline", m.FieldName)
	assert.Equal(t, "Kashiwagi", m.NamePart)
	assert.Equal(t, "narrator", m.Role)
	assert.Equal(t, 0, m.N)
	assert.Equal(t, "88922/nr001", m.NRID)
	assert.Equal(t, "Kashiwagi, Sadako", m.PreferredName)
	assert.Equal(t, float32(0), m.Score)
	assert.Equal(t, "namepart: Kashiwagi | role: narrator | nr_id: 88922/nr001", m.Sample)
}

func TestReconcileService_SearchMulti_SQLMatchesPunctuatedNames(t *testing.T) {
	db := mocks.NewRegistryDB()
	db.Persons["88922/nr001"] = &entities.Person{NRID: "88922/nr001", PreferredName: "Watanabe, Joe"}
	svc := NewReconcileService(db, &mocks.Docstore{}, &mocks.Embedder{})

	// "Last, First" is the registry's preferred-name convention; the
	// comma in the query must not defeat the match.
	rows := [][]string{
		{"ddr-densho-1000-1", "creditline", "Watanabe, Joe"},
	}
	matches, err := svc.SearchMulti(context.Background(), rows, MethodSQL)

	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "88922/nr001", matches[0].NRID)
	assert.Equal(t, "Watanabe, Joe", matches[0].PreferredName)
}

func TestReconcileService_SearchMulti_ExistingNRIDIsExact(t *testing.T) {
	db := mocks.NewRegistryDB()
	db.Persons["88922/nr001"] = &entities.Person{NRID: "88922/nr001", PreferredName: "Kashiwagi, Sadako"}
	svc := NewReconcileService(db, &mocks.Docstore{}, &mocks.Embedder{})

	rows := [][]string{
		{"ddr-densho-1000-1", "creditline", `[{"namepart": "Kashiwagi, Sadako", "role": "narrator", "nr_id": "88922/nr001"}]`},
	}
	matches, err := svc.SearchMulti(context.Background(), rows, MethodSQL)

	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, float32(exactMatchScore), matches[0].Score)
	assert.Equal(t, "88922/nr001", matches[0].NRID)
}

func TestReconcileService_SearchMulti_Vector(t *testing.T) {
	db := mocks.NewRegistryDB()
	ds := &mocks.Docstore{Hits: []ports.PersonHit{
		{NRID: "88922/nr001", PreferredName: "Kashiwagi, Sadako", Score: 0.93},
		{NRID: "88922/nr002", PreferredName: "Kashiwagi, Hiroshi", Score: 0.88},
	}}
	emb := &mocks.Embedder{EmbeddingResult: []float32{0.1, 0.2}}
	svc := NewReconcileService(db, ds, emb)

	rows := [][]string{
		{"ddr-densho-1000-1", "creditline", "Sadako Kashiwagi"},
	}
	matches, err := svc.SearchMulti(context.Background(), rows, MethodVector)

	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, 0, matches[0].N)
	assert.Equal(t, 1, matches[1].N)
	assert.Equal(t, float32(0.93), matches[0].Score)
	assert.Equal(t, 1, emb.EmbedCallCount)
	assert.Equal(t, []string{"Sadako Kashiwagi"}, emb.LastTexts)
	assert.Equal(t, reconcileCandidates, ds.SearchLastLimit)
}

func TestReconcileService_SearchMulti_SkipsBlankAndShortRows(t *testing.T) {
	svc := NewReconcileService(mocks.NewRegistryDB(), &mocks.Docstore{}, &mocks.Embedder{})

	rows := [][]string{
		{"ddr-densho-1000-1", "creditline"},
		{"ddr-densho-1000-2", "creditline", "   "},
	}
	matches, err := svc.SearchMulti(context.Background(), rows, MethodSQL)

	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestReconcileService_SearchMulti_UnknownMethod(t *testing.T) {
	svc := NewReconcileService(mocks.NewRegistryDB(), &mocks.Docstore{}, &mocks.Embedder{})

	_, err := svc.SearchMulti(context.Background(), nil, ReconcileMethod("bogus"))
	assert.Error(t, err)
}

func TestPrepNamePattern(t *testing.T) {
	assert.Equal(t, "kashiwagi sadako", prepNamePattern(`Kashiwagi, Sadako`))
	assert.Equal(t, "oconnor", prepNamePattern("O'Connor"))
}
