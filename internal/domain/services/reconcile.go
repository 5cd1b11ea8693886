package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/denshoproject/namesdb-editor/internal/domain/converters"
	"github.com/denshoproject/namesdb-editor/internal/domain/ports"
)

// ReconcileMethod selects how candidate persons are found.
type ReconcileMethod string

const (
	// MethodVector matches by name-embedding similarity.
	MethodVector ReconcileMethod = "vector"
	// MethodSQL matches by case-insensitive substring.
	MethodSQL ReconcileMethod = "sql"
)

// reconcileCandidates caps candidates returned per name.
const reconcileCandidates = 25

// exactMatchScore marks a name that already carries a registry id.
const exactMatchScore = 100.0

// ReconcileMatch is one candidate pairing between a name mentioned in a
// creditline and a registry person. Sample is the creditline item
// re-encoded with the candidate's nr_id filled in, ready to paste back.
type ReconcileMatch struct {
	ObjectID      string
	FieldName     string
	NamePart      string
	Role          string
	N             int
	NRID          string
	PreferredName string
	Score         float32
	Sample        string
}

// ReconcileService matches free-text names from external metadata against
// registry persons.
type ReconcileService struct {
	db  ports.RegistryDB
	ds  ports.Docstore
	emb ports.Embedder
}

// NewReconcileService creates a new reconcile service.
func NewReconcileService(db ports.RegistryDB, ds ports.Docstore, emb ports.Embedder) *ReconcileService {
	return &ReconcileService{db: db, ds: ds, emb: emb}
}

// SearchMulti reconciles rows of (object id, field name, creditline
// text). Each creditline is decoded into role/person items; each item
// produces zero or more candidate matches. Items that already carry an
// nr_id are verified against the registry and scored as exact.
func (s *ReconcileService) SearchMulti(ctx context.Context, rows [][]string, method ReconcileMethod) ([]ReconcileMatch, error) {
	if method != MethodVector && method != MethodSQL {
		return nil, fmt.Errorf("unknown reconcile method %q", method)
	}
	var matches []ReconcileMatch
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		objectID, fieldName, text := row[0], row[1], row[2]
		if objectID == "id" && fieldName == "fieldname" {
			// header row
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		for _, item := range converters.TextToRolePeople(text) {
			found, err := s.matchItem(ctx, objectID, fieldName, item, method)
			if err != nil {
				return matches, err
			}
			matches = append(matches, found...)
		}
	}
	return matches, nil
}

func (s *ReconcileService) matchItem(ctx context.Context, objectID, fieldName string, item converters.RolePerson, method ReconcileMethod) ([]ReconcileMatch, error) {
	if item.NRID != "" {
		p, err := s.db.FindPerson(ctx, item.NRID)
		if err != nil {
			return nil, fmt.Errorf("looking up person %s: %w", item.NRID, err)
		}
		if p != nil {
			return []ReconcileMatch{s.match(objectID, fieldName, item, 0, p.NRID, p.PreferredName, exactMatchScore)}, nil
		}
		// stale id in source metadata, fall through to fuzzy search
	}

	switch method {
	case MethodVector:
		vector, err := s.emb.Embed(ctx, item.NamePart)
		if err != nil {
			return nil, fmt.Errorf("embedding %q: %w", item.NamePart, err)
		}
		hits, err := s.ds.SearchPersons(ctx, vector, reconcileCandidates)
		if err != nil {
			return nil, fmt.Errorf("searching persons for %q: %w", item.NamePart, err)
		}
		matches := make([]ReconcileMatch, 0, len(hits))
		for n, hit := range hits {
			matches = append(matches, s.match(objectID, fieldName, item, n, hit.NRID, hit.PreferredName, hit.Score))
		}
		return matches, nil
	default:
		persons, err := s.db.SearchPersonNames(ctx, prepNamePattern(item.NamePart), reconcileCandidates)
		if err != nil {
			return nil, fmt.Errorf("searching persons for %q: %w", item.NamePart, err)
		}
		matches := make([]ReconcileMatch, 0, len(persons))
		for n, p := range persons {
			matches = append(matches, s.match(objectID, fieldName, item, n, p.NRID, p.PreferredName, 0))
		}
		return matches, nil
	}
}

func (s *ReconcileService) match(objectID, fieldName string, item converters.RolePerson, n int, nrID, preferredName string, score float32) ReconcileMatch {
	sample := item
	sample.NRID = nrID
	return ReconcileMatch{
		ObjectID:      objectID,
		FieldName:     fieldName,
		NamePart:      item.NamePart,
		Role:          item.Role,
		N:             n,
		NRID:          nrID,
		PreferredName: preferredName,
		Score:         score,
		Sample:        converters.RolePeopleToText([]converters.RolePerson{sample}),
	}
}

// prepNamePattern strips punctuation that defeats substring matching
// against preferred names.
func prepNamePattern(namePart string) string {
	pattern := strings.ToLower(namePart)
	for _, cut := range []string{",", ".", "'", "\""} {
		pattern = strings.ReplaceAll(pattern, cut, "")
	}
	return strings.TrimSpace(pattern)
}
