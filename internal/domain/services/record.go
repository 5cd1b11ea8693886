package services

import (
	"context"
	"fmt"

	"github.com/denshoproject/namesdb-editor/internal/domain/entities"
	"github.com/denshoproject/namesdb-editor/internal/domain/ports"
)

// RecordService owns the save path for revision-tracked records. Every
// save runs the same sequence: mint an identifier if needed, look up the
// prior version, stage the change, persist, and commit at most one audit
// entry.
type RecordService struct {
	db        ports.RegistryDB
	minter    ports.Minter
	revisions *RevisionService
}

// NewRecordService creates a new record service.
func NewRecordService(db ports.RegistryDB, minter ports.Minter) *RecordService {
	return &RecordService{
		db:        db,
		minter:    minter,
		revisions: NewRevisionService(db),
	}
}

// Save persists a record and, when anything actually changed, exactly one
// revision describing the change. Persons without an identifier get one
// minted first, since the natural key has to exist before the prior
// version can be looked up.
func (s *RecordService) Save(ctx context.Context, rec entities.Record, username, note string) error {
	if p, ok := rec.(*entities.Person); ok && p.NRID == "" {
		ids, err := s.minter.Mint(ctx, 1)
		if err != nil {
			return fmt.Errorf("minting nr_id: %w", err)
		}
		if len(ids) == 0 {
			return fmt.Errorf("minting nr_id: minter returned no identifiers")
		}
		p.NRID = ids[0]
	}

	old, err := s.db.FindRecord(ctx, rec.Kind(), rec.NaturalKey())
	if err != nil {
		return fmt.Errorf("looking up %s %s: %w", rec.Kind(), rec.NaturalKey(), err)
	}

	rec.Touch(timeNow())
	diff, changed := s.revisions.Stage(rec, old)

	if err := s.persist(ctx, rec); err != nil {
		return fmt.Errorf("saving %s %s: %w", rec.Kind(), rec.NaturalKey(), err)
	}
	if !changed {
		return nil
	}
	return s.revisions.Commit(ctx, rec, diff, username, note)
}

func (s *RecordService) persist(ctx context.Context, rec entities.Record) error {
	switch r := rec.(type) {
	case *entities.Person:
		return s.db.SavePerson(ctx, r)
	case *entities.FarRecord:
		return s.db.SaveFarRecord(ctx, r)
	case *entities.WraRecord:
		return s.db.SaveWraRecord(ctx, r)
	case *entities.IreiRecord:
		return s.db.SaveIreiRecord(ctx, r)
	default:
		return fmt.Errorf("kind %s is not revision-tracked", rec.Kind())
	}
}
