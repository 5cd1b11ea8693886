package services

import (
	"context"
	"fmt"

	"github.com/denshoproject/namesdb-editor/internal/domain/entities"
	"github.com/denshoproject/namesdb-editor/internal/domain/ports"
)

// dumpDefaultLimit bounds a dump when the caller gives no limit.
const dumpDefaultLimit = 1000000

// DumpService exports registry records back out as rows, the inverse of
// the loader. Blank fields export as empty cells, so a dump can be
// re-imported without clobbering anything.
type DumpService struct {
	db ports.RegistryDB
}

// NewDumpService creates a new dump service.
func NewDumpService(db ports.RegistryDB) *DumpService {
	return &DumpService{db: db}
}

// Dump returns the header row and data rows for records of the given
// kind. Passing no cols exports every field in declared order.
func (s *DumpService) Dump(ctx context.Context, kind entities.Kind, cols []string, limit int) ([]string, [][]string, error) {
	if limit <= 0 {
		limit = dumpDefaultLimit
	}
	records, err := s.listRecords(ctx, kind, limit)
	if err != nil {
		return nil, nil, err
	}
	if len(cols) == 0 {
		cols = defaultColumns(kind)
	}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, entities.DumpRowd(rec, cols))
	}
	return cols, rows, nil
}

func (s *DumpService) listRecords(ctx context.Context, kind entities.Kind, limit int) ([]entities.Record, error) {
	switch kind {
	case entities.KindPerson:
		persons, err := s.db.ListPersons(ctx, limit, 0)
		if err != nil {
			return nil, fmt.Errorf("listing persons: %w", err)
		}
		records := make([]entities.Record, len(persons))
		for i, p := range persons {
			records[i] = p
		}
		return records, nil
	case entities.KindFarRecord:
		recs, err := s.db.ListFarRecords(ctx, limit, 0)
		if err != nil {
			return nil, fmt.Errorf("listing farrecords: %w", err)
		}
		records := make([]entities.Record, len(recs))
		for i, r := range recs {
			records[i] = r
		}
		return records, nil
	case entities.KindWraRecord:
		recs, err := s.db.ListWraRecords(ctx, limit, 0)
		if err != nil {
			return nil, fmt.Errorf("listing wrarecords: %w", err)
		}
		records := make([]entities.Record, len(recs))
		for i, r := range recs {
			records[i] = r
		}
		return records, nil
	case entities.KindIreiRecord:
		recs, err := s.db.ListIreiRecords(ctx, limit, 0)
		if err != nil {
			return nil, fmt.Errorf("listing ireirecords: %w", err)
		}
		records := make([]entities.Record, len(recs))
		for i, r := range recs {
			records[i] = r
		}
		return records, nil
	default:
		return nil, fmt.Errorf("kind %q cannot be dumped", kind)
	}
}

func defaultColumns(kind entities.Kind) []string {
	switch kind {
	case entities.KindPerson:
		return entities.FieldNames(&entities.Person{})
	case entities.KindFarRecord:
		return entities.FieldNames(&entities.FarRecord{})
	case entities.KindWraRecord:
		return entities.FieldNames(&entities.WraRecord{})
	case entities.KindIreiRecord:
		return entities.FieldNames(&entities.IreiRecord{})
	default:
		return nil
	}
}
