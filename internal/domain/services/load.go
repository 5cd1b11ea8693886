package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/denshoproject/namesdb-editor/internal/domain/entities"
	"github.com/denshoproject/namesdb-editor/internal/domain/ports"
)

// LoadOptions control one import run.
type LoadOptions struct {
	Username string
	Note     string
	Offset   int
	Limit    int
}

// LoadError describes one row that could not be loaded. Row errors are
// collected, not fatal: the rest of the run keeps going.
type LoadError struct {
	Row     int
	Key     string
	Message string
}

func (e LoadError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("row %d (%s): %s", e.Row, e.Key, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// LoadResult summarizes an import run.
type LoadResult struct {
	Saved  int
	Errors []LoadError
}

// LoadService imports rows of column-name/value maps into the registry.
// Tracked kinds go through the revisioned save path; reference data is
// upserted directly.
type LoadService struct {
	db      ports.RegistryDB
	minter  ports.Minter
	records *RecordService
}

// NewLoadService creates a new load service.
func NewLoadService(db ports.RegistryDB, minter ports.Minter) *LoadService {
	return &LoadService{
		db:      db,
		minter:  minter,
		records: NewRecordService(db, minter),
	}
}

// LoadRowds imports the given rows as records of the given kind.
// Offset/Limit window the rows before any work happens, so a failed run
// can be resumed partway through a large file.
func (s *LoadService) LoadRowds(ctx context.Context, kind entities.Kind, rowds []map[string]string, opts LoadOptions) (*LoadResult, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
	rowds = window(rowds, opts.Offset, opts.Limit)

	switch kind {
	case entities.KindPerson:
		return s.loadPersons(ctx, rowds, opts)
	case entities.KindFarRecord:
		return s.loadFarRecords(ctx, rowds, opts)
	case entities.KindWraRecord:
		return s.loadWraRecords(ctx, rowds, opts)
	case entities.KindIreiRecord:
		return s.loadIreiRecords(ctx, rowds, opts)
	case entities.KindFacility:
		return s.loadFacilities(ctx, rowds)
	case entities.KindPersonFacility:
		return s.loadPersonFacilities(ctx, rowds)
	default:
		return nil, fmt.Errorf("kind %q cannot be loaded", kind)
	}
}

func (s *LoadService) loadPersons(ctx context.Context, rowds []map[string]string, opts LoadOptions) (*LoadResult, error) {
	// Mint the whole batch of new identifiers up front. One round trip
	// instead of one per row, and a dead minter fails the run before any
	// rows are touched.
	need := 0
	for _, rowd := range rowds {
		if strings.TrimSpace(rowd["nr_id"]) == "" {
			need++
		}
	}
	var minted []string
	if need > 0 {
		ids, err := s.minter.Mint(ctx, need)
		if err != nil {
			return nil, fmt.Errorf("minting %d nr_ids: %w", need, err)
		}
		minted = ids
	}

	result := &LoadResult{}
	for i, rowd := range rowds {
		nrID := strings.TrimSpace(rowd["nr_id"])
		var p *entities.Person
		if nrID != "" {
			existing, err := s.db.FindPerson(ctx, nrID)
			if err != nil {
				return result, fmt.Errorf("looking up person %s: %w", nrID, err)
			}
			p = existing
		}
		if p == nil {
			p = &entities.Person{NRID: nrID}
		}
		p.ApplyRowd(rowd)
		if p.NRID == "" {
			if len(minted) == 0 {
				return result, fmt.Errorf("row %d: minted nr_id batch exhausted", i)
			}
			p.NRID = minted[0]
			minted = minted[1:]
		}
		if err := s.records.Save(ctx, p, opts.Username, opts.Note); err != nil {
			result.Errors = append(result.Errors, LoadError{Row: i, Key: p.NRID, Message: err.Error()})
			continue
		}
		result.Saved++
	}
	return result, nil
}

func (s *LoadService) loadFarRecords(ctx context.Context, rowds []map[string]string, opts LoadOptions) (*LoadResult, error) {
	personIDs, err := s.db.PersonIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("prefetching person ids: %w", err)
	}
	result := &LoadResult{}
	for i, rowd := range rowds {
		key := strings.TrimSpace(rowd["far_record_id"])
		if key == "" {
			result.Errors = append(result.Errors, LoadError{Row: i, Message: "missing far_record_id"})
			continue
		}
		rec, err := s.db.FindFarRecord(ctx, key)
		if err != nil {
			return result, fmt.Errorf("looking up farrecord %s: %w", key, err)
		}
		if rec == nil {
			rec = &entities.FarRecord{FarRecordID: key}
		}
		rec.ApplyRowd(rowd)
		if ref := firstRowdValue(rowd, "person", "person_id", "nr_id"); ref != "" {
			if !personIDs[ref] {
				result.Errors = append(result.Errors, LoadError{Row: i, Key: key, Message: fmt.Sprintf("person %s not found", ref)})
				continue
			}
			rec.PersonID = ref
		}
		if err := s.records.Save(ctx, rec, opts.Username, opts.Note); err != nil {
			result.Errors = append(result.Errors, LoadError{Row: i, Key: key, Message: err.Error()})
			continue
		}
		result.Saved++
	}
	return result, nil
}

func (s *LoadService) loadWraRecords(ctx context.Context, rowds []map[string]string, opts LoadOptions) (*LoadResult, error) {
	personIDs, err := s.db.PersonIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("prefetching person ids: %w", err)
	}
	result := &LoadResult{}
	for i, rowd := range rowds {
		key := strings.TrimSpace(rowd["wra_record_id"])
		if key == "" {
			result.Errors = append(result.Errors, LoadError{Row: i, Message: "missing wra_record_id"})
			continue
		}
		rec, err := s.db.FindWraRecord(ctx, key)
		if err != nil {
			return result, fmt.Errorf("looking up wrarecord %s: %w", key, err)
		}
		if rec == nil {
			rec = &entities.WraRecord{WraRecordID: key}
		}
		rec.ApplyRowd(rowd)
		if ref := firstRowdValue(rowd, "person", "person_id", "nr_id"); ref != "" {
			if !personIDs[ref] {
				result.Errors = append(result.Errors, LoadError{Row: i, Key: key, Message: fmt.Sprintf("person %s not found", ref)})
				continue
			}
			rec.PersonID = ref
		}
		if err := s.records.Save(ctx, rec, opts.Username, opts.Note); err != nil {
			result.Errors = append(result.Errors, LoadError{Row: i, Key: key, Message: err.Error()})
			continue
		}
		result.Saved++
	}
	return result, nil
}

func (s *LoadService) loadIreiRecords(ctx context.Context, rowds []map[string]string, opts LoadOptions) (*LoadResult, error) {
	personIDs, err := s.db.PersonIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("prefetching person ids: %w", err)
	}
	result := &LoadResult{}
	for i, rowd := range rowds {
		key := firstRowdValue(rowd, "irei_id", "id")
		if key == "" {
			result.Errors = append(result.Errors, LoadError{Row: i, Message: "missing irei_id"})
			continue
		}
		rec, err := s.db.FindIreiRecord(ctx, key)
		if err != nil {
			return result, fmt.Errorf("looking up ireirecord %s: %w", key, err)
		}
		if rec == nil {
			rec = &entities.IreiRecord{IreiID: key}
		}
		rec.ApplyRowd(rowd)
		if ref := firstRowdValue(rowd, "person", "person_id", "nr_id"); ref != "" {
			if !personIDs[ref] {
				result.Errors = append(result.Errors, LoadError{Row: i, Key: key, Message: fmt.Sprintf("person %s not found", ref)})
				continue
			}
			rec.PersonID = ref
		}
		if err := s.records.Save(ctx, rec, opts.Username, opts.Note); err != nil {
			result.Errors = append(result.Errors, LoadError{Row: i, Key: key, Message: err.Error()})
			continue
		}
		result.Saved++
	}
	return result, nil
}

func (s *LoadService) loadFacilities(ctx context.Context, rowds []map[string]string) (*LoadResult, error) {
	result := &LoadResult{}
	for i, rowd := range rowds {
		f := entities.FacilityFromRowd(rowd)
		if f.FacilityID == "" {
			result.Errors = append(result.Errors, LoadError{Row: i, Message: "missing facility_id"})
			continue
		}
		if err := s.db.SaveFacility(ctx, f); err != nil {
			result.Errors = append(result.Errors, LoadError{Row: i, Key: f.FacilityID, Message: err.Error()})
			continue
		}
		result.Saved++
	}
	return result, nil
}

func (s *LoadService) loadPersonFacilities(ctx context.Context, rowds []map[string]string) (*LoadResult, error) {
	personIDs, err := s.db.PersonIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("prefetching person ids: %w", err)
	}
	result := &LoadResult{}
	for i, rowd := range rowds {
		pf, err := entities.PersonFacilityFromRowd(rowd)
		if err != nil {
			result.Errors = append(result.Errors, LoadError{Row: i, Message: err.Error()})
			continue
		}
		if pf.PersonID == "" || pf.FacilityID == "" {
			result.Errors = append(result.Errors, LoadError{Row: i, Message: "missing person or facility reference"})
			continue
		}
		if !personIDs[pf.PersonID] {
			result.Errors = append(result.Errors, LoadError{Row: i, Key: pf.PersonID, Message: fmt.Sprintf("person %s not found", pf.PersonID)})
			continue
		}
		facility, err := s.db.FindFacility(ctx, pf.FacilityID)
		if err != nil {
			return result, fmt.Errorf("looking up facility %s: %w", pf.FacilityID, err)
		}
		if facility == nil {
			result.Errors = append(result.Errors, LoadError{Row: i, Key: pf.PersonID, Message: fmt.Sprintf("facility %s not found", pf.FacilityID)})
			continue
		}
		existing, err := s.db.FindPersonFacility(ctx, pf.PersonID, pf.FacilityID)
		if err != nil {
			return result, fmt.Errorf("looking up person-facility %s/%s: %w", pf.PersonID, pf.FacilityID, err)
		}
		if existing != nil {
			pf.ID = existing.ID
		}
		if err := s.db.SavePersonFacility(ctx, pf); err != nil {
			result.Errors = append(result.Errors, LoadError{Row: i, Key: pf.PersonID, Message: err.Error()})
			continue
		}
		result.Saved++
	}
	return result, nil
}

// window applies offset/limit to a row slice.
func window(rowds []map[string]string, offset, limit int) []map[string]string {
	if offset > 0 {
		if offset >= len(rowds) {
			return nil
		}
		rowds = rowds[offset:]
	}
	if limit > 0 && limit < len(rowds) {
		rowds = rowds[:limit]
	}
	return rowds
}

// firstRowdValue returns the first non-empty value among the given
// header aliases.
func firstRowdValue(rowd map[string]string, keys ...string) string {
	for _, key := range keys {
		if val := strings.TrimSpace(rowd[key]); val != "" {
			return val
		}
	}
	return ""
}
