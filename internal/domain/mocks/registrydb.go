// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/denshoproject/namesdb-editor/internal/domain/entities"
)

// RegistryDB is an in-memory mock implementation of ports.RegistryDB.
// Records are stored by natural key, so save/find round-trips behave
// like the real store.
type RegistryDB struct {
	Persons          map[string]*entities.Person
	FarRecords       map[string]*entities.FarRecord
	WraRecords       map[string]*entities.WraRecord
	IreiRecords      map[string]*entities.IreiRecord
	Facilities       map[string]*entities.Facility
	PersonFacilities []*entities.PersonFacility
	Revisions        []*entities.Revision

	Err error

	// Call tracking
	SaveRevisionCallCount int
	PersonIDsCallCount    int
}

// NewRegistryDB creates an empty in-memory registry.
func NewRegistryDB() *RegistryDB {
	return &RegistryDB{
		Persons:     make(map[string]*entities.Person),
		FarRecords:  make(map[string]*entities.FarRecord),
		WraRecords:  make(map[string]*entities.WraRecord),
		IreiRecords: make(map[string]*entities.IreiRecord),
		Facilities:  make(map[string]*entities.Facility),
	}
}

// EnsureSchema is a no-op for the in-memory store.
func (m *RegistryDB) EnsureSchema(ctx context.Context) error { return m.Err }

// Close is a no-op for the in-memory store.
func (m *RegistryDB) Close() error { return nil }

// SavePerson stores a copy of the person.
func (m *RegistryDB) SavePerson(ctx context.Context, p *entities.Person) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *p
	m.Persons[p.NRID] = &cp
	return nil
}

// FindPerson retrieves a person by nr_id.
func (m *RegistryDB) FindPerson(ctx context.Context, nrID string) (*entities.Person, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if p, ok := m.Persons[nrID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

// ListPersons returns persons ordered by nr_id.
func (m *RegistryDB) ListPersons(ctx context.Context, limit, offset int) ([]*entities.Person, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	keys := sortedKeys(m.Persons)
	var out []*entities.Person
	for i, k := range keys {
		if i < offset {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, m.Persons[k])
	}
	return out, nil
}

// CountPersons returns how many persons are stored.
func (m *RegistryDB) CountPersons(ctx context.Context) (int, error) {
	return len(m.Persons), m.Err
}

// SearchPersonNames matches preferred names containing the pattern.
// Stored names are lowercased and stripped of punctuation before
// matching, mirroring the real store.
func (m *RegistryDB) SearchPersonNames(ctx context.Context, pattern string, limit int) ([]*entities.Person, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*entities.Person
	for _, k := range sortedKeys(m.Persons) {
		p := m.Persons[k]
		if strings.Contains(normalizeName(p.PreferredName), strings.ToLower(pattern)) {
			out = append(out, p)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

// PersonIDs returns the set of stored nr_ids.
func (m *RegistryDB) PersonIDs(ctx context.Context) (map[string]bool, error) {
	m.PersonIDsCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	ids := make(map[string]bool, len(m.Persons))
	for k := range m.Persons {
		ids[k] = true
	}
	return ids, nil
}

// SaveFarRecord stores a copy of the record.
func (m *RegistryDB) SaveFarRecord(ctx context.Context, r *entities.FarRecord) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *r
	m.FarRecords[r.FarRecordID] = &cp
	return nil
}

// FindFarRecord retrieves a record by far_record_id.
func (m *RegistryDB) FindFarRecord(ctx context.Context, farRecordID string) (*entities.FarRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if r, ok := m.FarRecords[farRecordID]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

// ListFarRecords returns records ordered by far_record_id.
func (m *RegistryDB) ListFarRecords(ctx context.Context, limit, offset int) ([]*entities.FarRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	keys := sortedKeys(m.FarRecords)
	var out []*entities.FarRecord
	for i, k := range keys {
		if i < offset {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, m.FarRecords[k])
	}
	return out, nil
}

// SaveWraRecord stores a copy of the record.
func (m *RegistryDB) SaveWraRecord(ctx context.Context, r *entities.WraRecord) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *r
	m.WraRecords[r.WraRecordID] = &cp
	return nil
}

// FindWraRecord retrieves a record by wra_record_id.
func (m *RegistryDB) FindWraRecord(ctx context.Context, wraRecordID string) (*entities.WraRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if r, ok := m.WraRecords[wraRecordID]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

// ListWraRecords returns records ordered by wra_record_id.
func (m *RegistryDB) ListWraRecords(ctx context.Context, limit, offset int) ([]*entities.WraRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	keys := sortedKeys(m.WraRecords)
	var out []*entities.WraRecord
	for i, k := range keys {
		if i < offset {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, m.WraRecords[k])
	}
	return out, nil
}

// SaveIreiRecord stores a copy of the record.
func (m *RegistryDB) SaveIreiRecord(ctx context.Context, r *entities.IreiRecord) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *r
	m.IreiRecords[r.IreiID] = &cp
	return nil
}

// FindIreiRecord retrieves a record by irei_id.
func (m *RegistryDB) FindIreiRecord(ctx context.Context, ireiID string) (*entities.IreiRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if r, ok := m.IreiRecords[ireiID]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

// ListIreiRecords returns records ordered by irei_id.
func (m *RegistryDB) ListIreiRecords(ctx context.Context, limit, offset int) ([]*entities.IreiRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	keys := sortedKeys(m.IreiRecords)
	var out []*entities.IreiRecord
	for i, k := range keys {
		if i < offset {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, m.IreiRecords[k])
	}
	return out, nil
}

// SaveFacility stores a copy of the facility.
func (m *RegistryDB) SaveFacility(ctx context.Context, f *entities.Facility) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *f
	m.Facilities[f.FacilityID] = &cp
	return nil
}

// FindFacility retrieves a facility by id.
func (m *RegistryDB) FindFacility(ctx context.Context, facilityID string) (*entities.Facility, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if f, ok := m.Facilities[facilityID]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, nil
}

// ListFacilities returns facilities ordered by id.
func (m *RegistryDB) ListFacilities(ctx context.Context) ([]*entities.Facility, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*entities.Facility
	for _, k := range sortedKeys(m.Facilities) {
		out = append(out, m.Facilities[k])
	}
	return out, nil
}

// SavePersonFacility inserts or updates a stay.
func (m *RegistryDB) SavePersonFacility(ctx context.Context, pf *entities.PersonFacility) error {
	if m.Err != nil {
		return m.Err
	}
	for i, existing := range m.PersonFacilities {
		if existing.PersonID == pf.PersonID && existing.FacilityID == pf.FacilityID {
			cp := *pf
			cp.ID = existing.ID
			m.PersonFacilities[i] = &cp
			return nil
		}
	}
	cp := *pf
	cp.ID = int64(len(m.PersonFacilities) + 1)
	m.PersonFacilities = append(m.PersonFacilities, &cp)
	return nil
}

// FindPersonFacility retrieves a stay by person and facility.
func (m *RegistryDB) FindPersonFacility(ctx context.Context, personID, facilityID string) (*entities.PersonFacility, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, pf := range m.PersonFacilities {
		if pf.PersonID == personID && pf.FacilityID == facilityID {
			cp := *pf
			return &cp, nil
		}
	}
	return nil, nil
}

// FindRecord resolves any tracked record by (kind, natural key).
func (m *RegistryDB) FindRecord(ctx context.Context, kind entities.Kind, naturalKey string) (entities.Record, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	switch kind {
	case entities.KindPerson:
		if p, ok := m.Persons[naturalKey]; ok {
			cp := *p
			return &cp, nil
		}
	case entities.KindFarRecord:
		if r, ok := m.FarRecords[naturalKey]; ok {
			cp := *r
			return &cp, nil
		}
	case entities.KindWraRecord:
		if r, ok := m.WraRecords[naturalKey]; ok {
			cp := *r
			return &cp, nil
		}
	case entities.KindIreiRecord:
		if r, ok := m.IreiRecords[naturalKey]; ok {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

// SaveRevision appends an audit-log entry.
func (m *RegistryDB) SaveRevision(ctx context.Context, rev *entities.Revision) error {
	m.SaveRevisionCallCount++
	if m.Err != nil {
		return m.Err
	}
	cp := *rev
	m.Revisions = append(m.Revisions, &cp)
	return nil
}

// FindRevisions returns entries for one record, newest first.
func (m *RegistryDB) FindRevisions(ctx context.Context, kind entities.Kind, recordID string) ([]entities.Revision, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []entities.Revision
	for i := len(m.Revisions) - 1; i >= 0; i-- {
		rev := m.Revisions[i]
		if rev.Model == kind && rev.RecordID == recordID {
			out = append(out, *rev)
		}
	}
	return out, nil
}

// RelatedFacilities returns stays grouped by person.
func (m *RegistryDB) RelatedFacilities(ctx context.Context) (map[string][]entities.FacilityStay, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make(map[string][]entities.FacilityStay)
	for _, pf := range m.PersonFacilities {
		stay := entities.FacilityStay{FacilityID: pf.FacilityID}
		if pf.EntryDate != nil {
			stay.EntryDate = pf.EntryDate.Format("2006-01-02")
		}
		if pf.ExitDate != nil {
			stay.ExitDate = pf.ExitDate.Format("2006-01-02")
		}
		out[pf.PersonID] = append(out[pf.PersonID], stay)
	}
	return out, nil
}

// RelatedFarRecords returns record summaries grouped by person.
func (m *RegistryDB) RelatedFarRecords(ctx context.Context) (map[string][]entities.FarSummary, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make(map[string][]entities.FarSummary)
	for _, k := range sortedKeys(m.FarRecords) {
		r := m.FarRecords[k]
		if r.PersonID != "" {
			out[r.PersonID] = append(out[r.PersonID], entities.FarSummary{FarRecordID: r.FarRecordID, LastName: r.LastName, FirstName: r.FirstName})
		}
	}
	return out, nil
}

// RelatedWraRecords returns record summaries grouped by person.
func (m *RegistryDB) RelatedWraRecords(ctx context.Context) (map[string][]entities.WraSummary, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make(map[string][]entities.WraSummary)
	for _, k := range sortedKeys(m.WraRecords) {
		r := m.WraRecords[k]
		if r.PersonID != "" {
			out[r.PersonID] = append(out[r.PersonID], entities.WraSummary{WraRecordID: r.WraRecordID, LastName: r.LastName, FirstName: r.FirstName})
		}
	}
	return out, nil
}

// FarRecordPersons returns linked person summaries keyed by record id.
func (m *RegistryDB) FarRecordPersons(ctx context.Context) (map[string]entities.PersonSummary, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make(map[string]entities.PersonSummary)
	for _, r := range m.FarRecords {
		if p, ok := m.Persons[r.PersonID]; ok {
			out[r.FarRecordID] = entities.PersonSummary{NRID: p.NRID, PreferredName: p.PreferredName}
		}
	}
	return out, nil
}

// WraRecordPersons returns linked person summaries keyed by record id.
func (m *RegistryDB) WraRecordPersons(ctx context.Context) (map[string]entities.PersonSummary, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make(map[string]entities.PersonSummary)
	for _, r := range m.WraRecords {
		if p, ok := m.Persons[r.PersonID]; ok {
			out[r.WraRecordID] = entities.PersonSummary{NRID: p.NRID, PreferredName: p.PreferredName}
		}
	}
	return out, nil
}

func normalizeName(name string) string {
	name = strings.ToLower(name)
	for _, cut := range []string{",", ".", "'", "\""} {
		name = strings.ReplaceAll(name, cut, "")
	}
	return name
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
