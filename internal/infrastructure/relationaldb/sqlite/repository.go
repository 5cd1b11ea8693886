// Package sqlite provides a SQLite implementation of the RegistryDB interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/denshoproject/namesdb-editor/internal/domain/entities"
	"github.com/denshoproject/namesdb-editor/internal/infrastructure/config"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Repository implements ports.RegistryDB using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.DatabaseConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist. Record
// tables store one TEXT column per field, matching the field lists the
// entities declare; the natural key is the primary key, surrogate ids
// exist only where SQLite needs them.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		recordTableDDL("persons", &entities.Person{}),
		recordTableDDL("far_records", &entities.FarRecord{}),
		recordTableDDL("wra_records", &entities.WraRecord{}),
		recordTableDDL("irei_records", &entities.IreiRecord{}),
		`CREATE INDEX IF NOT EXISTS idx_far_records_person ON far_records(person_id)`,
		`CREATE INDEX IF NOT EXISTS idx_wra_records_person ON wra_records(person_id)`,
		`CREATE INDEX IF NOT EXISTS idx_irei_records_person ON irei_records(person_id)`,
		`CREATE INDEX IF NOT EXISTS idx_persons_preferred ON persons(preferred_name)`,

		`CREATE TABLE IF NOT EXISTS facilities (
			facility_id TEXT PRIMARY KEY,
			facility_type TEXT NOT NULL DEFAULT '',
			facility_name TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS person_facilities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			person_id TEXT NOT NULL,
			facility_id TEXT NOT NULL,
			entry_date TEXT,
			exit_date TEXT,
			UNIQUE(person_id, facility_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_person_facilities_person ON person_facilities(person_id)`,

		`CREATE TABLE IF NOT EXISTS revisions (
			id TEXT PRIMARY KEY,
			model TEXT NOT NULL,
			record_id TEXT NOT NULL,
			timestamp TIMESTAMP NOT NULL,
			username TEXT NOT NULL,
			note TEXT NOT NULL,
			diff TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_revisions_record ON revisions(model, record_id)`,
	}
	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

// recordTableDDL builds the CREATE TABLE statement for a record kind.
// The first declared field is the natural key.
func recordTableDDL(table string, rec entities.Record) string {
	cols := entities.FieldNames(rec)
	defs := make([]string, len(cols))
	defs[0] = cols[0] + " TEXT PRIMARY KEY"
	for i := 1; i < len(cols); i++ {
		defs[i] = cols[i] + " TEXT NOT NULL DEFAULT ''"
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", table, strings.Join(defs, ",\n\t"))
}

// upsertQuery builds an INSERT ... ON CONFLICT DO UPDATE over all
// columns, keyed on the first.
func upsertQuery(table string, cols []string) string {
	placeholders := make([]string, len(cols))
	updates := make([]string, 0, len(cols)-1)
	for i, col := range cols {
		placeholders[i] = "?"
		if i > 0 {
			updates = append(updates, fmt.Sprintf("%s = excluded.%s", col, col))
		}
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT(%s) DO UPDATE SET %s",
		table,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		cols[0],
		strings.Join(updates, ", "),
	)
}

// saveRecord upserts a record, one column per declared field.
func (r *Repository) saveRecord(ctx context.Context, table string, rec entities.Record) error {
	cols := entities.FieldNames(rec)
	fields := entities.FieldMap(rec)
	args := make([]any, len(cols))
	for i, col := range cols {
		args[i] = fields[col]
	}
	if _, err := r.db.ExecContext(ctx, upsertQuery(table, cols), args...); err != nil {
		return fmt.Errorf("saving %s row: %w", table, err)
	}
	return nil
}

// scanRowd reads the current row into a column-name/value map.
func scanRowd(rows *sql.Rows) (map[string]string, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	values := make([]sql.NullString, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	rowd := make(map[string]string, len(cols))
	for i, col := range cols {
		rowd[col] = values[i].String
	}
	return rowd, nil
}

// restore rebuilds a record from a stored row. The same ApplyRowd path
// the loader uses, so stored and imported values get identical cleanup.
func restore(rec entities.Record, rowd map[string]string) {
	ts := rowd["timestamp"]
	delete(rowd, "timestamp")
	switch r := rec.(type) {
	case *entities.Person:
		r.ApplyRowd(rowd)
	case *entities.FarRecord:
		r.ApplyRowd(rowd)
	case *entities.WraRecord:
		r.ApplyRowd(rowd)
	case *entities.IreiRecord:
		r.ApplyRowd(rowd)
	}
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		rec.Touch(t)
	}
}

// findRowd fetches one row by natural key. Returns nil when absent.
func (r *Repository) findRowd(ctx context.Context, table, keyCol, key string) (map[string]string, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = ?", table, keyCol)
	rows, err := r.db.QueryContext(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	rowd, err := scanRowd(rows)
	if err != nil {
		return nil, fmt.Errorf("scanning %s row: %w", table, err)
	}
	return rowd, nil
}

// listRowds fetches rows ordered by natural key.
func (r *Repository) listRowds(ctx context.Context, table, keyCol string, limit, offset int) ([]map[string]string, error) {
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY %s ASC LIMIT ? OFFSET ?", table, keyCol)
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	var rowds []map[string]string
	for rows.Next() {
		rowd, err := scanRowd(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		rowds = append(rowds, rowd)
	}
	return rowds, rows.Err()
}

// SavePerson saves or updates a person.
func (r *Repository) SavePerson(ctx context.Context, p *entities.Person) error {
	return r.saveRecord(ctx, "persons", p)
}

// FindPerson finds a person by nr_id. Returns nil when absent.
func (r *Repository) FindPerson(ctx context.Context, nrID string) (*entities.Person, error) {
	rowd, err := r.findRowd(ctx, "persons", "nr_id", nrID)
	if err != nil || rowd == nil {
		return nil, err
	}
	p := &entities.Person{}
	restore(p, rowd)
	return p, nil
}

// ListPersons lists persons ordered by nr_id with pagination.
func (r *Repository) ListPersons(ctx context.Context, limit, offset int) ([]*entities.Person, error) {
	rowds, err := r.listRowds(ctx, "persons", "nr_id", limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*entities.Person, len(rowds))
	for i, rowd := range rowds {
		p := &entities.Person{}
		restore(p, rowd)
		result[i] = p
	}
	return result, nil
}

// CountPersons returns the number of persons.
func (r *Repository) CountPersons(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM persons").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting persons: %w", err)
	}
	return count, nil
}

// SearchPersonNames matches persons whose preferred name contains the
// pattern, case-insensitive. Stored names are normalized the same way
// query patterns are (lowercased, punctuation stripped), so
// "watanabe joe" matches "Watanabe, Joe".
func (r *Repository) SearchPersonNames(ctx context.Context, pattern string, limit int) ([]*entities.Person, error) {
	query := `
		SELECT * FROM persons
		WHERE replace(replace(replace(replace(lower(preferred_name),
			',', ''), '.', ''), '''', ''), '"', '') LIKE '%' || ? || '%'
		ORDER BY preferred_name ASC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, strings.ToLower(pattern), limit)
	if err != nil {
		return nil, fmt.Errorf("querying persons: %w", err)
	}
	defer rows.Close()

	var result []*entities.Person
	for rows.Next() {
		rowd, err := scanRowd(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning persons row: %w", err)
		}
		p := &entities.Person{}
		restore(p, rowd)
		result = append(result, p)
	}
	return result, rows.Err()
}

// PersonIDs returns the set of existing nr_ids.
func (r *Repository) PersonIDs(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT nr_id FROM persons")
	if err != nil {
		return nil, fmt.Errorf("querying person ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning person id: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// SaveFarRecord saves or updates a FAR record.
func (r *Repository) SaveFarRecord(ctx context.Context, rec *entities.FarRecord) error {
	return r.saveRecord(ctx, "far_records", rec)
}

// FindFarRecord finds a FAR record by id. Returns nil when absent.
func (r *Repository) FindFarRecord(ctx context.Context, farRecordID string) (*entities.FarRecord, error) {
	rowd, err := r.findRowd(ctx, "far_records", "far_record_id", farRecordID)
	if err != nil || rowd == nil {
		return nil, err
	}
	rec := &entities.FarRecord{}
	restore(rec, rowd)
	return rec, nil
}

// ListFarRecords lists FAR records ordered by id with pagination.
func (r *Repository) ListFarRecords(ctx context.Context, limit, offset int) ([]*entities.FarRecord, error) {
	rowds, err := r.listRowds(ctx, "far_records", "far_record_id", limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*entities.FarRecord, len(rowds))
	for i, rowd := range rowds {
		rec := &entities.FarRecord{}
		restore(rec, rowd)
		result[i] = rec
	}
	return result, nil
}

// SaveWraRecord saves or updates a WRA record.
func (r *Repository) SaveWraRecord(ctx context.Context, rec *entities.WraRecord) error {
	return r.saveRecord(ctx, "wra_records", rec)
}

// FindWraRecord finds a WRA record by id. Returns nil when absent.
func (r *Repository) FindWraRecord(ctx context.Context, wraRecordID string) (*entities.WraRecord, error) {
	rowd, err := r.findRowd(ctx, "wra_records", "wra_record_id", wraRecordID)
	if err != nil || rowd == nil {
		return nil, err
	}
	rec := &entities.WraRecord{}
	restore(rec, rowd)
	return rec, nil
}

// ListWraRecords lists WRA records ordered by id with pagination.
func (r *Repository) ListWraRecords(ctx context.Context, limit, offset int) ([]*entities.WraRecord, error) {
	rowds, err := r.listRowds(ctx, "wra_records", "wra_record_id", limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*entities.WraRecord, len(rowds))
	for i, rowd := range rowds {
		rec := &entities.WraRecord{}
		restore(rec, rowd)
		result[i] = rec
	}
	return result, nil
}

// SaveIreiRecord saves or updates an Irei record.
func (r *Repository) SaveIreiRecord(ctx context.Context, rec *entities.IreiRecord) error {
	return r.saveRecord(ctx, "irei_records", rec)
}

// FindIreiRecord finds an Irei record by id. Returns nil when absent.
func (r *Repository) FindIreiRecord(ctx context.Context, ireiID string) (*entities.IreiRecord, error) {
	rowd, err := r.findRowd(ctx, "irei_records", "irei_id", ireiID)
	if err != nil || rowd == nil {
		return nil, err
	}
	rec := &entities.IreiRecord{}
	restore(rec, rowd)
	return rec, nil
}

// ListIreiRecords lists Irei records ordered by id with pagination.
func (r *Repository) ListIreiRecords(ctx context.Context, limit, offset int) ([]*entities.IreiRecord, error) {
	rowds, err := r.listRowds(ctx, "irei_records", "irei_id", limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*entities.IreiRecord, len(rowds))
	for i, rowd := range rowds {
		rec := &entities.IreiRecord{}
		restore(rec, rowd)
		result[i] = rec
	}
	return result, nil
}

// SaveFacility saves or updates a facility.
func (r *Repository) SaveFacility(ctx context.Context, f *entities.Facility) error {
	query := `
		INSERT INTO facilities (facility_id, facility_type, facility_name)
		VALUES (?, ?, ?)
		ON CONFLICT(facility_id) DO UPDATE SET
			facility_type = excluded.facility_type,
			facility_name = excluded.facility_name
	`
	if _, err := r.db.ExecContext(ctx, query, f.FacilityID, f.FacilityType, f.FacilityName); err != nil {
		return fmt.Errorf("saving facility: %w", err)
	}
	return nil
}

// FindFacility finds a facility by id. Returns nil when absent.
func (r *Repository) FindFacility(ctx context.Context, facilityID string) (*entities.Facility, error) {
	query := "SELECT facility_id, facility_type, facility_name FROM facilities WHERE facility_id = ?"
	row := r.db.QueryRowContext(ctx, query, facilityID)

	var f entities.Facility
	err := row.Scan(&f.FacilityID, &f.FacilityType, &f.FacilityName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning facility: %w", err)
	}
	return &f, nil
}

// ListFacilities lists all facilities ordered by id.
func (r *Repository) ListFacilities(ctx context.Context) ([]*entities.Facility, error) {
	query := "SELECT facility_id, facility_type, facility_name FROM facilities ORDER BY facility_id ASC"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying facilities: %w", err)
	}
	defer rows.Close()

	var result []*entities.Facility
	for rows.Next() {
		var f entities.Facility
		if err := rows.Scan(&f.FacilityID, &f.FacilityType, &f.FacilityName); err != nil {
			return nil, fmt.Errorf("scanning facility: %w", err)
		}
		result = append(result, &f)
	}
	return result, rows.Err()
}

// SavePersonFacility inserts or updates a person-facility stay.
func (r *Repository) SavePersonFacility(ctx context.Context, pf *entities.PersonFacility) error {
	query := `
		INSERT INTO person_facilities (person_id, facility_id, entry_date, exit_date)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(person_id, facility_id) DO UPDATE SET
			entry_date = excluded.entry_date,
			exit_date = excluded.exit_date
	`
	_, err := r.db.ExecContext(ctx, query,
		pf.PersonID,
		pf.FacilityID,
		formatNullableDate(pf.EntryDate),
		formatNullableDate(pf.ExitDate),
	)
	if err != nil {
		return fmt.Errorf("saving person facility: %w", err)
	}
	return nil
}

// FindPersonFacility finds a stay by person and facility. Returns nil
// when absent.
func (r *Repository) FindPersonFacility(ctx context.Context, personID, facilityID string) (*entities.PersonFacility, error) {
	query := `
		SELECT id, person_id, facility_id, entry_date, exit_date
		FROM person_facilities
		WHERE person_id = ? AND facility_id = ?
	`
	row := r.db.QueryRowContext(ctx, query, personID, facilityID)

	var pf entities.PersonFacility
	var entry, exit sql.NullString
	err := row.Scan(&pf.ID, &pf.PersonID, &pf.FacilityID, &entry, &exit)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning person facility: %w", err)
	}
	pf.EntryDate = parseNullableDate(entry)
	pf.ExitDate = parseNullableDate(exit)
	return &pf, nil
}

// FindRecord resolves any tracked record by (kind, natural key).
func (r *Repository) FindRecord(ctx context.Context, kind entities.Kind, naturalKey string) (entities.Record, error) {
	switch kind {
	case entities.KindPerson:
		p, err := r.FindPerson(ctx, naturalKey)
		if err != nil || p == nil {
			return nil, err
		}
		return p, nil
	case entities.KindFarRecord:
		rec, err := r.FindFarRecord(ctx, naturalKey)
		if err != nil || rec == nil {
			return nil, err
		}
		return rec, nil
	case entities.KindWraRecord:
		rec, err := r.FindWraRecord(ctx, naturalKey)
		if err != nil || rec == nil {
			return nil, err
		}
		return rec, nil
	case entities.KindIreiRecord:
		rec, err := r.FindIreiRecord(ctx, naturalKey)
		if err != nil || rec == nil {
			return nil, err
		}
		return rec, nil
	default:
		return nil, fmt.Errorf("kind %s is not tracked", kind)
	}
}

// SaveRevision appends an audit-log entry. Revisions are append-only.
func (r *Repository) SaveRevision(ctx context.Context, rev *entities.Revision) error {
	query := `
		INSERT INTO revisions (id, model, record_id, timestamp, username, note, diff)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		rev.ID,
		string(rev.Model),
		rev.RecordID,
		rev.Timestamp.Format(time.RFC3339Nano),
		rev.Username,
		rev.Note,
		rev.Diff,
	)
	if err != nil {
		return fmt.Errorf("saving revision: %w", err)
	}
	return nil
}

// FindRevisions returns entries for one record, newest first.
func (r *Repository) FindRevisions(ctx context.Context, kind entities.Kind, recordID string) ([]entities.Revision, error) {
	query := `
		SELECT id, model, record_id, timestamp, username, note, diff
		FROM revisions
		WHERE model = ? AND record_id = ?
		ORDER BY timestamp DESC
	`
	rows, err := r.db.QueryContext(ctx, query, string(kind), recordID)
	if err != nil {
		return nil, fmt.Errorf("querying revisions: %w", err)
	}
	defer rows.Close()

	var result []entities.Revision
	for rows.Next() {
		var rev entities.Revision
		var model, ts string
		if err := rows.Scan(&rev.ID, &model, &rev.RecordID, &ts, &rev.Username, &rev.Note, &rev.Diff); err != nil {
			return nil, fmt.Errorf("scanning revision: %w", err)
		}
		rev.Model = entities.Kind(model)
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			rev.Timestamp = t
		}
		result = append(result, rev)
	}
	return result, rows.Err()
}

// RelatedFacilities returns facility stays grouped by nr_id.
func (r *Repository) RelatedFacilities(ctx context.Context) (map[string][]entities.FacilityStay, error) {
	query := `
		SELECT person_id, facility_id, entry_date, exit_date
		FROM person_facilities
		ORDER BY person_id, entry_date
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying person facilities: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]entities.FacilityStay)
	for rows.Next() {
		var personID string
		var stay entities.FacilityStay
		var entry, exit sql.NullString
		if err := rows.Scan(&personID, &stay.FacilityID, &entry, &exit); err != nil {
			return nil, fmt.Errorf("scanning person facility: %w", err)
		}
		stay.EntryDate = entry.String
		stay.ExitDate = exit.String
		result[personID] = append(result[personID], stay)
	}
	return result, rows.Err()
}

// RelatedFarRecords returns FAR record stubs grouped by nr_id.
func (r *Repository) RelatedFarRecords(ctx context.Context) (map[string][]entities.FarSummary, error) {
	query := `
		SELECT person_id, far_record_id, last_name, first_name
		FROM far_records
		WHERE person_id != ''
		ORDER BY far_record_id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying far links: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]entities.FarSummary)
	for rows.Next() {
		var personID string
		var s entities.FarSummary
		if err := rows.Scan(&personID, &s.FarRecordID, &s.LastName, &s.FirstName); err != nil {
			return nil, fmt.Errorf("scanning far link: %w", err)
		}
		result[personID] = append(result[personID], s)
	}
	return result, rows.Err()
}

// RelatedWraRecords returns WRA record stubs grouped by nr_id.
func (r *Repository) RelatedWraRecords(ctx context.Context) (map[string][]entities.WraSummary, error) {
	query := `
		SELECT person_id, wra_record_id, lastname, firstname
		FROM wra_records
		WHERE person_id != ''
		ORDER BY wra_record_id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying wra links: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]entities.WraSummary)
	for rows.Next() {
		var personID string
		var s entities.WraSummary
		if err := rows.Scan(&personID, &s.WraRecordID, &s.LastName, &s.FirstName); err != nil {
			return nil, fmt.Errorf("scanning wra link: %w", err)
		}
		result[personID] = append(result[personID], s)
	}
	return result, rows.Err()
}

// FarRecordPersons returns linked person stubs keyed by far_record_id.
func (r *Repository) FarRecordPersons(ctx context.Context) (map[string]entities.PersonSummary, error) {
	query := `
		SELECT f.far_record_id, p.nr_id, p.preferred_name
		FROM far_records f
		JOIN persons p ON p.nr_id = f.person_id
	`
	return r.recordPersons(ctx, query)
}

// WraRecordPersons returns linked person stubs keyed by wra_record_id.
func (r *Repository) WraRecordPersons(ctx context.Context) (map[string]entities.PersonSummary, error) {
	query := `
		SELECT w.wra_record_id, p.nr_id, p.preferred_name
		FROM wra_records w
		JOIN persons p ON p.nr_id = w.person_id
	`
	return r.recordPersons(ctx, query)
}

func (r *Repository) recordPersons(ctx context.Context, query string) (map[string]entities.PersonSummary, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying record persons: %w", err)
	}
	defer rows.Close()

	result := make(map[string]entities.PersonSummary)
	for rows.Next() {
		var recordID string
		var p entities.PersonSummary
		if err := rows.Scan(&recordID, &p.NRID, &p.PreferredName); err != nil {
			return nil, fmt.Errorf("scanning record person: %w", err)
		}
		result[recordID] = p
	}
	return result, rows.Err()
}

func formatNullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

func parseNullableDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s.String)
	if err != nil {
		return nil
	}
	return &t
}
