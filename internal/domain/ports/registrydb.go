// Package ports defines the interfaces between the domain services and
// the infrastructure adapters.
package ports

import (
	"context"

	"github.com/denshoproject/namesdb-editor/internal/domain/entities"
)

// RegistryDB is the relational store for registry records and the audit
// log. Lookups are by natural key only; surrogate row ids never leave
// the adapter.
type RegistryDB interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// Person operations

	SavePerson(ctx context.Context, p *entities.Person) error
	FindPerson(ctx context.Context, nrID string) (*entities.Person, error)
	ListPersons(ctx context.Context, limit, offset int) ([]*entities.Person, error)
	CountPersons(ctx context.Context) (int, error)

	// SearchPersonNames matches persons whose preferred name contains the
	// pattern, case-insensitive.
	SearchPersonNames(ctx context.Context, pattern string, limit int) ([]*entities.Person, error)

	// PersonIDs returns the set of existing nr_ids, prefetched once per
	// load run so related-key resolution never queries per row.
	PersonIDs(ctx context.Context) (map[string]bool, error)

	// Source record operations

	SaveFarRecord(ctx context.Context, r *entities.FarRecord) error
	FindFarRecord(ctx context.Context, farRecordID string) (*entities.FarRecord, error)
	ListFarRecords(ctx context.Context, limit, offset int) ([]*entities.FarRecord, error)

	SaveWraRecord(ctx context.Context, r *entities.WraRecord) error
	FindWraRecord(ctx context.Context, wraRecordID string) (*entities.WraRecord, error)
	ListWraRecords(ctx context.Context, limit, offset int) ([]*entities.WraRecord, error)

	SaveIreiRecord(ctx context.Context, r *entities.IreiRecord) error
	FindIreiRecord(ctx context.Context, ireiID string) (*entities.IreiRecord, error)
	ListIreiRecords(ctx context.Context, limit, offset int) ([]*entities.IreiRecord, error)

	// Reference data

	SaveFacility(ctx context.Context, f *entities.Facility) error
	FindFacility(ctx context.Context, facilityID string) (*entities.Facility, error)
	ListFacilities(ctx context.Context) ([]*entities.Facility, error)

	SavePersonFacility(ctx context.Context, pf *entities.PersonFacility) error
	FindPersonFacility(ctx context.Context, personID, facilityID string) (*entities.PersonFacility, error)

	// FindRecord resolves any tracked record by (kind, natural key).
	// Returns nil without error when no such record exists.
	FindRecord(ctx context.Context, kind entities.Kind, naturalKey string) (entities.Record, error)

	// Audit log

	SaveRevision(ctx context.Context, rev *entities.Revision) error
	FindRevisions(ctx context.Context, kind entities.Kind, recordID string) ([]entities.Revision, error)

	// Relation maps for publish runs

	RelatedFacilities(ctx context.Context) (map[string][]entities.FacilityStay, error)
	RelatedFarRecords(ctx context.Context) (map[string][]entities.FarSummary, error)
	RelatedWraRecords(ctx context.Context) (map[string][]entities.WraSummary, error)
	FarRecordPersons(ctx context.Context) (map[string]entities.PersonSummary, error)
	WraRecordPersons(ctx context.Context) (map[string]entities.PersonSummary, error)
}
