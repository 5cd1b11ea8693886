// Package services contains the domain logic for loading, saving,
// publishing and reconciling registry records.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/denshoproject/namesdb-editor/internal/domain/entities"
	"github.com/denshoproject/namesdb-editor/internal/domain/ports"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// diffContextLines is the unified-diff context size for revision diffs.
const diffContextLines = 1

// RevisionService stages and commits audit-log entries. The two steps
// are separate on purpose: Stage is pure change detection, Commit is the
// only place a Revision row gets written, and every call site shows both.
type RevisionService struct {
	db ports.RegistryDB
}

// NewRevisionService creates a new revision service.
func NewRevisionService(db ports.RegistryDB) *RevisionService {
	return &RevisionService{db: db}
}

// Stage compares the incoming record against its last persisted version
// and returns the diff text plus whether anything changed. A nil old
// record means creation, which always counts as a change.
//
// Change detection is asymmetric: a field whose new value is empty never
// marks the record changed, while a field acquiring or altering a
// non-empty value does. Existing audit data depends on this, so it is
// preserved as-is.
func (s *RevisionService) Stage(rec, old entities.Record) (diff string, changed bool) {
	if old == nil {
		return entities.CreatedDiff(rec.NaturalKey()), true
	}
	oldValues := make(map[string]string)
	for _, fv := range old.FieldValues() {
		oldValues[fv.Name] = fv.Value
	}
	for _, fv := range rec.FieldValues() {
		if fv.Value != "" && fv.Value != oldValues[fv.Name] {
			changed = true
			break
		}
	}
	if !changed {
		return "", false
	}
	return makeDiff(old, rec), true
}

// Commit writes one audit-log entry for a staged change. Missing actor
// context is replaced with sentinels rather than failing the save.
func (s *RevisionService) Commit(ctx context.Context, rec entities.Record, diff, username, note string) error {
	if username == "" {
		username = entities.UnknownUsername
	}
	if note == "" {
		note = entities.DefaultNote
	}
	rev := &entities.Revision{
		ID:        uuid.New().String(),
		Model:     rec.Kind(),
		RecordID:  rec.NaturalKey(),
		Timestamp: timeNow(),
		Username:  username,
		Note:      note,
		Diff:      diff,
	}
	if err := s.db.SaveRevision(ctx, rev); err != nil {
		return fmt.Errorf("saving revision: %w", err)
	}
	return nil
}

// Revisions returns the audit trail for one record, newest first.
func (s *RevisionService) Revisions(ctx context.Context, kind entities.Kind, recordID string) ([]entities.Revision, error) {
	return s.db.FindRevisions(ctx, kind, recordID)
}

// jsonLines renders a record one JSON object per field, one field per
// line, the form the revision diffs are computed over. Values are
// already stringified by FieldValues, so this cannot fail; a marshal
// error degrades to a raw key:value line rather than aborting the save.
func jsonLines(rec entities.Record) []string {
	fvs := rec.FieldValues()
	lines := make([]string, 0, len(fvs))
	for _, fv := range fvs {
		b, err := json.Marshal(map[string]string{fv.Name: fv.Value})
		if err != nil {
			lines = append(lines, fmt.Sprintf("{%q: %q}\n", fv.Name, fv.Value))
			continue
		}
		lines = append(lines, string(b)+"\n")
	}
	return lines
}

// makeDiff builds the unified-diff artifact between two versions of a
// record, labeled with their timestamps.
func makeDiff(old, rec entities.Record) string {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        jsonLines(old),
		B:        jsonLines(rec),
		FromFile: old.LastUpdated().Format(time.RFC3339),
		ToFile:   rec.LastUpdated().Format(time.RFC3339),
		Context:  diffContextLines,
	})
	if err != nil {
		// diff generation must never abort the owning save
		return fmt.Sprintf("diff unavailable: %v", err)
	}
	text = strings.ReplaceAll(text, "\n\n", "\n")
	return strings.TrimRight(text, "\n")
}
