package entities

import (
	"fmt"
	"time"
)

// Sentinel values used when a save arrives without actor context. Kept
// exactly as stored in existing audit data.
const (
	UnknownUsername = "UNKNOWN"
	DefaultNote     = "DEFAULT NOTE TEXT"
)

// Revision is one immutable audit-log entry capturing a detected change
// to a tracked record. The subject is referenced by a (model, natural
// key) pair rather than a row id, so one table serves every model.
type Revision struct {
	ID        string    `json:"id"`
	Model     Kind      `json:"model"`
	RecordID  string    `json:"record_id"`
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username"`
	Note      string    `json:"note"`
	Diff      string    `json:"diff"`
}

func (r *Revision) String() string {
	return fmt.Sprintf("<Revision %s %s %s %s>", r.Model, r.RecordID, r.Timestamp.Format(time.RFC3339), r.Username)
}

// CreatedDiff is the diff text recorded for the first save of a record,
// when there is no prior version to diff against.
func CreatedDiff(naturalKey string) string {
	return fmt.Sprintf("%s: object created", naturalKey)
}
