package mocks

import (
	"context"

	"github.com/denshoproject/namesdb-editor/internal/domain/ports"
)

// Docstore is a mock implementation of ports.Docstore.
type Docstore struct {
	Statuses []ports.IndexStatus
	Hits     []ports.PersonHit
	Err      error

	// Call tracking
	CreateIndicesCallCount int
	DeleteIndicesCallCount int
	PostRecordCallCount    int
	PostedDocs             []ports.Document
	SearchPersonsCallCount int
	SearchLastVector       []float32
	SearchLastLimit        int
}

// CreateIndices records the call.
func (m *Docstore) CreateIndices(ctx context.Context) error {
	m.CreateIndicesCallCount++
	return m.Err
}

// DeleteIndices records the call.
func (m *Docstore) DeleteIndices(ctx context.Context) error {
	m.DeleteIndicesCallCount++
	return m.Err
}

// Status returns the configured statuses.
func (m *Docstore) Status(ctx context.Context) ([]ports.IndexStatus, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Statuses, nil
}

// PostRecord collects posted documents.
func (m *Docstore) PostRecord(ctx context.Context, doc ports.Document) error {
	m.PostRecordCallCount++
	if m.Err != nil {
		return m.Err
	}
	m.PostedDocs = append(m.PostedDocs, doc)
	return nil
}

// SearchPersons returns the configured hits.
func (m *Docstore) SearchPersons(ctx context.Context, vector []float32, limit int) ([]ports.PersonHit, error) {
	m.SearchPersonsCallCount++
	m.SearchLastVector = vector
	m.SearchLastLimit = limit
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Hits, nil
}

// Close is a no-op.
func (m *Docstore) Close() error { return nil }
