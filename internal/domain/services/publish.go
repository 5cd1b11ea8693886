package services

import (
	"context"
	"fmt"

	"github.com/denshoproject/namesdb-editor/internal/domain/entities"
	"github.com/denshoproject/namesdb-editor/internal/domain/ports"
)

// embedBatchSize caps how many names go to the embedder per call.
const embedBatchSize = 100

// PublishService projects registry records into the search index.
type PublishService struct {
	db  ports.RegistryDB
	ds  ports.Docstore
	emb ports.Embedder
}

// NewPublishService creates a new publish service.
func NewPublishService(db ports.RegistryDB, ds ports.Docstore, emb ports.Embedder) *PublishService {
	return &PublishService{db: db, ds: ds, emb: emb}
}

// PublishResult summarizes a publish run.
type PublishResult struct {
	Posted int
}

// related prefetches every relation map once per run. Publish runs touch
// thousands of records; per-record relation queries would dominate.
func (s *PublishService) related(ctx context.Context) (*entities.RelatedContext, error) {
	facilities, err := s.db.RelatedFacilities(ctx)
	if err != nil {
		return nil, fmt.Errorf("prefetching facility stays: %w", err)
	}
	farLinks, err := s.db.RelatedFarRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("prefetching far links: %w", err)
	}
	wraLinks, err := s.db.RelatedWraRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("prefetching wra links: %w", err)
	}
	personsByFar, err := s.db.FarRecordPersons(ctx)
	if err != nil {
		return nil, fmt.Errorf("prefetching far persons: %w", err)
	}
	personsByWra, err := s.db.WraRecordPersons(ctx)
	if err != nil {
		return nil, fmt.Errorf("prefetching wra persons: %w", err)
	}
	return &entities.RelatedContext{
		Facilities:   facilities,
		FarLinks:     farLinks,
		WraLinks:     wraLinks,
		PersonsByFar: personsByFar,
		PersonsByWra: personsByWra,
	}, nil
}

// Post publishes records of one kind, at most limit of them.
func (s *PublishService) Post(ctx context.Context, kind entities.Kind, limit int) (*PublishResult, error) {
	if limit <= 0 {
		limit = dumpDefaultLimit
	}
	related, err := s.related(ctx)
	if err != nil {
		return nil, err
	}
	switch kind {
	case entities.KindPerson:
		persons, err := s.db.ListPersons(ctx, limit, 0)
		if err != nil {
			return nil, fmt.Errorf("listing persons: %w", err)
		}
		docs := make([]ports.Document, len(persons))
		names := make([]string, len(persons))
		for i, p := range persons {
			docs[i] = ports.Document{Model: entities.KindPerson, ID: p.NRID, Body: p.Dict(related)}
			names[i] = p.PreferredName
		}
		return s.post(ctx, docs, names)
	case entities.KindFarRecord:
		recs, err := s.db.ListFarRecords(ctx, limit, 0)
		if err != nil {
			return nil, fmt.Errorf("listing farrecords: %w", err)
		}
		docs := make([]ports.Document, len(recs))
		names := make([]string, len(recs))
		for i, r := range recs {
			docs[i] = ports.Document{Model: entities.KindFarRecord, ID: r.FarRecordID, Body: r.Dict(related)}
			names[i] = r.DisplayName()
		}
		return s.post(ctx, docs, names)
	case entities.KindWraRecord:
		recs, err := s.db.ListWraRecords(ctx, limit, 0)
		if err != nil {
			return nil, fmt.Errorf("listing wrarecords: %w", err)
		}
		docs := make([]ports.Document, len(recs))
		names := make([]string, len(recs))
		for i, r := range recs {
			docs[i] = ports.Document{Model: entities.KindWraRecord, ID: r.WraRecordID, Body: r.Dict(related)}
			names[i] = r.DisplayName()
		}
		return s.post(ctx, docs, names)
	default:
		return nil, fmt.Errorf("kind %q cannot be published", kind)
	}
}

// post embeds the display names in batches and upserts every document.
func (s *PublishService) post(ctx context.Context, docs []ports.Document, names []string) (*PublishResult, error) {
	result := &PublishResult{}
	for start := 0; start < len(docs); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(docs) {
			end = len(docs)
		}
		vectors, err := s.emb.EmbedBatch(ctx, names[start:end])
		if err != nil {
			return result, fmt.Errorf("embedding names: %w", err)
		}
		if len(vectors) != end-start {
			return result, fmt.Errorf("embedder returned %d vectors for %d names", len(vectors), end-start)
		}
		for i := start; i < end; i++ {
			doc := docs[i]
			doc.Vector = vectors[i-start]
			if err := s.ds.PostRecord(ctx, doc); err != nil {
				return result, fmt.Errorf("posting %s %s: %w", doc.Model, doc.ID, err)
			}
			result.Posted++
		}
	}
	return result, nil
}
