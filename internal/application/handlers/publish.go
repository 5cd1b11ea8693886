package handlers

import (
	"context"
	"fmt"

	"github.com/denshoproject/namesdb-editor/internal/domain/entities"
	"github.com/denshoproject/namesdb-editor/internal/domain/ports"
	"github.com/denshoproject/namesdb-editor/internal/domain/services"
)

// PublishHandler handles search-index lifecycle and publishing.
type PublishHandler struct {
	service  *services.PublishService
	docstore ports.Docstore
}

// NewPublishHandler creates a new publish handler.
func NewPublishHandler(service *services.PublishService, docstore ports.Docstore) *PublishHandler {
	return &PublishHandler{
		service:  service,
		docstore: docstore,
	}
}

// Post publishes records of the given kind to the search index.
func (h *PublishHandler) Post(ctx context.Context, kind string, limit int) (*services.PublishResult, error) {
	k := entities.Kind(kind)
	if !k.IsValid() {
		return nil, fmt.Errorf("unknown record kind %q (one of: %v)", kind, entities.Kinds)
	}
	return h.service.Post(ctx, k, limit)
}

// CreateIndices creates the search indices if missing.
func (h *PublishHandler) CreateIndices(ctx context.Context) error {
	return h.docstore.CreateIndices(ctx)
}

// DestroyIndices removes the search indices and all their documents.
func (h *PublishHandler) DestroyIndices(ctx context.Context) error {
	return h.docstore.DeleteIndices(ctx)
}

// Status reports each index's existence and document count.
func (h *PublishHandler) Status(ctx context.Context) ([]ports.IndexStatus, error) {
	return h.docstore.Status(ctx)
}
