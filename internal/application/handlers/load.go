// Package handlers adapts CLI input to the domain services.
package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/denshoproject/namesdb-editor/internal/domain/entities"
	"github.com/denshoproject/namesdb-editor/internal/domain/services"
	"github.com/denshoproject/namesdb-editor/internal/infrastructure/parsers"
)

// LoadHandler handles importing record files into the registry.
type LoadHandler struct {
	service *services.LoadService
}

// NewLoadHandler creates a new load handler.
func NewLoadHandler(service *services.LoadService) *LoadHandler {
	return &LoadHandler{
		service: service,
	}
}

// LoadOptions controls import behavior.
type LoadOptions struct {
	Format   string // "json", "csv", or "auto"
	Username string
	Note     string
	Offset   int
	Limit    int
}

// Handle imports records of the given kind from a file.
func (h *LoadHandler) Handle(ctx context.Context, kind string, filePath string, opts LoadOptions) (*services.LoadResult, error) {
	k := entities.Kind(kind)
	if !k.IsValid() {
		return nil, fmt.Errorf("unknown record kind %q (one of: %v)", kind, entities.Kinds)
	}

	var parser parsers.Parser
	if opts.Format == "" || opts.Format == "auto" {
		parser = parsers.ForFile(filePath)
	} else {
		parser = parsers.ForFormat(opts.Format)
	}
	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	rowds, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}
	if len(rowds) == 0 {
		return &services.LoadResult{}, nil
	}

	return h.service.LoadRowds(ctx, k, rowds, services.LoadOptions{
		Username: opts.Username,
		Note:     opts.Note,
		Offset:   opts.Offset,
		Limit:    opts.Limit,
	})
}
