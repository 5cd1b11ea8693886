package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/denshoproject/namesdb-editor/internal/domain/entities"
	"github.com/denshoproject/namesdb-editor/internal/domain/services"
	"github.com/denshoproject/namesdb-editor/internal/infrastructure/parsers"
)

// DumpHandler handles exporting registry records to CSV.
type DumpHandler struct {
	service *services.DumpService
}

// NewDumpHandler creates a new dump handler.
func NewDumpHandler(service *services.DumpService) *DumpHandler {
	return &DumpHandler{
		service: service,
	}
}

// DumpOptions controls export behavior.
type DumpOptions struct {
	Cols     []string
	Limit    int
	FilePath string // empty means stdout
}

// Handle exports records of the given kind.
func (h *DumpHandler) Handle(ctx context.Context, kind string, opts DumpOptions) (int, error) {
	k := entities.Kind(kind)
	if !k.IsValid() {
		return 0, fmt.Errorf("unknown record kind %q (one of: %v)", kind, entities.Kinds)
	}

	header, rows, err := h.service.Dump(ctx, k, opts.Cols, opts.Limit)
	if err != nil {
		return 0, err
	}

	var w io.Writer = os.Stdout
	if opts.FilePath != "" {
		file, err := os.Create(opts.FilePath)
		if err != nil {
			return 0, fmt.Errorf("creating file: %w", err)
		}
		defer file.Close()
		w = file
	}

	if err := parsers.WriteCSV(w, header, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
