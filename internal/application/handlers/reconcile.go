package handlers

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/denshoproject/namesdb-editor/internal/domain/services"
	"github.com/denshoproject/namesdb-editor/internal/infrastructure/parsers"
)

// ReconcileHandler handles matching external name lists against the
// registry.
type ReconcileHandler struct {
	service *services.ReconcileService
}

// NewReconcileHandler creates a new reconcile handler.
func NewReconcileHandler(service *services.ReconcileService) *ReconcileHandler {
	return &ReconcileHandler{
		service: service,
	}
}

// ReconcileOptions controls reconcile behavior.
type ReconcileOptions struct {
	Method   string
	FilePath string // output; empty means stdout
}

// reconcileHeader is the output column order.
var reconcileHeader = []string{
	"id", "fieldname", "namepart", "role", "n", "nr_id", "preferred_name", "score", "sample",
}

// Handle reads a CSV of (id, fieldname, names) rows, finds candidate
// persons for every name, and writes the candidates as CSV.
func (h *ReconcileHandler) Handle(ctx context.Context, inputPath string, opts ReconcileOptions) (int, error) {
	method := services.ReconcileMethod(opts.Method)
	if method == "" {
		method = services.MethodSQL
	}

	file, err := os.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	rows, err := parsers.ReadCSVRows(file)
	if err != nil {
		return 0, fmt.Errorf("parsing file: %w", err)
	}

	matches, err := h.service.SearchMulti(ctx, rows, method)
	if err != nil {
		return 0, err
	}

	out := make([][]string, len(matches))
	for i, m := range matches {
		out[i] = []string{
			m.ObjectID,
			m.FieldName,
			m.NamePart,
			m.Role,
			strconv.Itoa(m.N),
			m.NRID,
			m.PreferredName,
			strconv.FormatFloat(float64(m.Score), 'f', 3, 32),
			m.Sample,
		}
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

	if err := parsers.WriteCSV(w, reconcileHeader, out); err != nil {
		return 0, err
	}
	return len(out), nil
}
