package sources

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"guardias/core/reconcile"
)

// CSV column names of the published guard spreadsheet.
const (
	colRange     = "Rango"
	colOrder     = "Orden"
	colKind      = "Tipo"
	colTeacher   = "Profesor"
	colClassroom = "Ubicacion"
)

// CSVSource reads the spreadsheet export: one row per absence or guard slot.
type CSVSource struct {
	feed Remote
}

// NewCSVSource creates the "csv" source.
func NewCSVSource(feed Remote) *CSVSource {
	return &CSVSource{feed: feed}
}

func (s *CSVSource) Name() string {
	return "csv"
}

// Load returns every spreadsheet row; the export carries no dates, so q is ignored.
func (s *CSVSource) Load(ctx context.Context, _ Query) (*Batch, error) {
	rows, origin, err := s.feed.loadRows(ctx, "text/csv", ParseCSV)
	if err != nil {
		return nil, err
	}
	b := newBatch()
	b.Rows = rows
	b.Meta["origin"] = origin
	return b, nil
}

// ParseCSV reads a header-row CSV document into rows. Rows typed AUSENCIA or FALTA
// are absences; every other row is an available substitute.
func ParseCSV(data []byte) ([]reconcile.Row, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\ufeff"))))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []reconcile.Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := []reconcile.Row{}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		if isBlank(record) {
			continue
		}

		period := field(record, colRange)
		if period == "" {
			period = field(record, colOrder)
		}
		row := reconcile.Row{
			Kind:    reconcile.KindAvailable,
			Teacher: reconcile.FullName("", "", field(record, colTeacher)),
			Period:  period,
		}
		if isAbsenceKind(field(record, colKind)) {
			row.Kind = reconcile.KindAbsence
			row.Classroom = field(record, colClassroom)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isAbsenceKind(kind string) bool {
	switch strings.ToUpper(kind) {
	case "AUSENCIA", "FALTA":
		return true
	}
	return false
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
