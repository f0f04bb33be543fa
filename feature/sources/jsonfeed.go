package sources

import (
	"context"
	"encoding/json"
	"fmt"

	"guardias/core/reconcile"
	"guardias/core/utils"
)

type jsonDocument struct {
	Faltas []struct {
		Hora     any    `json:"hora"`
		Profesor string `json:"profesor"`
		Aula     string `json:"aula"`
	} `json:"faltas"`
	Guardias []struct {
		Hora       any      `json:"hora"`
		Profesores []string `json:"profesores"`
	} `json:"guardias"`
}

// JSONSource reads the script feed: {"faltas": [...], "guardias": [...]}.
type JSONSource struct {
	feed Remote
}

// NewJSONSource creates the "json" source.
func NewJSONSource(feed Remote) *JSONSource {
	return &JSONSource{feed: feed}
}

func (s *JSONSource) Name() string {
	return "json"
}

// Load returns every absence and guard slot in the document; the feed carries no
// dates, so q is ignored.
func (s *JSONSource) Load(ctx context.Context, _ Query) (*Batch, error) {
	rows, origin, err := s.feed.loadRows(ctx, "application/json", ParseJSON)
	if err != nil {
		return nil, err
	}
	b := newBatch()
	b.Rows = rows
	b.Meta["origin"] = origin
	return b, nil
}

// ParseJSON decodes the feed document. Hours may be numbers or labels.
func ParseJSON(data []byte) ([]reconcile.Row, error) {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode json feed: %w", err)
	}

	rows := make([]reconcile.Row, 0, len(doc.Faltas))
	for _, f := range doc.Faltas {
		rows = append(rows, reconcile.Row{
			Kind:      reconcile.KindAbsence,
			Teacher:   reconcile.FullName("", "", f.Profesor),
			Classroom: f.Aula,
			Period:    utils.ToString(f.Hora),
		})
	}
	for _, g := range doc.Guardias {
		period := utils.ToString(g.Hora)
		for _, name := range g.Profesores {
			rows = append(rows, reconcile.Row{
				Kind:    reconcile.KindAvailable,
				Teacher: reconcile.FullName("", "", name),
				Period:  period,
			})
		}
	}
	return rows, nil
}
