package sources

import (
	"context"

	"guardias/core/reconcile"
)

// SampleRows is the demo dataset shown when the document store has nothing to offer.
func SampleRows() []reconcile.Row {
	first, _ := reconcile.Teaching(1)
	second, _ := reconcile.Teaching(2)
	return []reconcile.Row{
		{Kind: reconcile.KindAvailable, Teacher: "Juan Pérez", Period: string(first)},
		{Kind: reconcile.KindAvailable, Teacher: "Ana García", Period: string(first)},
		{Kind: reconcile.KindAbsence, Teacher: "Marta Sanchez", Classroom: "2º ESO A", Period: string(first)},
		{Kind: reconcile.KindAvailable, Teacher: "Pedro T.", Period: string(second)},
		{Kind: reconcile.KindAvailable, Teacher: "Isabel R.", Period: string(second)},
		{Kind: reconcile.KindAbsence, Teacher: "Francisco J.", Classroom: "3º ESO C", Period: string(second)},
	}
}

// SampleSource always serves SampleRows. It backs demos and the CLI when nothing is configured.
type SampleSource struct{}

func (SampleSource) Name() string {
	return "sample"
}

func (SampleSource) Load(_ context.Context, _ Query) (*Batch, error) {
	b := newBatch()
	b.Rows = SampleRows()
	b.Meta["origin"] = "sample"
	return b, nil
}
