package reconcile

// Options selects the optional reconciliation steps a source needs.
type Options struct {
	// Dedup drops repeated rows before they reach the buckets.
	Dedup bool
	// CrossFilter removes absent teachers from the substitutes of the same period.
	CrossFilter bool
	// Roster lists teachers available in every teaching period unless absent.
	Roster []string
}

// Reconcile rebuilds the per-period view from scratch:
// dedup, build, roster expansion, cross-filter, then coverage.
// It never fails; malformed input degrades to placeholders and the first period.
func Reconcile(rows []Row, opts Options, assignments []Assignment) *Buckets {
	if opts.Dedup {
		rows = Dedup(rows)
	}

	b := Build(rows)
	for _, name := range opts.Roster {
		b.AddAvailableEverywhere(name)
	}

	if opts.CrossFilter {
		CrossFilter(b)
	}

	ApplyCoverage(b, assignments)
	return b
}
