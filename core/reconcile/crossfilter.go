package reconcile

// CrossFilter removes, period by period, every available substitute whose name is
// also listed as absent in that same period. Other periods are left alone.
func CrossFilter(b *Buckets) {
	for i := range b.items {
		bucket := &b.items[i]
		if len(bucket.Absences) == 0 || len(bucket.Available) == 0 {
			continue
		}

		absent := make(map[string]struct{}, len(bucket.Absences))
		for _, a := range bucket.Absences {
			absent[a.Teacher] = struct{}{}
		}

		kept := bucket.Available[:0]
		for _, name := range bucket.Available {
			if _, ok := absent[name]; !ok {
				kept = append(kept, name)
			}
		}
		bucket.Available = kept
	}
}
