package reconcile

// Build folds a flat sequence of rows into fresh buckets.
// Missing classrooms become NoClassroom; no row can fail the batch.
func Build(rows []Row) *Buckets {
	b := NewBuckets()
	for _, row := range rows {
		b.Add(row)
	}
	return b
}

// Add places a single row into the bucket of its normalized period.
// Substitutes landing in recess are dropped.
func (b *Buckets) Add(row Row) {
	bucket := b.Get(Normalize(row.Period))

	switch row.Kind {
	case KindAbsence:
		classroom := row.Classroom
		if classroom == "" {
			classroom = NoClassroom
		}
		bucket.Absences = append(bucket.Absences, Absence{Teacher: row.Teacher, Classroom: classroom})
	default:
		if bucket.Period.IsRecess() {
			return
		}
		bucket.Available = append(bucket.Available, row.Teacher)
	}
}

// AddAvailableEverywhere lists name as available in every teaching period.
func (b *Buckets) AddAvailableEverywhere(name string) {
	for i := range b.items {
		if b.items[i].Period.IsRecess() {
			continue
		}
		b.items[i].Available = append(b.items[i].Available, name)
	}
}
