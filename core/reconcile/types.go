package reconcile

import (
	"encoding/json"
	"time"
)

// NoClassroom is the placeholder shown when a source omits the classroom.
const NoClassroom = "-"

// RowKind tells the bucket builder what a source row denotes.
type RowKind string

const (
	// KindAbsence is a teacher absent during the period.
	KindAbsence RowKind = "absence"
	// KindAvailable is a teacher free to cover during the period.
	KindAvailable RowKind = "available"
)

// Row is the source-agnostic record produced by every source adapter.
type Row struct {
	Kind      RowKind
	Teacher   string
	Classroom string
	// Period is the raw, unnormalized hour label as the source provided it.
	Period string
	// Date is the YYYY-MM-DD day of the record, when the source knows it.
	Date string
}

// Absence is a teacher's unavailability for a class during a period.
type Absence struct {
	Teacher   string     `json:"teacher"`
	Classroom string     `json:"classroom"`
	Covered   bool       `json:"covered"`
	CoveredBy *string    `json:"covered_by,omitempty"`
	CoveredAt *time.Time `json:"covered_at,omitempty"`
}

// Bucket is the reconciled view of one period.
type Bucket struct {
	Period    Period    `json:"period"`
	Absences  []Absence `json:"absences"`
	Available []string  `json:"available_substitutes"`
}

// Buckets is the ordered seven-entry Period to Bucket mapping.
type Buckets struct {
	items [len(displayOrder)]Bucket
}

// NewBuckets returns seven empty buckets in display order.
func NewBuckets() *Buckets {
	b := &Buckets{}
	for i, p := range displayOrder {
		b.items[i] = Bucket{Period: p, Absences: []Absence{}, Available: []string{}}
	}
	return b
}

// Get returns the bucket for p, or nil when p is not canonical.
func (b *Buckets) Get(p Period) *Bucket {
	idx := p.Index()
	if idx < 0 {
		return nil
	}
	return &b.items[idx]
}

// List returns a copy of the buckets in display order.
func (b *Buckets) List() []Bucket {
	out := make([]Bucket, len(b.items))
	for i, item := range b.items {
		out[i] = Bucket{
			Period:    item.Period,
			Absences:  append([]Absence{}, item.Absences...),
			Available: append([]string{}, item.Available...),
		}
	}
	return out
}

// HasData reports whether any bucket holds an absence or a substitute.
func (b *Buckets) HasData() bool {
	for _, item := range b.items {
		if len(item.Absences) > 0 || len(item.Available) > 0 {
			return true
		}
	}
	return false
}

// MarshalJSON encodes the buckets as an ordered array.
func (b *Buckets) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.List())
}

// Summary holds aggregate counts over all buckets.
type Summary struct {
	Absences  int `json:"absences"`
	Covered   int `json:"covered"`
	Available int `json:"available"`
}

// Summarize counts absences, covered absences and remaining substitute slots.
func Summarize(b *Buckets) Summary {
	var s Summary
	for _, item := range b.items {
		s.Absences += len(item.Absences)
		s.Available += len(item.Available)
		for _, a := range item.Absences {
			if a.Covered {
				s.Covered++
			}
		}
	}
	return s
}
