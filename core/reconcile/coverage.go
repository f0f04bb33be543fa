package reconcile

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Assignment records a substitute covering an absent teacher during a period.
type Assignment struct {
	ID            string    `json:"id"`
	Substitute    string    `json:"substitute"`
	AbsentTeacher string    `json:"absent_teacher"`
	Period        Period    `json:"period"`
	Date          string    `json:"date,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Store is the coverage log. Entries are never removed.
type Store interface {
	// Add appends an assignment, filling in ID, CreatedAt and the canonical period.
	Add(a Assignment) Assignment
	// List returns a snapshot of all assignments in insertion order.
	List() []Assignment
}

// MemoryStore keeps the coverage log in process memory for the lifetime of the service.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Assignment
	now   func() time.Time
}

// NewMemoryStore creates an empty in-memory coverage log.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Add(a Assignment) Assignment {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now().UTC()
	}
	a.Period = Normalize(string(a.Period))

	s.mu.Lock()
	s.items = append(s.items, a)
	s.mu.Unlock()
	return a
}

func (s *MemoryStore) List() []Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Assignment, len(s.items))
	copy(out, s.items)
	return out
}

// ApplyCoverage annotates freshly built buckets with the coverage log.
// Assignment periods may be raw labels; they are normalized first.
//
// Within the assignment's period the first absence whose teacher equals
// AbsentTeacher is marked covered; when two absences share a name only the first
// is touched. The first occurrence of the substitute is removed from that period's
// available list. An assignment that matches no absence changes nothing else.
func ApplyCoverage(b *Buckets, assignments []Assignment) {
	for _, a := range assignments {
		bucket := b.Get(Normalize(string(a.Period)))
		if bucket == nil {
			continue
		}

		for i := range bucket.Absences {
			if bucket.Absences[i].Teacher != a.AbsentTeacher {
				continue
			}
			by := a.Substitute
			at := a.CreatedAt
			bucket.Absences[i].Covered = true
			bucket.Absences[i].CoveredBy = &by
			bucket.Absences[i].CoveredAt = &at
			break
		}

		for i, name := range bucket.Available {
			if name == a.Substitute {
				bucket.Available = append(bucket.Available[:i], bucket.Available[i+1:]...)
				break
			}
		}
	}
}
