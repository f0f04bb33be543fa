package reconcile

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func thirdPeriodBuckets() *Buckets {
	return Build([]Row{
		{Kind: KindAbsence, Teacher: "A", Classroom: "Room1", Period: "3º"},
		{Kind: KindAvailable, Teacher: "B", Period: "3º"},
		{Kind: KindAvailable, Teacher: "B", Period: "4º"},
	})
}

func TestApplyCoverage(t *testing.T) {
	b := thirdPeriodBuckets()
	at := time.Date(2026, 2, 12, 10, 20, 0, 0, time.UTC)

	ApplyCoverage(b, []Assignment{{Substitute: "B", AbsentTeacher: "A", Period: Third, CreatedAt: at}})

	third := b.Get(Third)
	absence := third.Absences[0]
	assert.True(t, absence.Covered)
	require.NotNil(t, absence.CoveredBy)
	assert.Equal(t, "B", *absence.CoveredBy)
	require.NotNil(t, absence.CoveredAt)
	assert.Equal(t, at, *absence.CoveredAt)
	assert.Empty(t, third.Available)

	// Other periods are unaffected.
	assert.Equal(t, []string{"B"}, b.Get(Fourth).Available)
}

func TestApplyCoverage_RawPeriodLabel(t *testing.T) {
	b := thirdPeriodBuckets()

	ApplyCoverage(b, []Assignment{{Substitute: "B", AbsentTeacher: "A", Period: "3"}})

	assert.True(t, b.Get(Third).Absences[0].Covered)
	assert.Empty(t, b.Get(Third).Available)
}

func TestApplyCoverage_FirstMatchOnly(t *testing.T) {
	b := Build([]Row{
		{Kind: KindAbsence, Teacher: "A", Classroom: "Room1", Period: "2"},
		{Kind: KindAbsence, Teacher: "A", Classroom: "Room2", Period: "2"},
		{Kind: KindAvailable, Teacher: "B", Period: "2"},
		{Kind: KindAvailable, Teacher: "B", Period: "2"},
	})

	ApplyCoverage(b, []Assignment{{Substitute: "B", AbsentTeacher: "A", Period: Second}})

	second := b.Get(Second)
	assert.True(t, second.Absences[0].Covered)
	assert.False(t, second.Absences[1].Covered)
	assert.Equal(t, []string{"B"}, second.Available)
}

func TestApplyCoverage_UnknownAbsenceIsNoOp(t *testing.T) {
	store := NewMemoryStore()
	store.Add(Assignment{Substitute: "X", AbsentTeacher: "Nobody", Period: "3"})

	b := thirdPeriodBuckets()
	before := b.List()

	ApplyCoverage(b, store.List())

	assert.Equal(t, before, b.List())
	assert.Len(t, store.List(), 1)
}

func TestApplyCoverage_SubstituteRemovedEvenWithoutAbsence(t *testing.T) {
	b := thirdPeriodBuckets()
	ApplyCoverage(b, []Assignment{{Substitute: "B", AbsentTeacher: "Nobody", Period: Third}})
	assert.Empty(t, b.Get(Third).Available)
	assert.False(t, b.Get(Third).Absences[0].Covered)
}

func TestMemoryStore_Add(t *testing.T) {
	store := NewMemoryStore()
	fixed := time.Date(2026, 2, 12, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	a := store.Add(Assignment{Substitute: "B", AbsentTeacher: "A", Period: "10:15", Date: "2026-02-12"})

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, Third, a.Period)
	assert.Equal(t, fixed, a.CreatedAt)
	assert.Equal(t, []Assignment{a}, store.List())
}

func TestMemoryStore_ConcurrentAdds(t *testing.T) {
	store := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Add(Assignment{Substitute: "B", AbsentTeacher: "A", Period: First})
			_ = store.List()
		}()
	}
	wg.Wait()
	assert.Len(t, store.List(), 50)
}
