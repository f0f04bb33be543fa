package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_ThirdPeriod(t *testing.T) {
	b := Build([]Row{
		{Kind: KindAbsence, Teacher: "A", Classroom: "Room1", Period: "3rd 3º"},
		{Kind: KindAvailable, Teacher: "B", Period: "3"},
	})

	third := b.Get(Third)
	require.NotNil(t, third)
	assert.Equal(t, []Absence{{Teacher: "A", Classroom: "Room1"}}, third.Absences)
	assert.Equal(t, []string{"B"}, third.Available)

	for _, p := range Periods() {
		if p == Third {
			continue
		}
		assert.Empty(t, b.Get(p).Absences, p)
		assert.Empty(t, b.Get(p).Available, p)
	}
}

func TestBuild_RecessNeverHasSubstitutes(t *testing.T) {
	b := Build([]Row{
		{Kind: KindAvailable, Teacher: "B", Period: "Recreo"},
		{Kind: KindAbsence, Teacher: "A", Period: "Recreo"},
	})
	b.AddAvailableEverywhere("C")

	recess := b.Get(Recess)
	assert.Empty(t, recess.Available)
	assert.Len(t, recess.Absences, 1)
	assert.Equal(t, []string{"C"}, b.Get(Sixth).Available)
}

func TestBuild_MissingFields(t *testing.T) {
	b := Build([]Row{
		{Kind: KindAbsence, Teacher: "A"},
		{Kind: "", Teacher: "B", Period: "whenever"},
	})

	first := b.Get(First)
	assert.Equal(t, NoClassroom, first.Absences[0].Classroom)
	// Rows not typed as absences count as available substitutes.
	assert.Equal(t, []string{"B"}, first.Available)
}

func TestBuckets_JSON(t *testing.T) {
	b := Build([]Row{{Kind: KindAbsence, Teacher: "Marta Sanchez", Classroom: "2º ESO A", Period: "1"}})

	data, err := json.Marshal(b)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 7)
	assert.Equal(t, "1ª Hora", decoded[0]["period"])
	assert.Equal(t, "Recreo", decoded[3]["period"])
	assert.Equal(t, []any{}, decoded[1]["available_substitutes"])

	absence := decoded[0]["absences"].([]any)[0].(map[string]any)
	assert.Equal(t, "Marta Sanchez", absence["teacher"])
	assert.Equal(t, false, absence["covered"])
	assert.NotContains(t, absence, "covered_by")
}

func TestBuckets_ListIsACopy(t *testing.T) {
	b := Build([]Row{{Kind: KindAvailable, Teacher: "B", Period: "2"}})
	list := b.List()
	list[1].Available[0] = "Z"
	assert.Equal(t, []string{"B"}, b.Get(Second).Available)
	assert.True(t, b.HasData())
	assert.False(t, NewBuckets().HasData())
}
