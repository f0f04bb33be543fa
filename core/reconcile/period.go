package reconcile

// Period is one of the seven canonical slots of the teaching day.
type Period string

const (
	First  Period = "1ª Hora"
	Second Period = "2ª Hora"
	Third  Period = "3ª Hora"
	Recess Period = "Recreo"
	Fourth Period = "4ª Hora"
	Fifth  Period = "5ª Hora"
	Sixth  Period = "6ª Hora"
)

// displayOrder is the order periods are shown in: recess sits between the 3rd and 4th period.
var displayOrder = [...]Period{First, Second, Third, Recess, Fourth, Fifth, Sixth}

// teachingPeriods maps the ordinal 1..6 to its period.
var teachingPeriods = [...]Period{First, Second, Third, Fourth, Fifth, Sixth}

// Periods returns the seven canonical periods in display order.
func Periods() []Period {
	out := make([]Period, len(displayOrder))
	copy(out, displayOrder[:])
	return out
}

// Teaching returns the nth teaching period (1-based), or false if n is out of range.
func Teaching(n int) (Period, bool) {
	if n < 1 || n > len(teachingPeriods) {
		return "", false
	}
	return teachingPeriods[n-1], true
}

// Index returns the position of p in display order, or -1 for unknown labels.
func (p Period) Index() int {
	for i, candidate := range displayOrder {
		if candidate == p {
			return i
		}
	}
	return -1
}

// IsValid reports whether p is one of the canonical periods.
func (p Period) IsValid() bool {
	return p.Index() >= 0
}

// IsRecess reports whether p is the recess slot. Recess never has substitutes.
func (p Period) IsRecess() bool {
	return p == Recess
}

func (p Period) String() string {
	return string(p)
}

// StartTime returns the HH:MM start of a teaching period. Recess has none.
func (p Period) StartTime() (string, bool) {
	for n, candidate := range teachingPeriods {
		if candidate == p {
			return clockStarts[n], true
		}
	}
	return "", false
}
