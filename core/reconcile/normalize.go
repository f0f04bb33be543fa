package reconcile

import (
	"strconv"
	"strings"

	"guardias/core/utils"
)

// Rule names, in evaluation order.
const (
	RuleRecess   = "recess"
	RuleOrdinal  = "ordinal"
	RuleDigit    = "digit"
	RuleClock    = "clock"
	RuleLiteral  = "literal"
	RuleFallback = "fallback"
)

// clockStarts are the start times of the six teaching periods.
var clockStarts = [...]string{"08:15", "09:15", "10:15", "11:15", "12:15", "13:15"}

type rule struct {
	name   string
	period Period
	match  func(v string) bool
}

// rules is evaluated top to bottom; the first match wins.
var rules = buildRules()

func buildRules() []rule {
	table := []rule{{
		name:   RuleRecess,
		period: Recess,
		match: func(v string) bool {
			return strings.Contains(strings.ToLower(v), "recreo")
		},
	}}

	// Ordinal text in both genders: "3º", "3ª".
	for n, p := range teachingPeriods {
		d := strconv.Itoa(n + 1)
		table = append(table, rule{name: RuleOrdinal, period: p, match: func(v string) bool {
			return strings.Contains(v, d+"º") || strings.Contains(v, d+"ª")
		}})
	}

	for n, p := range teachingPeriods {
		d := strconv.Itoa(n + 1)
		table = append(table, rule{name: RuleDigit, period: p, match: func(v string) bool {
			return strings.TrimSpace(v) == d
		}})
	}

	// Clock times also match "08:15:00" from a MySQL TIME column.
	for n, p := range teachingPeriods {
		start := clockStarts[n]
		table = append(table, rule{name: RuleClock, period: p, match: func(v string) bool {
			return strings.Contains(v, start)
		}})
	}

	for _, p := range teachingPeriods {
		label := string(p)
		table = append(table, rule{name: RuleLiteral, period: p, match: func(v string) bool {
			return strings.Contains(v, label)
		}})
	}

	return table
}

// Match maps a free-form label to its canonical period and reports which rule fired.
// Unrecognized input, including the empty string, maps to the first period under
// RuleFallback. That lossy default is relied upon by existing feeds.
func Match(raw string) (Period, string) {
	if raw == "" {
		return First, RuleFallback
	}
	for _, r := range rules {
		if r.match(raw) {
			return r.period, r.name
		}
	}
	return First, RuleFallback
}

// Normalize maps a free-form label to exactly one canonical period.
func Normalize(raw string) Period {
	p, _ := Match(raw)
	return p
}

// NormalizeValue normalizes loosely typed hour fields (ints from SQL, floats from JSON, nil).
func NormalizeValue(v any) Period {
	return Normalize(utils.ToString(v))
}
