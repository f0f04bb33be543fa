package reconcile

import "strings"

// UnknownTeacher is used when a record carries no usable name.
const UnknownTeacher = "Profesor desconocido"

// FullName builds a display name. A pre-joined flat name wins verbatim; otherwise
// given and family names are joined, or whichever one exists is used alone.
func FullName(given, family, flat string) string {
	if flat != "" {
		return flat
	}
	given = strings.TrimSpace(given)
	family = strings.TrimSpace(family)
	switch {
	case given != "" && family != "":
		return given + " " + family
	case given != "":
		return given
	case family != "":
		return family
	default:
		return UnknownTeacher
	}
}

// dedupKey identifies a row for duplicate detection.
func dedupKey(r Row) string {
	name := strings.Join(strings.Fields(r.Teacher), " ")
	return string(r.Kind) + "\x00" + name + "\x00" + r.Date + "\x00" + string(Normalize(r.Period))
}

// Dedup keeps the first row for every (kind, name, date, canonical period) key, in
// iteration order. Later duplicates are dropped without being reported.
//
// Kind is part of the key on purpose: a teacher listed both absent and free in
// the same period keeps both rows so CrossFilter can resolve them.
func Dedup(rows []Row) []Row {
	seen := make(map[string]struct{}, len(rows))
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		key := dedupKey(r)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
