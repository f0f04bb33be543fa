// Package reconcile is the period reconciliation engine behind the guardias panel.
//
// Every source (MySQL join rows, a spreadsheet CSV export, a JSON script feed or the
// document-store REST API) is turned by its adapter into a flat list of Row values
// tagged as absence or available substitute. The engine folds them into seven
// buckets, one per period of the school day, and overlays the coverage log.
//
// # Pipeline
//
//  1. Dedup (optional): first row per (kind, name, date, period) wins.
//  2. Build: normalize each row's hour label and append it to its bucket.
//  3. Roster (optional): teachers free in every teaching period.
//  4. CrossFilter (optional): a teacher absent in a period is not a substitute there.
//  5. ApplyCoverage: mark covered absences and take busy substitutes off the list.
//
// The view is rebuilt on every query; only the coverage Store outlives a request.
//
// # Period labels
//
// Normalize accepts ordinals ("3º", "3ª"), bare digits, start times ("10:15"),
// canonical labels ("3ª Hora") and the recess keyword. Anything else maps to the
// first period.
//
// # Usage
//
//	store := reconcile.NewMemoryStore()
//	buckets := reconcile.Reconcile(rows, reconcile.Options{Dedup: true}, store.List())
//	json.NewEncoder(w).Encode(buckets)
package reconcile
