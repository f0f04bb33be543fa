// Package sources adapts each upstream of absences and guard slots to the
// source-agnostic rows the reconciliation engine consumes.
//
// Built-in sources:
//
//   - mysql: reports joined with teachers, groups and guards through GORM.
//   - csv: the published spreadsheet export, with a storage or file snapshot fallback.
//   - json: the script feed {"faltas", "guardias"}, with the same fallback chain.
//   - mongo: the document-store REST API; absences of one day plus the whole roster.
//   - sample: a fixed demo dataset.
//
// A Source only loads rows. Which reconciliation steps apply (dedup, roster,
// cross-filter) travels with the rows in Batch.Options.
package sources
