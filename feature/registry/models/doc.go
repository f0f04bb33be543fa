// Package models defines the GORM models of the school database: teachers,
// class groups, reported absences and guard assignments.
package models
