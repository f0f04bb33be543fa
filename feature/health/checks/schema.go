package checks

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"guardias/core/database"

	"gorm.io/gorm"
)

// SchemaReport is the result of comparing the live tables with the gorm models.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

type tabler interface {
	TableName() string
}

// CheckSchema verifies each model's table, using the gorm tags as the source of truth.
// A table that cannot be inspected is reported in Errors rather than failing the whole check.
func CheckSchema(db *gorm.DB, models ...any) (*SchemaReport, error) {
	if db == nil {
		return nil, database.ErrDisabled
	}

	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for _, model := range models {
		typ := reflect.TypeOf(model)
		if typ.Kind() == reflect.Ptr {
			typ = typ.Elem()
		}
		t, ok := reflect.New(typ).Interface().(tabler)
		if !ok {
			return nil, fmt.Errorf("model %s does not implement TableName", typ.Name())
		}
		tableName := t.TableName()

		actual, err := database.GetTableColumns(db, tableName)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", tableName, err))
			report.Matched = false
			continue
		}
		if len(actual) == 0 {
			report.Errors = append(report.Errors, fmt.Sprintf("Table %s not found", tableName))
			report.Matched = false
			continue
		}

		tbl := compareTable(typ, actual)
		if tbl.Status != "ok" {
			report.Matched = false
		}
		report.Tables[tableName] = tbl
	}

	sort.Strings(report.Errors)
	return report, nil
}

func compareTable(typ reflect.Type, actual []database.ColumnInfo) TableReport {
	tbl := TableReport{
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Status:         "ok",
	}

	byName := make(map[string]database.ColumnInfo, len(actual))
	for _, col := range actual {
		byName[col.Field] = col
	}

	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("gorm")
		colName := parseGormColumn(tag)
		if colName == "" {
			continue
		}

		col, exists := byName[colName]
		if !exists {
			tbl.MissingColumns = append(tbl.MissingColumns, colName)
			tbl.Status = "error"
			continue
		}

		// Only explicit gorm types are compared, as a substring of the live type.
		expType := strings.ToLower(parseGormType(tag))
		if expType != "" && !strings.Contains(col.Type, expType) {
			tbl.TypeMismatches = append(tbl.TypeMismatches,
				fmt.Sprintf("%s: expected %s, got %s", colName, expType, col.Type))
			tbl.Status = "error"
		}
	}
	return tbl
}

func parseGormColumn(tag string) string {
	return tagValue(tag, "column:")
}

func parseGormType(tag string) string {
	return tagValue(tag, "type:")
}

func tagValue(tag, key string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, key) {
			return strings.TrimPrefix(p, key)
		}
	}
	return ""
}
