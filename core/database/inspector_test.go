package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE reportes (id INTEGER PRIMARY KEY, fecha TEXT NOT NULL, hora_inicio TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "reportes")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]ColumnInfo)
	for _, col := range columns {
		colMap[col.Field] = col
	}

	assert.Equal(t, "integer", colMap["id"].Type)
	assert.Equal(t, "PRI", colMap["id"].Key)
	assert.Equal(t, "NO", colMap["fecha"].Null)
	assert.Equal(t, "text", colMap["hora_inicio"].Type)

	// PRAGMA table_info returns an empty result for unknown tables
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE grupos (id INTEGER PRIMARY KEY, nombre TEXT)").Error)

	missing, err := MissingColumns(db, "grupos", []string{"id", "nombre"})
	require.NoError(t, err)
	assert.Empty(t, missing)

	missing, err = MissingColumns(db, "grupos", []string{"id", "nombre", "curso"})
	require.NoError(t, err)
	assert.Equal(t, []string{"curso"}, missing)

	_, err = MissingColumns(db, "profesores", []string{"id"})
	assert.EqualError(t, err, "table profesores not found")
}
