package sources

import (
	"context"
	"testing"

	"guardias/core/database"
	"guardias/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

var reportColumns = []string{"report_id", "hora_inicio", "profesor_falta", "aula", "profesor_guardia"}

func TestMySQLSource_Load(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("FROM reportes r").WillReturnRows(sqlmock.NewRows(reportColumns).
		AddRow(1, "08:15:00", "Luis Mora", "1º ESO A", "Ana García").
		AddRow(1, "08:15:00", "Luis Mora", "1º ESO A", "Pedro T.").
		AddRow(2, "10:15:00", "Eva Ruiz", nil, nil))

	b, err := NewMySQLSource(db).Load(context.Background(), Query{})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, 2, b.Meta["reports"])
	assert.Len(t, b.Rows, 4)

	buckets := reconcile.Build(b.Rows)
	first := buckets.Get(reconcile.First)
	assert.Equal(t, []reconcile.Absence{{Teacher: "Luis Mora", Classroom: "1º ESO A"}}, first.Absences)
	assert.Equal(t, []string{"Ana García", "Pedro T."}, first.Available)
	assert.Equal(t, "-", buckets.Get(reconcile.Third).Absences[0].Classroom)
}

func TestMySQLSource_LoadByDate(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`WHERE r\.fecha = \?`).
		WithArgs("2026-02-12").
		WillReturnRows(sqlmock.NewRows(reportColumns))

	b, err := NewMySQLSource(db).Load(context.Background(), Query{Date: "2026-02-12"})
	require.NoError(t, err)
	assert.Empty(t, b.Rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLSource_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("FROM reportes r").WillReturnError(assert.AnError)

	_, err := NewMySQLSource(db).Load(context.Background(), Query{})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestMySQLSource_NoDatabase(t *testing.T) {
	_, err := NewMySQLSource(nil).Load(context.Background(), Query{})
	assert.ErrorIs(t, err, database.ErrDisabled)
}
