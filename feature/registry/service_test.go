package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"guardias/core/database"
	"guardias/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
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

var absenceColumnNames = []string{
	"id", "fecha", "hora_inicio", "hora_fin", "tarea",
	"profesor_id", "profesor_nombre", "profesor_apellidos", "grupo_id", "grupo_nombre",
}

func TestListAbsences(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, zap.NewNop())

	rows := sqlmock.NewRows(absenceColumnNames).
		AddRow(7, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), "09:15", "10:15", "Ficha 4", 2, "Ana", "García", 3, "2º ESO A")

	mock.ExpectQuery("FROM reportes r JOIN profesores p ON r.profesor_id = p.id JOIN grupos g ON r.grupo_id = g.id WHERE r.fecha = \\? AND r.profesor_id = \\?").
		WithArgs("2025-01-10", 2).
		WillReturnRows(rows)

	items, err := svc.ListAbsences(context.Background(), AbsenceFilter{Fecha: "2025-01-10", ProfesorID: 2})
	require.NoError(t, err)
	require.Len(t, items, 1)

	got := items[0]
	assert.Equal(t, uint(7), got.ID)
	assert.Equal(t, "2025-01-10", got.Fecha)
	assert.Equal(t, reconcile.Second, got.Periodo)
	assert.Equal(t, "Ana García", got.ProfesorNombre)
	assert.Equal(t, "2º ESO A", got.GrupoNombre)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAbsence_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, zap.NewNop())

	mock.ExpectQuery("FROM reportes r").WillReturnRows(sqlmock.NewRows(absenceColumnNames))

	_, err := svc.GetAbsence(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAbsence_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `reportes`").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := svc.DeleteAbsence(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTeachers(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, zap.NewNop())

	rows := sqlmock.NewRows([]string{"id", "nombre", "apellidos"}).
		AddRow(1, "Ana", "García").
		AddRow(2, "Juan", "")

	mock.ExpectQuery("SELECT \\* FROM `profesores` ORDER BY nombre, apellidos").WillReturnRows(rows)

	items, err := svc.ListTeachers(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Ana García", items[0].NombreCompleto)
	assert.Equal(t, "Juan", items[1].NombreCompleto)
}

func TestGetTeacher_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, zap.NewNop())

	mock.ExpectQuery("SELECT \\* FROM `profesores` WHERE `profesores`.`id` = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "apellidos"}))

	_, err := svc.GetTeacher(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAvailableTeachers(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, zap.NewNop())

	rows := sqlmock.NewRows([]string{"id", "nombre", "apellidos"}).AddRow(3, "Marta", "Sánchez")

	mock.ExpectQuery("SELECT \\* FROM `profesores` WHERE id NOT IN \\(SELECT profesor_id FROM `reportes` WHERE .+\\) AND id NOT IN \\(SELECT profesor_guardia_id FROM `guardias` WHERE .+\\) ORDER BY apellidos").
		WithArgs("2025-01-10", "08:15", "08:15", "2025-01-10", "08:15").
		WillReturnRows(rows)

	items, err := svc.AvailableTeachers(context.Background(), "2025-01-10", "08:15")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Marta Sánchez", items[0].NombreCompleto)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableTeachers_CancelledContext(t *testing.T) {
	db, _ := setupMockDB(t)
	svc := NewService(db, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.AvailableTeachers(ctx, "2025-01-10", "08:15")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTeacherNames_Fallback(t *testing.T) {
	t.Run("no database", func(t *testing.T) {
		svc := NewService(nil, nil)
		items, fallback := svc.TeacherNames(context.Background())
		assert.True(t, fallback)
		assert.Equal(t, sampleTeachers(), items)
	})

	t.Run("query error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		svc := NewService(db, zap.NewNop())
		mock.ExpectQuery("FROM `grupos`").WillReturnError(errors.New("connection reset"))

		items, fallback := svc.GroupNames(context.Background())
		assert.True(t, fallback)
		assert.Equal(t, sampleGroups(), items)
	})
}

func TestService_Disabled(t *testing.T) {
	svc := NewService(nil, zap.NewNop())
	ctx := context.Background()

	assert.False(t, svc.Enabled())
	_, err := svc.ListAbsences(ctx, AbsenceFilter{})
	assert.ErrorIs(t, err, database.ErrDisabled)
	_, err = svc.AvailableTeachers(ctx, "2025-01-10", "08:15")
	assert.ErrorIs(t, err, database.ErrDisabled)
	assert.ErrorIs(t, svc.DeleteGuard(ctx, 1), database.ErrDisabled)
}

func TestClockTime(t *testing.T) {
	tests := map[string]string{
		"08:15":   "08:15",
		" 10:15 ": "10:15",
		"1":       "08:15",
		"3ª Hora": "10:15",
		"6":       "13:15",
		"recreo":  "recreo",
		"xyz":     "xyz",
	}
	for in, want := range tests {
		assert.Equal(t, want, ClockTime(in), in)
	}
}

func TestDateOnly(t *testing.T) {
	assert.Equal(t, "2025-01-10", dateOnly("2025-01-10T00:00:00Z"))
	assert.Equal(t, "2025-01-10", dateOnly("2025-01-10"))
	assert.Equal(t, "", dateOnly(""))
}
