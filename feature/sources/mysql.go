package sources

import (
	"context"
	"fmt"

	"guardias/core/database"
	"guardias/core/reconcile"

	"gorm.io/gorm"
)

const reportQuery = `SELECT r.id AS report_id, r.hora_inicio,
       CONCAT(p.nombre, ' ', p.apellidos) AS profesor_falta,
       g.nombre AS aula,
       CONCAT(pg.nombre, ' ', pg.apellidos) AS profesor_guardia
FROM reportes r
JOIN profesores p ON r.profesor_id = p.id
JOIN grupos g ON r.grupo_id = g.id
LEFT JOIN guardias gu ON gu.reporte_id = r.id
LEFT JOIN profesores pg ON gu.profesor_guardia_id = pg.id`

type reportRow struct {
	ReportID        uint    `gorm:"column:report_id"`
	HoraInicio      string  `gorm:"column:hora_inicio"`
	ProfesorFalta   *string `gorm:"column:profesor_falta"`
	Aula            *string `gorm:"column:aula"`
	ProfesorGuardia *string `gorm:"column:profesor_guardia"`
}

// MySQLSource reads reported absences and their guard teachers from the school database.
type MySQLSource struct {
	db *gorm.DB
}

// NewMySQLSource creates the "mysql" source. A nil db makes every Load fail with database.ErrDisabled.
func NewMySQLSource(db *gorm.DB) *MySQLSource {
	return &MySQLSource{db: db}
}

func (s *MySQLSource) Name() string {
	return "mysql"
}

// Load joins reports with their teacher, group and guards. A report with several
// guards yields one absence and one substitute row per guard.
func (s *MySQLSource) Load(ctx context.Context, q Query) (*Batch, error) {
	if s.db == nil {
		return nil, database.ErrDisabled
	}

	query := reportQuery
	var args []any
	if q.Date != "" {
		query += "\nWHERE r.fecha = ?"
		args = append(args, q.Date)
	}
	query += "\nORDER BY r.hora_inicio, r.id"

	var records []reportRow
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}

	b := newBatch()
	seen := make(map[uint]struct{}, len(records))
	for _, rec := range records {
		if _, dup := seen[rec.ReportID]; !dup && rec.ProfesorFalta != nil {
			seen[rec.ReportID] = struct{}{}
			row := reconcile.Row{
				Kind:    reconcile.KindAbsence,
				Teacher: *rec.ProfesorFalta,
				Period:  rec.HoraInicio,
				Date:    q.Date,
			}
			if rec.Aula != nil {
				row.Classroom = *rec.Aula
			}
			b.Rows = append(b.Rows, row)
		}
		if rec.ProfesorGuardia != nil {
			b.Rows = append(b.Rows, reconcile.Row{
				Kind:    reconcile.KindAvailable,
				Teacher: *rec.ProfesorGuardia,
				Period:  rec.HoraInicio,
				Date:    q.Date,
			})
		}
	}
	b.Meta["origin"] = "database"
	b.Meta["reports"] = len(seen)
	return b, nil
}
