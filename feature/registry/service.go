package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"guardias/core/database"
	"guardias/core/reconcile"
	"guardias/feature/registry/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

const absenceColumns = `r.id, r.fecha, r.hora_inicio, r.hora_fin, r.tarea,
p.id AS profesor_id, p.nombre AS profesor_nombre, p.apellidos AS profesor_apellidos,
g.id AS grupo_id, g.nombre AS grupo_nombre`

type absenceRecord struct {
	ID                uint    `gorm:"column:id"`
	Fecha             string  `gorm:"column:fecha"`
	HoraInicio        string  `gorm:"column:hora_inicio"`
	HoraFin           *string `gorm:"column:hora_fin"`
	Tarea             string  `gorm:"column:tarea"`
	ProfesorID        uint    `gorm:"column:profesor_id"`
	ProfesorNombre    string  `gorm:"column:profesor_nombre"`
	ProfesorApellidos string  `gorm:"column:profesor_apellidos"`
	GrupoID           uint    `gorm:"column:grupo_id"`
	GrupoNombre       string  `gorm:"column:grupo_nombre"`
}

// AbsenceView is a reported absence joined with its teacher and group.
type AbsenceView struct {
	ID             uint             `json:"id"`
	Fecha          string           `json:"fecha"`
	HoraInicio     string           `json:"hora_inicio"`
	HoraFin        *string          `json:"hora_fin"`
	Tarea          string           `json:"tarea"`
	Periodo        reconcile.Period `json:"periodo"`
	ProfesorID     uint             `json:"profesor_id"`
	ProfesorNombre string           `json:"profesor_nombre"`
	GrupoID        uint             `json:"grupo_id"`
	GrupoNombre    string           `json:"grupo_nombre"`
}

func (r absenceRecord) view() AbsenceView {
	return AbsenceView{
		ID:             r.ID,
		Fecha:          dateOnly(r.Fecha),
		HoraInicio:     r.HoraInicio,
		HoraFin:        r.HoraFin,
		Tarea:          r.Tarea,
		Periodo:        reconcile.Normalize(r.HoraInicio),
		ProfesorID:     r.ProfesorID,
		ProfesorNombre: reconcile.FullName(r.ProfesorNombre, r.ProfesorApellidos, ""),
		GrupoID:        r.GrupoID,
		GrupoNombre:    r.GrupoNombre,
	}
}

// TeacherView adds the joined display name to a teacher.
type TeacherView struct {
	models.Teacher
	NombreCompleto string `json:"nombre_completo"`
}

func teacherView(t models.Teacher) TeacherView {
	return TeacherView{Teacher: t, NombreCompleto: t.FullName()}
}

// NamedItem is the {id, nombre} shape of the plain listings.
type NamedItem struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
}

// AbsenceFilter narrows ListAbsences. Zero values do not filter.
type AbsenceFilter struct {
	Fecha      string
	ProfesorID uint
	GrupoID    uint
}

// AbsenceInput creates or replaces a reported absence.
type AbsenceInput struct {
	ProfesorID uint    `json:"profesor_id" validate:"required"`
	GrupoID    uint    `json:"grupo_id" validate:"required"`
	HoraInicio string  `json:"hora_inicio" validate:"required"`
	HoraFin    *string `json:"hora_fin"`
	Tarea      string  `json:"tarea"`
	Fecha      string  `json:"fecha" validate:"required,datetime=2006-01-02"`
}

// TeacherInput creates a teacher.
type TeacherInput struct {
	Nombre    string `json:"nombre" validate:"required"`
	Apellidos string `json:"apellidos" validate:"required"`
}

// GroupInput creates a class group.
type GroupInput struct {
	Nombre string `json:"nombre" validate:"required"`
}

// GuardInput assigns a guard teacher to a reported absence.
type GuardInput struct {
	ReporteID         uint   `json:"reporte_id" validate:"required"`
	ProfesorGuardiaID uint   `json:"profesor_guardia_id" validate:"required"`
	Hora              string `json:"hora" validate:"required"`
	Fecha             string `json:"fecha" validate:"required,datetime=2006-01-02"`
}

// Service handles the school records: absences, teachers, groups and guards.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new registry service. A nil db disables every database operation.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, logger: logger}
}

// Enabled reports whether a database is configured.
func (s *Service) Enabled() bool {
	return s.db != nil
}

func (s *Service) conn(ctx context.Context) (*gorm.DB, error) {
	if s.db == nil {
		return nil, database.ErrDisabled
	}
	return s.db.WithContext(ctx), nil
}

func (s *Service) absenceQuery(ctx context.Context) (*gorm.DB, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	return db.Table("reportes r").
		Select(absenceColumns).
		Joins("JOIN profesores p ON r.profesor_id = p.id").
		Joins("JOIN grupos g ON r.grupo_id = g.id"), nil
}

// ListAbsences returns reported absences, newest date first.
func (s *Service) ListAbsences(ctx context.Context, f AbsenceFilter) ([]AbsenceView, error) {
	q, err := s.absenceQuery(ctx)
	if err != nil {
		return nil, err
	}
	if f.Fecha != "" {
		q = q.Where("r.fecha = ?", f.Fecha)
	}
	if f.ProfesorID != 0 {
		q = q.Where("r.profesor_id = ?", f.ProfesorID)
	}
	if f.GrupoID != 0 {
		q = q.Where("r.grupo_id = ?", f.GrupoID)
	}

	var records []absenceRecord
	if err := q.Order("r.fecha DESC, r.hora_inicio ASC").Scan(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list absences: %w", err)
	}

	views := make([]AbsenceView, 0, len(records))
	for _, r := range records {
		views = append(views, r.view())
	}
	return views, nil
}

// GetAbsence returns one reported absence.
func (s *Service) GetAbsence(ctx context.Context, id uint) (*AbsenceView, error) {
	q, err := s.absenceQuery(ctx)
	if err != nil {
		return nil, err
	}

	var records []absenceRecord
	if err := q.Where("r.id = ?", id).Limit(1).Scan(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get absence %d: %w", id, err)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	v := records[0].view()
	return &v, nil
}

// CreateAbsence stores a new reported absence.
func (s *Service) CreateAbsence(ctx context.Context, in AbsenceInput) (*AbsenceView, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	report := models.Report{
		ProfesorID: in.ProfesorID,
		GrupoID:    in.GrupoID,
		HoraInicio: in.HoraInicio,
		HoraFin:    in.HoraFin,
		Tarea:      in.Tarea,
		Fecha:      in.Fecha,
	}
	if err := db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create absence: %w", err)
	}
	return s.GetAbsence(ctx, report.ID)
}

// UpdateAbsence replaces every field of an existing absence.
func (s *Service) UpdateAbsence(ctx context.Context, id uint, in AbsenceInput) (*AbsenceView, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&models.Report{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to look up absence %d: %w", id, err)
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	err = db.Model(&models.Report{ID: id}).Updates(map[string]any{
		"profesor_id": in.ProfesorID,
		"grupo_id":    in.GrupoID,
		"hora_inicio": in.HoraInicio,
		"hora_fin":    in.HoraFin,
		"tarea":       in.Tarea,
		"fecha":       in.Fecha,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update absence %d: %w", id, err)
	}
	return s.GetAbsence(ctx, id)
}

// DeleteAbsence removes an absence.
func (s *Service) DeleteAbsence(ctx context.Context, id uint) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	res := db.Delete(&models.Report{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete absence %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListTeachers returns every teacher ordered by name.
func (s *Service) ListTeachers(ctx context.Context) ([]TeacherView, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var teachers []models.Teacher
	if err := db.Order("nombre, apellidos").Find(&teachers).Error; err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	views := make([]TeacherView, 0, len(teachers))
	for _, t := range teachers {
		views = append(views, teacherView(t))
	}
	return views, nil
}

// GetTeacher returns one teacher.
func (s *Service) GetTeacher(ctx context.Context, id uint) (*TeacherView, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var t models.Teacher
	if err := db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get teacher %d: %w", id, err)
	}
	v := teacherView(t)
	return &v, nil
}

// CreateTeacher stores a new teacher.
func (s *Service) CreateTeacher(ctx context.Context, in TeacherInput) (*TeacherView, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	t := models.Teacher{Nombre: strings.TrimSpace(in.Nombre), Apellidos: strings.TrimSpace(in.Apellidos)}
	if err := db.Create(&t).Error; err != nil {
		return nil, fmt.Errorf("failed to create teacher: %w", err)
	}
	v := teacherView(t)
	return &v, nil
}

// ListGroups returns every class group ordered by name.
func (s *Service) ListGroups(ctx context.Context) ([]models.Group, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var groups []models.Group
	if err := db.Order("nombre").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// GetGroup returns one class group.
func (s *Service) GetGroup(ctx context.Context, id uint) (*models.Group, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var g models.Group
	if err := db.First(&g, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get group %d: %w", id, err)
	}
	return &g, nil
}

// CreateGroup stores a new class group.
func (s *Service) CreateGroup(ctx context.Context, in GroupInput) (*models.Group, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	g := models.Group{Nombre: strings.TrimSpace(in.Nombre)}
	if err := db.Create(&g).Error; err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return &g, nil
}

// ListGuards returns guard assignments, optionally for one date.
func (s *Service) ListGuards(ctx context.Context, fecha string) ([]models.Guard, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	if fecha != "" {
		db = db.Where("fecha = ?", fecha)
	}
	var guards []models.Guard
	if err := db.Order("fecha DESC, hora ASC").Find(&guards).Error; err != nil {
		return nil, fmt.Errorf("failed to list guards: %w", err)
	}
	for i := range guards {
		guards[i].Fecha = dateOnly(guards[i].Fecha)
	}
	return guards, nil
}

// CreateGuard assigns a guard teacher to a reported absence.
func (s *Service) CreateGuard(ctx context.Context, in GuardInput) (*models.Guard, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	g := models.Guard{
		ReporteID:         in.ReporteID,
		ProfesorGuardiaID: in.ProfesorGuardiaID,
		Hora:              in.Hora,
		Fecha:             in.Fecha,
	}
	if err := db.Create(&g).Error; err != nil {
		return nil, fmt.Errorf("failed to create guard: %w", err)
	}
	return &g, nil
}

// DeleteGuard removes a guard assignment.
func (s *Service) DeleteGuard(ctx context.Context, id uint) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	res := db.Delete(&models.Guard{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete guard %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TeacherNames lists {id, nombre} for every teacher. When the database is
// unavailable it returns the sample roster and reports the fallback.
func (s *Service) TeacherNames(ctx context.Context) ([]NamedItem, bool) {
	teachers, err := s.ListTeachers(ctx)
	if err != nil {
		s.logUnavailable("teachers", err)
		return sampleTeachers(), true
	}
	items := make([]NamedItem, 0, len(teachers))
	for _, t := range teachers {
		items = append(items, NamedItem{ID: t.ID, Nombre: t.NombreCompleto})
	}
	return items, false
}

// GroupNames lists {id, nombre} for every group, with the same fallback as TeacherNames.
func (s *Service) GroupNames(ctx context.Context) ([]NamedItem, bool) {
	groups, err := s.ListGroups(ctx)
	if err != nil {
		s.logUnavailable("groups", err)
		return sampleGroups(), true
	}
	items := make([]NamedItem, 0, len(groups))
	for _, g := range groups {
		items = append(items, NamedItem{ID: g.ID, Nombre: g.Nombre})
	}
	return items, false
}

func (s *Service) logUnavailable(what string, err error) {
	if errors.Is(err, database.ErrDisabled) {
		return
	}
	s.logger.Warn("Database listing failed, serving sample data", zap.String("listing", what), zap.Error(err))
}

// AvailableTeachers returns teachers who are neither absent at hora on fecha nor
// already guarding at that time. hora is a clock time or any period label.
func (s *Service) AvailableTeachers(ctx context.Context, fecha, hora string) ([]TeacherView, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	at := ClockTime(hora)

	absent := db.Model(&models.Report{}).Select("profesor_id").
		Where("fecha = ? AND hora_inicio <= ? AND hora_fin >= ?", fecha, at, at)
	guarding := db.Model(&models.Guard{}).Select("profesor_guardia_id").
		Where("fecha = ? AND hora = ?", fecha, at)

	var teachers []models.Teacher
	err = db.Where("id NOT IN (?)", absent).
		Where("id NOT IN (?)", guarding).
		Order("apellidos").
		Find(&teachers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list available teachers: %w", err)
	}

	views := make([]TeacherView, 0, len(teachers))
	for _, t := range teachers {
		views = append(views, teacherView(t))
	}
	return views, nil
}

// ClockTime turns a period label into its start time; clock times pass through.
func ClockTime(hora string) string {
	hora = strings.TrimSpace(hora)
	if strings.Contains(hora, ":") {
		return hora
	}
	if p, rule := reconcile.Match(hora); rule != reconcile.RuleFallback {
		if start, ok := p.StartTime(); ok {
			return start
		}
	}
	return hora
}

// dateOnly trims a DATE read back as a timestamp to YYYY-MM-DD.
func dateOnly(s string) string {
	if len(s) > 10 && s[4] == '-' && s[7] == '-' {
		return s[:10]
	}
	return s
}
