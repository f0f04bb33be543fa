package models

import "guardias/core/reconcile"

// Teacher represents the 'profesores' table.
type Teacher struct {
	ID        uint   `gorm:"primaryKey;column:id" json:"id"`
	Nombre    string `gorm:"column:nombre;type:varchar(100)" json:"nombre"`
	Apellidos string `gorm:"column:apellidos;type:varchar(150)" json:"apellidos"`
}

func (Teacher) TableName() string {
	return "profesores"
}

// FullName joins given and family names the same way every source does.
func (t Teacher) FullName() string {
	return reconcile.FullName(t.Nombre, t.Apellidos, "")
}

// Group represents the 'grupos' table (a class group, shown as the classroom).
type Group struct {
	ID     uint   `gorm:"primaryKey;column:id" json:"id"`
	Nombre string `gorm:"column:nombre;type:varchar(100)" json:"nombre"`
}

func (Group) TableName() string {
	return "grupos"
}

// Report represents the 'reportes' table: one reported absence.
// TIME columns carry no type tag; gorm would map type:time to a datetime.
type Report struct {
	ID         uint    `gorm:"primaryKey;column:id" json:"id"`
	ProfesorID uint    `gorm:"column:profesor_id" json:"profesor_id"`
	GrupoID    uint    `gorm:"column:grupo_id" json:"grupo_id"`
	HoraInicio string  `gorm:"column:hora_inicio" json:"hora_inicio"`
	HoraFin    *string `gorm:"column:hora_fin" json:"hora_fin"`
	Tarea      string  `gorm:"column:tarea;type:text" json:"tarea"`
	Fecha      string  `gorm:"column:fecha;type:date" json:"fecha"`
}

func (Report) TableName() string {
	return "reportes"
}

// Guard represents the 'guardias' table: a substitute assigned to a report.
type Guard struct {
	ID                uint   `gorm:"primaryKey;column:id" json:"id"`
	ReporteID         uint   `gorm:"column:reporte_id" json:"reporte_id"`
	ProfesorGuardiaID uint   `gorm:"column:profesor_guardia_id" json:"profesor_guardia_id"`
	Hora              string `gorm:"column:hora" json:"hora"`
	Fecha             string `gorm:"column:fecha;type:date" json:"fecha"`
}

func (Guard) TableName() string {
	return "guardias"
}

// All returns one instance of every model, in dependency order.
func All() []any {
	return []any{Teacher{}, Group{}, Report{}, Guard{}}
}
