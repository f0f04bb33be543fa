package registry

// sampleTeachers is served by /api/profesores when the database cannot answer.
func sampleTeachers() []NamedItem {
	return []NamedItem{
		{ID: 1, Nombre: "Juan Pérez"},
		{ID: 2, Nombre: "Ana García"},
		{ID: 3, Nombre: "Pedro T."},
		{ID: 4, Nombre: "Isabel R."},
		{ID: 5, Nombre: "Diego L."},
		{ID: 6, Nombre: "Mercedes S."},
		{ID: 7, Nombre: "Antonio M."},
		{ID: 8, Nombre: "Rosa T."},
	}
}

// sampleGroups is served by /api/grupos when the database cannot answer.
func sampleGroups() []NamedItem {
	return []NamedItem{
		{ID: 1, Nombre: "1º ESO A"},
		{ID: 2, Nombre: "1º ESO B"},
		{ID: 3, Nombre: "2º ESO A"},
		{ID: 4, Nombre: "2º ESO B"},
		{ID: 5, Nombre: "3º ESO A"},
		{ID: 6, Nombre: "3º ESO B"},
		{ID: 7, Nombre: "4º ESO A"},
		{ID: 8, Nombre: "4º ESO B"},
		{ID: 9, Nombre: "1º Bachillerato"},
		{ID: 10, Nombre: "2º Bachillerato"},
	}
}
