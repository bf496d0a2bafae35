package dto

// EjercicioForm es el formulario de alta/edición de un ejercicio
// fiscal; las fechas viajan como YYYY-MM-DD.
type EjercicioForm struct {
	Anio                       int    `json:"anio"`
	FechaInicioEjercicio       string `json:"fechaInicioEjercicio"`
	FechaCierreEjercicio       string `json:"fechaCierreEjercicio"`
	FechaInicioCapturaProyecto string `json:"fechaInicioCapturaProyecto"`
	FechaCierreCapturaProyecto string `json:"fechaCierreCapturaProyecto"`
	Estatus                    string `json:"estatus"`
}

// CapturaDTO expone el resultado de las compuertas del ejercicio fiscal.
type CapturaDTO struct {
	EjercicioId    int  `json:"ejercicio_id"`
	Anio           int  `json:"anio"`
	Cerrado        bool `json:"cerrado"`
	PermiteCaptura bool `json:"permite_captura"`
}
