package models

import "time"

// EjercicioFiscal delimita el periodo anual y las ventanas de captura
// de proyectos. Las fechas viajan como YYYY-MM-DD en el CRUD y se
// normalizan a time.Time en el cliente; una fecha cero significa "no
// configurada" y cierra la compuerta correspondiente.
type EjercicioFiscal struct {
	Id                 int       `json:"id"`
	Anio               int       `json:"anio"`
	FechaInicio        time.Time `json:"fecha_inicio_ejercicio"`
	FechaCierre        time.Time `json:"fecha_cierre_ejercicio"`
	FechaInicioCaptura time.Time `json:"fecha_inicio_captura_proyecto"`
	FechaCierreCaptura time.Time `json:"fecha_cierre_captura_proyecto"`
	Estatus            string    `json:"estatus"`
	TotalProyectos     int       `json:"total_proyectos,omitempty"`
}

// Activo indica si el ejercicio está habilitado.
func (e *EjercicioFiscal) Activo() bool {
	return e != nil && e.Estatus == EjercicioActivo
}
