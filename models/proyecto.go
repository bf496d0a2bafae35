package models

// Prioridades de proyecto aceptadas por el CRUD.
const (
	PrioridadCritica = "Critica"
	PrioridadAlta    = "Alta"
	PrioridadMedia   = "Media"
	PrioridadBaja    = "Baja"
)

// EtapaCompletada registra el cierre (o intento de cierre) de una
// etapa del proyecto. Se crea la primera vez que la etapa se envía a
// revisión y su estatus cicla Captura → EnRevision → Aprobado u
// Observado; Observado permite reenvío.
type EtapaCompletada struct {
	Id          int    `json:"id"`
	Estatus     string `json:"estatus"`
	Observacion string `json:"observacion,omitempty"`
}

// Proyecto es la raíz del agregado que el asistente captura por
// etapas. Los nombres de campo JSON siguen el formato snake_case del
// CRUD.
type Proyecto struct {
	Uuid               string            `json:"uuid"`
	Codigo             string            `json:"codigo"`
	Nombre             string            `json:"nombre"`
	Descripcion        string            `json:"descripcion"`
	Prioridad          string            `json:"prioridad"`
	Unidad             string            `json:"unidad"`
	Responsable        string            `json:"responsable"`
	TipoProyecto       string            `json:"tipo_proyecto"`
	EjercicioId        int               `json:"ejercicio_id"`
	EtapaActual        string            `json:"etapa_actual"`
	EstatusEtapaActual string            `json:"estatus_etapa_actual"`
	EtapasCompletadas  []EtapaCompletada `json:"etapas_completadas"`
	PresupuestoTotal   float64           `json:"presupuesto_total"`
	Estatus            string            `json:"estatus"`
}

// EtapaActualID traduce la clave de la etapa actual a su ordinal.
func (p *Proyecto) EtapaActualID() int {
	if p == nil {
		return 1
	}
	return EtapaIDPorClave(p.EtapaActual)
}

// Diagnostico es el sub-recurso de la etapa 2.
type Diagnostico struct {
	Id                  int    `json:"id,omitempty"`
	ProyectoUuid        string `json:"proyecto_uuid"`
	DescripcionProblema string `json:"descripcion_problema"`
	CausasPrincipales   string `json:"causas_principales"`
	EfectosPrincipales  string `json:"efectos_principales"`
	PoblacionAfectada   string `json:"poblacion_afectada"`
	SituacionDeseada    string `json:"situacion_deseada"`
}
