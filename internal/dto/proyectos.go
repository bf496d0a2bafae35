package dto

// ProyectoForm es el formulario de la etapa 1 tal como lo envía el SPA
// (claves camelCase; se convierten a snake_case antes de llegar al CRUD).
type ProyectoForm struct {
	Codigo           string  `json:"codigo"`
	Nombre           string  `json:"nombre"`
	Descripcion      string  `json:"descripcion"`
	Prioridad        string  `json:"prioridad"`
	Unidad           string  `json:"unidad"`
	Responsable      string  `json:"responsable"`
	TipoProyecto     string  `json:"tipoProyecto"`
	EjercicioId      int     `json:"ejercicioId"`
	PresupuestoTotal float64 `json:"presupuestoTotal"`
}

// DiagnosticoForm es el formulario de la etapa 2.
type DiagnosticoForm struct {
	DescripcionProblema string `json:"descripcionProblema"`
	CausasPrincipales   string `json:"causasPrincipales"`
	EfectosPrincipales  string `json:"efectosPrincipales"`
	PoblacionAfectada   string `json:"poblacionAfectada"`
	SituacionDeseada    string `json:"situacionDeseada"`
}

// ObservacionBody acompaña la transición EnRevision → Observado.
type ObservacionBody struct {
	Observacion string `json:"observacion"`
}

// EtapaAvanceDTO es el estado calculado de una etapa del asistente.
type EtapaAvanceDTO struct {
	Id           int    `json:"id"`
	Clave        string `json:"clave"`
	Titulo       string `json:"titulo"`
	Requerida    bool   `json:"requerida"`
	Completada   bool   `json:"completada"`
	Desbloqueada bool   `json:"desbloqueada"`
	SoloLectura  bool   `json:"solo_lectura"`
}

// AvanceDTO agrupa el estado del asistente completo para un proyecto.
type AvanceDTO struct {
	ProyectoUuid           string           `json:"proyecto_uuid"`
	EtapaActual            int              `json:"etapa_actual"`
	EstatusEtapaActual     string           `json:"estatus_etapa_actual"`
	PuedeSolicitarRevision bool             `json:"puede_solicitar_revision"`
	Etapas                 []EtapaAvanceDTO `json:"etapas"`
}
