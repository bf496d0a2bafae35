package models

import "strings"

// Claves de etapa usadas por el CRUD en Proyecto.EtapaActual.
const (
	EtapaInformacionGeneral  = "InformacionGeneral"
	EtapaDiagnosticoProblema = "DiagnosticoProblema"
	EtapaPoa                 = "Poa"
	EtapaBeneficiarios       = "Beneficiarios"
	EtapaFormulacion         = "Formulacion"
)

// Etapa describe un paso fijo del asistente de captura de proyectos.
type Etapa struct {
	Id          int    `json:"id"`
	Clave       string `json:"clave"`
	Titulo      string `json:"titulo"`
	Descripcion string `json:"descripcion"`
	Icono       string `json:"icono"`
	Color       string `json:"color"`
	Requerida   bool   `json:"requerida"`
}

// Catálogo fijo de cinco etapas, ordenado por Id. La etapa POA se
// captura en una página dedicada pero participa del gating igual que
// las demás. Formulación es opcional.
var catalogoEtapas = []Etapa{
	{Id: 1, Clave: EtapaInformacionGeneral, Titulo: "Información General", Descripcion: "Datos básicos del proyecto", Icono: "pi-info-circle", Color: "blue", Requerida: true},
	{Id: 2, Clave: EtapaDiagnosticoProblema, Titulo: "Diagnóstico", Descripcion: "Diagnóstico del problema a atender", Icono: "pi-search", Color: "orange", Requerida: true},
	{Id: 3, Clave: EtapaPoa, Titulo: "POA", Descripcion: "Programa Operativo Anual", Icono: "pi-list", Color: "teal", Requerida: true},
	{Id: 4, Clave: EtapaBeneficiarios, Titulo: "Beneficiarios", Descripcion: "Población beneficiaria del proyecto", Icono: "pi-users", Color: "purple", Requerida: true},
	{Id: 5, Clave: EtapaFormulacion, Titulo: "Formulación", Descripcion: "Formulación y marco lógico", Icono: "pi-file-edit", Color: "green", Requerida: false},
}

// Etapas devuelve el catálogo completo en orden.
func Etapas() []Etapa {
	out := make([]Etapa, len(catalogoEtapas))
	copy(out, catalogoEtapas)
	return out
}

// EtapaPorID devuelve la etapa con el id dado; ids fuera de rango caen
// a la etapa 1 por tratarse de datos de referencia.
func EtapaPorID(id int) Etapa {
	for _, e := range catalogoEtapas {
		if e.Id == id {
			return e
		}
	}
	return catalogoEtapas[0]
}

// EtapaIDPorClave traduce la clave textual del CRUD al ordinal 1..5.
// Claves desconocidas o vacías caen a la etapa 1, nunca fallan.
func EtapaIDPorClave(clave string) int {
	trimmed := strings.TrimSpace(clave)
	for _, e := range catalogoEtapas {
		if strings.EqualFold(e.Clave, trimmed) {
			return e.Id
		}
	}
	return 1
}

// ClavePorEtapaID es la traducción inversa de EtapaIDPorClave.
func ClavePorEtapaID(id int) string {
	return EtapaPorID(id).Clave
}
