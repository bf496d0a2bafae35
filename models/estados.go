package models

import "strings"

// Estatus por etapa del ciclo de aprobación.
const (
	EstatusEtapaCaptura    = "Captura"
	EstatusEtapaEnRevision = "EnRevision"
	EstatusEtapaAprobado   = "Aprobado"
	EstatusEtapaObservado  = "Observado"
)

// Estatus globales del proyecto, administrados por el CRUD.
const (
	EstatusProyectoBorrador   = "Borrador"
	EstatusProyectoEnProgreso = "EnProgreso"
	EstatusProyectoEnRevision = "EnRevision"
	EstatusProyectoAprobado   = "Aprobado"
	EstatusProyectoObservado  = "Observado"
	EstatusProyectoCancelado  = "Cancelado"
	EstatusProyectoRechazado  = "Rechazado"
)

// Estatus de ejercicio fiscal.
const (
	EjercicioActivo   = "Activo"
	EjercicioInactivo = "Inactivo"
)

// EstatusEtapaValido indica si el valor corresponde a un estatus de
// etapa conocido.
func EstatusEtapaValido(estatus string) bool {
	switch strings.TrimSpace(estatus) {
	case EstatusEtapaCaptura, EstatusEtapaEnRevision, EstatusEtapaAprobado, EstatusEtapaObservado:
		return true
	}
	return false
}

// PermiteSolicitarRevision indica si desde el estatus de etapa actual
// procede la transición a EnRevision (Captura u Observado).
func PermiteSolicitarRevision(estatus string) bool {
	switch strings.TrimSpace(estatus) {
	case EstatusEtapaCaptura, EstatusEtapaObservado:
		return true
	}
	return false
}

// PermiteDictamen indica si la etapa admite aprobar u observar, es
// decir si está EnRevision.
func PermiteDictamen(estatus string) bool {
	return strings.TrimSpace(estatus) == EstatusEtapaEnRevision
}
