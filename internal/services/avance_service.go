package services

import (
	internaldto "github.com/udistrital/planeacion_mid/internal/dto"
	"github.com/udistrital/planeacion_mid/models"
)

// Resolución del avance del asistente de captura. Todas las funciones
// son puras sobre el snapshot del proyecto: el estado por etapa se
// recalcula siempre, nunca se almacena, de modo que no puede divergir
// del registro del CRUD.

// EtapaCompletada indica si la etapa cuenta como completada para el
// proyecto. La etapa 1 cuenta como completada en cuanto el registro
// del proyecto existe, para que el asistente habilite la etapa 2
// inmediatamente después del alta.
func EtapaCompletada(etapa models.Etapa, p *models.Proyecto) bool {
	if p == nil {
		return false
	}
	if etapa.Id == 1 {
		return true
	}
	for _, e := range p.EtapasCompletadas {
		if e.Id == etapa.Id {
			return true
		}
	}
	return false
}

// EtapaDesbloqueada indica si el usuario puede entrar a la etapa:
// la 1 siempre, las ya recorridas, la actual, y la siguiente solo
// cuando la actual está aprobada.
func EtapaDesbloqueada(etapa models.Etapa, p *models.Proyecto) bool {
	if etapa.Id == 1 {
		return true
	}
	if p == nil {
		return false
	}
	actual := p.EtapaActualID()
	switch {
	case etapa.Id < actual:
		return true
	case etapa.Id == actual:
		return true
	case etapa.Id == actual+1 && p.EstatusEtapaActual == models.EstatusEtapaAprobado:
		return true
	}
	return false
}

// EtapaSoloLectura indica si la etapa ya no admite edición: toda etapa
// recorrida, y la actual únicamente cuando fue aprobada. EnRevision no
// congela la etapa; solo Aprobado lo hace.
func EtapaSoloLectura(etapa models.Etapa, p *models.Proyecto) bool {
	if p == nil {
		return false
	}
	actual := p.EtapaActualID()
	if etapa.Id < actual {
		return true
	}
	return etapa.Id == actual && p.EstatusEtapaActual == models.EstatusEtapaAprobado
}

// PuedeSolicitarRevision indica si el proyecto completo puede enviarse
// a revisión: toda etapa requerida debe estar completada. Las etapas
// opcionales nunca bloquean el envío.
func PuedeSolicitarRevision(p *models.Proyecto) bool {
	if p == nil {
		return false
	}
	for _, etapa := range models.Etapas() {
		if !etapa.Requerida {
			continue
		}
		if !EtapaCompletada(etapa, p) {
			return false
		}
	}
	return true
}

// ResolverAvance calcula la vista completa del asistente para un
// proyecto: por etapa, si está completada, desbloqueada y si es de
// solo lectura.
func ResolverAvance(p *models.Proyecto) internaldto.AvanceDTO {
	avance := internaldto.AvanceDTO{
		PuedeSolicitarRevision: PuedeSolicitarRevision(p),
	}
	if p != nil {
		avance.ProyectoUuid = p.Uuid
		avance.EtapaActual = p.EtapaActualID()
		avance.EstatusEtapaActual = p.EstatusEtapaActual
	}

	etapas := models.Etapas()
	avance.Etapas = make([]internaldto.EtapaAvanceDTO, 0, len(etapas))
	for _, etapa := range etapas {
		avance.Etapas = append(avance.Etapas, internaldto.EtapaAvanceDTO{
			Id:           etapa.Id,
			Clave:        etapa.Clave,
			Titulo:       etapa.Titulo,
			Requerida:    etapa.Requerida,
			Completada:   EtapaCompletada(etapa, p),
			Desbloqueada: EtapaDesbloqueada(etapa, p),
			SoloLectura:  EtapaSoloLectura(etapa, p),
		})
	}
	return avance
}
