package services_test

import (
	"testing"

	internalservices "github.com/udistrital/planeacion_mid/internal/services"
	"github.com/udistrital/planeacion_mid/models"
)

func proyectoEnEtapa(clave, estatus string, completadas ...int) *models.Proyecto {
	p := &models.Proyecto{
		Uuid:               "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		Nombre:             "Proyecto de prueba",
		EtapaActual:        clave,
		EstatusEtapaActual: estatus,
	}
	for _, id := range completadas {
		p.EtapasCompletadas = append(p.EtapasCompletadas, models.EtapaCompletada{
			Id:      id,
			Estatus: models.EstatusEtapaAprobado,
		})
	}
	return p
}

func TestEtapaUnoSiempreDesbloqueada(t *testing.T) {
	etapa1 := models.EtapaPorID(1)
	casos := []*models.Proyecto{
		nil,
		proyectoEnEtapa(models.EtapaInformacionGeneral, models.EstatusEtapaCaptura),
		proyectoEnEtapa(models.EtapaFormulacion, models.EstatusEtapaEnRevision, 1, 2, 3, 4),
	}
	for i, p := range casos {
		if !internalservices.EtapaDesbloqueada(etapa1, p) {
			t.Errorf("caso %d: la etapa 1 debe estar siempre desbloqueada", i)
		}
	}
}

func TestEtapaSiguienteBloqueadaSinAprobacion(t *testing.T) {
	// etapa actual 2 EnRevision: la 3 sigue bloqueada y la 2 sigue editable
	p := proyectoEnEtapa(models.EtapaDiagnosticoProblema, models.EstatusEtapaEnRevision, 1)

	if internalservices.EtapaDesbloqueada(models.EtapaPorID(3), p) {
		t.Fatalf("la etapa 3 no debe desbloquearse con la 2 EnRevision")
	}
	if internalservices.EtapaSoloLectura(models.EtapaPorID(2), p) {
		t.Fatalf("EnRevision no congela la etapa actual; solo Aprobado")
	}
}

func TestEtapaSiguienteDesbloqueadaConAprobacion(t *testing.T) {
	p := proyectoEnEtapa(models.EtapaDiagnosticoProblema, models.EstatusEtapaAprobado, 1, 2)

	if !internalservices.EtapaDesbloqueada(models.EtapaPorID(3), p) {
		t.Fatalf("la etapa 3 debe desbloquearse cuando la 2 está Aprobada")
	}
	if !internalservices.EtapaSoloLectura(models.EtapaPorID(2), p) {
		t.Fatalf("la etapa aprobada queda en solo lectura")
	}
	// más allá de la siguiente sigue bloqueado
	if internalservices.EtapaDesbloqueada(models.EtapaPorID(4), p) {
		t.Fatalf("solo la etapa inmediata siguiente se desbloquea")
	}
}

func TestEtapasRecorridasQuedanDesbloqueadasYSoloLectura(t *testing.T) {
	p := proyectoEnEtapa(models.EtapaBeneficiarios, models.EstatusEtapaCaptura, 1, 2, 3)
	for id := 1; id <= 3; id++ {
		etapa := models.EtapaPorID(id)
		if !internalservices.EtapaDesbloqueada(etapa, p) {
			t.Errorf("etapa %d recorrida debe estar desbloqueada", id)
		}
		if !internalservices.EtapaSoloLectura(etapa, p) {
			t.Errorf("etapa %d recorrida debe ser solo lectura", id)
		}
	}
	if internalservices.EtapaSoloLectura(models.EtapaPorID(4), p) {
		t.Fatalf("la etapa actual en Captura sigue editable")
	}
}

func TestEtapaUnoCompletadaConSoloExistir(t *testing.T) {
	p := proyectoEnEtapa(models.EtapaInformacionGeneral, models.EstatusEtapaCaptura)
	if !internalservices.EtapaCompletada(models.EtapaPorID(1), p) {
		t.Fatalf("la etapa 1 cuenta como completada en cuanto el proyecto existe")
	}
	if internalservices.EtapaCompletada(models.EtapaPorID(2), p) {
		t.Fatalf("la etapa 2 no está completada sin registro")
	}
	if internalservices.EtapaCompletada(models.EtapaPorID(1), nil) {
		t.Fatalf("sin proyecto no hay etapa completada")
	}
}

func TestPuedeSolicitarRevision(t *testing.T) {
	cases := []struct {
		nombre      string
		completadas []int
		want        bool
	}{
		{"todas las requeridas", []int{1, 2, 3, 4}, true},
		{"requeridas sin la opcional 5", []int{2, 3, 4}, true}, // la 1 se completa por existencia
		{"falta una requerida", []int{2, 3}, false},
		{"solo la opcional", []int{5}, false},
	}
	for _, tc := range cases {
		p := proyectoEnEtapa(models.EtapaFormulacion, models.EstatusEtapaCaptura, tc.completadas...)
		if got := internalservices.PuedeSolicitarRevision(p); got != tc.want {
			t.Errorf("%s: PuedeSolicitarRevision = %v, se esperaba %v", tc.nombre, got, tc.want)
		}
	}
	if internalservices.PuedeSolicitarRevision(nil) {
		t.Fatalf("sin proyecto no hay envío a revisión")
	}
}

func TestResolverAvance(t *testing.T) {
	p := proyectoEnEtapa(models.EtapaDiagnosticoProblema, models.EstatusEtapaEnRevision, 1)
	avance := internalservices.ResolverAvance(p)

	if avance.EtapaActual != 2 || avance.EstatusEtapaActual != models.EstatusEtapaEnRevision {
		t.Fatalf("cabecera de avance incorrecta: %+v", avance)
	}
	if len(avance.Etapas) != 5 {
		t.Fatalf("el avance debe cubrir las 5 etapas")
	}
	if !avance.Etapas[0].Completada || !avance.Etapas[0].SoloLectura {
		t.Fatalf("etapa 1: %+v", avance.Etapas[0])
	}
	if !avance.Etapas[1].Desbloqueada || avance.Etapas[1].SoloLectura {
		t.Fatalf("etapa 2: %+v", avance.Etapas[1])
	}
	if avance.Etapas[2].Desbloqueada {
		t.Fatalf("etapa 3 debe estar bloqueada: %+v", avance.Etapas[2])
	}
	if avance.PuedeSolicitarRevision {
		t.Fatalf("faltan etapas requeridas por completar")
	}
}
