package models

import "testing"

func TestEtapasOrdenYTamano(t *testing.T) {
	etapas := Etapas()
	if len(etapas) != 5 {
		t.Fatalf("se esperaban 5 etapas, hay %d", len(etapas))
	}
	for i, etapa := range etapas {
		if etapa.Id != i+1 {
			t.Fatalf("etapa en posición %d tiene id %d", i, etapa.Id)
		}
	}
	if etapas[4].Requerida {
		t.Fatalf("Formulación debe ser opcional")
	}
}

func TestEtapaIDPorClave(t *testing.T) {
	cases := []struct {
		clave string
		want  int
	}{
		{EtapaInformacionGeneral, 1},
		{EtapaDiagnosticoProblema, 2},
		{EtapaPoa, 3},
		{EtapaBeneficiarios, 4},
		{EtapaFormulacion, 5},
		{"diagnosticoproblema", 2}, // insensible a mayúsculas
		{"  Beneficiarios  ", 4},
		{"NoExiste", 1}, // clave desconocida cae a la etapa 1
		{"", 1},
	}
	for _, tc := range cases {
		if got := EtapaIDPorClave(tc.clave); got != tc.want {
			t.Errorf("EtapaIDPorClave(%q) = %d, se esperaba %d", tc.clave, got, tc.want)
		}
	}
}

func TestClavePorEtapaID(t *testing.T) {
	if got := ClavePorEtapaID(3); got != EtapaPoa {
		t.Fatalf("ClavePorEtapaID(3) = %q", got)
	}
	// fuera de rango cae a la etapa 1
	if got := ClavePorEtapaID(99); got != EtapaInformacionGeneral {
		t.Fatalf("ClavePorEtapaID(99) = %q", got)
	}
	if got := ClavePorEtapaID(0); got != EtapaInformacionGeneral {
		t.Fatalf("ClavePorEtapaID(0) = %q", got)
	}
}

func TestEtapaActualID(t *testing.T) {
	p := &Proyecto{EtapaActual: EtapaDiagnosticoProblema}
	if got := p.EtapaActualID(); got != 2 {
		t.Fatalf("EtapaActualID = %d", got)
	}
	var nulo *Proyecto
	if got := nulo.EtapaActualID(); got != 1 {
		t.Fatalf("EtapaActualID sobre nil = %d", got)
	}
}
