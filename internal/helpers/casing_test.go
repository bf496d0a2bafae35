package helpers

import (
	"reflect"
	"testing"
)

func TestToSnakeCase(t *testing.T) {
	in := map[string]interface{}{
		"tipoProyecto":     "Inversion",
		"presupuestoTotal": 1500000.50,
		"etapasCompletadas": []interface{}{
			map[string]interface{}{"id": 1, "estatusEtapa": "Aprobado"},
		},
		"ejercicioFiscal": map[string]interface{}{
			"fechaInicioCapturaProyecto": "2025-01-15",
		},
	}
	want := map[string]interface{}{
		"tipo_proyecto":     "Inversion",
		"presupuesto_total": 1500000.50,
		"etapas_completadas": []interface{}{
			map[string]interface{}{"id": 1, "estatus_etapa": "Aprobado"},
		},
		"ejercicio_fiscal": map[string]interface{}{
			"fecha_inicio_captura_proyecto": "2025-01-15",
		},
	}
	if got := ToSnakeCase(in); !reflect.DeepEqual(got, want) {
		t.Fatalf("ToSnakeCase = %#v", got)
	}
}

func TestToCamelCase(t *testing.T) {
	in := map[string]interface{}{
		"estatus_etapa_actual": "EnRevision",
		"etapa_actual":         "DiagnosticoProblema",
	}
	want := map[string]interface{}{
		"estatusEtapaActual": "EnRevision",
		"etapaActual":        "DiagnosticoProblema",
	}
	if got := ToCamelCase(in); !reflect.DeepEqual(got, want) {
		t.Fatalf("ToCamelCase = %#v", got)
	}
}

func TestCasingIdaYVuelta(t *testing.T) {
	original := map[string]interface{}{
		"codigo":            "PRJ-001",
		"presupuesto_total": 2500000.0,
		"etapas_completadas": []interface{}{
			map[string]interface{}{
				"id":          2,
				"observacion": "falta detalle",
				"detalle_adicional": map[string]interface{}{
					"fecha_registro": "2025-03-01",
				},
			},
			"valor suelto",
		},
		"activo": true,
		"nada":   nil,
	}
	vuelta := ToSnakeCase(ToCamelCase(original))
	if !reflect.DeepEqual(vuelta, original) {
		t.Fatalf("ida y vuelta alteró el valor:\n got %#v\nwant %#v", vuelta, original)
	}
}

func TestCasingGuionesBajosAtipicos(t *testing.T) {
	original := map[string]interface{}{
		"_id":        "abc",
		"a__b":       1,
		"cola_":      2,
		"__version":  3,
		"fecha_alta": "2025-01-01",
	}
	vuelta := ToSnakeCase(ToCamelCase(original))
	if !reflect.DeepEqual(vuelta, original) {
		t.Fatalf("ida y vuelta alteró claves con guiones atípicos:\n got %#v\nwant %#v", vuelta, original)
	}

	camel := ToCamelCase(map[string]interface{}{"_id": "abc"}).(map[string]interface{})
	if _, ok := camel["_id"]; !ok {
		t.Fatalf("el guion bajo inicial debe preservarse: %#v", camel)
	}
}

func TestCasingEscalares(t *testing.T) {
	if got := ToSnakeCase("textoPlano"); got != "textoPlano" {
		t.Fatalf("los escalares no deben transformarse: %v", got)
	}
	if got := ToCamelCase(42.0); got != 42.0 {
		t.Fatalf("los escalares no deben transformarse: %v", got)
	}
}
