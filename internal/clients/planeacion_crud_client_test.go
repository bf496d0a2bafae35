package clients_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/udistrital/planeacion_mid/internal/clients"
	"github.com/udistrital/planeacion_mid/models"
	rootservices "github.com/udistrital/planeacion_mid/services"
)

func clienteDePrueba(handler http.Handler) (*clients.PlaneacionCRUDClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	cliente := clients.NewPlaneacionCRUD(rootservices.Config{
		PlaneacionCRUDBaseURL: srv.URL,
		RequestTimeout:        2 * time.Second,
	})
	return cliente, srv
}

func responderWrapped(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"Success": true,
		"Status":  "200",
		"Message": "ok",
		"Data":    data,
	})
}

func TestGetDiagnosticoInexistenteResuelveNil(t *testing.T) {
	cliente, srv := clienteDePrueba(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"no encontrado"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	diagnostico, err := cliente.GetDiagnosticoByProyectoUuid(context.Background(), "f47ac10b-58cc-4372-a567-0e02b2c3d479")
	if err != nil {
		t.Fatalf("el 404 del diagnóstico no es un error: %v", err)
	}
	if diagnostico != nil {
		t.Fatalf("se esperaba nil, llegó %+v", diagnostico)
	}
}

func TestGetProyectoDesenvuelveLaRespuesta(t *testing.T) {
	cliente, srv := clienteDePrueba(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/proyecto/f47ac10b-58cc-4372-a567-0e02b2c3d479" {
			t.Errorf("ruta inesperada: %s", r.URL.Path)
		}
		responderWrapped(w, map[string]interface{}{
			"uuid":                 "f47ac10b-58cc-4372-a567-0e02b2c3d479",
			"nombre":               "Rehabilitación de caminos",
			"etapa_actual":         "DiagnosticoProblema",
			"estatus_etapa_actual": "EnRevision",
		})
	}))
	defer srv.Close()

	proyecto, err := cliente.GetProyectoByUuid(context.Background(), "f47ac10b-58cc-4372-a567-0e02b2c3d479")
	if err != nil {
		t.Fatalf("GetProyectoByUuid: %v", err)
	}
	if proyecto.Nombre != "Rehabilitación de caminos" || proyecto.EtapaActual != models.EtapaDiagnosticoProblema {
		t.Fatalf("proyecto mal decodificado: %+v", proyecto)
	}
}

func TestCreateProyectoEnviaSnakeCase(t *testing.T) {
	var recibido map[string]interface{}
	cliente, srv := clienteDePrueba(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&recibido); err != nil {
			t.Errorf("cuerpo ilegible: %v", err)
		}
		responderWrapped(w, map[string]interface{}{
			"uuid":   "9b2d7c1e-0f3a-4b8d-9c6e-1a2b3c4d5e6f",
			"nombre": recibido["nombre"],
		})
	}))
	defer srv.Close()

	creado, err := cliente.CreateProyecto(context.Background(), map[string]interface{}{
		"nombre":           "Proyecto nuevo",
		"tipoProyecto":     "Inversion",
		"presupuestoTotal": 1500000.0,
	})
	if err != nil {
		t.Fatalf("CreateProyecto: %v", err)
	}
	if creado.Uuid == "" {
		t.Fatalf("sin uuid en la respuesta: %+v", creado)
	}
	if _, ok := recibido["tipo_proyecto"]; !ok {
		t.Fatalf("el CRUD debe recibir snake_case: %#v", recibido)
	}
	if _, ok := recibido["tipoProyecto"]; ok {
		t.Fatalf("no deben viajar claves camelCase al CRUD: %#v", recibido)
	}
}

func TestListProyectosArmaLaConsulta(t *testing.T) {
	cliente, srv := clienteDePrueba(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("query") != "EjercicioFiscal.Anio:2025" {
			t.Errorf("query = %q", q.Get("query"))
		}
		if q.Get("limit") != "20" || q.Get("offset") != "20" {
			t.Errorf("paginación incorrecta: limit=%q offset=%q", q.Get("limit"), q.Get("offset"))
		}
		responderWrapped(w, map[string]interface{}{
			"items": []map[string]interface{}{{"uuid": "a", "nombre": "Uno"}},
			"total": 21,
		})
	}))
	defer srv.Close()

	proyectos, total, err := cliente.ListProyectosByEjercicio(context.Background(), 2025, 2, 20)
	if err != nil {
		t.Fatalf("ListProyectosByEjercicio: %v", err)
	}
	if len(proyectos) != 1 || total != 21 {
		t.Fatalf("página incorrecta: %d items, total %d", len(proyectos), total)
	}
}

func TestGetEjercicioMapeaFechas(t *testing.T) {
	cliente, srv := clienteDePrueba(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		responderWrapped(w, map[string]interface{}{
			"id":                            7,
			"anio":                          2025,
			"fecha_inicio_ejercicio":        "2025-01-01",
			"fecha_cierre_ejercicio":        "2025-12-31",
			"fecha_inicio_captura_proyecto": "2025-01-15",
			"fecha_cierre_captura_proyecto": "2025-11-30",
			"estatus":                       "Activo",
		})
	}))
	defer srv.Close()

	ej, err := cliente.GetEjercicioByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetEjercicioByID: %v", err)
	}
	if ej.Anio != 2025 || !ej.Activo() {
		t.Fatalf("ejercicio mal mapeado: %+v", ej)
	}
	if ej.FechaInicioCaptura.Format("2006-01-02") != "2025-01-15" {
		t.Fatalf("fecha de captura mal parseada: %v", ej.FechaInicioCaptura)
	}
}

func TestOperacionesRespetanContextoCancelado(t *testing.T) {
	cliente, srv := clienteDePrueba(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no debió llegar ninguna petición")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := cliente.GetProyectoByUuid(ctx, "abc"); err == nil {
		t.Fatalf("el contexto cancelado debe cortar la llamada")
	}
}

func TestParseFecha(t *testing.T) {
	cases := []struct {
		in   string
		want string // vacío significa cero
	}{
		{"2025-06-01", "2025-06-01"},
		{"2025-06-01T10:30:00Z", "2025-06-01"},
		{"2025-06-01 10:30:00", "2025-06-01"},
		{"  2025-06-01  ", "2025-06-01"},
		{"", ""},
		{"no-es-fecha", ""},
	}
	for _, tc := range cases {
		got := clients.ParseFecha(tc.in)
		if tc.want == "" {
			if !got.IsZero() {
				t.Errorf("ParseFecha(%q) = %v, se esperaba cero", tc.in, got)
			}
			continue
		}
		if got.Format("2006-01-02") != tc.want {
			t.Errorf("ParseFecha(%q) = %v, se esperaba %s", tc.in, got, tc.want)
		}
	}
}

func TestFormatFecha(t *testing.T) {
	if got := clients.FormatFecha(time.Time{}); got != "" {
		t.Fatalf("el cero serializa vacío, llegó %q", got)
	}
	d := time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)
	if got := clients.FormatFecha(d); got != "2025-11-30" {
		t.Fatalf("FormatFecha = %q", got)
	}
}
