package services

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/udistrital/planeacion_mid/helpers"
	"github.com/udistrital/planeacion_mid/internal/clients"
	internaldto "github.com/udistrital/planeacion_mid/internal/dto"
	"github.com/udistrital/planeacion_mid/models"
)

// ---------- Compuertas del ejercicio fiscal ----------

// Las compuertas son funciones puras sobre fechas reales. El CRUD
// entrega YYYY-MM-DD; la comparación se hace a nivel de día para que
// la hora del servidor no cierre la ventana antes de tiempo.

// EjercicioCerrado indica si el ejercicio ya terminó: hoy posterior a
// la fecha de cierre. El día de cierre mismo NO está cerrado. Un
// ejercicio sin fecha de cierre se considera cerrado (falla segura).
func EjercicioCerrado(ej *models.EjercicioFiscal, hoy time.Time) bool {
	if ej == nil || ej.FechaCierre.IsZero() {
		return true
	}
	return soloFecha(hoy).After(soloFecha(ej.FechaCierre))
}

// PermiteCaptura indica si la ventana de captura de proyectos está
// abierta: el ejercicio debe estar Activo y hoy debe caer dentro del
// rango inclusivo [inicio captura, cierre captura]. Fechas faltantes
// cierran la compuerta.
func PermiteCaptura(ej *models.EjercicioFiscal, hoy time.Time) bool {
	if !ej.Activo() {
		return false
	}
	if ej.FechaInicioCaptura.IsZero() || ej.FechaCierreCaptura.IsZero() {
		return false
	}
	dia := soloFecha(hoy)
	return !dia.Before(soloFecha(ej.FechaInicioCaptura)) && !dia.After(soloFecha(ej.FechaCierreCaptura))
}

func soloFecha(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ---------- Orquestación de ejercicios fiscales ----------

// EjerciciosCRUD es el subconjunto del cliente CRUD que necesita este servicio.
type EjerciciosCRUD interface {
	ListEjercicios(ctx context.Context) ([]models.EjercicioFiscal, error)
	GetEjercicioByID(ctx context.Context, id int) (*models.EjercicioFiscal, error)
	CreateEjercicio(ctx context.Context, ej models.EjercicioFiscal) (*models.EjercicioFiscal, error)
	UpdateEjercicio(ctx context.Context, id int, ej models.EjercicioFiscal) (*models.EjercicioFiscal, error)
	DeleteEjercicio(ctx context.Context, id int) error
	CountProyectosByEjercicioID(ctx context.Context, ejercicioID int) (int, error)
}

// EjerciciosService administra el ciclo de vida de los ejercicios fiscales.
type EjerciciosService struct {
	crud EjerciciosCRUD
}

var (
	ejerciciosService     *EjerciciosService
	ejerciciosServiceOnce sync.Once
)

// Ejercicios devuelve el servicio cableado contra el CRUD real.
func Ejercicios() *EjerciciosService {
	ejerciciosServiceOnce.Do(func() {
		ejerciciosService = NewEjerciciosService(clients.PlaneacionCRUD())
	})
	return ejerciciosService
}

// NewEjerciciosService construye el servicio con dependencias explícitas.
func NewEjerciciosService(crud EjerciciosCRUD) *EjerciciosService {
	return &EjerciciosService{crud: crud}
}

// Listar devuelve todos los ejercicios fiscales.
func (s *EjerciciosService) Listar(ctx context.Context) ([]models.EjercicioFiscal, error) {
	ejercicios, err := s.crud.ListEjercicios(ctx)
	if err != nil {
		return nil, helpers.AsAppError(err, "error consultando ejercicios fiscales")
	}
	return ejercicios, nil
}

// Crear da de alta un ejercicio validando año y coherencia de fechas.
func (s *EjerciciosService) Crear(ctx context.Context, form internaldto.EjercicioForm) (*models.EjercicioFiscal, error) {
	ej, err := ejercicioDesdeForm(form)
	if err != nil {
		return nil, err
	}
	created, err := s.crud.CreateEjercicio(ctx, ej)
	if err != nil {
		return nil, helpers.AsAppError(err, "error creando ejercicio fiscal")
	}
	return created, nil
}

// Actualizar modifica fechas y estatus de un ejercicio existente.
func (s *EjerciciosService) Actualizar(ctx context.Context, id int, form internaldto.EjercicioForm) (*models.EjercicioFiscal, error) {
	existing, err := s.crud.GetEjercicioByID(ctx, id)
	if err != nil {
		return nil, helpers.AsAppError(err, "error consultando ejercicio fiscal")
	}
	if existing == nil {
		return nil, helpers.NewAppError(http.StatusNotFound, "ejercicio fiscal no encontrado", nil)
	}

	ej, err := ejercicioDesdeForm(form)
	if err != nil {
		return nil, err
	}
	updated, err := s.crud.UpdateEjercicio(ctx, id, ej)
	if err != nil {
		return nil, helpers.AsAppError(err, "error actualizando ejercicio fiscal")
	}
	return updated, nil
}

// Eliminar borra un ejercicio siempre que no tenga proyectos asociados.
func (s *EjerciciosService) Eliminar(ctx context.Context, id int) error {
	existing, err := s.crud.GetEjercicioByID(ctx, id)
	if err != nil {
		return helpers.AsAppError(err, "error consultando ejercicio fiscal")
	}
	if existing == nil {
		return helpers.NewAppError(http.StatusNotFound, "ejercicio fiscal no encontrado", nil)
	}

	total, err := s.crud.CountProyectosByEjercicioID(ctx, id)
	if err != nil {
		return helpers.AsAppError(err, "error consultando proyectos del ejercicio")
	}
	if total > 0 {
		return helpers.NewAppError(http.StatusConflict, "el ejercicio tiene proyectos asociados y no puede eliminarse", nil)
	}

	if err := s.crud.DeleteEjercicio(ctx, id); err != nil {
		return helpers.AsAppError(err, "error eliminando ejercicio fiscal")
	}
	return nil
}

// Activar deja el ejercicio indicado como el único Activo; cualquier
// otro ejercicio activo pasa a Inactivo en la misma operación.
func (s *EjerciciosService) Activar(ctx context.Context, id int) (*models.EjercicioFiscal, error) {
	objetivo, err := s.crud.GetEjercicioByID(ctx, id)
	if err != nil {
		return nil, helpers.AsAppError(err, "error consultando ejercicio fiscal")
	}
	if objetivo == nil {
		return nil, helpers.NewAppError(http.StatusNotFound, "ejercicio fiscal no encontrado", nil)
	}

	todos, err := s.crud.ListEjercicios(ctx)
	if err != nil {
		return nil, helpers.AsAppError(err, "error consultando ejercicios fiscales")
	}
	for _, otro := range todos {
		if otro.Id == id || otro.Estatus != models.EjercicioActivo {
			continue
		}
		otro.Estatus = models.EjercicioInactivo
		if _, err := s.crud.UpdateEjercicio(ctx, otro.Id, otro); err != nil {
			return nil, helpers.AsAppError(err, "error desactivando ejercicio fiscal vigente")
		}
	}

	objetivo.Estatus = models.EjercicioActivo
	activado, err := s.crud.UpdateEjercicio(ctx, id, *objetivo)
	if err != nil {
		return nil, helpers.AsAppError(err, "error activando ejercicio fiscal")
	}
	return activado, nil
}

// EstadoCaptura expone el resultado de las compuertas para el SPA.
func (s *EjerciciosService) EstadoCaptura(ctx context.Context, id int, hoy time.Time) (internaldto.CapturaDTO, error) {
	ej, err := s.crud.GetEjercicioByID(ctx, id)
	if err != nil {
		return internaldto.CapturaDTO{}, helpers.AsAppError(err, "error consultando ejercicio fiscal")
	}
	if ej == nil {
		return internaldto.CapturaDTO{}, helpers.NewAppError(http.StatusNotFound, "ejercicio fiscal no encontrado", nil)
	}
	return internaldto.CapturaDTO{
		EjercicioId:    ej.Id,
		Anio:           ej.Anio,
		Cerrado:        EjercicioCerrado(ej, hoy),
		PermiteCaptura: PermiteCaptura(ej, hoy),
	}, nil
}

func ejercicioDesdeForm(form internaldto.EjercicioForm) (models.EjercicioFiscal, error) {
	if form.Anio < 2000 || form.Anio > 2100 {
		return models.EjercicioFiscal{}, helpers.NewAppError(http.StatusBadRequest, "anio fuera de rango", nil)
	}
	estatus := strings.TrimSpace(form.Estatus)
	if estatus == "" {
		estatus = models.EjercicioInactivo
	}
	if estatus != models.EjercicioActivo && estatus != models.EjercicioInactivo {
		return models.EjercicioFiscal{}, helpers.NewAppError(http.StatusBadRequest, "estatus inválido", nil)
	}

	ej := models.EjercicioFiscal{
		Anio:               form.Anio,
		FechaInicio:        clients.ParseFecha(form.FechaInicioEjercicio),
		FechaCierre:        clients.ParseFecha(form.FechaCierreEjercicio),
		FechaInicioCaptura: clients.ParseFecha(form.FechaInicioCapturaProyecto),
		FechaCierreCaptura: clients.ParseFecha(form.FechaCierreCapturaProyecto),
		Estatus:            estatus,
	}
	if ej.FechaInicio.IsZero() || ej.FechaCierre.IsZero() {
		return models.EjercicioFiscal{}, helpers.NewAppError(http.StatusBadRequest, "fechas de ejercicio requeridas (YYYY-MM-DD)", nil)
	}
	if ej.FechaCierre.Before(ej.FechaInicio) {
		return models.EjercicioFiscal{}, helpers.NewAppError(http.StatusBadRequest, "la fecha de cierre no puede preceder al inicio", nil)
	}
	if !ej.FechaInicioCaptura.IsZero() && !ej.FechaCierreCaptura.IsZero() && ej.FechaCierreCaptura.Before(ej.FechaInicioCaptura) {
		return models.EjercicioFiscal{}, helpers.NewAppError(http.StatusBadRequest, "la ventana de captura es inválida", nil)
	}
	return ej, nil
}
