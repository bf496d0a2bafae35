package services

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/beego/beego/v2/core/logs"

	"github.com/udistrital/planeacion_mid/helpers"
	"github.com/udistrital/planeacion_mid/internal/clients"
	internaldto "github.com/udistrital/planeacion_mid/internal/dto"
	internalhelpers "github.com/udistrital/planeacion_mid/internal/helpers"
	"github.com/udistrital/planeacion_mid/models"
	rootservices "github.com/udistrital/planeacion_mid/services"
)

// ProyectosCRUD es el subconjunto del cliente CRUD que necesita el
// orquestador de proyectos.
type ProyectosCRUD interface {
	GetProyectoByUuid(ctx context.Context, uuid string) (*models.Proyecto, error)
	CreateProyecto(ctx context.Context, form map[string]interface{}) (*models.Proyecto, error)
	UpdateProyecto(ctx context.Context, uuid string, form map[string]interface{}) (*models.Proyecto, error)
	ListProyectosByEjercicio(ctx context.Context, anio, page, perPage int) ([]models.Proyecto, int, error)
	GetDiagnosticoByProyectoUuid(ctx context.Context, uuid string) (*models.Diagnostico, error)
	CreateDiagnostico(ctx context.Context, uuid string, form map[string]interface{}) (*models.Diagnostico, error)
	UpdateDiagnostico(ctx context.Context, uuid string, form map[string]interface{}) (*models.Diagnostico, error)
	SolicitarRevision(ctx context.Context, uuid string) (*models.Proyecto, error)
	AprobarEtapa(ctx context.Context, uuid string) (*models.Proyecto, error)
	ObservarEtapa(ctx context.Context, uuid, observacion string) (*models.Proyecto, error)
	GetEjercicioByID(ctx context.Context, id int) (*models.EjercicioFiscal, error)
}

// ProyectosService orquesta las operaciones del asistente contra el
// CRUD y normaliza los resultados. No reintenta por sí mismo (los
// reintentos viven en la capa de transporte) y toda falla se informa
// por el canal de notificaciones además de propagarse al llamador.
type ProyectosService struct {
	crud     ProyectosCRUD
	notifica internalhelpers.Notificador

	// Ahora es inyectable para pruebas de la compuerta de captura.
	Ahora func() time.Time

	// Marca por proyecto de operación de escritura en curso; evita el
	// doble envío mientras una llamada no resuelve.
	enVuelo sync.Map
}

var (
	proyectosService     *ProyectosService
	proyectosServiceOnce sync.Once
)

// Proyectos devuelve el orquestador cableado contra el CRUD real y el
// canal de notificaciones.
func Proyectos() *ProyectosService {
	proyectosServiceOnce.Do(func() {
		proyectosService = NewProyectosService(clients.PlaneacionCRUD(), internalhelpers.Notificaciones)
	})
	return proyectosService
}

// NewProyectosService construye el orquestador con dependencias explícitas.
func NewProyectosService(crud ProyectosCRUD, notifica internalhelpers.Notificador) *ProyectosService {
	return &ProyectosService{
		crud:     crud,
		notifica: notifica,
		Ahora:    time.Now,
	}
}

// Obtener trae el proyecto; 404 del CRUD se reporta como AppError 404.
func (s *ProyectosService) Obtener(ctx context.Context, uuid string) (*models.Proyecto, error) {
	proyecto, err := s.crud.GetProyectoByUuid(ctx, uuid)
	if err != nil {
		return nil, helpers.AsAppError(err, "error consultando proyecto")
	}
	if proyecto == nil {
		return nil, helpers.NewAppError(http.StatusNotFound, "proyecto no encontrado", nil)
	}
	return proyecto, nil
}

// Guardar crea o actualiza los metadatos de la etapa 1 y devuelve el
// objeto canónico del servidor, de modo que el llamador decida entre
// parchar la fila en memoria o recargar el listado.
func (s *ProyectosService) Guardar(ctx context.Context, uuid string, form internaldto.ProyectoForm, creando bool) (*models.Proyecto, error) {
	if err := validarProyectoForm(form); err != nil {
		return nil, err
	}

	clave := uuid
	if creando {
		// el código identifica el alta en vuelo; sin él dos altas
		// distintas compartirían la misma marca
		codigo := strings.TrimSpace(form.Codigo)
		if codigo == "" {
			return nil, helpers.NewAppError(http.StatusBadRequest, "codigo requerido", nil)
		}
		clave = "alta:" + codigo
	}
	if !s.adquirir(clave) {
		return nil, helpers.NewAppError(http.StatusConflict, "ya hay una operación en curso para este proyecto", nil)
	}
	defer s.liberar(clave)

	if creando {
		ej, err := s.crud.GetEjercicioByID(ctx, form.EjercicioId)
		if err != nil {
			return nil, helpers.AsAppError(err, "error consultando ejercicio fiscal")
		}
		if !PermiteCaptura(ej, s.Ahora()) {
			s.notifica.Warning("Captura no permitida", "la ventana de captura del ejercicio fiscal no está abierta")
			return nil, helpers.NewAppError(http.StatusConflict, "el ejercicio fiscal no permite captura de proyectos", nil)
		}
	}

	var (
		guardado *models.Proyecto
		err      error
	)
	if creando {
		guardado, err = s.crud.CreateProyecto(ctx, formAMapa(form))
	} else {
		guardado, err = s.crud.UpdateProyecto(ctx, uuid, formAMapa(form))
	}
	if err != nil {
		s.notifica.Error("No fue posible guardar el proyecto", helpers.FormatAPIError(err))
		return nil, helpers.AsAppError(err, "error guardando proyecto")
	}

	s.notifica.Success("Proyecto guardado", guardado.Nombre)
	return guardado, nil
}

// ObtenerDiagnostico devuelve el diagnóstico de la etapa 2, o nil sin
// error cuando aún no se captura (404 del CRUD es "sin datos").
func (s *ProyectosService) ObtenerDiagnostico(ctx context.Context, uuid string) (*models.Diagnostico, error) {
	diagnostico, err := s.crud.GetDiagnosticoByProyectoUuid(ctx, uuid)
	if err != nil {
		return nil, helpers.AsAppError(err, "error consultando diagnóstico")
	}
	return diagnostico, nil
}

// GuardarDiagnostico aplica semántica update-or-create: intenta
// actualizar y, si el CRUD responde que el sub-recurso no existe, lo
// crea exactamente una vez. El llamador no necesita saber si el
// diagnóstico ya existía.
func (s *ProyectosService) GuardarDiagnostico(ctx context.Context, uuid string, form internaldto.DiagnosticoForm) (*models.Diagnostico, error) {
	proyecto, err := s.Obtener(ctx, uuid)
	if err != nil {
		return nil, err
	}

	etapa := models.EtapaPorID(2)
	if !EtapaDesbloqueada(etapa, proyecto) || EtapaSoloLectura(etapa, proyecto) {
		s.notifica.Warning("Etapa bloqueada", "la etapa de diagnóstico no admite edición en el estado actual")
		return nil, helpers.NewAppError(http.StatusConflict, "la etapa de diagnóstico está bloqueada", nil)
	}

	if !s.adquirir(uuid) {
		return nil, helpers.NewAppError(http.StatusConflict, "ya hay una operación en curso para este proyecto", nil)
	}
	defer s.liberar(uuid)

	body := formAMapa(form)
	guardado, err := s.crud.UpdateDiagnostico(ctx, uuid, body)
	if err != nil {
		if helpers.IsHTTPError(err, http.StatusNotFound) || helpers.IsHTTPError(err, http.StatusBadRequest) {
			logs.Info("diagnóstico inexistente para", uuid, "- se crea")
			guardado, err = s.crud.CreateDiagnostico(ctx, uuid, body)
		}
		if err != nil {
			s.notifica.Error("No fue posible guardar el diagnóstico", helpers.FormatAPIError(err))
			return nil, helpers.AsAppError(err, "error guardando diagnóstico")
		}
	}

	s.notifica.Success("Diagnóstico guardado", proyecto.Nombre)
	return guardado, nil
}

// SolicitarRevision envía la etapa activa a revisión. Solo procede
// desde Captura u Observado.
func (s *ProyectosService) SolicitarRevision(ctx context.Context, uuid string) (*models.Proyecto, error) {
	proyecto, err := s.Obtener(ctx, uuid)
	if err != nil {
		return nil, err
	}
	if !models.PermiteSolicitarRevision(proyecto.EstatusEtapaActual) {
		return nil, helpers.NewAppError(http.StatusConflict, "la etapa actual no admite solicitud de revisión", nil)
	}

	if !s.adquirir(uuid) {
		return nil, helpers.NewAppError(http.StatusConflict, "ya hay una operación en curso para este proyecto", nil)
	}
	defer s.liberar(uuid)

	actualizado, err := s.crud.SolicitarRevision(ctx, uuid)
	if err != nil {
		s.notifica.Error("No fue posible solicitar la revisión", helpers.FormatAPIError(err))
		return nil, helpers.AsAppError(err, "error solicitando revisión")
	}
	s.notifica.Success("Etapa enviada a revisión", actualizado.Nombre)
	return actualizado, nil
}

// Aprobar dictamina la etapa activa como aprobada; requiere EnRevision.
func (s *ProyectosService) Aprobar(ctx context.Context, uuid string) (*models.Proyecto, error) {
	proyecto, err := s.Obtener(ctx, uuid)
	if err != nil {
		return nil, err
	}
	if !models.PermiteDictamen(proyecto.EstatusEtapaActual) {
		return nil, helpers.NewAppError(http.StatusConflict, "la etapa actual no está en revisión", nil)
	}

	if !s.adquirir(uuid) {
		return nil, helpers.NewAppError(http.StatusConflict, "ya hay una operación en curso para este proyecto", nil)
	}
	defer s.liberar(uuid)

	actualizado, err := s.crud.AprobarEtapa(ctx, uuid)
	if err != nil {
		s.notifica.Error("No fue posible aprobar la etapa", helpers.FormatAPIError(err))
		return nil, helpers.AsAppError(err, "error aprobando etapa")
	}
	s.notifica.Success("Etapa aprobada", actualizado.Nombre)
	return actualizado, nil
}

// Observar dictamina la etapa activa como observada y persiste la
// observación; requiere EnRevision. La longitud mínima del texto se
// valida en la frontera HTTP, no aquí.
func (s *ProyectosService) Observar(ctx context.Context, uuid, observacion string) (*models.Proyecto, error) {
	proyecto, err := s.Obtener(ctx, uuid)
	if err != nil {
		return nil, err
	}
	if !models.PermiteDictamen(proyecto.EstatusEtapaActual) {
		return nil, helpers.NewAppError(http.StatusConflict, "la etapa actual no está en revisión", nil)
	}

	if !s.adquirir(uuid) {
		return nil, helpers.NewAppError(http.StatusConflict, "ya hay una operación en curso para este proyecto", nil)
	}
	defer s.liberar(uuid)

	actualizado, err := s.crud.ObservarEtapa(ctx, uuid, observacion)
	if err != nil {
		s.notifica.Error("No fue posible registrar la observación", helpers.FormatAPIError(err))
		return nil, helpers.AsAppError(err, "error registrando observación")
	}
	s.notifica.Success("Etapa observada", actualizado.Nombre)
	return actualizado, nil
}

// Avance calcula el estado del asistente para el proyecto.
func (s *ProyectosService) Avance(ctx context.Context, uuid string) (internaldto.AvanceDTO, error) {
	proyecto, err := s.Obtener(ctx, uuid)
	if err != nil {
		return internaldto.AvanceDTO{}, err
	}
	return ResolverAvance(proyecto), nil
}

// ListarPorEjercicio trae una página de proyectos del año indicado con
// el nombre de despliegue de su estatus resuelto.
func (s *ProyectosService) ListarPorEjercicio(ctx context.Context, anio, page, perPage int) (map[string]interface{}, error) {
	proyectos, total, err := s.crud.ListProyectosByEjercicio(ctx, anio, page, perPage)
	if err != nil {
		return nil, helpers.AsAppError(err, "error consultando proyectos del ejercicio")
	}

	items := make([]map[string]interface{}, 0, len(proyectos))
	for _, p := range proyectos {
		items = append(items, map[string]interface{}{
			"uuid":                 p.Uuid,
			"codigo":               p.Codigo,
			"nombre":               p.Nombre,
			"prioridad":            p.Prioridad,
			"unidad":               p.Unidad,
			"responsable":          p.Responsable,
			"etapa_actual":         p.EtapaActualID(),
			"estatus":              p.Estatus,
			"estatus_nombre":       rootservices.NombreEstatus(p.Estatus),
			"estatus_etapa_actual": p.EstatusEtapaActual,
			"presupuesto_total":    p.PresupuestoTotal,
		})
	}
	return map[string]interface{}{
		"items":    items,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	}, nil
}

func (s *ProyectosService) adquirir(clave string) bool {
	if strings.TrimSpace(clave) == "" {
		return true
	}
	_, cargada := s.enVuelo.LoadOrStore(clave, struct{}{})
	return !cargada
}

func (s *ProyectosService) liberar(clave string) {
	s.enVuelo.Delete(clave)
}

func validarProyectoForm(form internaldto.ProyectoForm) error {
	if strings.TrimSpace(form.Nombre) == "" {
		return helpers.NewAppError(http.StatusBadRequest, "nombre requerido", nil)
	}
	if form.EjercicioId <= 0 {
		return helpers.NewAppError(http.StatusBadRequest, "ejercicioId requerido", nil)
	}
	switch strings.TrimSpace(form.Prioridad) {
	case models.PrioridadCritica, models.PrioridadAlta, models.PrioridadMedia, models.PrioridadBaja:
	default:
		return helpers.NewAppError(http.StatusBadRequest, "prioridad inválida", nil)
	}
	return nil
}

// formAMapa serializa el formulario a un mapa genérico camelCase; el
// cliente lo convierte a snake_case antes de enviarlo al CRUD.
func formAMapa(form interface{}) map[string]interface{} {
	raw, err := json.Marshal(form)
	if err != nil {
		return map[string]interface{}{}
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]interface{}{}
	}
	return out
}
