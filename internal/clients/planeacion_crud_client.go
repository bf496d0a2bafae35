package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/udistrital/planeacion_mid/helpers"
	internalhelpers "github.com/udistrital/planeacion_mid/internal/helpers"
	"github.com/udistrital/planeacion_mid/models"
	rootservices "github.com/udistrital/planeacion_mid/services"
)

// PlaneacionCRUDClient envuelve las operaciones contra el servicio
// planeacion_crud que requiere el MID. El CRUD habla snake_case; los
// formularios que llegan del SPA en camelCase se convierten antes de
// enviarse.
type PlaneacionCRUDClient struct {
	cfg rootservices.Config
}

var (
	planeacionClient     *PlaneacionCRUDClient
	planeacionClientOnce sync.Once
)

// PlaneacionCRUD returns a singleton client ready to call the CRUD service.
func PlaneacionCRUD() *PlaneacionCRUDClient {
	planeacionClientOnce.Do(func() {
		planeacionClient = &PlaneacionCRUDClient{
			cfg: rootservices.GetConfig(),
		}
	})
	return planeacionClient
}

// NewPlaneacionCRUD construye un cliente con configuración explícita.
func NewPlaneacionCRUD(cfg rootservices.Config) *PlaneacionCRUDClient {
	return &PlaneacionCRUDClient{cfg: cfg}
}

// ---------- Proyectos ----------

// GetProyectoByUuid fetches a project by its stable identifier; 404 resolves to nil.
func (c *PlaneacionCRUDClient) GetProyectoByUuid(ctx context.Context, uuid string) (*models.Proyecto, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	endpoint := rootservices.BuildURL(c.cfg.PlaneacionCRUDBaseURL, "proyecto", uuid)

	var raw models.Proyecto
	if err := helpers.DoJSON("GET", endpoint, nil, &raw, c.cfg.RequestTimeout); err != nil {
		if helpers.IsHTTPError(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &raw, nil
}

// CreateProyecto registers a new project from a camelCase form payload.
func (c *PlaneacionCRUDClient) CreateProyecto(ctx context.Context, form map[string]interface{}) (*models.Proyecto, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	endpoint := rootservices.BuildURL(c.cfg.PlaneacionCRUDBaseURL, "proyecto")
	body := internalhelpers.ToSnakeCase(form)

	var created models.Proyecto
	if err := helpers.DoJSON("POST", endpoint, body, &created, c.cfg.RequestTimeout); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProyecto updates project metadata for the given uuid.
func (c *PlaneacionCRUDClient) UpdateProyecto(ctx context.Context, uuid string, form map[string]interface{}) (*models.Proyecto, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	endpoint := rootservices.BuildURL(c.cfg.PlaneacionCRUDBaseURL, "proyecto", uuid)
	body := internalhelpers.ToSnakeCase(form)

	var updated models.Proyecto
	if err := helpers.DoJSON("PUT", endpoint, body, &updated, c.cfg.RequestTimeout); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ListProyectosByEjercicio retrieves a page of projects for a fiscal year.
func (c *PlaneacionCRUDClient) ListProyectosByEjercicio(ctx context.Context, anio, page, perPage int) ([]models.Proyecto, int, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, 0, err
	}
	endpoint := rootservices.BuildURL(c.cfg.PlaneacionCRUDBaseURL, "proyecto")
	values := url.Values{}
	values.Set("query", fmt.Sprintf("EjercicioFiscal.Anio:%d", anio))
	values.Set("limit", strconv.Itoa(perPage))
	if page > 1 {
		values.Set("offset", strconv.Itoa((page-1)*perPage))
	}
	urlWithQuery := endpoint + "?" + values.Encode()

	var data struct {
		Items []models.Proyecto `json:"items"`
		Total int               `json:"total"`
	}
	if err := helpers.DoJSON("GET", urlWithQuery, nil, &data, c.cfg.RequestTimeout); err != nil {
		return nil, 0, err
	}
	if data.Items == nil {
		data.Items = []models.Proyecto{}
	}
	return data.Items, data.Total, nil
}

// CountProyectosByEjercicioID returns how many projects reference the fiscal year.
func (c *PlaneacionCRUDClient) CountProyectosByEjercicioID(ctx context.Context, ejercicioID int) (int, error) {
	if err := ctxErr(ctx); err != nil {
		return 0, err
	}
	endpoint := rootservices.BuildURL(c.cfg.PlaneacionCRUDBaseURL, "proyecto")
	values := url.Values{}
	values.Set("query", fmt.Sprintf("EjercicioId:%d", ejercicioID))
	values.Set("limit", "1")
	urlWithQuery := endpoint + "?" + values.Encode()

	var data struct {
		Total int `json:"total"`
	}
	if err := helpers.DoJSON("GET", urlWithQuery, nil, &data, c.cfg.RequestTimeout); err != nil {
		return 0, err
	}
	return data.Total, nil
}

// ---------- Diagnóstico (etapa 2) ----------

// GetDiagnosticoByProyectoUuid returns the stage-2 sub-resource; 404 is
// a valid "sin datos" signal and resolves to nil without error.
func (c *PlaneacionCRUDClient) GetDiagnosticoByProyectoUuid(ctx context.Context, uuid string) (*models.Diagnostico, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	endpoint := rootservices.BuildURL(c.cfg.PlaneacionCRUDBaseURL, "diagnostico", "proyecto", uuid)

	var raw models.Diagnostico
	if err := helpers.DoJSON("GET", endpoint, nil, &raw, c.cfg.RequestTimeout); err != nil {
		if helpers.IsHTTPError(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &raw, nil
}

// CreateDiagnostico registers the stage-2 sub-resource for a project.
func (c *PlaneacionCRUDClient) CreateDiagnostico(ctx context.Context, uuid string, form map[string]interface{}) (*models.Diagnostico, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	endpoint := rootservices.BuildURL(c.cfg.PlaneacionCRUDBaseURL, "diagnostico", "proyecto", uuid)
	body := internalhelpers.ToSnakeCase(form)

	var created models.Diagnostico
	if err := helpers.DoJSON("POST", endpoint, body, &created, c.cfg.RequestTimeout); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateDiagnostico updates the stage-2 sub-resource for a project.
func (c *PlaneacionCRUDClient) UpdateDiagnostico(ctx context.Context, uuid string, form map[string]interface{}) (*models.Diagnostico, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	endpoint := rootservices.BuildURL(c.cfg.PlaneacionCRUDBaseURL, "diagnostico", "proyecto", uuid)
	body := internalhelpers.ToSnakeCase(form)

	var updated models.Diagnostico
	if err := helpers.DoJSON("PUT", endpoint, body, &updated, c.cfg.RequestTimeout); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ---------- Transiciones de etapa ----------

// SolicitarRevision transitions the active stage to EnRevision.
func (c *PlaneacionCRUDClient) SolicitarRevision(ctx context.Context, uuid string) (*models.Proyecto, error) {
	return c.transicion(ctx, uuid, "solicitar_revision", nil)
}

// AprobarEtapa transitions the active stage to Aprobado.
func (c *PlaneacionCRUDClient) AprobarEtapa(ctx context.Context, uuid string) (*models.Proyecto, error) {
	return c.transicion(ctx, uuid, "aprobar", nil)
}

// ObservarEtapa transitions the active stage to Observado persisting the note.
func (c *PlaneacionCRUDClient) ObservarEtapa(ctx context.Context, uuid, observacion string) (*models.Proyecto, error) {
	body := map[string]interface{}{
		"observacion": strings.TrimSpace(observacion),
	}
	return c.transicion(ctx, uuid, "observar", body)
}

func (c *PlaneacionCRUDClient) transicion(ctx context.Context, uuid, accion string, body map[string]interface{}) (*models.Proyecto, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	endpoint := rootservices.BuildURL(c.cfg.PlaneacionCRUDBaseURL, "proyecto", uuid, accion)

	var updated models.Proyecto
	if err := helpers.DoJSON("PUT", endpoint, body, &updated, c.cfg.RequestTimeout); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ---------- Ejercicios fiscales ----------

// ListEjercicios lists every fiscal year known to the CRUD.
func (c *PlaneacionCRUDClient) ListEjercicios(ctx context.Context) ([]models.EjercicioFiscal, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	endpoint := rootservices.BuildURL(c.cfg.PlaneacionCRUDBaseURL, "ejercicio_fiscal")
	values := url.Values{}
	values.Set("limit", "0")
	urlWithQuery := endpoint + "?" + values.Encode()

	var raw []ejercicioRecord
	if err := helpers.DoJSON("GET", urlWithQuery, nil, &raw, c.cfg.RequestTimeout); err != nil {
		return nil, err
	}
	result := make([]models.EjercicioFiscal, 0, len(raw))
	for _, item := range raw {
		result = append(result, mapEjercicio(item))
	}
	return result, nil
}

// GetEjercicioByID fetches a fiscal year; 404 resolves to nil.
func (c *PlaneacionCRUDClient) GetEjercicioByID(ctx context.Context, id int) (*models.EjercicioFiscal, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	endpoint := rootservices.BuildURL(c.cfg.PlaneacionCRUDBaseURL, "ejercicio_fiscal", strconv.Itoa(id))

	var raw ejercicioRecord
	if err := helpers.DoJSON("GET", endpoint, nil, &raw, c.cfg.RequestTimeout); err != nil {
		if helpers.IsHTTPError(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, err
	}
	ej := mapEjercicio(raw)
	return &ej, nil
}

// CreateEjercicio registers a new fiscal year.
func (c *PlaneacionCRUDClient) CreateEjercicio(ctx context.Context, ej models.EjercicioFiscal) (*models.EjercicioFiscal, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	endpoint := rootservices.BuildURL(c.cfg.PlaneacionCRUDBaseURL, "ejercicio_fiscal")

	var raw ejercicioRecord
	if err := helpers.DoJSON("POST", endpoint, ejercicioBody(ej), &raw, c.cfg.RequestTimeout); err != nil {
		return nil, err
	}
	created := mapEjercicio(raw)
	return &created, nil
}

// UpdateEjercicio updates dates and estatus of a fiscal year.
func (c *PlaneacionCRUDClient) UpdateEjercicio(ctx context.Context, id int, ej models.EjercicioFiscal) (*models.EjercicioFiscal, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	endpoint := rootservices.BuildURL(c.cfg.PlaneacionCRUDBaseURL, "ejercicio_fiscal", strconv.Itoa(id))

	var raw ejercicioRecord
	if err := helpers.DoJSON("PUT", endpoint, ejercicioBody(ej), &raw, c.cfg.RequestTimeout); err != nil {
		return nil, err
	}
	updated := mapEjercicio(raw)
	return &updated, nil
}

// DeleteEjercicio removes a fiscal year.
func (c *PlaneacionCRUDClient) DeleteEjercicio(ctx context.Context, id int) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	endpoint := rootservices.BuildURL(c.cfg.PlaneacionCRUDBaseURL, "ejercicio_fiscal", strconv.Itoa(id))
	return helpers.DoJSON("DELETE", endpoint, nil, nil, c.cfg.RequestTimeout)
}

// ---------- Mapeo de registros ----------

// ejercicioRecord es la forma cruda del CRUD: fechas YYYY-MM-DD.
type ejercicioRecord struct {
	Id                         int    `json:"id"`
	Anio                       int    `json:"anio"`
	FechaInicioEjercicio       string `json:"fecha_inicio_ejercicio"`
	FechaCierreEjercicio       string `json:"fecha_cierre_ejercicio"`
	FechaInicioCapturaProyecto string `json:"fecha_inicio_captura_proyecto"`
	FechaCierreCapturaProyecto string `json:"fecha_cierre_captura_proyecto"`
	Estatus                    string `json:"estatus"`
	TotalProyectos             int    `json:"total_proyectos"`
}

const fechaLayout = "2006-01-02"

func mapEjercicio(raw ejercicioRecord) models.EjercicioFiscal {
	return models.EjercicioFiscal{
		Id:                 raw.Id,
		Anio:               raw.Anio,
		FechaInicio:        ParseFecha(raw.FechaInicioEjercicio),
		FechaCierre:        ParseFecha(raw.FechaCierreEjercicio),
		FechaInicioCaptura: ParseFecha(raw.FechaInicioCapturaProyecto),
		FechaCierreCaptura: ParseFecha(raw.FechaCierreCapturaProyecto),
		Estatus:            strings.TrimSpace(raw.Estatus),
		TotalProyectos:     raw.TotalProyectos,
	}
}

func ejercicioBody(ej models.EjercicioFiscal) map[string]interface{} {
	return map[string]interface{}{
		"anio":                          ej.Anio,
		"fecha_inicio_ejercicio":        FormatFecha(ej.FechaInicio),
		"fecha_cierre_ejercicio":        FormatFecha(ej.FechaCierre),
		"fecha_inicio_captura_proyecto": FormatFecha(ej.FechaInicioCaptura),
		"fecha_cierre_captura_proyecto": FormatFecha(ej.FechaCierreCaptura),
		"estatus":                       ej.Estatus,
	}
}

// ParseFecha normaliza las fechas del CRUD a time.Time. Valores vacíos
// o mal formados producen el cero de time.Time; las compuertas tratan
// ese cero como cerrado.
func ParseFecha(value string) time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}
	}
	layouts := []string{
		fechaLayout,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatFecha serializa al formato YYYY-MM-DD del CRUD; el cero queda vacío.
func FormatFecha(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(fechaLayout)
}

func ctxErr(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
