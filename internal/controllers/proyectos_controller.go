package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	rootcontrollers "github.com/udistrital/planeacion_mid/controllers"
	"github.com/udistrital/planeacion_mid/helpers"
	internaldto "github.com/udistrital/planeacion_mid/internal/dto"
	internalhelpers "github.com/udistrital/planeacion_mid/internal/helpers"
	internalservices "github.com/udistrital/planeacion_mid/internal/services"
)

// Longitud mínima de una observación de revisión, validada en la
// frontera HTTP tal como lo hace el diálogo de edición del SPA.
const minObservacion = 10

// ProyectosController expone las operaciones del asistente de captura
// de proyectos.
type ProyectosController struct {
	rootcontrollers.BaseController
}

// PostCrear da de alta un proyecto (etapa 1).
// @Summary Crear proyecto
// @Description Valida el formulario y la ventana de captura del ejercicio fiscal antes de delegar en el CRUD.
// @Tags Proyectos
// @Accept json
// @Produce json
// @Param body body internaldto.ProyectoForm true "Formulario de la etapa 1"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
// @Failure 409 {object} internaldto.APIResponseDTO
// @Failure 500 {object} internaldto.APIResponseDTO
func (c *ProyectosController) PostCrear() {
	var form internaldto.ProyectoForm
	if err := c.ParseJSONBody(&form); err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "cuerpo inválido", err), "cuerpo inválido")
		return
	}

	proyecto, err := internalservices.Proyectos().Guardar(c.Ctx.Request.Context(), "", form, true)
	if err != nil {
		c.respondError(err, "error creando proyecto")
		return
	}

	resp := internalhelpers.Ok(proyecto)
	resp.Message = "Proyecto creado"
	c.writeJSON(resp.Status, resp)
}

// PutActualizar actualiza los metadatos de un proyecto existente.
// @Summary Actualizar proyecto
// @Tags Proyectos
// @Accept json
// @Produce json
// @Param uuid path string true "Uuid del proyecto"
// @Param body body internaldto.ProyectoForm true "Formulario de la etapa 1"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
// @Failure 404 {object} internaldto.APIResponseDTO
// @Failure 500 {object} internaldto.APIResponseDTO
func (c *ProyectosController) PutActualizar() {
	proyectoUuid, ok := c.parseUuid()
	if !ok {
		return
	}
	var form internaldto.ProyectoForm
	if err := c.ParseJSONBody(&form); err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "cuerpo inválido", err), "cuerpo inválido")
		return
	}

	proyecto, err := internalservices.Proyectos().Guardar(c.Ctx.Request.Context(), proyectoUuid, form, false)
	if err != nil {
		c.respondError(err, "error actualizando proyecto")
		return
	}

	resp := internalhelpers.Ok(proyecto)
	resp.Message = "Proyecto actualizado"
	c.writeJSON(resp.Status, resp)
}

// GetDetalle devuelve el proyecto completo.
// @Summary Consultar proyecto
// @Tags Proyectos
// @Produce json
// @Param uuid path string true "Uuid del proyecto"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 404 {object} internaldto.APIResponseDTO
func (c *ProyectosController) GetDetalle() {
	proyectoUuid, ok := c.parseUuid()
	if !ok {
		return
	}
	proyecto, err := internalservices.Proyectos().Obtener(c.Ctx.Request.Context(), proyectoUuid)
	if err != nil {
		c.respondError(err, "error consultando proyecto")
		return
	}
	resp := internalhelpers.Ok(proyecto)
	c.writeJSON(resp.Status, resp)
}

// GetListado lista los proyectos de un ejercicio fiscal paginados.
// @Summary Listar proyectos por ejercicio
// @Tags Proyectos
// @Produce json
// @Param anio query int true "Año del ejercicio fiscal" Example(2025)
// @Param page query int false "Página" Example(1)
// @Param per_page query int false "Tamaño de página" Example(20)
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
func (c *ProyectosController) GetListado() {
	anio, err := strconv.Atoi(strings.TrimSpace(c.GetString("anio")))
	if err != nil || anio <= 0 {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "anio requerido", err), "anio requerido")
		return
	}
	page, perPage := internalhelpers.ParsePageSize(c.GetString("page"), c.GetString("per_page"))

	result, err := internalservices.Proyectos().ListarPorEjercicio(c.Ctx.Request.Context(), anio, page, perPage)
	if err != nil {
		c.respondError(err, "error consultando proyectos")
		return
	}
	resp := internalhelpers.Ok(result)
	c.writeJSON(resp.Status, resp)
}

// GetAvance devuelve el estado calculado del asistente.
// @Summary Consultar avance del asistente
// @Description Por etapa: completada, desbloqueada y solo_lectura; más la bandera de envío a revisión.
// @Tags Proyectos
// @Produce json
// @Param uuid path string true "Uuid del proyecto"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 404 {object} internaldto.APIResponseDTO
func (c *ProyectosController) GetAvance() {
	proyectoUuid, ok := c.parseUuid()
	if !ok {
		return
	}
	avance, err := internalservices.Proyectos().Avance(c.Ctx.Request.Context(), proyectoUuid)
	if err != nil {
		c.respondError(err, "error calculando avance")
		return
	}
	resp := internalhelpers.Ok(avance)
	c.writeJSON(resp.Status, resp)
}

// GetDiagnostico devuelve el diagnóstico de la etapa 2; cuando aún no
// existe responde Success con Data null en lugar de error.
// @Summary Consultar diagnóstico
// @Tags Proyectos
// @Produce json
// @Param uuid path string true "Uuid del proyecto"
// @Success 200 {object} internaldto.APIResponseDTO
func (c *ProyectosController) GetDiagnostico() {
	proyectoUuid, ok := c.parseUuid()
	if !ok {
		return
	}
	diagnostico, err := internalservices.Proyectos().ObtenerDiagnostico(c.Ctx.Request.Context(), proyectoUuid)
	if err != nil {
		c.respondError(err, "error consultando diagnóstico")
		return
	}
	resp := internalhelpers.Ok(diagnostico)
	c.writeJSON(resp.Status, resp)
}

// PutDiagnostico guarda el diagnóstico con semántica update-or-create.
// @Summary Guardar diagnóstico
// @Tags Proyectos
// @Accept json
// @Produce json
// @Param uuid path string true "Uuid del proyecto"
// @Param body body internaldto.DiagnosticoForm true "Formulario de la etapa 2"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 409 {object} internaldto.APIResponseDTO
func (c *ProyectosController) PutDiagnostico() {
	proyectoUuid, ok := c.parseUuid()
	if !ok {
		return
	}
	var form internaldto.DiagnosticoForm
	if err := c.ParseJSONBody(&form); err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "cuerpo inválido", err), "cuerpo inválido")
		return
	}

	diagnostico, err := internalservices.Proyectos().GuardarDiagnostico(c.Ctx.Request.Context(), proyectoUuid, form)
	if err != nil {
		c.respondError(err, "error guardando diagnóstico")
		return
	}
	resp := internalhelpers.Ok(diagnostico)
	resp.Message = "Diagnóstico guardado"
	c.writeJSON(resp.Status, resp)
}

// PutSolicitarRevision envía la etapa activa a revisión.
// @Summary Solicitar revisión de la etapa activa
// @Tags Proyectos
// @Produce json
// @Param uuid path string true "Uuid del proyecto"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 409 {object} internaldto.APIResponseDTO
func (c *ProyectosController) PutSolicitarRevision() {
	proyectoUuid, ok := c.parseUuid()
	if !ok {
		return
	}
	proyecto, err := internalservices.Proyectos().SolicitarRevision(c.Ctx.Request.Context(), proyectoUuid)
	if err != nil {
		c.respondError(err, "error solicitando revisión")
		return
	}
	resp := internalhelpers.Ok(proyecto)
	resp.Message = "Revisión solicitada"
	c.writeJSON(resp.Status, resp)
}

// PutAprobar aprueba la etapa activa.
// @Summary Aprobar etapa activa
// @Tags Proyectos
// @Produce json
// @Param uuid path string true "Uuid del proyecto"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 409 {object} internaldto.APIResponseDTO
func (c *ProyectosController) PutAprobar() {
	proyectoUuid, ok := c.parseUuid()
	if !ok {
		return
	}
	proyecto, err := internalservices.Proyectos().Aprobar(c.Ctx.Request.Context(), proyectoUuid)
	if err != nil {
		c.respondError(err, "error aprobando etapa")
		return
	}
	resp := internalhelpers.Ok(proyecto)
	resp.Message = "Etapa aprobada"
	c.writeJSON(resp.Status, resp)
}

// PutObservar registra una observación sobre la etapa activa.
// @Summary Observar etapa activa
// @Description La observación debe tener al menos 10 caracteres.
// @Tags Proyectos
// @Accept json
// @Produce json
// @Param uuid path string true "Uuid del proyecto"
// @Param body body internaldto.ObservacionBody true "Observación"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
// @Failure 409 {object} internaldto.APIResponseDTO
func (c *ProyectosController) PutObservar() {
	proyectoUuid, ok := c.parseUuid()
	if !ok {
		return
	}
	var body internaldto.ObservacionBody
	if err := c.ParseJSONBody(&body); err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "cuerpo inválido", err), "cuerpo inválido")
		return
	}
	observacion := strings.TrimSpace(body.Observacion)
	if len([]rune(observacion)) < minObservacion {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "la observación debe tener al menos 10 caracteres", nil), "observación muy corta")
		return
	}

	proyecto, err := internalservices.Proyectos().Observar(c.Ctx.Request.Context(), proyectoUuid, observacion)
	if err != nil {
		c.respondError(err, "error registrando observación")
		return
	}
	resp := internalhelpers.Ok(proyecto)
	resp.Message = "Observación registrada"
	c.writeJSON(resp.Status, resp)
}

func (c *ProyectosController) parseUuid() (string, bool) {
	raw := strings.TrimSpace(c.Ctx.Input.Param(":uuid"))
	if _, err := uuid.Parse(raw); err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "uuid inválido", err), "uuid inválido")
		return "", false
	}
	return raw, true
}

func (c *ProyectosController) respondError(err error, fallback string) {
	appErr := helpers.AsAppError(err, fallback)
	resp := internalhelpers.Fail(appErr.Status, appErr.Message)
	c.writeJSON(resp.Status, resp)
}

func (c *ProyectosController) writeJSON(status int, payload internaldto.APIResponseDTO) {
	c.Ctx.Output.SetStatus(status)
	c.Data["json"] = payload
	_ = c.ServeJSON()
}
