package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	rootcontrollers "github.com/udistrital/planeacion_mid/controllers"
	"github.com/udistrital/planeacion_mid/helpers"
	internaldto "github.com/udistrital/planeacion_mid/internal/dto"
	internalhelpers "github.com/udistrital/planeacion_mid/internal/helpers"
	internalservices "github.com/udistrital/planeacion_mid/internal/services"
)

// EjerciciosController administra los ejercicios fiscales y expone el
// resultado de sus compuertas.
type EjerciciosController struct {
	rootcontrollers.BaseController
}

// GetListado lista todos los ejercicios fiscales.
// @Summary Listar ejercicios fiscales
// @Tags Ejercicios
// @Produce json
// @Success 200 {object} internaldto.APIResponseDTO
func (c *EjerciciosController) GetListado() {
	ejercicios, err := internalservices.Ejercicios().Listar(c.Ctx.Request.Context())
	if err != nil {
		c.respondError(err, "error consultando ejercicios fiscales")
		return
	}
	resp := internalhelpers.Ok(ejercicios)
	c.writeJSON(resp.Status, resp)
}

// PostCrear da de alta un ejercicio fiscal.
// @Summary Crear ejercicio fiscal
// @Tags Ejercicios
// @Accept json
// @Produce json
// @Param body body internaldto.EjercicioForm true "Formulario del ejercicio"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
func (c *EjerciciosController) PostCrear() {
	var form internaldto.EjercicioForm
	if err := c.ParseJSONBody(&form); err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "cuerpo inválido", err), "cuerpo inválido")
		return
	}
	ejercicio, err := internalservices.Ejercicios().Crear(c.Ctx.Request.Context(), form)
	if err != nil {
		c.respondError(err, "error creando ejercicio fiscal")
		return
	}
	resp := internalhelpers.Ok(ejercicio)
	resp.Message = "Ejercicio creado"
	c.writeJSON(resp.Status, resp)
}

// PutActualizar modifica un ejercicio fiscal.
// @Summary Actualizar ejercicio fiscal
// @Tags Ejercicios
// @Accept json
// @Produce json
// @Param id path int true "Id del ejercicio"
// @Param body body internaldto.EjercicioForm true "Formulario del ejercicio"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 404 {object} internaldto.APIResponseDTO
func (c *EjerciciosController) PutActualizar() {
	id, ok := c.parseID()
	if !ok {
		return
	}
	var form internaldto.EjercicioForm
	if err := c.ParseJSONBody(&form); err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "cuerpo inválido", err), "cuerpo inválido")
		return
	}
	ejercicio, err := internalservices.Ejercicios().Actualizar(c.Ctx.Request.Context(), id, form)
	if err != nil {
		c.respondError(err, "error actualizando ejercicio fiscal")
		return
	}
	resp := internalhelpers.Ok(ejercicio)
	resp.Message = "Ejercicio actualizado"
	c.writeJSON(resp.Status, resp)
}

// DeleteEliminar borra un ejercicio sin proyectos asociados.
// @Summary Eliminar ejercicio fiscal
// @Tags Ejercicios
// @Produce json
// @Param id path int true "Id del ejercicio"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 409 {object} internaldto.APIResponseDTO
func (c *EjerciciosController) DeleteEliminar() {
	id, ok := c.parseID()
	if !ok {
		return
	}
	if err := internalservices.Ejercicios().Eliminar(c.Ctx.Request.Context(), id); err != nil {
		c.respondError(err, "error eliminando ejercicio fiscal")
		return
	}
	resp := internalhelpers.Ok(map[string]interface{}{"id": id})
	resp.Message = "Ejercicio eliminado"
	c.writeJSON(resp.Status, resp)
}

// PutActivar marca el ejercicio como el único Activo.
// @Summary Activar ejercicio fiscal
// @Description Desactiva cualquier otro ejercicio activo en la misma operación.
// @Tags Ejercicios
// @Produce json
// @Param id path int true "Id del ejercicio"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 404 {object} internaldto.APIResponseDTO
func (c *EjerciciosController) PutActivar() {
	id, ok := c.parseID()
	if !ok {
		return
	}
	ejercicio, err := internalservices.Ejercicios().Activar(c.Ctx.Request.Context(), id)
	if err != nil {
		c.respondError(err, "error activando ejercicio fiscal")
		return
	}
	resp := internalhelpers.Ok(ejercicio)
	resp.Message = "Ejercicio activado"
	c.writeJSON(resp.Status, resp)
}

// GetCaptura devuelve las compuertas del ejercicio para la fecha actual.
// @Summary Consultar compuertas de captura
// @Tags Ejercicios
// @Produce json
// @Param id path int true "Id del ejercicio"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 404 {object} internaldto.APIResponseDTO
func (c *EjerciciosController) GetCaptura() {
	id, ok := c.parseID()
	if !ok {
		return
	}
	captura, err := internalservices.Ejercicios().EstadoCaptura(c.Ctx.Request.Context(), id, time.Now().UTC())
	if err != nil {
		c.respondError(err, "error consultando compuertas del ejercicio")
		return
	}
	resp := internalhelpers.Ok(captura)
	c.writeJSON(resp.Status, resp)
}

func (c *EjerciciosController) parseID() (int, bool) {
	raw := strings.TrimSpace(c.Ctx.Input.Param(":id"))
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "id inválido", err), "id inválido")
		return 0, false
	}
	return val, true
}

func (c *EjerciciosController) respondError(err error, fallback string) {
	appErr := helpers.AsAppError(err, fallback)
	resp := internalhelpers.Fail(appErr.Status, appErr.Message)
	c.writeJSON(resp.Status, resp)
}

func (c *EjerciciosController) writeJSON(status int, payload internaldto.APIResponseDTO) {
	c.Ctx.Output.SetStatus(status)
	c.Data["json"] = payload
	_ = c.ServeJSON()
}
