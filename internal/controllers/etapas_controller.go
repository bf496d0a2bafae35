package controllers

import (
	rootcontrollers "github.com/udistrital/planeacion_mid/controllers"
	internaldto "github.com/udistrital/planeacion_mid/internal/dto"
	internalhelpers "github.com/udistrital/planeacion_mid/internal/helpers"
	"github.com/udistrital/planeacion_mid/models"
)

// EtapasController expone el catálogo fijo de etapas del asistente.
type EtapasController struct {
	rootcontrollers.BaseController
}

// GetCatalogo devuelve las cinco etapas en orden.
// @Summary Catálogo de etapas
// @Tags Etapas
// @Produce json
// @Success 200 {object} internaldto.APIResponseDTO
func (c *EtapasController) GetCatalogo() {
	resp := internalhelpers.Ok(models.Etapas())
	c.writeJSON(resp.Status, resp)
}

func (c *EtapasController) writeJSON(status int, payload internaldto.APIResponseDTO) {
	c.Ctx.Output.SetStatus(status)
	c.Data["json"] = payload
	_ = c.ServeJSON()
}
