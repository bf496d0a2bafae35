package helpers

import (
	"strings"

	"github.com/beego/beego/v2/core/logs"

	roothelpers "github.com/udistrital/planeacion_mid/helpers"
	rootservices "github.com/udistrital/planeacion_mid/services"
)

type notificacionesClient struct{}

// Notificaciones expone el canal de avisos hacia el servicio de
// notificaciones. Es fire-and-forget: un fallo al notificar se
// registra en el log pero nunca altera el resultado de la operación.
var Notificaciones = notificacionesClient{}

// Notificador abstrae el canal para poder inyectar dobles en pruebas.
type Notificador interface {
	Success(titulo, detalle string)
	Error(titulo, detalle string)
	Warning(titulo, detalle string)
}

func (notificacionesClient) Success(titulo, detalle string) {
	enviar("success", titulo, detalle)
}

func (notificacionesClient) Error(titulo, detalle string) {
	enviar("error", titulo, detalle)
}

func (notificacionesClient) Warning(titulo, detalle string) {
	enviar("warning", titulo, detalle)
}

func enviar(severidad, titulo, detalle string) {
	cfg := rootservices.GetConfig()
	base := cfg.NotificacionesBaseURL
	if base == "" {
		return
	}

	headers := rootservices.AddOASAuth(nil)
	body := map[string]interface{}{
		"Severidad": severidad,
		"Titulo":    strings.TrimSpace(titulo),
		"Detalle":   strings.TrimSpace(detalle),
	}

	endpoint := rootservices.BuildURL(base, "notificaciones")
	var response map[string]interface{}
	if err := roothelpers.DoJSONWithHeaders("POST", endpoint, headers, body, &response, cfg.RequestTimeout, true); err != nil {
		logs.Warn("notificación no enviada:", severidad, titulo, err)
	}
}
