package services

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/udistrital/planeacion_mid/helpers"
)

type cacheEntry struct {
	value      interface{}
	expiration time.Time
}

var nombresCache sync.Map

// Parametro es la forma mínima que expone el servicio de parámetros.
type Parametro struct {
	Id                int    `json:"Id"`
	Nombre            string `json:"Nombre"`
	CodigoAbreviacion string `json:"CodigoAbreviacion"`
	Activo            bool   `json:"Activo"`
}

// Nombres de despliegue usados cuando el servicio de parámetros no
// está configurado o no conoce el código.
var nombresEstatus = map[string]string{
	"Borrador":   "Borrador",
	"EnProgreso": "En progreso",
	"EnRevision": "En revisión",
	"Aprobado":   "Aprobado",
	"Observado":  "Observado",
	"Cancelado":  "Cancelado",
	"Rechazado":  "Rechazado",
	"Captura":    "En captura",
}

// NombreEstatus resuelve el nombre de despliegue de un código de
// estatus consultando el servicio de parámetros, con caché de 10
// minutos y mapa local como respaldo.
func NombreEstatus(codigo string) string {
	code := strings.TrimSpace(codigo)
	if code == "" {
		return code
	}

	if entry, ok := nombresCache.Load(code); ok {
		if cached, okCast := entry.(cacheEntry); okCast && time.Now().Before(cached.expiration) {
			if nombre, okStr := cached.value.(string); okStr {
				return nombre
			}
		}
	}

	if nombre := consultarNombre(code); nombre != "" {
		nombresCache.Store(code, cacheEntry{value: nombre, expiration: time.Now().Add(10 * time.Minute)})
		return nombre
	}

	if nombre, ok := nombresEstatus[code]; ok {
		return nombre
	}
	return code
}

func consultarNombre(codigo string) string {
	cfg := GetConfig()
	if cfg.ParametrosBaseURL == "" {
		return ""
	}

	endpoint := BuildURL(cfg.ParametrosBaseURL, "parametro")
	values := url.Values{}
	values.Set("limit", "1")
	values.Set("query", fmt.Sprintf("CodigoAbreviacion:%s,Activo:true", codigo))
	urlWithQuery := endpoint + "?" + values.Encode()

	var response []Parametro
	headers := AddOASAuth(nil)
	if err := helpers.DoJSONWithHeaders("GET", urlWithQuery, headers, nil, &response, cfg.RequestTimeout, true); err != nil {
		return ""
	}
	if len(response) == 0 {
		return ""
	}
	return strings.TrimSpace(response[0].Nombre)
}
