package services

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/udistrital/planeacion_mid/helpers"

	beego "github.com/beego/beego/v2/server/web"
)

// Config centraliza la configuración necesaria para los servicios externos.
type Config struct {
	AppName               string
	HTTPPort              int
	RunMode               string
	PlaneacionCRUDBaseURL string
	ParametrosBaseURL     string
	NotificacionesBaseURL string
	OASBearerToken        string
	RequestTimeout        time.Duration
	RetryCount            int
}

var (
	cfg  Config
	once sync.Once
)

// GetConfig devuelve la configuración cargada desde variables de entorno o app.conf.
func GetConfig() Config {
	once.Do(func() {
		cfg = Config{
			AppName:               getString("APP_NAME", "appname", "planeacion_mid"),
			HTTPPort:              getInt("HTTP_PORT", "httpport", 8080),
			RunMode:               getString("RUN_MODE", "runmode", "dev"),
			PlaneacionCRUDBaseURL: normalizeBase(getString("PLANEACION_CRUD_BASE_URL", "planeacion_crud_base_url", "")),
			ParametrosBaseURL:     normalizeBase(getString("PARAMETROS_BASE_URL", "parametros_base_url", "")),
			NotificacionesBaseURL: normalizeBase(getString("NOTIFICACIONES_BASE_URL", "notificaciones_base_url", "")),
			OASBearerToken:        getString("OAS_BEARER_TOKEN", "oas_bearer_token", ""),
			RequestTimeout:        time.Duration(getInt("REQUEST_TIMEOUT_MS", "request_timeout_ms", 10000)) * time.Millisecond,
			RetryCount:            getInt("RETRY_COUNT", "retry_count", 2),
		}

		if cfg.PlaneacionCRUDBaseURL == "" {
			panic("PLANEACION_CRUD_BASE_URL no configurado")
		}

		helpers.SetDefaultRetryCount(cfg.RetryCount)
	})
	return cfg
}

func getString(envKey, confKey, def string) string {
	if val := strings.TrimSpace(os.Getenv(envKey)); val != "" {
		return val
	}
	if val, err := beego.AppConfig.String(confKey); err == nil && strings.TrimSpace(val) != "" {
		return val
	}
	return def
}

func getInt(envKey, confKey string, def int) int {
	if val := strings.TrimSpace(os.Getenv(envKey)); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	if val, err := beego.AppConfig.Int(confKey); err == nil {
		return val
	}
	return def
}

func normalizeBase(value string) string {
	return strings.TrimSpace(value)
}

// BuildURL compone una URL asegurando que no haya dobles slashes.
func BuildURL(base string, elems ...string) string {
	trimmed := strings.TrimSuffix(base, "/")
	for _, e := range elems {
		trimmed += "/" + strings.Trim(e, "/")
	}
	return trimmed
}

// AddOASAuth agrega el header Authorization si el token está configurado.
func AddOASAuth(headers map[string]string) map[string]string {
	if headers == nil {
		headers = make(map[string]string)
	}
	token := GetConfig().OASBearerToken
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return headers
}
