package routers

import (
	"github.com/udistrital/planeacion_mid/controllers/errorhandler"
	internalcontrollers "github.com/udistrital/planeacion_mid/internal/controllers"

	beego "github.com/beego/beego/v2/server/web"
)

func init() {
	// Manejador de errores
	beego.ErrorController(&errorhandler.ErrorHandlerController{})

	beego.Router("/v1/proyectos", &internalcontrollers.ProyectosController{}, "post:PostCrear;get:GetListado")
	beego.Router("/v1/proyectos/:uuid", &internalcontrollers.ProyectosController{}, "get:GetDetalle;put:PutActualizar")
	beego.Router("/v1/proyectos/:uuid/avance", &internalcontrollers.ProyectosController{}, "get:GetAvance")
	beego.Router("/v1/proyectos/:uuid/diagnostico", &internalcontrollers.ProyectosController{}, "get:GetDiagnostico;put:PutDiagnostico")
	beego.Router("/v1/proyectos/:uuid/solicitar-revision", &internalcontrollers.ProyectosController{}, "put:PutSolicitarRevision")
	beego.Router("/v1/proyectos/:uuid/aprobar", &internalcontrollers.ProyectosController{}, "put:PutAprobar")
	beego.Router("/v1/proyectos/:uuid/observar", &internalcontrollers.ProyectosController{}, "put:PutObservar")

	beego.Router("/v1/etapas", &internalcontrollers.EtapasController{}, "get:GetCatalogo")

	beego.Router("/v1/ejercicios-fiscales", &internalcontrollers.EjerciciosController{}, "get:GetListado;post:PostCrear")
	beego.Router("/v1/ejercicios-fiscales/:id", &internalcontrollers.EjerciciosController{}, "put:PutActualizar;delete:DeleteEliminar")
	beego.Router("/v1/ejercicios-fiscales/:id/activar", &internalcontrollers.EjerciciosController{}, "put:PutActivar")
	beego.Router("/v1/ejercicios-fiscales/:id/captura", &internalcontrollers.EjerciciosController{}, "get:GetCaptura")
}
