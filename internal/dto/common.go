package dto

import (
	"github.com/udistrital/planeacion_mid/models/requestresponse"
)

// APIResponseDTO reutiliza el DTO estándar expuesto por requestresponse.
type APIResponseDTO = requestresponse.APIResponseDTO
