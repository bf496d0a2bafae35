package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// AppError representa un error controlado con código HTTP y mensaje funcional.
type AppError struct {
	Status  int
	Message string
	Err     error
}

// Error implementa la interfaz error.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap permite extraer el error original cuando exista.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError construye un AppError con mensaje y status.
func NewAppError(status int, message string, err error) *AppError {
	return &AppError{Status: status, Message: message, Err: err}
}

// AsAppError convierte cualquier error en AppError con status 500 por defecto.
func AsAppError(err error, defaultMessage string) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	msg := defaultMessage
	if msg == "" {
		msg = "error inesperado"
	}
	return &AppError{Status: 500, Message: msg, Err: err}
}

// validationPayload es la forma del cuerpo de error de validación que
// entrega el CRUD: mensaje principal más errores por campo.
type validationPayload struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// FormatAPIError arma un mensaje legible a partir de un error del CRUD:
// mensaje principal seguido de los errores de campo como viñetas. Si el
// cuerpo no tiene esa forma se usa el mensaje del error y, en último
// término, un genérico.
func FormatAPIError(err error) string {
	if err == nil {
		return ""
	}

	body := ""
	var he *HTTPError
	if ok := asHTTPError(err, &he); ok {
		body = he.Body
	}

	if body != "" {
		var payload validationPayload
		if jsonErr := json.Unmarshal([]byte(body), &payload); jsonErr == nil && payload.Message != "" {
			lines := []string{strings.TrimSpace(payload.Message)}
			campos := make([]string, 0, len(payload.Errors))
			for campo := range payload.Errors {
				campos = append(campos, campo)
			}
			sort.Strings(campos)
			for _, campo := range campos {
				for _, detalle := range payload.Errors[campo] {
					if d := strings.TrimSpace(detalle); d != "" {
						lines = append(lines, fmt.Sprintf("- %s: %s", campo, d))
					}
				}
			}
			return strings.Join(lines, "\n")
		}
	}

	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return "error inesperado"
}
