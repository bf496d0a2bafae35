package helpers

import (
	"errors"
	"fmt"
	"testing"
)

func TestFormatAPIErrorConErroresDeCampo(t *testing.T) {
	he := &HTTPError{
		Status: 400,
		Body:   `{"message":"datos inválidos","errors":{"nombre":["requerido"],"anio":["fuera de rango"]}}`,
	}
	got := FormatAPIError(fmt.Errorf("guardando proyecto: %w", he))
	want := "datos inválidos\n- anio: fuera de rango\n- nombre: requerido"
	if got != want {
		t.Fatalf("FormatAPIError:\n got %q\nwant %q", got, want)
	}
}

func TestFormatAPIErrorSinCuerpoUtilizable(t *testing.T) {
	he := &HTTPError{Status: 500, Body: "boom"}
	if got := FormatAPIError(he); got != he.Error() {
		t.Fatalf("FormatAPIError = %q", got)
	}
	if got := FormatAPIError(errors.New("conexión rechazada")); got != "conexión rechazada" {
		t.Fatalf("FormatAPIError = %q", got)
	}
	if got := FormatAPIError(nil); got != "" {
		t.Fatalf("nil no produce mensaje: %q", got)
	}
}

func TestAsAppErrorPreservaElOriginal(t *testing.T) {
	original := NewAppError(404, "no encontrado", nil)
	if got := AsAppError(original, "otro mensaje"); got != original {
		t.Fatalf("un AppError existente no debe reenvolverse")
	}
	generico := AsAppError(errors.New("x"), "")
	if generico.Status != 500 || generico.Message != "error inesperado" {
		t.Fatalf("conversión por defecto incorrecta: %+v", generico)
	}
}

func TestAsAppErrorDesenvuelveEncadenados(t *testing.T) {
	original := NewAppError(409, "conflicto", nil)
	envuelto := fmt.Errorf("orquestando: %w", original)
	got := AsAppError(envuelto, "fallback")
	if got.Status != 409 || got.Message != "conflicto" {
		t.Fatalf("el AppError envuelto perdió su status: %+v", got)
	}
}

func TestIsHTTPErrorDesenvuelve(t *testing.T) {
	he := &HTTPError{Status: 404, Body: ""}
	wrapped := fmt.Errorf("consultando: %w", he)
	if !IsHTTPError(wrapped, 404) {
		t.Fatalf("debe encontrar el HTTPError envuelto")
	}
	if IsHTTPError(wrapped, 500) {
		t.Fatalf("el status debe coincidir")
	}
	if IsHTTPError(nil, 404) {
		t.Fatalf("nil nunca es HTTPError")
	}
}
