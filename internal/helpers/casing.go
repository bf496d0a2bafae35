package helpers

import (
	"strings"
	"unicode"
)

// Conversión recursiva de claves entre el snake_case del CRUD y el
// camelCase del SPA. Opera sobre valores JSON ya decodificados (mapas,
// slices y escalares) y es estable ante ida y vuelta mientras las
// claves no colisionen.

// ToSnakeCase convierte las claves de mapas (anidados o en slices) a snake_case.
func ToSnakeCase(value interface{}) interface{} {
	return convertKeys(value, snakeKey)
}

// ToCamelCase convierte las claves de mapas (anidados o en slices) a camelCase.
func ToCamelCase(value interface{}) interface{} {
	return convertKeys(value, camelKey)
}

func convertKeys(value interface{}, convert func(string) string) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, inner := range v {
			out[convert(key)] = convertKeys(inner, convert)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, inner := range v {
			out[i] = convertKeys(inner, convert)
		}
		return out
	default:
		return value
	}
}

func snakeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// camelKey es la inversa de snakeKey: solo el guion bajo que separa dos
// segmentos se consume. Guiones al inicio (claves tipo "_id"), al final
// o repetidos se preservan para que la ida y vuelta no altere la clave.
func camelKey(key string) string {
	inicio := 0
	for inicio < len(key) && key[inicio] == '_' {
		inicio++
	}
	if inicio == len(key) {
		return key
	}

	var b strings.Builder
	b.Grow(len(key))
	b.WriteString(key[:inicio])

	subir := false
	for _, r := range key[inicio:] {
		if r == '_' {
			if subir {
				b.WriteRune('_')
			}
			subir = true
			continue
		}
		if subir {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(r)
		}
		subir = false
	}
	if subir {
		b.WriteRune('_')
	}
	return b.String()
}
