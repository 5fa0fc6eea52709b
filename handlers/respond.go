package handlers

import (
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"
)

// errorJSON writes a JSON error body with the given status code.
func errorJSON(e *core.RequestEvent, statusCode int, message string) error {
	return e.JSON(statusCode, map[string]string{"error": message})
}

// formFloat reads a form field as float64. Empty or malformed values become 0;
// field-level validation happens in the services layer.
func formFloat(e *core.RequestEvent, name string) float64 {
	return cast.ToFloat64(strings.TrimSpace(e.Request.FormValue(name)))
}

// formString reads a trimmed form field.
func formString(e *core.RequestEvent, name string) string {
	return strings.TrimSpace(e.Request.FormValue(name))
}
