package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Los tres statements de categorías deben cubrir todas las columnas
// persistidas; una columna ausente en INSERT/UPDATE se pierde en silencio
// y una ausente en el SELECT vuelve siempre vacía.
func TestCategoryStatements_CubrenTodasLasColumnas(t *testing.T) {
	columns := []string{"house_id", "name", "description", "color", "icon", "is_active", "created_at"}
	for _, col := range columns {
		assert.Containsf(t, categoryColumns, col, "columna %q ausente en el SELECT", col)
		assert.Containsf(t, categoryInsert, col, "columna %q ausente en el INSERT", col)
	}
	for _, col := range []string{"name", "description", "color", "icon", "is_active", "updated_at"} {
		assert.Containsf(t, categoryUpdate, col, "columna %q ausente en el UPDATE", col)
	}
}
