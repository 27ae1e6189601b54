// Package storage implementa el puerto DocumentStorage: archivos firmados
// en disco local o en un bucket S3 según configuración.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jbejarano/portal-casas-api/internal/application/payroll"
)

var _ payroll.DocumentStorage = (*LocalStorage)(nil)

// LocalStorage guarda los documentos firmados en un directorio local.
type LocalStorage struct {
	dir string
}

// NewLocalStorage construye el almacenamiento local, creando el directorio
// si no existe.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de documentos: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Save escribe el documento y devuelve la ruta relativa servible.
func (s *LocalStorage) Save(_ context.Context, filename, _ string, data []byte) (string, error) {
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("guardar documento %s: %w", filename, err)
	}
	return "/uploads/signed-documents/" + filename, nil
}
