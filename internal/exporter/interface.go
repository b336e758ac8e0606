package exporter

import (
	"rest-recon/internal/config"
	"rest-recon/internal/model"
)

// Exporter is the unified interface for all catalog renderers
type Exporter interface {
	// Name is the format label used in logs
	Name() string

	// Export writes the catalog under cfg.Output and returns the written path
	Export(catalog *model.Catalog, cfg *config.Config) (string, error)
}
