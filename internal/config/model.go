package config

import (
	"fmt"

	"github.com/specialistvlad/pipestack/internal/catalog"
	"github.com/specialistvlad/pipestack/internal/model"
)

// Model is the unified, format-agnostic representation of loaded
// configuration.
type Model struct {
	Catalog   *catalog.Catalog
	Documents []*model.Document
}

// Merge folds other into m. Element types and pipelines must not be defined
// twice.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}
	if m.Catalog == nil {
		m.Catalog = catalog.New()
	}
	if other.Catalog != nil {
		for _, et := range other.Catalog.Types() {
			if err := m.Catalog.Register(et); err != nil {
				return err
			}
		}
	}
	seen := make(map[string]bool, len(m.Documents))
	for _, d := range m.Documents {
		seen[d.UUID] = true
	}
	for _, d := range other.Documents {
		if seen[d.UUID] {
			return fmt.Errorf("pipeline '%s' defined more than once", d.UUID)
		}
		seen[d.UUID] = true
		m.Documents = append(m.Documents, d)
	}
	return nil
}
