package config

import (
	"context"

	"github.com/specialistvlad/pipestack/internal/editor"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths and translates it into
	// the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)

	// LoadEdits reads an edit script. Edits are returned in the order they
	// must be applied.
	LoadEdits(ctx context.Context, path string) ([]editor.Edit, error)
}
