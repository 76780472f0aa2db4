package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/pipestack/internal/config"
	"github.com/specialistvlad/pipestack/internal/ctxlog"
	"github.com/specialistvlad/pipestack/internal/docstore"
	"github.com/specialistvlad/pipestack/internal/fsutil"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
	model  *config.Model
	store  *docstore.Store
}

// NewApp loads the catalog and every pipeline document named by cfg. The
// rendered result is written to outW and logs go to logW.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	paths := append(append([]string{}, cfg.CatalogPaths...), cfg.DocsPaths...)
	m, err := loader.Load(ctx, paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	jsonDocs, err := loadJSONDocuments(ctx, cfg.DocsPaths)
	if err != nil {
		return nil, err
	}
	if err := m.Merge(jsonDocs); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded.", "element_types", m.Catalog.Len(), "pipelines", len(m.Documents))

	if err := m.Catalog.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid element catalog: %w", err)
	}

	store := docstore.New()
	for _, doc := range m.Documents {
		if err := store.Put(ctx, doc); err != nil {
			return nil, fmt.Errorf("failed to store pipeline: %w", err)
		}
	}

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
		model:  m,
		store:  store,
	}, nil
}

// Store returns the application's document store. This is primarily for testing.
func (a *App) Store() *docstore.Store {
	return a.store
}

// loadJSONDocuments reads every .json file under the given paths.
func loadJSONDocuments(ctx context.Context, paths []string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	m := &config.Model{}
	seen := make(map[string]bool)

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		files, err := fsutil.FindFilesByExtension(path, ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to find documents in %s: %w", path, err)
		}
		for _, file := range files {
			if seen[file] {
				continue
			}
			seen[file] = true

			f, err := os.Open(file)
			if err != nil {
				return nil, fmt.Errorf("failed to open %s: %w", file, err)
			}
			docs, err := docstore.ReadJSON(f)
			f.Close()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			logger.Debug("Loaded JSON documents.", "file", file, "count", len(docs))
			if err := m.Merge(&config.Model{Documents: docs}); err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
		}
	}
	return m, nil
}
