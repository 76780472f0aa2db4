package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/pipestack/internal/ctxlog"
	"github.com/specialistvlad/pipestack/internal/editor"
)

// Run opens the configured pipeline, applies the edit script if one is
// given, saves the edited layer back to the store and renders the result.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "pipeline", a.config.PipelineUUID)

	doc, err := a.store.Get(ctx, a.config.PipelineUUID)
	if err != nil {
		return fmt.Errorf("failed to open pipeline: %w", err)
	}
	session, err := editor.Open(ctx, doc, a.store, a.model.Catalog)
	if err != nil {
		return fmt.Errorf("failed to open pipeline '%s': %w", doc.UUID, err)
	}
	a.logger.Debug("Pipeline opened.", "layers", len(session.Stack()), "elements", session.Snapshot().Graph.Len())

	if a.config.EditsPath != "" {
		edits, err := a.loader.LoadEdits(ctx, a.config.EditsPath)
		if err != nil {
			return err
		}
		if _, err := session.ApplyAll(edits); err != nil {
			return fmt.Errorf("failed to apply edits: %w", err)
		}
		if err := a.store.Save(ctx, doc.UUID, session.Snapshot().Local); err != nil {
			return fmt.Errorf("failed to save pipeline '%s': %w", doc.UUID, err)
		}
		session.MarkSaved()
		a.logger.Info("Edits applied.", "pipeline", doc.UUID, "count", len(edits))
	}

	if err := a.render(ctx, doc.UUID, session); err != nil {
		return fmt.Errorf("failed to render pipeline: %w", err)
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}
