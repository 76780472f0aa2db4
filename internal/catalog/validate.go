// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package catalog

import (
	"context"
	"fmt"
	"slices"

	"github.com/specialistvlad/pipestack/internal/ctxlog"
	"github.com/specialistvlad/pipestack/internal/model"
	"go.uber.org/multierr"
)

var propertyTypes = []string{model.TypeString, model.TypeInteger, model.TypeLong, model.TypeBoolean, model.TypeEntity}

// Validate checks the internal consistency of every registered type and
// reports all problems at once.
func (c *Catalog) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs error

	for _, t := range c.Types() {
		if !slices.Contains(Categories, t.Category) {
			errs = multierr.Append(errs, fmt.Errorf("element type '%s': unknown category '%s'", t.Type, t.Category))
		}
		for _, child := range t.AllowedChildren {
			if !slices.Contains(Categories, child) {
				errs = multierr.Append(errs, fmt.Errorf("element type '%s': unknown allowed child category '%s'", t.Type, child))
			}
		}
		if t.MaxChildren < 0 {
			errs = multierr.Append(errs, fmt.Errorf("element type '%s': max_children must not be negative", t.Type))
		}
		if t.MaxChildren > 0 && len(t.AllowedChildren) == 0 {
			logger.Warn("Element type limits its children but accepts no child category.", "type", t.Type, "max_children", t.MaxChildren)
		}

		for name, p := range t.Properties {
			if !slices.Contains(propertyTypes, model.NormalizeType(p.Type)) {
				errs = multierr.Append(errs, fmt.Errorf("element type '%s', property '%s': unknown property type '%s'", t.Type, name, p.Type))
				continue
			}
			if p.Default != nil && p.Default.Type() != model.NormalizeType(p.Type) {
				errs = multierr.Append(errs, fmt.Errorf("element type '%s', property '%s': default is a %s value but the property is %s",
					t.Type, name, p.Default.Type(), p.Type))
			}
		}
	}

	if errs == nil {
		logger.Debug("Catalog validation passed.", "types", c.Len())
	}
	return errs
}
