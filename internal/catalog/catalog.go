// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package catalog

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/specialistvlad/pipestack/internal/model"
)

// Category groups element types by the role they play in a pipeline.
type Category string

const (
	CategoryInternal    Category = "INTERNAL"
	CategoryReader      Category = "READER"
	CategoryParser      Category = "PARSER"
	CategoryFilter      Category = "FILTER"
	CategoryWriter      Category = "WRITER"
	CategoryDestination Category = "DESTINATION"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryInternal,
	CategoryReader,
	CategoryParser,
	CategoryFilter,
	CategoryWriter,
	CategoryDestination,
}

// ParseCategory converts a manifest spelling into a Category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	return c, slices.Contains(Categories, c)
}

// PropertyType declares one configurable property of an element type.
type PropertyType struct {
	Name        string
	Type        string
	Description string
	// Default is nil when the property has no declared default.
	Default     *model.PropertyValue
	DocRefTypes []string
	// PipelineReference marks properties that are set through pipeline
	// references rather than plain values.
	PipelineReference bool
}

// ElementType describes one kind of element.
type ElementType struct {
	Type            string
	Category        Category
	Description     string
	Roles           []string
	AllowedChildren []Category
	// MaxChildren limits the number of children; zero means unlimited.
	MaxChildren int
	Properties  map[string]PropertyType
	// FilePath is the manifest the type was loaded from, if any.
	FilePath string
}

// AcceptsChild reports whether an element of category c may be a direct
// child of an element of this type.
func (t *ElementType) AcceptsChild(c Category) bool {
	return slices.Contains(t.AllowedChildren, c)
}

// HasRole reports whether the type carries the given role.
func (t *ElementType) HasRole(role string) bool {
	return slices.Contains(t.Roles, role)
}

// Property returns the declared property with the given name.
func (t *ElementType) Property(name string) (PropertyType, bool) {
	p, ok := t.Properties[name]
	return p, ok
}

// Default returns the declared default value of a property.
func (t *ElementType) Default(name string) (*model.PropertyValue, bool) {
	p, ok := t.Properties[name]
	if !ok || p.Default == nil {
		return nil, false
	}
	return p.Default, true
}

// Catalog is the set of known element types, keyed by type name.
type Catalog struct {
	types map[string]*ElementType
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{types: make(map[string]*ElementType)}
}

// Register adds an element type. Registering the same type name twice is
// an error.
func (c *Catalog) Register(t *ElementType) error {
	if t == nil || t.Type == "" {
		return fmt.Errorf("element type must have a name")
	}
	if existing, exists := c.types[t.Type]; exists {
		return fmt.Errorf("element type '%s' already registered (from '%s')", t.Type, existing.FilePath)
	}
	if t.Properties == nil {
		t.Properties = make(map[string]PropertyType)
	}
	c.types[t.Type] = t
	return nil
}

// ElementType looks up a type by name.
func (c *Catalog) ElementType(name string) (*ElementType, bool) {
	if c == nil {
		return nil, false
	}
	t, ok := c.types[name]
	return t, ok
}

// Types returns all registered types sorted by name.
func (c *Catalog) Types() []*ElementType {
	out := make([]*ElementType, 0, len(c.types))
	for _, t := range c.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// Len returns the number of registered types.
func (c *Catalog) Len() int {
	return len(c.types)
}
