package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot decodes every top-level block a configuration file may hold.
// Anything else is an error.
type fileRoot struct {
	ElementTypes []*elementTypeBlock `hcl:"element_type,block"`
	Pipelines    []*pipelineBlock    `hcl:"pipeline,block"`
}

// --- Catalog ---

type elementTypeBlock struct {
	Type            string               `hcl:"type,label"`
	Category        string               `hcl:"category"`
	Description     string               `hcl:"description,optional"`
	Roles           []string             `hcl:"roles,optional"`
	AllowedChildren []string             `hcl:"allowed_children,optional"`
	MaxChildren     int                  `hcl:"max_children,optional"`
	Properties      []*propertyTypeBlock `hcl:"property,block"`
	DefRange        hcl.Range            `hcl:",def_range"`
}

type propertyTypeBlock struct {
	Name              string         `hcl:"name,label"`
	Type              string         `hcl:"type"`
	Description       string         `hcl:"description,optional"`
	Default           hcl.Expression `hcl:"default,optional"`
	DocRefTypes       []string       `hcl:"doc_ref_types,optional"`
	PipelineReference bool           `hcl:"pipeline_reference,optional"`
	DefRange          hcl.Range      `hcl:",def_range"`
}

// --- Pipeline documents ---

type pipelineBlock struct {
	UUID              string                 `hcl:"uuid,label"`
	Name              string                 `hcl:"name,optional"`
	Description       string                 `hcl:"description,optional"`
	Parent            string                 `hcl:"parent,optional"`
	Elements          []*elementBlock        `hcl:"element,block"`
	RemovedElements   []*removedElementBlock `hcl:"remove_element,block"`
	Links             []*linkBlock           `hcl:"link,block"`
	RemovedLinks      []*linkBlock           `hcl:"remove_link,block"`
	Properties        []*propertyBlock       `hcl:"property,block"`
	RemovedProperties []*keyBlock            `hcl:"remove_property,block"`
	References        []*referenceBlock      `hcl:"reference,block"`
	RemovedReferences []*keyBlock            `hcl:"remove_reference,block"`
	DefRange          hcl.Range              `hcl:",def_range"`
}

type elementBlock struct {
	ID   string `hcl:"id,label"`
	Type string `hcl:"type"`
}

type removedElementBlock struct {
	ID   string `hcl:"id,label"`
	Type string `hcl:"type,optional"`
}

type linkBlock struct {
	From string `hcl:"from,label"`
	To   string `hcl:"to,label"`
}

type propertyBlock struct {
	Element  string         `hcl:"element,label"`
	Name     string         `hcl:"name,label"`
	Type     string         `hcl:"type,optional"`
	Value    hcl.Expression `hcl:"value,optional"`
	Entity   *entityBlock   `hcl:"entity,block"`
	DefRange hcl.Range      `hcl:",def_range"`
}

// valueBody is the body of a set_property block. The value type is
// inferred from the expression unless type is given.
type valueBody struct {
	Type   string         `hcl:"type,optional"`
	Value  hcl.Expression `hcl:"value,optional"`
	Entity *entityBlock   `hcl:"entity,block"`
}

type entityBlock struct {
	Type string `hcl:"type"`
	UUID string `hcl:"uuid"`
	Name string `hcl:"name,optional"`
}

type keyBlock struct {
	Element string `hcl:"element,label"`
	Name    string `hcl:"name,label"`
}

type referenceBlock struct {
	Element    string `hcl:"element,label"`
	Name       string `hcl:"name,label"`
	Pipeline   string `hcl:"pipeline,optional"`
	Feed       string `hcl:"feed,optional"`
	StreamType string `hcl:"stream_type,optional"`
}

// --- Edit scripts ---
// Edit blocks are decoded one at a time in source order; their labels are
// read from the block itself.

type addElementBody struct {
	Parent string `hcl:"parent,optional"`
	Type   string `hcl:"type"`
}

type emptyBody struct{}

type reinstateElementBody struct {
	Parent string `hcl:"parent"`
	Type   string `hcl:"type,optional"`
}

type moveElementBody struct {
	To string `hcl:"to"`
}

type revertPropertyBody struct {
	To string `hcl:"to,optional"`
}
