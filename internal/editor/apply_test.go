package editor

import (
	"testing"

	"github.com/specialistvlad/pipestack/internal/model"
	"github.com/specialistvlad/pipestack/internal/pipeerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_ApplyAll(t *testing.T) {
	s := newSession(t, inheritedStack())

	snap, err := s.ApplyAll([]Edit{
		{Op: OpAddElement, Parent: "parser", Type: "XSLTFilter", Element: "f2"},
		{Op: OpMoveElement, Element: "writer", Parent: "f2"},
		{Op: OpSetProperty, Element: "writer", Property: "indentOutput", Value: model.BooleanValue(true)},
		{Op: OpRevertToDefault, Element: "writer", Property: "encoding"},
		{Op: OpDeleteElement, Element: "appender"},
		{Op: OpReinstateElement, Element: "appender", Parent: "writer"},
		{Op: OpRevertToParent, Element: "writer", Property: "indentOutput"},
	})
	require.NoError(t, err)

	parent, ok := snap.Graph.ParentID("writer")
	require.True(t, ok)
	assert.Equal(t, "f2", parent)
	assert.Empty(t, snap.Local.Elements.Remove)
	assert.Empty(t, snap.Local.Properties.Add)
	assert.Equal(t, []model.Property{{Element: "writer", Name: "encoding"}}, snap.Local.Properties.Remove)
	assert.True(t, snap.Dirty)
}

func TestSession_ApplyAllStopsAtFirstFailure(t *testing.T) {
	s := newSession(t, inheritedStack())

	_, err := s.ApplyAll([]Edit{
		{Op: OpAddElement, Parent: "parser", Type: "XSLTFilter", Element: "f2"},
		{Op: OpMoveElement, Element: "f2", Parent: "f2", Source: "edits.hcl:7,1-13"},
		{Op: OpDeleteElement, Element: "writer"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeerr.KindInvalidMove)
	assert.Contains(t, err.Error(), "edits.hcl:7,1-13")

	_, ok := s.Snapshot().Merged.Element("f2")
	assert.True(t, ok, "edits before the failure stay applied")
	_, ok = s.Snapshot().Merged.Element("writer")
	assert.True(t, ok, "edits after the failure are not applied")
}

func TestSession_ApplyUnknownOp(t *testing.T) {
	s := newSession(t, inheritedStack())
	_, err := s.Apply(Edit{Op: "rename_element"})
	assert.ErrorContains(t, err, "unknown edit operation")
}
