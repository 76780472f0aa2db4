package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/pipestack/internal/catalog"
	"github.com/specialistvlad/pipestack/internal/ctxlog"
	"github.com/specialistvlad/pipestack/internal/model"
	"github.com/specialistvlad/pipestack/internal/pipeerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valuePtr(v model.PropertyValue) *model.PropertyValue {
	return &v
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := catalog.New()
	for _, et := range []*catalog.ElementType{
		{
			Type:            "Source",
			Category:        catalog.CategoryInternal,
			AllowedChildren: []catalog.Category{catalog.CategoryReader, catalog.CategoryParser, catalog.CategoryWriter},
		},
		{
			Type:            "XMLParser",
			Category:        catalog.CategoryParser,
			AllowedChildren: []catalog.Category{catalog.CategoryFilter, catalog.CategoryWriter},
		},
		{
			Type:            "XSLTFilter",
			Category:        catalog.CategoryFilter,
			AllowedChildren: []catalog.Category{catalog.CategoryFilter, catalog.CategoryWriter},
			Properties: map[string]catalog.PropertyType{
				"usePool": {Name: "usePool", Type: "boolean", Default: valuePtr(model.BooleanValue(true))},
			},
		},
		{
			Type:            "XmlWriter",
			Category:        catalog.CategoryWriter,
			AllowedChildren: []catalog.Category{catalog.CategoryDestination},
			Properties: map[string]catalog.PropertyType{
				"indentOutput": {Name: "indentOutput", Type: "boolean", Default: valuePtr(model.BooleanValue(false))},
				"encoding":     {Name: "encoding", Type: "string", Default: valuePtr(model.StringValue("UTF-8"))},
				"bufferSize":   {Name: "bufferSize", Type: "int"},
			},
		},
		{Type: "StreamAppender", Category: catalog.CategoryDestination},
	} {
		require.NoError(t, c.Register(et))
	}
	return c
}

// Source -> parser -> xslt -> writer -> appender, defined by the parent
// pipeline, with an empty child layer on top.
func inheritedStack() model.ConfigStack {
	return model.ConfigStack{
		{
			Pipeline: model.PipelineRef("parent", "Parent"),
			Data: model.PipelineData{
				Elements: model.AddRemove[model.Element]{Add: []model.Element{
					{ID: "Source", Type: "Source"},
					{ID: "parser", Type: "XMLParser"},
					{ID: "xslt", Type: "XSLTFilter"},
					{ID: "writer", Type: "XmlWriter"},
					{ID: "appender", Type: "StreamAppender"},
				}},
				Links: model.AddRemove[model.Link]{Add: []model.Link{
					{From: "Source", To: "parser"},
					{From: "parser", To: "xslt"},
					{From: "xslt", To: "writer"},
					{From: "writer", To: "appender"},
				}},
				Properties: model.AddRemove[model.Property]{Add: []model.Property{
					{Element: "writer", Name: "encoding", Value: valuePtr(model.StringValue("UTF-16"))},
				}},
			},
		},
		{Pipeline: model.PipelineRef("child", "Child")},
	}
}

func newSession(t *testing.T, cs model.ConfigStack) *Session {
	t.Helper()
	s, err := New(ctxlog.Discard(context.Background()), cs, testCatalog(t))
	require.NoError(t, err)
	return s
}

func childIDs(t *testing.T, s *Session, id string) []string {
	t.Helper()
	n, ok := s.Snapshot().Graph.Node(id)
	require.True(t, ok, "node %s", id)
	out := []string{}
	for _, c := range n.Children {
		out = append(out, c.ID())
	}
	return out
}

func requireKind(t *testing.T, err error, kind pipeerr.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, kind), "expected %s, got %v", kind, err)
}

func TestSession_SingleRoot(t *testing.T) {
	s := newSession(t, model.ConfigStack{{
		Pipeline: model.PipelineRef("p1", ""),
		Data: model.PipelineData{
			Elements: model.AddRemove[model.Element]{Add: []model.Element{{ID: "root", Type: "Source"}}},
		},
	}})

	snap := s.Snapshot()
	require.Len(t, snap.Merged.Elements.Add, 1)
	assert.Equal(t, "root", snap.Merged.Elements.Add[0].ID)
	require.NotNil(t, snap.Graph.Root())
	assert.Equal(t, "root", snap.Graph.Root().ID())
	assert.Empty(t, snap.Graph.Root().Children)
	assert.False(t, snap.Dirty)
	assert.Equal(t, Clean, s.State())
}

func TestSession_AddElement(t *testing.T) {
	s := newSession(t, model.ConfigStack{{
		Pipeline: model.PipelineRef("p1", ""),
		Data: model.PipelineData{
			Elements: model.AddRemove[model.Element]{Add: []model.Element{{ID: "root", Type: "Source"}}},
		},
	}})

	snap, err := s.AddElement("root", "XmlWriter", "writer1")
	require.NoError(t, err)

	assert.Equal(t, []model.Element{{ID: "root", Type: "Source"}, {ID: "writer1", Type: "XmlWriter"}}, snap.Local.Elements.Add)
	assert.Equal(t, []model.Link{{From: "root", To: "writer1"}}, snap.Local.Links.Add)
	assert.Len(t, snap.Merged.Elements.Add, 2)
	assert.Equal(t, []string{"writer1"}, childIDs(t, s, "root"))
	assert.True(t, snap.Dirty)
	assert.Equal(t, Dirty, s.State())

	s.MarkSaved()
	assert.Equal(t, Clean, s.State())
}

func TestSession_MoveOntoItselfLeavesWorkingCopy(t *testing.T) {
	s := newSession(t, model.ConfigStack{{
		Pipeline: model.PipelineRef("p1", ""),
		Data: model.PipelineData{
			Elements: model.AddRemove[model.Element]{Add: []model.Element{
				{ID: "root", Type: "Source"},
				{ID: "writer1", Type: "XmlWriter"},
			}},
			Links: model.AddRemove[model.Link]{Add: []model.Link{{From: "root", To: "writer1"}}},
		},
	}})
	before := s.Snapshot()

	snap, err := s.MoveElement("writer1", "writer1")
	requireKind(t, err, pipeerr.KindInvalidMove)
	assert.Nil(t, snap)

	after := s.Snapshot()
	assert.Empty(t, cmp.Diff(before.Local, after.Local))
	assert.Empty(t, cmp.Diff(before.Merged, after.Merged))
	assert.Equal(t, Clean, s.State())
}

func TestSession_FailedEditsLeaveWorkingCopy(t *testing.T) {
	testCases := []struct {
		name string
		edit func(s *Session) (*Snapshot, error)
		kind pipeerr.Kind
	}{
		{
			name: "duplicate name ignoring case",
			edit: func(s *Session) (*Snapshot, error) { return s.AddElement("xslt", "XmlWriter", "WRITER") },
			kind: pipeerr.KindDuplicateName,
		},
		{
			name: "empty name",
			edit: func(s *Session) (*Snapshot, error) { return s.AddElement("xslt", "XmlWriter", " ") },
			kind: pipeerr.KindInvalidName,
		},
		{
			name: "incompatible parent",
			edit: func(s *Session) (*Snapshot, error) { return s.AddElement("parser", "StreamAppender", "app2") },
			kind: pipeerr.KindInvalidParent,
		},
		{
			name: "unknown parent",
			edit: func(s *Session) (*Snapshot, error) { return s.AddElement("ghost", "XmlWriter", "w2") },
			kind: pipeerr.KindInvalidParent,
		},
		{
			name: "root without parent in a non-empty pipeline",
			edit: func(s *Session) (*Snapshot, error) { return s.AddElement("", "Source", "Source2") },
			kind: pipeerr.KindInvalidParent,
		},
		{
			name: "delete missing element",
			edit: func(s *Session) (*Snapshot, error) { return s.DeleteElement("ghost") },
			kind: pipeerr.KindNotFound,
		},
		{
			name: "move into own subtree",
			edit: func(s *Session) (*Snapshot, error) { return s.MoveElement("parser", "writer") },
			kind: pipeerr.KindInvalidMove,
		},
		{
			name: "move onto current parent",
			edit: func(s *Session) (*Snapshot, error) { return s.MoveElement("writer", "xslt") },
			kind: pipeerr.KindInvalidMove,
		},
		{
			name: "reinstate present element",
			edit: func(s *Session) (*Snapshot, error) {
				return s.ReinstateElement("parser", model.Element{ID: "xslt", Type: "XSLTFilter"})
			},
			kind: pipeerr.KindDuplicateName,
		},
		{
			name: "property of unknown element",
			edit: func(s *Session) (*Snapshot, error) { return s.SetProperty("ghost", "encoding", "string", "x") },
			kind: pipeerr.KindUnknownElement,
		},
		{
			name: "undeclared property",
			edit: func(s *Session) (*Snapshot, error) { return s.SetProperty("writer", "colour", "string", "red") },
			kind: pipeerr.KindInvalidProperty,
		},
		{
			name: "property of the wrong type",
			edit: func(s *Session) (*Snapshot, error) { return s.SetProperty("writer", "encoding", "boolean", true) },
			kind: pipeerr.KindInvalidProperty,
		},
		{
			name: "malformed value",
			edit: func(s *Session) (*Snapshot, error) { return s.SetProperty("writer", "bufferSize", "integer", "lots") },
			kind: pipeerr.KindInvalidValue,
		},
		{
			name: "empty value",
			edit: func(s *Session) (*Snapshot, error) {
				return s.SetPropertyValue("writer", "encoding", model.PropertyValue{})
			},
			kind: pipeerr.KindInvalidValue,
		},
		{
			name: "revert property of unknown element",
			edit: func(s *Session) (*Snapshot, error) { return s.RevertPropertyToDefault("ghost", "encoding") },
			kind: pipeerr.KindUnknownElement,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newSession(t, inheritedStack())
			before := s.Snapshot()

			snap, err := tc.edit(s)
			requireKind(t, err, tc.kind)
			assert.Nil(t, snap)

			after := s.Snapshot()
			assert.Empty(t, cmp.Diff(before.Local, after.Local))
			assert.Empty(t, cmp.Diff(before.Merged, after.Merged))
			assert.Equal(t, Clean, s.State())
		})
	}
}

func TestSession_DeleteCascadesAndMasksInherited(t *testing.T) {
	s := newSession(t, inheritedStack())

	snap, err := s.DeleteElement("xslt")
	require.NoError(t, err)

	expected := model.PipelineData{
		Elements: model.AddRemove[model.Element]{Remove: []model.Element{
			{ID: "xslt", Type: "XSLTFilter"},
			{ID: "writer", Type: "XmlWriter"},
			{ID: "appender", Type: "StreamAppender"},
		}},
		Links: model.AddRemove[model.Link]{Remove: []model.Link{
			{From: "parser", To: "xslt"},
			{From: "xslt", To: "writer"},
			{From: "writer", To: "appender"},
		}},
		Properties: model.AddRemove[model.Property]{Remove: []model.Property{
			{Element: "writer", Name: "encoding"},
		}},
	}
	assert.Empty(t, cmp.Diff(expected, snap.Local))

	for _, id := range []string{"xslt", "writer", "appender"} {
		_, ok := snap.Graph.Node(id)
		assert.False(t, ok, "%s should be gone", id)
		_, ok = snap.Merged.Element(id)
		assert.False(t, ok, "%s should not be merged", id)
	}
	assert.Empty(t, snap.Merged.Properties.Add)
	assert.Equal(t, 2, snap.Graph.Len())

	bin := s.RecycleBin()
	require.Len(t, bin, 3)
	assert.Equal(t, "xslt", bin[0].Element.ID)
	assert.True(t, bin[0].Known)
}

func TestSession_DeleteLocalElementLeavesNoTrace(t *testing.T) {
	s := newSession(t, inheritedStack())

	_, err := s.AddElement("xslt", "XSLTFilter", "local1")
	require.NoError(t, err)
	_, err = s.AddElement("local1", "XmlWriter", "local2")
	require.NoError(t, err)
	_, err = s.SetProperty("local2", "encoding", "string", "ASCII")
	require.NoError(t, err)

	snap, err := s.DeleteElement("local1")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(model.PipelineData{}, snap.Local))
	assert.Empty(t, s.RecycleBin())
	assert.Equal(t, 5, snap.Graph.Len())
}

func TestSession_ReinstateElement(t *testing.T) {
	s := newSession(t, inheritedStack())
	_, err := s.DeleteElement("xslt")
	require.NoError(t, err)

	snap, err := s.ReinstateElement("parser", model.Element{ID: "xslt"})
	require.NoError(t, err)

	assert.Empty(t, snap.Local.Elements.Add)
	assert.Equal(t, []model.Element{
		{ID: "writer", Type: "XmlWriter"},
		{ID: "appender", Type: "StreamAppender"},
	}, snap.Local.Elements.Remove)
	assert.Equal(t, []model.Link{
		{From: "xslt", To: "writer"},
		{From: "writer", To: "appender"},
	}, snap.Local.Links.Remove)
	assert.Empty(t, snap.Local.Links.Add)
	assert.Equal(t, []string{"xslt"}, childIDs(t, s, "parser"))
	assert.Empty(t, childIDs(t, s, "xslt"))
	assert.Len(t, s.RecycleBin(), 2)

	snap, err = s.ReinstateElement("xslt", model.Element{ID: "writer"})
	require.NoError(t, err)
	assert.Empty(t, snap.Local.Properties.Remove)
	v, err := s.PropertyValue("writer", "encoding")
	require.NoError(t, err)
	assert.Equal(t, "UTF-16", *v.Value.String)
}

func TestSession_ReinstateUnderNewParent(t *testing.T) {
	s := newSession(t, inheritedStack())
	_, err := s.DeleteElement("writer")
	require.NoError(t, err)

	snap, err := s.ReinstateElement("parser", model.Element{ID: "writer", Type: "XmlWriter"})
	require.NoError(t, err)

	assert.Equal(t, []model.Link{{From: "parser", To: "writer"}}, snap.Local.Links.Add)
	assert.Contains(t, snap.Local.Links.Remove, model.Link{From: "xslt", To: "writer"})
	assert.ElementsMatch(t, []string{"xslt", "writer"}, childIDs(t, s, "parser"))
}

func TestSession_MoveElement(t *testing.T) {
	s := newSession(t, inheritedStack())
	_, err := s.AddElement("parser", "XSLTFilter", "f2")
	require.NoError(t, err)

	snap, err := s.MoveElement("writer", "f2")
	require.NoError(t, err)
	assert.Equal(t, []model.Link{{From: "parser", To: "f2"}, {From: "f2", To: "writer"}}, snap.Local.Links.Add)
	assert.Equal(t, []model.Link{{From: "xslt", To: "writer"}}, snap.Local.Links.Remove)

	parent, ok := snap.Graph.ParentID("writer")
	require.True(t, ok)
	assert.Equal(t, "f2", parent)
	assert.Equal(t, []string{"appender"}, childIDs(t, s, "writer"), "children travel with the subject")
	assert.Empty(t, childIDs(t, s, "xslt"))

	snap, err = s.MoveElement("writer", "xslt")
	require.NoError(t, err)
	assert.Equal(t, []model.Link{{From: "parser", To: "f2"}}, snap.Local.Links.Add)
	assert.Empty(t, snap.Local.Links.Remove)
}

func TestSession_PropertyRoundTripToDefault(t *testing.T) {
	s := newSession(t, inheritedStack())

	_, err := s.SetProperty("writer", "indentOutput", "boolean", true)
	require.NoError(t, err)
	v, err := s.PropertyValue("writer", "indentOutput")
	require.NoError(t, err)
	assert.Equal(t, OriginLocal, v.Origin)
	assert.Equal(t, model.BooleanValue(true), *v.Value)
	require.NotNil(t, v.Source)
	assert.Equal(t, "child", v.Source.UUID)

	snap, err := s.RevertPropertyToParent("writer", "indentOutput")
	require.NoError(t, err)
	assert.Empty(t, snap.Local.Properties.Add)
	assert.Empty(t, snap.Local.Properties.Remove)

	v, err = s.PropertyValue("writer", "indentOutput")
	require.NoError(t, err)
	assert.Equal(t, OriginDefault, v.Origin)
	assert.Equal(t, model.BooleanValue(false), *v.Value)
}

func TestSession_PropertyOverrides(t *testing.T) {
	s := newSession(t, inheritedStack())

	v, err := s.PropertyValue("writer", "encoding")
	require.NoError(t, err)
	assert.Equal(t, OriginInherited, v.Origin)
	assert.Equal(t, "UTF-16", *v.Value.String)

	_, err = s.SetProperty("writer", "encoding", "string", "ASCII")
	require.NoError(t, err)
	_, err = s.SetProperty("writer", "encoding", "string", "UTF-32")
	require.NoError(t, err)
	snap := s.Snapshot()
	require.Len(t, snap.Local.Properties.Add, 1, "one entry per key in a layer")
	v, err = s.PropertyValue("writer", "encoding")
	require.NoError(t, err)
	assert.Equal(t, OriginLocal, v.Origin)
	assert.Equal(t, "UTF-32", *v.Value.String)

	parent, ok := s.ParentProperty("writer", "encoding")
	require.True(t, ok)
	assert.Equal(t, "UTF-16", *parent.Value.String)
	assert.Equal(t, "parent", parent.SourcePipeline.UUID)

	snap, err = s.RevertPropertyToDefault("writer", "encoding")
	require.NoError(t, err)
	assert.Empty(t, snap.Local.Properties.Add)
	assert.Equal(t, []model.Property{{Element: "writer", Name: "encoding"}}, snap.Local.Properties.Remove)
	v, err = s.PropertyValue("writer", "encoding")
	require.NoError(t, err)
	assert.Equal(t, OriginDefault, v.Origin)
	assert.Equal(t, "UTF-8", *v.Value.String)

	// Reverting to the default twice records a single remove.
	snap, err = s.RevertPropertyToDefault("writer", "encoding")
	require.NoError(t, err)
	assert.Len(t, snap.Local.Properties.Remove, 1)

	_, err = s.RevertPropertyToParent("writer", "encoding")
	require.NoError(t, err)
	v, err = s.PropertyValue("writer", "encoding")
	require.NoError(t, err)
	assert.Equal(t, OriginInherited, v.Origin)
	assert.Equal(t, "UTF-16", *v.Value.String)
}

func TestSession_PropertyValueUnset(t *testing.T) {
	s := newSession(t, inheritedStack())

	v, err := s.PropertyValue("writer", "bufferSize")
	require.NoError(t, err)
	assert.Equal(t, OriginUnset, v.Origin)
	assert.Nil(t, v.Value)

	_, ok := s.ParentProperty("writer", "bufferSize")
	assert.False(t, ok)

	_, err = s.PropertyValue("ghost", "bufferSize")
	requireKind(t, err, pipeerr.KindUnknownElement)
}

func TestSession_ElementNames(t *testing.T) {
	s := newSession(t, inheritedStack())
	_, err := s.DeleteElement("appender")
	require.NoError(t, err)

	// Deleted inherited elements still reserve their names.
	assert.Equal(t, []string{"source", "parser", "xslt", "writer", "appender"}, s.ElementNames())
	_, err = s.AddElement("writer", "StreamAppender", "Appender")
	requireKind(t, err, pipeerr.KindDuplicateName)
}

func TestSession_EmptyPipeline(t *testing.T) {
	s := newSession(t, model.ConfigStack{{Pipeline: model.PipelineRef("p1", "")}})
	assert.Nil(t, s.Snapshot().Graph.Root())

	snap, err := s.AddElement("", "Source", "root")
	require.NoError(t, err)
	assert.Equal(t, "root", snap.Graph.Root().ID())
	assert.Empty(t, snap.Local.Links.Add)

	_, err = s.AddElement("", "Source", "root2")
	requireKind(t, err, pipeerr.KindInvalidParent)
}

func TestNew_RejectsMalformedPipelines(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())

	_, err := New(ctx, nil, testCatalog(t))
	assert.Error(t, err)

	_, err = New(ctx, model.ConfigStack{{
		Pipeline: model.PipelineRef("p1", ""),
		Data: model.PipelineData{
			Elements: model.AddRemove[model.Element]{Add: []model.Element{
				{ID: "a", Type: "Source"},
				{ID: "b", Type: "Source"},
			}},
		},
	}}, testCatalog(t))
	requireKind(t, err, pipeerr.KindMultipleRoots)
}

func TestSession_StackKeepsInputUntouched(t *testing.T) {
	cs := inheritedStack()
	s := newSession(t, cs)

	_, err := s.DeleteElement("writer")
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(inheritedStack(), cs))
	edited := s.Stack()
	require.Len(t, edited, 2)
	assert.NotEmpty(t, edited[1].Data.Elements.Remove)
}
