package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/pipestack/internal/catalog"
	"github.com/specialistvlad/pipestack/internal/config"
	"github.com/specialistvlad/pipestack/internal/ctxlog"
	"github.com/specialistvlad/pipestack/internal/fsutil"
	"github.com/specialistvlad/pipestack/internal/model"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under the given paths. Any file may
// hold element_type and pipeline blocks.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	m := &config.Model{Catalog: catalog.New()}

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	seenPipelines := make(map[string]string)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, b := range root.ElementTypes {
			et, diags := translateElementType(b, file)
			if diags.HasErrors() {
				return nil, fmt.Errorf("invalid element type in %s: %w", file, diags)
			}
			if err := m.Catalog.Register(et); err != nil {
				return nil, fmt.Errorf("%s: %w", b.DefRange, err)
			}
		}
		for _, b := range root.Pipelines {
			if prev, dup := seenPipelines[b.UUID]; dup {
				return nil, fmt.Errorf("%s: pipeline '%s' already defined in %s", b.DefRange, b.UUID, prev)
			}
			seenPipelines[b.UUID] = file
			doc, diags := translatePipeline(b)
			if diags.HasErrors() {
				return nil, fmt.Errorf("invalid pipeline in %s: %w", file, diags)
			}
			m.Documents = append(m.Documents, doc)
		}
	}

	logger.Debug("HCL loading complete.", "element_types", m.Catalog.Len(), "pipelines", len(m.Documents))
	return m, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl
// files found. Paths that do not exist are skipped.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		files, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if _, wasSeen := seen[f]; !wasSeen {
				allFiles = append(allFiles, f)
				seen[f] = struct{}{}
			}
		}
	}
	return allFiles, nil
}

// ParseDocuments parses pipeline blocks from in-memory HCL source.
func ParseDocuments(src []byte, filename string) ([]*model.Document, hcl.Diagnostics) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	var root fileRoot
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
		return nil, diags
	}
	var docs []*model.Document
	for _, b := range root.Pipelines {
		doc, pDiags := translatePipeline(b)
		diags = append(diags, pDiags...)
		if !pDiags.HasErrors() {
			docs = append(docs, doc)
		}
	}
	return docs, diags
}
