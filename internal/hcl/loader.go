package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/triadgrid/internal/config"
	"github.com/specialistvlad/triadgrid/internal/ctxlog"
	"github.com/specialistvlad/triadgrid/internal/fsutil"
)

// Extension is the file extension the loader picks up.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL session loader.
func NewLoader() *Loader {
	return &Loader{}
}

type parsedFile struct {
	path string
	body hcl.Body
}

// Load parses every .hcl file under paths. Locals from all files are
// evaluated first so any file may use them; then each file's blocks are
// translated and merged into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, Extension)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s session files found in %v", Extension, paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	var (
		parsed []parsedFile
		locals []*localsBlock
	)
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root localsRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode locals in %s: %w", file, diags)
		}
		locals = append(locals, root.Locals...)
		parsed = append(parsed, parsedFile{path: file, body: root.Remain})
	}

	evalCtx, err := evalLocals(locals)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate locals: %w", err)
	}

	model := &config.Model{}
	for _, pf := range parsed {
		var root fileRoot
		if diags := gohcl.DecodeBody(pf.body, evalCtx, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", pf.path, diags)
		}
		fileModel, err := translate(pf.path, &root)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pf.path, err)
		}
		if err := config.Merge(model, fileModel); err != nil {
			return nil, fmt.Errorf("%s: %w", pf.path, err)
		}
	}

	if err := model.Normalize(); err != nil {
		return nil, err
	}

	logger.Debug("HCL loading complete.", "outputs", len(model.Outputs), "rules", len(model.Explore.Rules), "voices", len(model.Progression.Voices))
	return model, nil
}
