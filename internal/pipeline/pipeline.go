// Package pipeline drives exported bundle files through the import
// sequence: configure, materialize, hierarchy decode, material
// pass-through, model finalization.
package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/quarry3d/report/internal/ingest"
	"github.com/quarry3d/report/internal/logger"
	"github.com/quarry3d/report/pkg/report"
	"github.com/quarry3d/report/pkg/scene"
)

// Options tunes discovery behavior.
type Options struct {
	// DetailLevel is the highest mesh detail element to import; -1 imports
	// every detail level.
	DetailLevel int
	// ImportExtra also materializes files in the bundle directory that are
	// not bundle elements. They are imported without an importer, so no
	// decoding happens.
	ImportExtra bool
}

// Pipeline runs the import sequence over bundle files.
type Pipeline struct {
	registry *report.Registry
	source   ingest.Source
	opts     Options
}

// New builds a pipeline over the given importer registry and
// materialization source.
func New(registry *report.Registry, source ingest.Source, opts Options) *Pipeline {
	return &Pipeline{registry: registry, source: source, opts: opts}
}

// Result is the outcome of importing one file.
type Result struct {
	File      report.BundleFile
	Root      *scene.Node
	Materials []*report.Material
	Report    report.Report
}

// RunDir discovers bundle files under dir, recursively, and imports each.
// Exporters write block constituents as sub-bundles in nested directories,
// so discovery must descend. Shallower bundles import first (a places
// element's anchors exist before the sub-bundle content that attaches to
// them); within a bundle, elements run ordered meshes, mesh details,
// places, lights.
func (p *Pipeline) RunDir(dir string) ([]Result, error) {
	var files []report.BundleFile
	var extras []string
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		f, err := report.ParseBundleFile(path)
		if err != nil {
			if errors.Is(err, report.ErrNotBundleFile) {
				if p.opts.ImportExtra && filepath.Ext(path) == ".fbx" {
					extras = append(extras, path)
				}
				return nil
			}
			logger.Warn("skipping malformed bundle file",
				zap.String("file", d.Name()),
				zap.Error(err))
			return nil
		}
		if p.skipDetail(f) {
			logger.Debug("skipping detail element above configured level",
				zap.String("file", d.Name()))
			return nil
		}
		files = append(files, f)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("reading bundle dir: %w", walkErr)
	}

	sort.Slice(files, func(i, j int) bool {
		di, dj := pathDepth(files[i].Path), pathDepth(files[j].Path)
		if di != dj {
			return di < dj
		}
		if files[i].Name != files[j].Name {
			return files[i].Name < files[j].Name
		}
		return files[i].Element.Order() < files[j].Element.Order()
	})

	var results []Result
	for _, f := range files {
		res, err := p.runBundleFile(f)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	for _, path := range extras {
		res, err := p.runExtraFile(path)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	return results, nil
}

// RunFile imports a single bundle file.
func (p *Pipeline) RunFile(path string) (Result, error) {
	f, err := report.ParseBundleFile(path)
	if err != nil {
		return Result{}, err
	}
	return p.runBundleFile(f)
}

// pathDepth counts directory levels, so parent bundles sort ahead of the
// sub-bundles nested below them.
func pathDepth(path string) int {
	return strings.Count(filepath.ToSlash(path), "/")
}

// skipDetail reports whether a mesh detail element exceeds the configured
// detail level.
func (p *Pipeline) skipDetail(f report.BundleFile) bool {
	return p.opts.DetailLevel >= 0 &&
		f.Element.Kind == report.ElementMeshDetail &&
		f.Element.Detail > p.opts.DetailLevel
}

// runBundleFile walks one file through the stage sequence. A registry miss
// is not fatal: the file is still materialized, with a diagnostic, so the
// host ends up with the raw hierarchy instead of nothing.
func (p *Pipeline) runBundleFile(f report.BundleFile) (Result, error) {
	res := Result{File: f}

	imp, found := p.registry.Lookup(f.Identity)
	if !found {
		res.Report.Diagnose(report.DiagNoImporter, f.Name,
			"no importer registered for identity %q", f.Identity)
	}

	settings := report.DefaultSettings()

	for s := stageConfigure; s < stageDone; s++ {
		logger.Debug("import stage",
			zap.String("file", filepath.Base(f.Path)),
			zap.Stringer("stage", s))

		switch s {
		case stageConfigure:
			if found {
				imp.ConfigureImport(&settings, f.Element)
			}
		case stageMaterialize:
			root, materials, err := p.source.Materialize(f.Path, settings)
			if err != nil {
				return res, fmt.Errorf("materializing %s: %w", f.Path, err)
			}
			res.Root, res.Materials = root, materials
		case stageHierarchy:
			if found {
				imp.ImportHierarchy(res.Root, f.Element, &res.Report)
			}
		case stageMaterial:
			if found {
				for _, m := range res.Materials {
					imp.ImportMaterial(m, f.Element)
				}
			}
		case stageModel:
			if found {
				imp.ImportModel(res.Root, f.Element, &res.Report)
			}
		}
	}

	p.logResult(&res)
	return res, nil
}

// runExtraFile materializes a non-bundle file with default settings.
func (p *Pipeline) runExtraFile(path string) (Result, error) {
	res := Result{File: report.BundleFile{Path: path}}
	root, materials, err := p.source.Materialize(path, report.DefaultSettings())
	if err != nil {
		return res, fmt.Errorf("materializing %s: %w", path, err)
	}
	res.Root, res.Materials = root, materials
	logger.Info("imported extra file", zap.String("file", filepath.Base(path)))
	return res, nil
}

func (p *Pipeline) logResult(res *Result) {
	for _, d := range res.Report.Diags {
		logger.Warn("import diagnostic",
			zap.String("file", filepath.Base(res.File.Path)),
			zap.Stringer("kind", d.Kind),
			zap.String("node", d.Node),
			zap.String("detail", d.Msg))
	}
	logger.Info("imported bundle file",
		zap.String("file", filepath.Base(res.File.Path)),
		zap.String("element", res.File.Element.Tag()),
		zap.Int("placements", res.Report.PlacementsDecoded),
		zap.Int("lights", res.Report.LightsDecoded),
		zap.Int("cleaned", res.Report.NodesCleaned),
		zap.Int("diags", len(res.Report.Diags)))
}
