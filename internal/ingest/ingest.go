// Package ingest materializes exported scene files into node hierarchies.
//
// The decode pipeline does not parse geometry container formats itself; it
// asks a Source to turn a file into a scene graph and then runs the
// placement and light decoders over the result. The YAML source in this
// package is the reference backend used by the pipeline tests and the
// debug CLI; FBX materialization is provided by the host engine.
package ingest

import (
	"github.com/quarry3d/report/pkg/report"
	"github.com/quarry3d/report/pkg/scene"
)

// Source turns an exported file into a node hierarchy and its material
// list. Settings come from ConfigureImport and are applied before the
// hierarchy is built: a source must not materialize lights unless
// ImportLights is set, and may skip material work for placement-only
// elements.
type Source interface {
	Materialize(path string, settings report.Settings) (*scene.Node, []*report.Material, error)
}
