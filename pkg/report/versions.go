package report

import (
	gomath "math"

	"github.com/quarry3d/report/pkg/math"
	"github.com/quarry3d/report/pkg/scene"
)

// Version parameterizes the shared decode routine for one exporter
// revision: which coordinate convention its bases use and which fixed
// pre-rotation normalizes its historical layer orientation. A Version is
// plain data; no revision overrides the decode algorithm itself.
type Version struct {
	Identity    string
	Convention  Convention
	PreRotation math.Quat // applied to the hierarchy root before decoding
}

// Rhino exporter revisions. Rhino 6 exports with the Y-up FBX option and
// needs only the handedness remap; Rhino 5 cannot, so its layers arrive
// Z-up and additionally need a -90 degree X pre-rotation.
var (
	Rhino6 = Version{
		Identity:    "3dm_6",
		Convention:  ConventionZUpRemap,
		PreRotation: math.QuatIdentity(),
	}
	Rhino5 = Version{
		Identity:    "3dm_5",
		Convention:  ConventionZUpRemap,
		PreRotation: math.QuatFromAxisAngle(math.Vec3{X: 1}, float32(-gomath.Pi/2)),
	}
)

// BuiltinRegistrations returns the registration list for all supported
// exporter revisions, for handing to NewRegistry at pipeline start-up.
func BuiltinRegistrations() []Registration {
	return []Registration{
		Rhino6.Registration(),
		Rhino5.Registration(),
	}
}

// Registration returns the (identity, factory) pair for this version.
func (v Version) Registration() Registration {
	return Registration{Identity: v.Identity, New: v.NewImporter}
}

// NewImporter returns the Importer for this version: a thin wrapper that
// injects the version's convention and pre-rotation into the shared
// decoders.
func (v Version) NewImporter() Importer {
	return &versionImporter{version: v}
}

// versionImporter adapts one exporter Version to the Importer contract.
// It holds no state beyond the version data.
type versionImporter struct {
	version Version
}

func (vi *versionImporter) ConfigureImport(settings *Settings, element ElementCategory) {
	settings.ImportLights = element.Kind == ElementLights
	settings.PlacementOnly = element.Kind == ElementPlaces
	if element.Kind == ElementMeshDetail {
		settings.DetailLevel = element.Detail
	} else {
		settings.DetailLevel = -1
	}
}

func (vi *versionImporter) ImportHierarchy(root *scene.Node, element ElementCategory, rep *Report) {
	if element.Kind != ElementPlaces && element.Kind != ElementLights {
		return
	}
	// The pre-rotation belongs to the decode, so an already-decoded
	// hierarchy (no placeholders left) must not accumulate it.
	if !HasPlaceholders(root) {
		return
	}
	root.Rotation = vi.version.PreRotation.Mul(root.Rotation)
	SweepPlacements(root, vi.version.Convention, rep)
}

func (vi *versionImporter) ImportMaterial(material *Material, element ElementCategory) {
	// Pass-through: material handling belongs to the ingestion collaborator.
}

func (vi *versionImporter) ImportModel(root *scene.Node, element ElementCategory, rep *Report) {
	switch element.Kind {
	case ElementLights:
		SweepLights(root, rep)
	case ElementPlaces:
		// Decoded placeholder containers are intentional anchor nodes for
		// nested block content; keep them.
	default:
		CleanupEmptyNodes(root, rep)
	}
}
