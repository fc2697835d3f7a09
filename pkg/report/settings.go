package report

// Settings is the pre-materialization import configuration mutated by
// ConfigureImport. The ingestion collaborator reads it before building the
// hierarchy for an element.
type Settings struct {
	// ImportLights enables light materialization. Only the lights element
	// carries lights worth materializing.
	ImportLights bool
	// PlacementOnly marks an element whose meshes are placement encodings
	// rather than visible geometry; ingestion may skip materials and
	// texture work for it.
	PlacementOnly bool
	// DetailLevel is the mesh detail level being imported, -1 when the
	// element has no detail level.
	DetailLevel int
}

// DefaultSettings returns the settings used before ConfigureImport runs.
func DefaultSettings() Settings {
	return Settings{DetailLevel: -1}
}

// Material is an opaque material handle passed through ImportMaterial. The
// core requires no behavior from it; external collaborators may act on it.
type Material struct {
	Name string
}
