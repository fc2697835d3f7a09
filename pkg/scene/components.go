package scene

import "github.com/quarry3d/report/pkg/math"

// Mesh holds imported triangle geometry in the owning node's local space.
type Mesh struct {
	Vertices []math.Vec3
	Faces    [][3]int
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Vertices)
}

// LightKind enumerates the light types the target scene model supports.
type LightKind int

const (
	LightDirectional LightKind = iota
	LightPoint
	LightSpot
	LightRectangle
)

// String returns a human-readable light kind name.
func (k LightKind) String() string {
	switch k {
	case LightDirectional:
		return "Directional"
	case LightPoint:
		return "Point"
	case LightSpot:
		return "Spot"
	case LightRectangle:
		return "Rectangle"
	default:
		return "Unknown"
	}
}

// Light is a light component attached to a scene node. Which parameter
// fields are meaningful depends on Kind: spot lights use the cone angles,
// rectangle lights use AreaSize.
type Light struct {
	Kind    LightKind
	Enabled bool

	// Decoded is set once stub parameters have been applied to the light.
	// A decoded light's stub no longer exists, so re-sweeps skip it.
	Decoded bool

	Color     [3]float32
	Intensity float32
	Range     float32

	SpotOuterDeg float32 // outer cone angle, degrees
	SpotInnerDeg float32 // inner cone angle, degrees

	AreaSize math.Vec2 // rectangle width/height
}

// NewLight returns an enabled white light of the given kind.
func NewLight(kind LightKind) *Light {
	return &Light{
		Kind:      kind,
		Enabled:   true,
		Color:     [3]float32{1, 1, 1},
		Intensity: 1,
	}
}
