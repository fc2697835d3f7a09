package report

import (
	"errors"
	"fmt"

	"github.com/quarry3d/report/pkg/math"
	"github.com/quarry3d/report/pkg/scene"
)

// minBasisLength is the magnitude below which a basis vector is considered
// degenerate: rotation recovery is unreliable and scale is clamped to keep
// the node transform invertible.
const minBasisLength = 1e-6

// ErrPlaceholderVertexCount is returned when a mesh claimed to be a
// placeholder does not have exactly 4 vertices.
var ErrPlaceholderVertexCount = errors.New("placeholder mesh must have exactly 4 vertices")

// Convention selects how decoded basis vectors are reinterpreted before
// transform recovery. It is a property of the exporter version, not of an
// individual call.
type Convention int

const (
	// ConventionDirect uses the basis exactly as decoded.
	ConventionDirect Convention = iota
	// ConventionZUpRemap reinterprets a left-handed Z-up source basis:
	// each vector is reflected (-x, y, -z) and the Y and Z axes swap.
	ConventionZUpRemap
)

// AffineBasis is a world-space origin plus three basis vectors recovered
// from a placeholder mesh. The vectors are assumed to form a pure
// scale-rotation frame; shear is not recovered.
type AffineBasis struct {
	Origin math.Vec3
	X      math.Vec3
	Y      math.Vec3
	Z      math.Vec3
}

// DecodeBasis recovers an affine basis from placeholder vertices in the
// owning node's local space. Vertex 0 is the origin; vertices 1-3 are the
// tips of the X, Y and Z basis vectors.
func DecodeBasis(vertices []math.Vec3, world math.Mat4) (AffineBasis, error) {
	if len(vertices) != 4 {
		return AffineBasis{}, fmt.Errorf("%w: got %d", ErrPlaceholderVertexCount, len(vertices))
	}
	origin := world.TransformPoint(vertices[0])
	return AffineBasis{
		Origin: origin,
		X:      world.TransformPoint(vertices[1]).Sub(origin),
		Y:      world.TransformPoint(vertices[2]).Sub(origin),
		Z:      world.TransformPoint(vertices[3]).Sub(origin),
	}, nil
}

func reflect(v math.Vec3) math.Vec3 {
	return math.Vec3{X: -v.X, Y: v.Y, Z: -v.Z}
}

// Remap applies the left-handed-source axis remap: every basis vector is
// reflected and the Y and Z vectors exchange roles. The origin is kept.
func (b AffineBasis) Remap() AffineBasis {
	return AffineBasis{
		Origin: b.Origin,
		X:      reflect(b.X),
		Y:      reflect(b.Z),
		Z:      reflect(b.Y),
	}
}

// Apply reinterprets the basis under the given convention.
func (b AffineBasis) Apply(conv Convention) AffineBasis {
	if conv == ConventionZUpRemap {
		return b.Remap()
	}
	return b
}

// TransformRecord is the placement decoded from an affine basis.
type TransformRecord struct {
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
	// Degenerate is set when a basis vector was near zero; Rotation and
	// Scale are then guarded guesses rather than recovered values.
	Degenerate bool
}

// Record derives scale, rotation and position from the basis. Scale is the
// vector magnitudes (clamped positive), rotation is the look rotation whose
// forward aligns with Z and whose up aligns with Y.
func (b AffineBasis) Record() TransformRecord {
	scale := math.Vec3{X: b.X.Length(), Y: b.Y.Length(), Z: b.Z.Length()}
	degenerate := scale.X < minBasisLength || scale.Y < minBasisLength || scale.Z < minBasisLength
	if scale.X < minBasisLength {
		scale.X = minBasisLength
	}
	if scale.Y < minBasisLength {
		scale.Y = minBasisLength
	}
	if scale.Z < minBasisLength {
		scale.Z = minBasisLength
	}

	return TransformRecord{
		Position:   b.Origin,
		Rotation:   math.QuatLookRotation(b.Z, b.Y),
		Scale:      scale,
		Degenerate: degenerate,
	}
}

// DecodePlacement decodes the placeholder mesh on node n and writes the
// recovered transform onto n: scale locally, rotation and position in world
// space. The consumed mesh is removed; n itself is retained as a structural
// container. Returns false without modifying n when n carries no mesh or
// the mesh is malformed.
func DecodePlacement(n *scene.Node, conv Convention, rep *Report) bool {
	if n.Mesh == nil {
		return false
	}

	basis, err := DecodeBasis(n.Mesh.Vertices, n.WorldTransform())
	if err != nil {
		rep.Diagnose(DiagMalformedPlaceholder, n.Name, "%v", err)
		return false
	}

	record := basis.Apply(conv).Record()
	if record.Degenerate {
		rep.Diagnose(DiagDegenerateBasis, n.Name, "basis magnitudes %v are unreliable", record.Scale)
	}

	n.Scale = record.Scale
	n.SetWorldRotation(record.Rotation)
	n.SetWorldPosition(record.Position)
	n.Mesh = nil

	rep.PlacementsDecoded++
	return true
}

// SweepPlacements decodes every mesh-bearing node in the subtree rooted at
// root, root included. Each node is independently fallible; a malformed
// placeholder is diagnosed and skipped without aborting the sweep. Returns
// the number of placements decoded. An empty sweep is a no-op.
func SweepPlacements(root *scene.Node, conv Convention, rep *Report) int {
	var targets []*scene.Node
	root.Walk(func(n *scene.Node) {
		if n.Mesh != nil {
			targets = append(targets, n)
		}
	})

	decoded := 0
	for _, n := range targets {
		if DecodePlacement(n, conv, rep) {
			decoded++
		}
	}
	return decoded
}

// HasPlaceholders reports whether any node in the subtree still carries
// mesh data. Used to keep repeated imports of an already-decoded hierarchy
// side-effect free.
func HasPlaceholders(root *scene.Node) bool {
	found := false
	root.Walk(func(n *scene.Node) {
		if n.Mesh != nil {
			found = true
		}
	})
	return found
}
