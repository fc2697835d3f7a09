package report

import (
	gomath "math"
	"strings"

	"github.com/quarry3d/report/pkg/math"
	"github.com/quarry3d/report/pkg/scene"
)

// LightTypeTag is the closed set of exporter-side light type names carried
// in stub node names. Anything outside the set parses to TagUnknown.
type LightTypeTag int

const (
	TagUnknown LightTypeTag = iota
	TagDirectional
	TagPoint
	TagSpot
	TagRectangular
	TagLinear
)

// ParseLightTypeTag parses an exporter light tag. Matching is exact and
// case-sensitive; unrecognized strings map to TagUnknown.
func ParseLightTypeTag(s string) LightTypeTag {
	switch s {
	case "DirectionalLight":
		return TagDirectional
	case "PointLight":
		return TagPoint
	case "SpotLight":
		return TagSpot
	case "RectangularLight":
		return TagRectangular
	case "LinearLight":
		return TagLinear
	default:
		return TagUnknown
	}
}

// String returns the exporter-side tag name.
func (t LightTypeTag) String() string {
	switch t {
	case TagDirectional:
		return "DirectionalLight"
	case TagPoint:
		return "PointLight"
	case TagSpot:
		return "SpotLight"
	case TagRectangular:
		return "RectangularLight"
	case TagLinear:
		return "LinearLight"
	default:
		return "Unknown"
	}
}

// SplitStubName splits a stub node name "<TypeTag>=<LightName>" at the
// first '='. The exporter strips '=' from block and light names, so the
// first separator is unambiguous.
func SplitStubName(name string) (tag, lightName string, ok bool) {
	tag, lightName, ok = strings.Cut(name, "=")
	if !ok || tag == "" {
		return "", "", false
	}
	return tag, lightName, true
}

// findStub locates the stub paired with the light among the light's
// siblings. Pairing uses the exact structured key: the stub name must split
// into a tag and the light's exact name. First match wins; at most one stub
// should exist per light.
func findStub(light *scene.Node) (*scene.Node, string) {
	parent := light.Parent()
	if parent == nil {
		return nil, ""
	}
	for _, sibling := range parent.Children() {
		if sibling == light {
			continue
		}
		tag, name, ok := SplitStubName(sibling.Name)
		if ok && name == light.Name {
			return sibling, tag
		}
	}
	return nil, ""
}

// DecodeLightStub locates the stub paired with the light node, copies its
// rigid transform onto the light, decodes the stub's local scale channel by
// light-type tag into light parameters, and destroys the stub. An unpaired
// light is diagnosed and left unmodified; an unknown tag falls back to a
// disabled point light. A light decoded by an earlier sweep consumed its
// stub then, so it is skipped without a diagnostic. Returns true when a
// stub was consumed.
func DecodeLightStub(light *scene.Node, rep *Report) bool {
	if light.Light == nil || light.Light.Decoded {
		return false
	}

	stub, tagStr := findStub(light)
	if stub == nil {
		rep.Diagnose(DiagUnpairedLight, light.Name, "no stub named \"<TypeTag>=%s\" among siblings", light.Name)
		return false
	}

	// Rigid part: the stub carries the light's placement.
	light.Position = stub.Position
	light.Rotation = stub.Rotation

	// The scale channel is parameter data, not geometry. Read it out and
	// force the stub reference back to identity before further use.
	encoded := stub.Scale
	stub.Scale = math.Vec3One()

	switch ParseLightTypeTag(tagStr) {
	case TagDirectional:
		light.Light.Kind = scene.LightDirectional

	case TagPoint:
		light.Light.Kind = scene.LightPoint

	case TagSpot:
		light.Light.Kind = scene.LightSpot
		light.Light.SpotOuterDeg = coneAngleDeg(encoded.Z, encoded.X)
		light.Light.SpotInnerDeg = coneAngleDeg(encoded.Z, encoded.Y)

	case TagRectangular:
		light.Light.Kind = scene.LightRectangle
		light.Light.AreaSize = math.Vec2{X: encoded.X * 2, Y: encoded.Y * 2}

	case TagLinear:
		// No direct target equivalent: approximated as a zero-height
		// rectangle. Downstream conversion into finite rectangles is the
		// caller's concern.
		light.Light.Kind = scene.LightRectangle
		light.Light.AreaSize = math.Vec2{X: encoded.X * 2, Y: 0}

	default:
		light.Light.Kind = scene.LightPoint
		light.Light.Enabled = false
		rep.Diagnose(DiagUnknownLightTag, light.Name, "unrecognized light tag %q", tagStr)
	}

	light.Light.Decoded = true
	stub.Detach()
	rep.LightsDecoded++
	return true
}

// coneAngleDeg decodes a cone half-opening encoded as an opposite/adjacent
// pair into a full opening angle in degrees.
func coneAngleDeg(opposite, adjacent float32) float32 {
	return float32(gomath.Atan2(float64(opposite), float64(adjacent)) * (180 / gomath.Pi) * 2)
}

// SweepLights decodes the stub for every light-bearing node in the subtree
// rooted at root. Each light is processed independently; one unpaired or
// malformed light never blocks its siblings. Returns the number of lights
// decoded. An empty sweep is a no-op.
func SweepLights(root *scene.Node, rep *Report) int {
	var lights []*scene.Node
	root.Walk(func(n *scene.Node) {
		if n.Light != nil {
			lights = append(lights, n)
		}
	})

	decoded := 0
	for _, n := range lights {
		if DecodeLightStub(n, rep) {
			decoded++
		}
	}
	return decoded
}
