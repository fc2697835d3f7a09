package report

import (
	gomath "math"
	"testing"

	"github.com/quarry3d/report/pkg/math"
	"github.com/quarry3d/report/pkg/scene"
)

// lightWithStub builds parent -> {light node, stub sibling} with the stub's
// scale channel already decoded into its local scale.
func lightWithStub(lightName, stubName string, stubScale math.Vec3) (parent, light, stub *scene.Node) {
	parent = scene.NewNode("lights")
	light = scene.NewNode(lightName)
	light.Light = scene.NewLight(scene.LightPoint)
	stub = scene.NewNode(stubName)
	stub.Scale = stubScale
	parent.AddChild(light)
	parent.AddChild(stub)
	return parent, light, stub
}

func approxF(t *testing.T, got, want float32, context string) {
	t.Helper()
	if gomath.Abs(float64(got-want)) > 0.01 {
		t.Errorf("%s: got %v, want %v", context, got, want)
	}
}

func TestParseLightTypeTag(t *testing.T) {
	tests := []struct {
		in   string
		want LightTypeTag
	}{
		{"DirectionalLight", TagDirectional},
		{"PointLight", TagPoint},
		{"SpotLight", TagSpot},
		{"RectangularLight", TagRectangular},
		{"LinearLight", TagLinear},
		{"pointlight", TagUnknown}, // case-sensitive
		{"Volume", TagUnknown},
		{"", TagUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLightTypeTag(tt.in); got != tt.want {
				t.Errorf("ParseLightTypeTag(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitStubName(t *testing.T) {
	tests := []struct {
		in        string
		tag, name string
		ok        bool
	}{
		{"SpotLight=Lamp", "SpotLight", "Lamp", true},
		{"PointLight=", "PointLight", "", true},
		{"NoSeparator", "", "", false},
		{"=Lamp", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			tag, name, ok := SplitStubName(tt.in)
			if tag != tt.tag || name != tt.name || ok != tt.ok {
				t.Errorf("SplitStubName(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.in, tag, name, ok, tt.tag, tt.name, tt.ok)
			}
		})
	}
}

func TestDecodeSpotLightAngles(t *testing.T) {
	parent, light, _ := lightWithStub("Lamp", "SpotLight=Lamp", math.Vec3{X: 1, Y: 0.5, Z: 1})
	var rep Report

	if !DecodeLightStub(light, &rep) {
		t.Fatal("DecodeLightStub returned false")
	}

	if light.Light.Kind != scene.LightSpot {
		t.Errorf("kind = %v, want Spot", light.Light.Kind)
	}
	approxF(t, light.Light.SpotOuterDeg, 90, "outer angle")
	approxF(t, light.Light.SpotInnerDeg, 126.87, "inner angle")
	if parent.FindChild("SpotLight=Lamp") != nil {
		t.Error("stub should be destroyed after decode")
	}
}

func TestDecodeRectangularLight(t *testing.T) {
	_, light, _ := lightWithStub("Panel", "RectangularLight=Panel", math.Vec3{X: 0.5, Y: 0.5, Z: 3})
	var rep Report

	if !DecodeLightStub(light, &rep) {
		t.Fatal("DecodeLightStub returned false")
	}
	if light.Light.Kind != scene.LightRectangle {
		t.Errorf("kind = %v, want Rectangle", light.Light.Kind)
	}
	approxF(t, light.Light.AreaSize.X, 1.0, "area width")
	approxF(t, light.Light.AreaSize.Y, 1.0, "area height")
}

func TestDecodeLinearLight(t *testing.T) {
	_, light, _ := lightWithStub("Strip", "LinearLight=Strip", math.Vec3{X: 0.5, Y: 2, Z: 7})
	var rep Report

	if !DecodeLightStub(light, &rep) {
		t.Fatal("DecodeLightStub returned false")
	}
	// Linear lights approximate to a zero-height rectangle.
	if light.Light.Kind != scene.LightRectangle {
		t.Errorf("kind = %v, want Rectangle", light.Light.Kind)
	}
	approxF(t, light.Light.AreaSize.X, 1.0, "area width")
	approxF(t, light.Light.AreaSize.Y, 0, "area height")
}

func TestDecodeDirectionalAndPoint(t *testing.T) {
	tests := []struct {
		tag  string
		want scene.LightKind
	}{
		{"DirectionalLight", scene.LightDirectional},
		{"PointLight", scene.LightPoint},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			_, light, _ := lightWithStub("L", tt.tag+"=L", math.Vec3One())
			var rep Report
			if !DecodeLightStub(light, &rep) {
				t.Fatal("DecodeLightStub returned false")
			}
			if light.Light.Kind != tt.want {
				t.Errorf("kind = %v, want %v", light.Light.Kind, tt.want)
			}
			if !light.Light.Enabled {
				t.Error("light should stay enabled")
			}
		})
	}
}

func TestDecodeUnknownTagFallsBackToDisabledPoint(t *testing.T) {
	_, light, _ := lightWithStub("Foo", "Volume=Foo", math.Vec3One())
	var rep Report

	if !DecodeLightStub(light, &rep) {
		t.Fatal("DecodeLightStub returned false")
	}
	if light.Light.Kind != scene.LightPoint {
		t.Errorf("kind = %v, want Point", light.Light.Kind)
	}
	if light.Light.Enabled {
		t.Error("unknown tag should disable the light")
	}
	if got := rep.CountDiags(DiagUnknownLightTag); got != 1 {
		t.Errorf("unknown tag diagnostics = %d, want 1", got)
	}
}

func TestDecodeCopiesRigidTransformAndResetsScale(t *testing.T) {
	_, light, stub := lightWithStub("Lamp", "SpotLight=Lamp", math.Vec3{X: 1, Y: 1, Z: 1})
	stub.Position = math.Vec3{X: 2, Y: 5, Z: -1}
	stub.Rotation = math.QuatFromAxisAngle(math.Vec3{Y: 1}, 1.0)

	var rep Report
	if !DecodeLightStub(light, &rep) {
		t.Fatal("DecodeLightStub returned false")
	}

	approx(t, light.Position, stub.Position, "light position")
	if !sameRotation(light.Rotation, stub.Rotation) {
		t.Errorf("light rotation = %v, want %v", light.Rotation, stub.Rotation)
	}
	approx(t, stub.Scale, math.Vec3One(), "stub scale after decode")
}

func TestUnpairedLightIsDiagnosedAndUntouched(t *testing.T) {
	parent := scene.NewNode("lights")
	light := scene.NewNode("Orphan")
	light.Light = scene.NewLight(scene.LightDirectional)
	parent.AddChild(light)

	var rep Report
	if DecodeLightStub(light, &rep) {
		t.Fatal("unpaired light should not decode")
	}
	if light.Light.Kind != scene.LightDirectional || !light.Light.Enabled {
		t.Error("unpaired light must keep its original parameters")
	}
	if got := rep.CountDiags(DiagUnpairedLight); got != 1 {
		t.Errorf("unpaired diagnostics = %d, want 1", got)
	}
}

// Pairing uses the exact light name, not substring containment: a stub for
// light "ABC" must not attach to light "A".
func TestPairingIsExactNotSubstring(t *testing.T) {
	parent := scene.NewNode("lights")
	light := scene.NewNode("A")
	light.Light = scene.NewLight(scene.LightDirectional)
	stub := scene.NewNode("PointLight=ABC")
	parent.AddChild(light)
	parent.AddChild(stub)

	var rep Report
	if DecodeLightStub(light, &rep) {
		t.Fatal("stub for light ABC must not pair with light A")
	}
	if got := rep.CountDiags(DiagUnpairedLight); got != 1 {
		t.Errorf("unpaired diagnostics = %d, want 1", got)
	}
	if stub.Parent() == nil {
		t.Error("foreign stub must not be destroyed")
	}
}

func TestSweepLightsIndependentFailures(t *testing.T) {
	root := scene.NewNode("root")
	group := scene.NewNode("lights")
	root.AddChild(group)

	good := scene.NewNode("Good")
	good.Light = scene.NewLight(scene.LightPoint)
	goodStub := scene.NewNode("SpotLight=Good")
	goodStub.Scale = math.Vec3{X: 1, Y: 1, Z: 1}

	orphan := scene.NewNode("Orphan")
	orphan.Light = scene.NewLight(scene.LightPoint)

	group.AddChild(good)
	group.AddChild(goodStub)
	group.AddChild(orphan)

	var rep Report
	decoded := SweepLights(root, &rep)

	if decoded != 1 {
		t.Errorf("decoded = %d, want 1", decoded)
	}
	if good.Light.Kind != scene.LightSpot {
		t.Errorf("good light kind = %v, want Spot", good.Light.Kind)
	}
	if got := rep.CountDiags(DiagUnpairedLight); got != 1 {
		t.Errorf("unpaired diagnostics = %d, want 1", got)
	}
}

func TestSweepLightsSecondPassIsQuiet(t *testing.T) {
	parent, light, _ := lightWithStub("Lamp", "SpotLight=Lamp", math.Vec3{X: 1, Y: 0.5, Z: 1})

	var first Report
	if got := SweepLights(parent, &first); got != 1 {
		t.Fatalf("first sweep decoded = %d, want 1", got)
	}
	if !light.Light.Decoded {
		t.Error("light not marked decoded after first sweep")
	}

	// The stub was consumed on the first pass; a repeat sweep must not
	// mistake the decoded light for an unpaired one.
	var second Report
	if got := SweepLights(parent, &second); got != 0 {
		t.Errorf("second sweep decoded = %d, want 0", got)
	}
	if len(second.Diags) != 0 {
		t.Errorf("second sweep diagnostics = %v, want none", second.Diags)
	}
	if second.Mutated() {
		t.Error("second sweep must not report mutations")
	}
	if light.Light.Kind != scene.LightSpot {
		t.Errorf("light kind changed on second sweep: %v", light.Light.Kind)
	}
}
