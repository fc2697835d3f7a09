package report

import (
	"testing"

	"github.com/quarry3d/report/pkg/math"
	"github.com/quarry3d/report/pkg/scene"
)

func TestConfigureImportGating(t *testing.T) {
	tests := []struct {
		element       ElementCategory
		importLights  bool
		placementOnly bool
		detail        int
	}{
		{Meshes, false, false, -1},
		{MeshesAtDetail(2), false, false, 2},
		{Places, false, true, -1},
		{Lights, true, false, -1},
	}

	for _, tt := range tests {
		t.Run(tt.element.String(), func(t *testing.T) {
			imp := Rhino6.NewImporter()
			settings := DefaultSettings()
			imp.ConfigureImport(&settings, tt.element)

			if settings.ImportLights != tt.importLights {
				t.Errorf("ImportLights = %v, want %v", settings.ImportLights, tt.importLights)
			}
			if settings.PlacementOnly != tt.placementOnly {
				t.Errorf("PlacementOnly = %v, want %v", settings.PlacementOnly, tt.placementOnly)
			}
			if settings.DetailLevel != tt.detail {
				t.Errorf("DetailLevel = %d, want %d", settings.DetailLevel, tt.detail)
			}
		})
	}
}

func TestImportHierarchyOnlyDecodesPlacesAndLights(t *testing.T) {
	for _, element := range []ElementCategory{Meshes, MeshesAtDetail(0)} {
		t.Run(element.String(), func(t *testing.T) {
			root := scene.NewNode("root")
			root.AddChild(placeholderNode("mesh", tetra(math.Vec3{}, math.Vec3{X: 1}, math.Vec3{Y: 1}, math.Vec3{Z: 1})...))

			var rep Report
			Rhino6.NewImporter().ImportHierarchy(root, element, &rep)

			if rep.PlacementsDecoded != 0 {
				t.Errorf("decoded %d placements for %v element", rep.PlacementsDecoded, element)
			}
			if root.FindChild("mesh").Mesh == nil {
				t.Error("real geometry must not be consumed")
			}
		})
	}
}

func TestImportHierarchyDecodesPlaces(t *testing.T) {
	root := scene.NewNode("root")
	root.AddChild(placeholderNode("Chair=chair_block", tetra(math.Vec3{X: 1}, math.Vec3{X: 1}, math.Vec3{Y: 1}, math.Vec3{Z: 1})...))

	var rep Report
	Rhino6.NewImporter().ImportHierarchy(root, Places, &rep)

	if rep.PlacementsDecoded != 1 {
		t.Errorf("PlacementsDecoded = %d, want 1", rep.PlacementsDecoded)
	}
}

func TestRhino5AppliesPreRotation(t *testing.T) {
	root := scene.NewNode("root")
	root.AddChild(placeholderNode("p", tetra(math.Vec3{}, math.Vec3{X: 1}, math.Vec3{Y: 1}, math.Vec3{Z: 1})...))

	var rep Report
	Rhino5.NewImporter().ImportHierarchy(root, Places, &rep)

	if !sameRotation(root.Rotation, Rhino5.PreRotation) {
		t.Errorf("root rotation = %v, want pre-rotation %v", root.Rotation, Rhino5.PreRotation)
	}
}

func TestPreRotationNotAppliedWithoutPlaceholders(t *testing.T) {
	root := scene.NewNode("root")
	root.AddChild(scene.NewNode("anchor"))

	var rep Report
	Rhino5.NewImporter().ImportHierarchy(root, Places, &rep)

	if !sameRotation(root.Rotation, math.QuatIdentity()) {
		t.Errorf("root rotation = %v, want identity on empty decode", root.Rotation)
	}
}

func TestImportModelDispatch(t *testing.T) {
	t.Run("lights run the light decode", func(t *testing.T) {
		root := scene.NewNode("root")
		_, light, _ := lightWithStub("Lamp", "PointLight=Lamp", math.Vec3One())
		root.AddChild(light.Parent())

		var rep Report
		Rhino6.NewImporter().ImportModel(root, Lights, &rep)

		if rep.LightsDecoded != 1 {
			t.Errorf("LightsDecoded = %d, want 1", rep.LightsDecoded)
		}
	})

	t.Run("places retain empty anchors", func(t *testing.T) {
		root := scene.NewNode("root")
		root.AddChild(scene.NewNode("Chair=chair_block"))

		var rep Report
		Rhino6.NewImporter().ImportModel(root, Places, &rep)

		if len(root.Children()) != 1 {
			t.Error("anchor node must be retained for places elements")
		}
		if rep.NodesCleaned != 0 {
			t.Errorf("NodesCleaned = %d, want 0", rep.NodesCleaned)
		}
	})

	t.Run("meshes clean up empty containers", func(t *testing.T) {
		root := scene.NewNode("root")
		root.AddChild(scene.NewNode("leftover"))
		kept := scene.NewNode("geometry")
		kept.Mesh = &scene.Mesh{Vertices: make([]math.Vec3, 3)}
		root.AddChild(kept)

		var rep Report
		Rhino6.NewImporter().ImportModel(root, Meshes, &rep)

		if root.FindChild("leftover") != nil {
			t.Error("empty container should be cleaned up")
		}
		if root.FindChild("geometry") == nil {
			t.Error("mesh-bearing node must survive cleanup")
		}
	})
}

// Running the full decode twice over the same hierarchy must leave the
// second pass with zero mutations.
func TestFullDecodeIsIdempotent(t *testing.T) {
	build := func() *scene.Node {
		root := scene.NewNode("root")
		root.AddChild(placeholderNode("Chair=chair_block", tetra(math.Vec3{X: 2}, math.Vec3{X: 1}, math.Vec3{Y: 1}, math.Vec3{Z: 1})...))

		group := scene.NewNode("fixtures")
		light := scene.NewNode("Lamp")
		light.Light = scene.NewLight(scene.LightPoint)
		stub := placeholderNode("SpotLight=Lamp", tetra(math.Vec3{}, math.Vec3{X: 1}, math.Vec3{Y: 1}, math.Vec3{Z: 1})...)
		group.AddChild(light)
		group.AddChild(stub)
		root.AddChild(group)
		return root
	}

	root := build()
	imp := Rhino5.NewImporter()

	var first Report
	imp.ImportHierarchy(root, Lights, &first)
	imp.ImportModel(root, Lights, &first)
	if !first.Mutated() {
		t.Fatal("first pass should decode")
	}

	rotationAfterFirst := root.Rotation
	countAfterFirst := root.Count()

	var second Report
	imp.ImportHierarchy(root, Lights, &second)
	imp.ImportModel(root, Lights, &second)

	if second.Mutated() {
		t.Errorf("second pass mutated the hierarchy: %+v", second)
	}
	if !sameRotation(root.Rotation, rotationAfterFirst) {
		t.Error("pre-rotation must not accumulate across passes")
	}
	if root.Count() != countAfterFirst {
		t.Errorf("node count changed from %d to %d", countAfterFirst, root.Count())
	}
}
