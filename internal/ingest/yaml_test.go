package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/quarry3d/report/pkg/report"
	"github.com/quarry3d/report/pkg/scene"
)

func writeScene(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write scene file: %v", err)
	}
	return path
}

func TestMaterializeHierarchy(t *testing.T) {
	path := writeScene(t, `
materials: ["Concrete", "Glass"]
root:
  name: villa
  children:
    - name: Block
      position: [1, 2, 3]
      scale: [2, 2, 2]
      mesh:
        vertices: [[0, 0, 0], [1, 0, 0], [0, 1, 0], [0, 0, 1]]
        faces: [[0, 1, 2], [0, 2, 3]]
    - name: Annex
      children:
        - name: Inner
`)

	root, materials, err := YAMLSource{}.Materialize(path, report.DefaultSettings())
	if err != nil {
		t.Fatalf("materialize failed: %v", err)
	}

	if root.Name != "villa" {
		t.Errorf("expected root name villa, got %s", root.Name)
	}
	if len(root.Children()) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children()))
	}

	block := root.FindChild("Block")
	if block == nil {
		t.Fatal("Block child not found")
	}
	if block.Position.X != 1 || block.Position.Y != 2 || block.Position.Z != 3 {
		t.Errorf("unexpected Block position: %+v", block.Position)
	}
	if block.Scale.X != 2 {
		t.Errorf("unexpected Block scale: %+v", block.Scale)
	}
	if block.Mesh == nil || block.Mesh.VertexCount() != 4 {
		t.Error("expected Block mesh with 4 vertices")
	}
	if len(block.Mesh.Faces) != 2 {
		t.Errorf("expected 2 faces, got %d", len(block.Mesh.Faces))
	}

	if inner := root.FindChild("Annex").FindChild("Inner"); inner == nil {
		t.Error("nested Inner node not found")
	}

	if len(materials) != 2 || materials[0].Name != "Concrete" {
		t.Errorf("unexpected materials: %+v", materials)
	}
}

func TestMaterializeDefaults(t *testing.T) {
	path := writeScene(t, `
root:
  name: bare
`)

	root, _, err := YAMLSource{}.Materialize(path, report.DefaultSettings())
	if err != nil {
		t.Fatalf("materialize failed: %v", err)
	}

	if root.Scale.X != 1 || root.Scale.Y != 1 || root.Scale.Z != 1 {
		t.Errorf("expected unit scale default, got %+v", root.Scale)
	}
	if root.Rotation.W != 1 {
		t.Errorf("expected identity rotation default, got %+v", root.Rotation)
	}
}

func TestMaterializeLightsGated(t *testing.T) {
	content := `
root:
  name: lights
  children:
    - name: Sun
      light:
        kind: directional
        color: [1, 0.9, 0.8]
        intensity: 2
`
	path := writeScene(t, content)

	// Without ImportLights the light component is dropped.
	root, _, err := YAMLSource{}.Materialize(path, report.DefaultSettings())
	if err != nil {
		t.Fatalf("materialize failed: %v", err)
	}
	if root.FindChild("Sun").Light != nil {
		t.Error("light materialized despite ImportLights being off")
	}

	settings := report.DefaultSettings()
	settings.ImportLights = true
	root, _, err = YAMLSource{}.Materialize(path, settings)
	if err != nil {
		t.Fatalf("materialize failed: %v", err)
	}
	sun := root.FindChild("Sun").Light
	if sun == nil {
		t.Fatal("expected Sun light to be materialized")
	}
	if sun.Kind != scene.LightDirectional {
		t.Errorf("expected directional light, got %v", sun.Kind)
	}
	if sun.Intensity != 2 {
		t.Errorf("expected intensity 2, got %f", sun.Intensity)
	}
	if sun.Color != [3]float32{1, 0.9, 0.8} {
		t.Errorf("expected color [1 0.9 0.8], got %v", sun.Color)
	}
}

func TestMaterializePlacementOnlySkipsMaterials(t *testing.T) {
	path := writeScene(t, `
materials: ["Unused"]
root:
  name: places
`)

	settings := report.DefaultSettings()
	settings.PlacementOnly = true
	_, materials, err := YAMLSource{}.Materialize(path, settings)
	if err != nil {
		t.Fatalf("materialize failed: %v", err)
	}
	if len(materials) != 0 {
		t.Errorf("expected no materials for placement-only element, got %d", len(materials))
	}
}

func TestMaterializeErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "root: [not: a mapping"},
		{"short vertex", `
root:
  name: r
  mesh:
    vertices: [[0, 0]]
`},
		{"face index out of range", `
root:
  name: r
  mesh:
    vertices: [[0, 0, 0]]
    faces: [[0, 1, 2]]
`},
		{"bad rotation arity", `
root:
  name: r
  rotation: [0, 0, 1]
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScene(t, tt.content)
			if _, _, err := (YAMLSource{}).Materialize(path, report.DefaultSettings()); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestMaterializeMissingFile(t *testing.T) {
	if _, _, err := (YAMLSource{}).Materialize("/nonexistent/scene.yaml", report.DefaultSettings()); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}
