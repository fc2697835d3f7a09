package ingest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quarry3d/report/pkg/math"
	"github.com/quarry3d/report/pkg/report"
	"github.com/quarry3d/report/pkg/scene"
)

// YAMLSource materializes scene graphs from YAML scene descriptions.
type YAMLSource struct{}

// sceneDoc is the YAML document layout.
type sceneDoc struct {
	Materials []string  `yaml:"materials"`
	Root      sceneNode `yaml:"root"`
}

type sceneNode struct {
	Name     string      `yaml:"name"`
	Position []float32   `yaml:"position"`
	Rotation []float32   `yaml:"rotation"` // x y z w
	Scale    []float32   `yaml:"scale"`
	Mesh     *sceneMesh  `yaml:"mesh"`
	Light    *sceneLight `yaml:"light"`
	Children []sceneNode `yaml:"children"`
}

type sceneMesh struct {
	Vertices [][]float32 `yaml:"vertices"`
	Faces    [][]int     `yaml:"faces"`
}

type sceneLight struct {
	Kind      string    `yaml:"kind"`
	Color     []float32 `yaml:"color"`
	Intensity float32   `yaml:"intensity"`
	Range     float32   `yaml:"range"`
}

// Materialize reads a YAML scene description and builds its node
// hierarchy. Lights are attached only when settings.ImportLights is set;
// materials are returned only for elements that are not placement-only.
func (YAMLSource) Materialize(path string, settings report.Settings) (*scene.Node, []*report.Material, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var doc sceneDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing scene %s: %w", path, err)
	}

	root, err := buildNode(doc.Root, settings)
	if err != nil {
		return nil, nil, fmt.Errorf("building scene %s: %w", path, err)
	}

	var materials []*report.Material
	if !settings.PlacementOnly {
		for _, name := range doc.Materials {
			materials = append(materials, &report.Material{Name: name})
		}
	}

	return root, materials, nil
}

func buildNode(sn sceneNode, settings report.Settings) (*scene.Node, error) {
	n := scene.NewNode(sn.Name)

	if sn.Position != nil {
		p, err := toVec3(sn.Position)
		if err != nil {
			return nil, fmt.Errorf("node %q position: %w", sn.Name, err)
		}
		n.Position = p
	}
	if sn.Rotation != nil {
		if len(sn.Rotation) != 4 {
			return nil, fmt.Errorf("node %q rotation: expected 4 components, got %d", sn.Name, len(sn.Rotation))
		}
		n.Rotation = math.Quat{
			X: sn.Rotation[0],
			Y: sn.Rotation[1],
			Z: sn.Rotation[2],
			W: sn.Rotation[3],
		}.Normalize()
	}
	if sn.Scale != nil {
		s, err := toVec3(sn.Scale)
		if err != nil {
			return nil, fmt.Errorf("node %q scale: %w", sn.Name, err)
		}
		n.Scale = s
	}

	if sn.Mesh != nil {
		mesh, err := buildMesh(sn.Mesh)
		if err != nil {
			return nil, fmt.Errorf("node %q mesh: %w", sn.Name, err)
		}
		n.Mesh = mesh
	}

	if sn.Light != nil && settings.ImportLights {
		light, err := buildLight(sn.Light)
		if err != nil {
			return nil, fmt.Errorf("node %q light: %w", sn.Name, err)
		}
		n.Light = light
	}

	for _, child := range sn.Children {
		c, err := buildNode(child, settings)
		if err != nil {
			return nil, err
		}
		n.AddChild(c)
	}

	return n, nil
}

func buildMesh(sm *sceneMesh) (*scene.Mesh, error) {
	mesh := &scene.Mesh{}
	for i, v := range sm.Vertices {
		vec, err := toVec3(v)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		mesh.Vertices = append(mesh.Vertices, vec)
	}
	for i, f := range sm.Faces {
		if len(f) != 3 {
			return nil, fmt.Errorf("face %d: expected 3 indices, got %d", i, len(f))
		}
		for _, idx := range f {
			if idx < 0 || idx >= len(mesh.Vertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range", i, idx)
			}
		}
		mesh.Faces = append(mesh.Faces, [3]int{f[0], f[1], f[2]})
	}
	return mesh, nil
}

func buildLight(sl *sceneLight) (*scene.Light, error) {
	light := scene.NewLight(parseLightKind(sl.Kind))
	if sl.Color != nil {
		c, err := toVec3(sl.Color)
		if err != nil {
			return nil, fmt.Errorf("color: %w", err)
		}
		light.Color = [3]float32{c.X, c.Y, c.Z}
	}
	if sl.Intensity > 0 {
		light.Intensity = sl.Intensity
	}
	if sl.Range > 0 {
		light.Range = sl.Range
	}
	return light, nil
}

func parseLightKind(kind string) scene.LightKind {
	switch kind {
	case "directional":
		return scene.LightDirectional
	case "spot":
		return scene.LightSpot
	case "rectangle":
		return scene.LightRectangle
	default:
		return scene.LightPoint
	}
}

func toVec3(v []float32) (math.Vec3, error) {
	if len(v) != 3 {
		return math.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(v))
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}
