// Package report implements decoding of RePort export bundles: element
// category and bundle-file naming, the placeholder-mesh placement decoder,
// the light metadata decoder, the versioned importer registry, and the
// post-import cleanup of empty container nodes.
//
// A RePort bundle smuggles block placements and light parameters through
// ordinary geometry: 4-vertex placeholder meshes whose vertex positions
// encode an affine basis, and whose local scale channel encodes light
// parameters. This package recovers the structured records and removes the
// consumed placeholder geometry.
package report

import (
	"fmt"
	"strconv"
)

// ElementKind classifies an element file within an export bundle.
type ElementKind int

const (
	ElementMeshes     ElementKind = iota // visible geometry at fixed detail
	ElementMeshDetail                    // geometry at a numbered detail level
	ElementPlaces                        // block-placement placeholders
	ElementLights                        // lights plus their parameter stubs
)

// String returns a human-readable element kind name.
func (k ElementKind) String() string {
	switch k {
	case ElementMeshes:
		return "Meshes"
	case ElementMeshDetail:
		return "MeshDetail"
	case ElementPlaces:
		return "Places"
	case ElementLights:
		return "Lights"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// ElementCategory identifies which decode stages run for one element file.
// Detail is meaningful only for ElementMeshDetail.
type ElementCategory struct {
	Kind   ElementKind
	Detail int
}

// Element category constructors for the closed tag set.
var (
	Meshes = ElementCategory{Kind: ElementMeshes}
	Places = ElementCategory{Kind: ElementPlaces}
	Lights = ElementCategory{Kind: ElementLights}
)

// MeshesAtDetail returns the category for a numbered detail level.
func MeshesAtDetail(level int) ElementCategory {
	return ElementCategory{Kind: ElementMeshDetail, Detail: level}
}

// Tag returns the exporter-side element tag: "meshes", "meshes<digit>",
// "places" or "lights".
func (c ElementCategory) Tag() string {
	switch c.Kind {
	case ElementMeshes:
		return "meshes"
	case ElementMeshDetail:
		return "meshes" + strconv.Itoa(c.Detail)
	case ElementPlaces:
		return "places"
	case ElementLights:
		return "lights"
	default:
		return ""
	}
}

// String returns the category as its exporter tag.
func (c ElementCategory) String() string {
	if tag := c.Tag(); tag != "" {
		return tag
	}
	return c.Kind.String()
}

// ParseElementTag parses an exporter element tag. The tag set is closed and
// case-sensitive; ok is false for anything outside it.
func ParseElementTag(tag string) (ElementCategory, bool) {
	switch tag {
	case "meshes":
		return Meshes, true
	case "places":
		return Places, true
	case "lights":
		return Lights, true
	}
	// "meshes<digit>" detail levels
	if len(tag) == len("meshes")+1 && tag[:len("meshes")] == "meshes" {
		d := tag[len("meshes")]
		if d >= '0' && d <= '9' {
			return MeshesAtDetail(int(d - '0')), true
		}
	}
	return ElementCategory{}, false
}

// Order returns the import ordering rank for the category. Geometry imports
// first, then placements, then lights; light reconstruction depends on
// sibling naming still present from the pre-decode hierarchy.
func (c ElementCategory) Order() int {
	switch c.Kind {
	case ElementMeshes:
		return 0
	case ElementMeshDetail:
		return 1 + c.Detail
	case ElementPlaces:
		return 20
	case ElementLights:
		return 30
	default:
		return 99
	}
}
