package report

import (
	"errors"
	"fmt"

	"github.com/quarry3d/report/pkg/scene"
)

// ErrDuplicateIdentity is returned when two importers register under the
// same exporter identity. Collisions are rejected rather than resolved by
// registration order.
var ErrDuplicateIdentity = errors.New("exporter identity already registered")

// Importer is the 4-stage capability contract selected per exporter
// identity. The pipeline driver invokes the stages strictly in declaration
// order for each element; every stage receives the element category as
// context.
type Importer interface {
	// ConfigureImport adjusts pre-materialization import settings for the
	// element. Side effect only.
	ConfigureImport(settings *Settings, element ElementCategory)

	// ImportHierarchy runs the placement decode sweep over the freshly
	// materialized hierarchy. Only places and lights elements decode;
	// other categories and empty hierarchies are no-ops.
	ImportHierarchy(root *scene.Node, element ElementCategory, rep *Report)

	// ImportMaterial is a pass-through hook for external material work.
	ImportMaterial(material *Material, element ElementCategory)

	// ImportModel finalizes the element: lights elements run the light
	// metadata decode, places elements retain their anchor containers,
	// everything else delegates to empty-node cleanup.
	ImportModel(root *scene.Node, element ElementCategory, rep *Report)
}

// Factory produces a fresh Importer for one import job.
type Factory func() Importer

// Registration pairs an exporter identity with an importer factory.
// Registries are populated from explicit registration lists at pipeline
// start-up; there is no ambient global registry.
type Registration struct {
	Identity string
	New      Factory
}

// Registry maps exporter identities to importer factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry builds a registry from a registration list. Duplicate
// identities are rejected with ErrDuplicateIdentity.
func NewRegistry(regs ...Registration) (*Registry, error) {
	r := &Registry{factories: make(map[string]Factory, len(regs))}
	for _, reg := range regs {
		if err := r.Register(reg.Identity, reg.New); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds an importer factory for the given exporter identity.
func (r *Registry) Register(identity string, factory Factory) error {
	if identity == "" {
		return errors.New("empty exporter identity")
	}
	if factory == nil {
		return fmt.Errorf("nil importer factory for identity %q", identity)
	}
	if _, exists := r.factories[identity]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateIdentity, identity)
	}
	r.factories[identity] = factory
	return nil
}

// Lookup returns a fresh Importer for the identity. A miss is not an
// error: the caller falls back to default non-decoding import.
func (r *Registry) Lookup(identity string) (Importer, bool) {
	factory, ok := r.factories[identity]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// Identities returns the registered exporter identities in arbitrary order.
func (r *Registry) Identities() []string {
	out := make([]string, 0, len(r.factories))
	for id := range r.factories {
		out = append(out, id)
	}
	return out
}
