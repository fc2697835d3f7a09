package report

import "fmt"

// DiagKind classifies a recoverable decode problem. Every kind is local to
// one node; none aborts a sweep.
type DiagKind int

const (
	DiagMalformedPlaceholder DiagKind = iota // vertex count != 4
	DiagDegenerateBasis                      // near-zero basis vector
	DiagUnpairedLight                        // no stub matched the light
	DiagUnknownLightTag                      // unrecognized stub type tag
	DiagNoImporter                           // unregistered exporter identity
)

// String returns a stable diagnostic kind name.
func (k DiagKind) String() string {
	switch k {
	case DiagMalformedPlaceholder:
		return "malformed placeholder"
	case DiagDegenerateBasis:
		return "degenerate basis"
	case DiagUnpairedLight:
		return "unpaired light"
	case DiagUnknownLightTag:
		return "unknown light tag"
	case DiagNoImporter:
		return "no importer"
	default:
		return fmt.Sprintf("diag(%d)", int(k))
	}
}

// Diag is one recoverable decode problem tied to a node.
type Diag struct {
	Kind DiagKind
	Node string // node name, empty when not node-scoped
	Msg  string
}

// String formats the diagnostic for logging.
func (d Diag) String() string {
	if d.Node == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Msg)
	}
	return fmt.Sprintf("%s: node %q: %s", d.Kind, d.Node, d.Msg)
}

// Report accumulates the outcome of one import pass: decode counts plus
// the diagnostics for everything that was skipped or approximated. A Report
// is not safe for concurrent use; each import job owns its own.
type Report struct {
	PlacementsDecoded int
	LightsDecoded     int
	NodesCleaned      int

	Diags []Diag
}

// Diagnose records one recoverable problem.
func (r *Report) Diagnose(kind DiagKind, node, format string, args ...any) {
	r.Diags = append(r.Diags, Diag{
		Kind: kind,
		Node: node,
		Msg:  fmt.Sprintf(format, args...),
	})
}

// CountDiags returns how many diagnostics of the given kind were recorded.
func (r *Report) CountDiags(kind DiagKind) int {
	n := 0
	for _, d := range r.Diags {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Merge folds another report's counters and diagnostics into r.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.PlacementsDecoded += other.PlacementsDecoded
	r.LightsDecoded += other.LightsDecoded
	r.NodesCleaned += other.NodesCleaned
	r.Diags = append(r.Diags, other.Diags...)
}

// Mutated reports whether the pass changed the hierarchy at all. A second
// pass over an already-decoded hierarchy must leave this false.
func (r *Report) Mutated() bool {
	return r.PlacementsDecoded > 0 || r.LightsDecoded > 0 || r.NodesCleaned > 0
}
