package pipeline

// stage is one step of the per-element import sequence. Stages always run
// in declaration order, exactly once each; there is no interleaving
// between elements and no skipping forward.
type stage int

const (
	stageConfigure stage = iota
	stageMaterialize
	stageHierarchy
	stageMaterial
	stageModel
	stageDone
)

func (s stage) String() string {
	switch s {
	case stageConfigure:
		return "configure"
	case stageMaterialize:
		return "materialize"
	case stageHierarchy:
		return "hierarchy"
	case stageMaterial:
		return "material"
	case stageModel:
		return "model"
	default:
		return "done"
	}
}
