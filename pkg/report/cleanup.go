package report

import "github.com/quarry3d/report/pkg/scene"

// CleanupEmptyNodes removes structurally empty container nodes left behind
// after content import: nodes with no mesh, no light and no children.
// Removal cascades until a fixpoint so that chains of empty containers
// collapse. The root itself and any node carrying decoded data are never
// touched. Returns the number of nodes removed.
func CleanupEmptyNodes(root *scene.Node, rep *Report) int {
	removed := 0
	for {
		var empty []*scene.Node
		root.Walk(func(n *scene.Node) {
			if n != root && n.IsEmpty() {
				empty = append(empty, n)
			}
		})
		if len(empty) == 0 {
			break
		}
		for _, n := range empty {
			n.Detach()
		}
		removed += len(empty)
	}
	if rep != nil {
		rep.NodesCleaned += removed
	}
	return removed
}
