// Package scene provides the mutable node hierarchy produced by ingestion
// and operated on by import decoding. Nodes carry a local TRS transform plus
// optional mesh and light components, and are mutated in place.
package scene

import (
	"github.com/google/uuid"

	"github.com/quarry3d/report/pkg/math"
)

// Node is a named scene-graph node with a local transform and optional
// components. A node owns its children; detaching a node detaches its whole
// subtree.
type Node struct {
	ID   uuid.UUID
	Name string

	Position math.Vec3 // local translation
	Rotation math.Quat // local rotation
	Scale    math.Vec3 // local scale

	Mesh  *Mesh
	Light *Light

	parent   *Node
	children []*Node
}

// NewNode creates a detached node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		ID:       uuid.New(),
		Name:     name,
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3One(),
	}
}

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's direct children. The returned slice must not
// be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// AddChild attaches child to n, detaching it from any previous parent first.
func (n *Node) AddChild(child *Node) {
	if child == nil || child == n {
		return
	}
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
}

// Detach removes the node (and its subtree) from its parent. Detaching a
// root is a no-op.
func (n *Node) Detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// FindChild returns the first direct child with the given name, or nil.
func (n *Node) FindChild(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Walk visits n and every descendant in depth-first pre-order. Children
// detached by the visit function are skipped.
func (n *Node) Walk(visit func(*Node)) {
	// Children are copied so the visit function can detach nodes mid-walk.
	children := append([]*Node(nil), n.children...)
	visit(n)
	for _, c := range children {
		if c.parent == n {
			c.Walk(visit)
		}
	}
}

// Descendants returns every node below n in depth-first pre-order,
// excluding n itself.
func (n *Node) Descendants() []*Node {
	var out []*Node
	for _, c := range n.children {
		c.Walk(func(d *Node) {
			out = append(out, d)
		})
	}
	return out
}

// LocalTransform returns the node's local TRS matrix.
func (n *Node) LocalTransform() math.Mat4 {
	return math.Compose(n.Position, n.Rotation, n.Scale)
}

// WorldTransform returns the node's transform composed with all ancestors.
func (n *Node) WorldTransform() math.Mat4 {
	local := n.LocalTransform()
	if n.parent == nil {
		return local
	}
	return n.parent.WorldTransform().Mul(local)
}

// WorldRotation returns the node's rotation composed with all ancestors.
// Non-uniform ancestor scale is ignored: the hierarchy is assumed to be a
// pure scale-rotation frame without shear.
func (n *Node) WorldRotation() math.Quat {
	if n.parent == nil {
		return n.Rotation
	}
	return n.parent.WorldRotation().Mul(n.Rotation)
}

// SetWorldPosition sets the node's local position so that its world-space
// origin equals p.
func (n *Node) SetWorldPosition(p math.Vec3) {
	if n.parent == nil {
		n.Position = p
		return
	}
	n.Position = n.parent.WorldTransform().Inverse().TransformPoint(p)
}

// SetWorldRotation sets the node's local rotation so that its world-space
// orientation equals q.
func (n *Node) SetWorldRotation(q math.Quat) {
	if n.parent == nil {
		n.Rotation = q
		return
	}
	n.Rotation = n.parent.WorldRotation().Inverse().Mul(q)
}

// IsEmpty reports whether the node carries no components and no children.
// Empty nodes are candidates for post-import cleanup.
func (n *Node) IsEmpty() bool {
	return n.Mesh == nil && n.Light == nil && len(n.children) == 0
}

// Count returns the number of nodes in the subtree rooted at n, including n.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.children {
		total += c.Count()
	}
	return total
}
