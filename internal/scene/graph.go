// Package scene is the in-memory scene graph for the walkable environment:
// named nodes with parent-relative transforms, static box geometry, and
// name lookup for hotspot anchors.
package scene

import (
	"errors"
	"fmt"
	"strings"

	"free-walk/internal/physics"
	"free-walk/internal/spatial"

	"github.com/go-gl/mathgl/mgl32"
)

// ProxyMarker in a mesh name marks it as collision proxy geometry.
const ProxyMarker = "PROXY"

var (
	// ErrNotFound is returned when a named node does not exist.
	ErrNotFound = errors.New("node not found")
	// ErrDuplicate is returned when a node name is already taken.
	ErrDuplicate = errors.New("duplicate node name")
)

// Node is one object in the graph. A node with a nil Mesh is an empty anchor.
type Node struct {
	Name    string
	Local   spatial.Transform
	Size    mgl32.Vec3
	Color   [4]uint8
	Visible bool
	// Mesh is the node's geometry in world space, built once at load time.
	Mesh *physics.Mesh

	parent   *Node
	children []*Node
}

// Parent returns the node's parent, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// WorldTransform walks the parent chain.
func (n *Node) WorldTransform() spatial.Transform {
	t := n.Local
	for p := n.parent; p != nil; p = p.parent {
		t = p.Local.Compose(t)
	}
	return t
}

// Graph is a tree of named nodes under an unnamed root.
type Graph struct {
	root   *Node
	byName map[string]*Node
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		root:   &Node{Local: spatial.Identity(), Visible: true},
		byName: make(map[string]*Node),
	}
}

// Add attaches n under the node named parent, or under the root when parent is "".
func (g *Graph) Add(n *Node, parent string) error {
	if n.Name == "" {
		return fmt.Errorf("adding node: empty name")
	}
	if _, ok := g.byName[n.Name]; ok {
		return fmt.Errorf("adding %q: %w", n.Name, ErrDuplicate)
	}
	p := g.root
	if parent != "" {
		var ok bool
		if p, ok = g.byName[parent]; !ok {
			return fmt.Errorf("parent %q of %q: %w", parent, n.Name, ErrNotFound)
		}
	}
	if n.Local.Orientation.Len() == 0 {
		n.Local.Orientation = mgl32.QuatIdent()
	}
	n.parent = p
	p.children = append(p.children, n)
	g.byName[n.Name] = n
	return nil
}

// ObjectByName returns the node with the given name.
func (g *Graph) ObjectByName(name string) (*Node, bool) {
	n, ok := g.byName[name]
	return n, ok
}

// WorldPosition returns the live world position of the named node.
func (g *Graph) WorldPosition(name string) (mgl32.Vec3, bool) {
	n, ok := g.byName[name]
	if !ok {
		return mgl32.Vec3{}, false
	}
	return n.WorldTransform().Position, true
}

// Traverse visits every node depth-first in insertion order, root excluded.
func (g *Graph) Traverse(fn func(*Node)) {
	var walk func(*Node)
	walk = func(n *Node) {
		for _, c := range n.children {
			fn(c)
			walk(c)
		}
	}
	walk(g.root)
}

// AddMidpointAnchor adds an empty node named name halfway between nodes a and b.
// It is attached to a's parent so it moves with the same part of the environment.
func (g *Graph) AddMidpointAnchor(name, a, b string) error {
	na, ok := g.byName[a]
	if !ok {
		return fmt.Errorf("anchor %q endpoint %q: %w", name, a, ErrNotFound)
	}
	nb, ok := g.byName[b]
	if !ok {
		return fmt.Errorf("anchor %q endpoint %q: %w", name, b, ErrNotFound)
	}
	mid := na.WorldTransform().Position.Add(nb.WorldTransform().Position).Mul(0.5)

	parent := ""
	local := mid
	if p := na.parent; p != g.root {
		parent = p.Name
		pt := p.WorldTransform()
		local = pt.Orientation.Inverse().Rotate(mid.Sub(pt.Position))
	}
	return g.Add(&Node{
		Name:  name,
		Local: spatial.Transform{Position: local, Orientation: mgl32.QuatIdent()},
	}, parent)
}

// RegisterProxies hides every mesh whose name carries ProxyMarker and hands it to
// the physics world. It returns how many proxies were found.
func (g *Graph) RegisterProxies(w *physics.World) int {
	n := 0
	g.Traverse(func(node *Node) {
		if node.Mesh == nil || !strings.Contains(node.Name, ProxyMarker) {
			return
		}
		node.Visible = false
		w.SetProxy(node.Mesh)
		n++
	})
	return n
}
