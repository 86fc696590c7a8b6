package cppast

import (
	"errors"
	"fmt"
)

// Errors returned by tree construction.
var (
	ErrAlreadyAttached = errors.New("node is already attached to a parent")
	ErrInvalidNode     = errors.New("invalid node id")
	ErrCycle           = errors.New("node cannot be attached to itself or a descendant")
)

// Tree is an arena of nodes rooted at Root().
type Tree struct {
	nodes []Node
}

// RootID is the NodeID of the root in every tree.
const RootID NodeID = 0

// NewTree creates a tree holding only the root.
func NewTree() *Tree {
	t := &Tree{}
	t.nodes = append(t.nodes, Node{Kind: KindRoot, Parent: NoNode, FirstToken: -1, LastToken: -1})
	return t
}

// Root returns the root id.
func (t *Tree) Root() NodeID {
	return RootID
}

// Len returns the number of nodes, the root included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// New allocates a detached node.
func (t *Tree) New(kind Kind, name string) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		Kind:       kind,
		Name:       name,
		Parent:     NoNode,
		FirstToken: -1,
		LastToken:  -1,
	})
	return id
}

// Node returns the node for id, or nil if id is out of range.
// The pointer is invalidated by the next call to New.
func (t *Tree) Node(id NodeID) *Node {
	if !t.valid(id) {
		return nil
	}
	return &t.nodes[id]
}

// Kind returns the kind of id. Out-of-range ids report KindRoot.
func (t *Tree) Kind(id NodeID) Kind {
	if !t.valid(id) {
		return KindRoot
	}
	return t.nodes[id].Kind
}

// Name returns the name of id, or "" if id is out of range.
func (t *Tree) Name(id NodeID) string {
	if !t.valid(id) {
		return ""
	}
	return t.nodes[id].Name
}

// Parent returns the parent of id, or NoNode.
func (t *Tree) Parent(id NodeID) NodeID {
	if !t.valid(id) {
		return NoNode
	}
	return t.nodes[id].Parent
}

// Children returns the children of id in insertion order.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	return t.nodes[id].Children
}

// AppendChild attaches child as the last child of parent.
// A node can have only one parent; re-attaching returns ErrAlreadyAttached.
func (t *Tree) AppendChild(parent, child NodeID) error {
	if !t.valid(parent) || !t.valid(child) {
		return fmt.Errorf("append %d to %d: %w", child, parent, ErrInvalidNode)
	}
	if child == RootID || t.nodes[child].Parent != NoNode {
		return fmt.Errorf("append %d to %d: %w", child, parent, ErrAlreadyAttached)
	}
	for anc := parent; anc != NoNode; anc = t.nodes[anc].Parent {
		if anc == child {
			return fmt.Errorf("append %d to %d: %w", child, parent, ErrCycle)
		}
	}

	t.nodes[child].Parent = parent
	t.nodes[parent].Children = append(t.nodes[parent].Children, child)
	return nil
}

// SetTokenRange sets the inclusive token range of id.
func (t *Tree) SetTokenRange(id NodeID, first, last int) {
	if !t.valid(id) {
		return
	}
	t.nodes[id].FirstToken = first
	t.nodes[id].LastToken = last
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}
