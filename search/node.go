package search

// NodeID is a stable handle to a node inside a Tree.
type NodeID int

// NoParent is the Parent of a root node.
const NoParent NodeID = -1

// Node is one entry in the search tree: a reached state plus how it was
// reached. Nodes are immutable once added to a Tree.
type Node[S, A any] struct {
	State S

	// Parent is the handle of the node this one was generated from,
	// or NoParent for the root.
	Parent NodeID

	// Action produced State from the parent's state. Zero for the root.
	Action A

	// PathCost is the cumulative step cost from the root.
	PathCost float64

	// Depth is the number of actions from the root.
	Depth int
}

// Tree is an append-only arena of search nodes. Children reference parents
// by NodeID, so many children share one parent without copying.
type Tree[S, A any] struct {
	nodes []Node[S, A]
}

// NewTree returns an empty tree.
func NewTree[S, A any]() *Tree[S, A] {
	return &Tree[S, A]{}
}

// Root adds a root node for state and returns its handle.
func (t *Tree[S, A]) Root(state S) NodeID {
	t.nodes = append(t.nodes, Node[S, A]{State: state, Parent: NoParent})
	return NodeID(len(t.nodes) - 1)
}

// Child adds a node reached from parent by action at stepCost.
func (t *Tree[S, A]) Child(parent NodeID, action A, state S, stepCost float64) NodeID {
	p := t.nodes[parent]
	t.nodes = append(t.nodes, Node[S, A]{
		State:    state,
		Parent:   parent,
		Action:   action,
		PathCost: p.PathCost + stepCost,
		Depth:    p.Depth + 1,
	})
	return NodeID(len(t.nodes) - 1)
}

// Node returns the node for id. It panics if id was not issued by t.
func (t *Tree[S, A]) Node(id NodeID) Node[S, A] {
	return t.nodes[id]
}

// Len reports the number of nodes in the tree.
func (t *Tree[S, A]) Len() int {
	return len(t.nodes)
}

// Actions returns the actions from the root to id, in order.
// The result is empty (not nil) for a root node.
func (t *Tree[S, A]) Actions(id NodeID) []A {
	depth := t.nodes[id].Depth
	out := make([]A, depth)
	for cur := id; t.nodes[cur].Parent != NoParent; cur = t.nodes[cur].Parent {
		depth--
		out[depth] = t.nodes[cur].Action
	}
	return out
}

// States returns the states from the root to id inclusive.
func (t *Tree[S, A]) States(id NodeID) []S {
	depth := t.nodes[id].Depth
	out := make([]S, depth+1)
	for cur := id; ; cur = t.nodes[cur].Parent {
		out[depth] = t.nodes[cur].State
		if t.nodes[cur].Parent == NoParent {
			break
		}
		depth--
	}
	return out
}
