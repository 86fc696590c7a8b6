package cppast

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(id NodeID, n *Node) error

// Walk performs a pre-order traversal starting at id.
// If walkFunc returns a non-nil error, the walk stops and returns it.
func (t *Tree) Walk(id NodeID, walkFunc WalkFunc) error {
	return t.WalkWithContext(id, walkFunc, nil)
}

// WalkWithContext performs a traversal with enter and leave callbacks.
// Enter is called before visiting children, leave after. Either may be nil.
//
// The traversal keeps an explicit stack, so deeply nested trees cannot
// exhaust the goroutine stack.
func (t *Tree) WalkWithContext(id NodeID, enter, leave WalkFunc) error {
	if !t.valid(id) {
		return nil
	}

	type frame struct {
		id   NodeID
		next int
	}

	stack := []frame{{id: id}}
	if enter != nil {
		if err := enter(id, &t.nodes[id]); err != nil {
			return err
		}
	}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		children := t.nodes[top.id].Children

		if top.next < len(children) {
			child := children[top.next]
			top.next++

			if enter != nil {
				if err := enter(child, &t.nodes[child]); err != nil {
					return err
				}
			}
			stack = append(stack, frame{id: child})
			continue
		}

		done := top.id
		stack = stack[:len(stack)-1]
		if leave != nil {
			if err := leave(done, &t.nodes[done]); err != nil {
				return err
			}
		}
	}

	return nil
}

// FindAll returns all nodes under id, id included, matching the predicate.
func (t *Tree) FindAll(id NodeID, predicate func(id NodeID, n *Node) bool) []NodeID {
	var result []NodeID

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	t.Walk(id, func(nid NodeID, n *Node) error {
		if predicate(nid, n) {
			result = append(result, nid)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node in pre-order matching the predicate,
// or NoNode.
func (t *Tree) FindFirst(id NodeID, predicate func(id NodeID, n *Node) bool) NodeID {
	found := NoNode

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	t.Walk(id, func(nid NodeID, n *Node) error {
		if predicate(nid, n) {
			found = nid
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindByKind returns all nodes under id of the given kind.
func (t *Tree) FindByKind(id NodeID, kind Kind) []NodeID {
	return t.FindAll(id, func(_ NodeID, n *Node) bool {
		return n.Kind == kind
	})
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}
