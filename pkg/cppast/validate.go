package cppast

import (
	"errors"
	"fmt"
)

// ErrInvalidTree wraps every violation reported by Validate.
var ErrInvalidTree = errors.New("invalid tree")

// Validate checks the structural invariants of the tree:
//   - every child points back at its parent;
//   - a node's token range contains each child's range;
//   - a declaration's HeaderMacro child, if any, is its first child.
func (t *Tree) Validate() error {
	var errs []error

	for i := range t.nodes {
		id := NodeID(i)
		n := &t.nodes[i]

		if id != RootID && n.Parent == NoNode {
			errs = append(errs, fmt.Errorf("%w: %s %q is detached", ErrInvalidTree, n.Kind, n.Name))
		}

		for pos, child := range n.Children {
			c := &t.nodes[child]

			if c.Parent != id {
				errs = append(errs, fmt.Errorf("%w: %s %q has wrong parent", ErrInvalidTree, c.Kind, c.Name))
			}

			if n.HasTokenRange() && c.HasTokenRange() && !n.ContainsRange(c.FirstToken, c.LastToken) {
				errs = append(errs, fmt.Errorf("%w: %s %q [%d..%d] outside %s %q [%d..%d]",
					ErrInvalidTree, c.Kind, c.Name, c.FirstToken, c.LastToken,
					n.Kind, n.Name, n.FirstToken, n.LastToken))
			}

			if n.Kind.IsDeclaration() && c.Kind == KindHeaderMacro && pos != 0 {
				errs = append(errs, fmt.Errorf("%w: header macro of %s %q is not its first child",
					ErrInvalidTree, n.Kind, n.Name))
			}
		}
	}

	return errors.Join(errs...)
}
