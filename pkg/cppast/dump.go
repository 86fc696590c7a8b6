package cppast

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented rendering of the subtree at id, one node per line:
//
//	Class AActor api=FOO_API [0..14]
//	  HeaderMacro UCLASS [0..2]
func (t *Tree) Dump(w io.Writer, id NodeID) error {
	bw := bufio.NewWriter(w)
	depth := 0

	err := t.WalkWithContext(id,
		func(_ NodeID, n *Node) error {
			_, err := fmt.Fprintf(bw, "%s%s\n", strings.Repeat("  ", depth), describe(n))
			depth++
			return err
		},
		func(_ NodeID, _ *Node) error {
			depth--
			return nil
		},
	)
	if err != nil {
		return fmt.Errorf("dump tree: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("dump tree: %w", err)
	}
	return nil
}

// String renders the whole tree with Dump.
func (t *Tree) String() string {
	var sb strings.Builder
	_ = t.Dump(&sb, RootID)
	return sb.String()
}

func describe(n *Node) string {
	var sb strings.Builder
	sb.WriteString(n.Kind.String())

	if n.Name != "" {
		sb.WriteByte(' ')
		sb.WriteString(n.Name)
	}

	switch n.Kind {
	case KindClass:
		if n.APIMacro != "" {
			sb.WriteString(" api=")
			sb.WriteString(n.APIMacro)
		}
	case KindFunction:
		if n.IsStatic {
			sb.WriteString(" static")
		}
		if n.IsConstExpr {
			sb.WriteString(" constexpr")
		}
		if n.IsVirtual {
			sb.WriteString(" virtual")
		}
	case KindFunctionParameter:
		fmt.Fprintf(&sb, " #%d", n.Index)
	case KindLiteral:
		fmt.Fprintf(&sb, " %s %s", n.Value.Kind, n.Value.Format())
	}

	if n.HasTokenRange() {
		fmt.Fprintf(&sb, " [%d..%d]", n.FirstToken, n.LastToken)
	}

	return sb.String()
}
