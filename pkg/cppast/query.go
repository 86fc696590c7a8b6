package cppast

import "strings"

// ScopeSeparator joins the parts of a qualified name.
const ScopeSeparator = "::"

// Header returns the HeaderMacro annotation of a declaration, which is
// always its first child.
func (t *Tree) Header(id NodeID) (NodeID, bool) {
	children := t.Children(id)
	if len(children) == 0 || t.nodes[children[0]].Kind != KindHeaderMacro {
		return NoNode, false
	}
	return children[0], true
}

// Specifiers returns the HeaderSpecifier children of a declaration's header.
// id may also be the HeaderMacro node itself.
func (t *Tree) Specifiers(id NodeID) []NodeID {
	header := id
	if t.Kind(id) != KindHeaderMacro {
		var ok bool
		if header, ok = t.Header(id); !ok {
			return nil
		}
	}

	var out []NodeID
	for _, child := range t.Children(header) {
		if t.nodes[child].Kind == KindHeaderSpecifier {
			out = append(out, child)
		}
	}
	return out
}

// Specifier finds a header specifier of id by name. Names compare exactly.
func (t *Tree) Specifier(id NodeID, name string) (NodeID, bool) {
	for _, spec := range t.Specifiers(id) {
		if t.nodes[spec].Name == name {
			return spec, true
		}
	}
	return NoNode, false
}

// SpecifierValue returns the literal assigned to a header specifier.
func (t *Tree) SpecifierValue(spec NodeID) (Literal, bool) {
	for _, child := range t.Children(spec) {
		if t.nodes[child].Kind == KindLiteral {
			return t.nodes[child].Value, true
		}
	}
	return Literal{}, false
}

// QualifiedName joins the names of the enclosing classes and enums with
// "::", e.g. "EColor::Red" or "AActor::Tick".
func (t *Tree) QualifiedName(id NodeID) string {
	if !t.valid(id) {
		return ""
	}

	parts := []string{t.nodes[id].Name}
	for anc := t.nodes[id].Parent; anc != NoNode; anc = t.nodes[anc].Parent {
		switch t.nodes[anc].Kind {
		case KindClass, KindEnum:
			parts = append(parts, t.nodes[anc].Name)
		}
	}

	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ScopeSeparator)
}

// ChildrenOfKind returns the direct children of id with the given kind.
func (t *Tree) ChildrenOfKind(id NodeID, kind Kind) []NodeID {
	var out []NodeID
	for _, child := range t.Children(id) {
		if t.nodes[child].Kind == kind {
			out = append(out, child)
		}
	}
	return out
}

// Parameters returns the parameters of a function in order.
func (t *Tree) Parameters(fn NodeID) []NodeID {
	return t.ChildrenOfKind(fn, KindFunctionParameter)
}

// Declarations returns the top-level classes and enums in source order.
func (t *Tree) Declarations() []NodeID {
	var out []NodeID
	for _, child := range t.Children(RootID) {
		switch t.nodes[child].Kind {
		case KindClass, KindEnum:
			out = append(out, child)
		}
	}
	return out
}
