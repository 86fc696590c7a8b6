// Package reflection converts parsed header trees into the flat records a
// code generator consumes.
package reflection

import (
	"github.com/yaklabco/headertool/pkg/cppast"
)

// Module is the reflection data of one header.
type Module struct {
	Path    string  `json:"path"              yaml:"path"`
	Classes []Class `json:"classes,omitempty" yaml:"classes,omitempty"`
	Enums   []Enum  `json:"enums,omitempty"   yaml:"enums,omitempty"`
}

// Location is a 1-based raw line and column.
type Location struct {
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// Specifier is one entry of a header macro.
// Value is nil, a bool, an int64 or a string.
type Specifier struct {
	Name  string `json:"name"            yaml:"name"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty"`
}

// Class is a UCLASS declaration.
type Class struct {
	Name       string      `json:"name"                 yaml:"name"`
	APIMacro   string      `json:"apiMacro,omitempty"   yaml:"apiMacro,omitempty"`
	Specifiers []Specifier `json:"specifiers,omitempty" yaml:"specifiers,omitempty"`
	Functions  []Function  `json:"functions,omitempty"  yaml:"functions,omitempty"`
	Location   Location    `json:"location"             yaml:"location"`
}

// Function is a UFUNCTION member declaration.
type Function struct {
	Name          string      `json:"name"                 yaml:"name"`
	QualifiedName string      `json:"qualifiedName"        yaml:"qualifiedName"`
	Static        bool        `json:"static,omitempty"     yaml:"static,omitempty"`
	ConstExpr     bool        `json:"constexpr,omitempty"  yaml:"constexpr,omitempty"`
	Virtual       bool        `json:"virtual,omitempty"    yaml:"virtual,omitempty"`
	Specifiers    []Specifier `json:"specifiers,omitempty" yaml:"specifiers,omitempty"`
	Parameters    []string    `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Location      Location    `json:"location"             yaml:"location"`
}

// Enum is a UENUM declaration.
type Enum struct {
	Name       string      `json:"name"                 yaml:"name"`
	Specifiers []Specifier `json:"specifiers,omitempty" yaml:"specifiers,omitempty"`
	Items      []EnumItem  `json:"items,omitempty"      yaml:"items,omitempty"`
	Location   Location    `json:"location"             yaml:"location"`
}

// EnumItem is one enumerator. Specifiers come from its UMETA annotation.
type EnumItem struct {
	Name          string      `json:"name"                 yaml:"name"`
	QualifiedName string      `json:"qualifiedName"        yaml:"qualifiedName"`
	Specifiers    []Specifier `json:"specifiers,omitempty" yaml:"specifiers,omitempty"`
	Location      Location    `json:"location"             yaml:"location"`
}

// Len returns the number of declarations: classes, functions, enums and
// enum items.
func (m *Module) Len() int {
	n := len(m.Classes) + len(m.Enums)
	for _, c := range m.Classes {
		n += len(c.Functions)
	}
	for _, e := range m.Enums {
		n += len(e.Items)
	}
	return n
}

// Build converts a parsed file. A nil file or tree yields an empty module.
func Build(file *cppast.File) *Module {
	if file == nil {
		return &Module{}
	}

	b := builder{file: file, tree: file.Tree}
	mod := &Module{Path: file.Path}
	if b.tree == nil {
		return mod
	}

	for _, decl := range b.tree.Declarations() {
		switch b.tree.Kind(decl) {
		case cppast.KindClass:
			mod.Classes = append(mod.Classes, b.class(decl))
		case cppast.KindEnum:
			mod.Enums = append(mod.Enums, b.enum(decl))
		}
	}

	return mod
}

type builder struct {
	file *cppast.File
	tree *cppast.Tree
}

func (b builder) class(id cppast.NodeID) Class {
	c := Class{
		Name:       b.tree.Name(id),
		APIMacro:   b.tree.Node(id).APIMacro,
		Specifiers: b.specifiers(id),
		Location:   b.location(id),
	}
	for _, fn := range b.tree.ChildrenOfKind(id, cppast.KindFunction) {
		c.Functions = append(c.Functions, b.function(fn))
	}
	return c
}

func (b builder) function(id cppast.NodeID) Function {
	n := b.tree.Node(id)
	fn := Function{
		Name:          n.Name,
		QualifiedName: b.tree.QualifiedName(id),
		Static:        n.IsStatic,
		ConstExpr:     n.IsConstExpr,
		Virtual:       n.IsVirtual,
		Specifiers:    b.specifiers(id),
		Location:      b.location(id),
	}
	for _, p := range b.tree.Parameters(id) {
		fn.Parameters = append(fn.Parameters, b.tree.Name(p))
	}
	return fn
}

func (b builder) enum(id cppast.NodeID) Enum {
	e := Enum{
		Name:       b.tree.Name(id),
		Specifiers: b.specifiers(id),
		Location:   b.location(id),
	}
	for _, item := range b.tree.ChildrenOfKind(id, cppast.KindEnumItem) {
		e.Items = append(e.Items, EnumItem{
			Name:          b.tree.Name(item),
			QualifiedName: b.tree.QualifiedName(item),
			Specifiers:    b.specifiers(item),
			Location:      b.location(item),
		})
	}
	return e
}

func (b builder) specifiers(id cppast.NodeID) []Specifier {
	specs := b.tree.Specifiers(id)
	if len(specs) == 0 {
		return nil
	}

	out := make([]Specifier, 0, len(specs))
	for _, spec := range specs {
		s := Specifier{Name: b.tree.Name(spec)}
		if lit, ok := b.tree.SpecifierValue(spec); ok {
			s.Value = lit.Value()
		}
		out = append(out, s)
	}
	return out
}

func (b builder) location(id cppast.NodeID) Location {
	lc := b.file.NodePosition(id)
	return Location{Line: lc.Line, Column: lc.Column}
}
