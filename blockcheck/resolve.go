package blockcheck

import (
	"go/ast"
	"go/token"
	"go/types"
)

// allowedReference reports whether id may appear free inside lit. A reference
// is allowed when its owner chain, walked outward, either
//
//   - lands back inside the literal (a parameter or local — not truly free), or
//   - reaches a globally addressable symbol without passing through an
//     enclosing function activation: universe names, imported package names,
//     package-scope declarations, and members selected from them. Selector
//     chains like pkg.Registry.Default stay allowed at any depth because the
//     root identifier is the only activation-relevant reference.
func allowedReference(info *types.Info, lit *ast.FuncLit, id *ast.Ident) bool {
	if id.Name == "_" {
		return true
	}
	if info.Defs[id] != nil {
		// Declaration site; the walker only visits nodes inside the literal,
		// so the binding is the literal's own.
		return true
	}
	obj := info.Uses[id]
	if obj == nil {
		// Unresolved identifiers carry nothing from the defining scope.
		return true
	}

	switch obj.(type) {
	case *types.PkgName, *types.Builtin, *types.Nil, *types.Label:
		return true
	}

	parent := obj.Parent()
	if parent == nil {
		// Fields and methods; reachable only through a selector whose base
		// is checked on its own.
		return true
	}
	if parent == types.Universe {
		return true
	}
	if declaredWithin(obj, lit) {
		return true
	}
	if pkg := obj.Pkg(); pkg != nil && parent == pkg.Scope() {
		return true
	}
	return false
}

// declaredWithin reports whether obj's declaration lies inside the literal,
// which makes a reference to it internal rather than a capture.
func declaredWithin(obj types.Object, lit *ast.FuncLit) bool {
	pos := obj.Pos()
	return pos != token.NoPos && lit.Pos() <= pos && pos < lit.End()
}
