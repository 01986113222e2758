package blockcheck

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"
)

// freeIdentWalker traverses a candidate body literal and flags every
// identifier reference that is free with respect to the literal and has no
// singleton backing. The traversal is an explicit switch over the node
// shapes it models; anything else is skipped in the lenient default and
// reported in strict mode.
type freeIdentWalker struct {
	fset   *token.FileSet
	info   *types.Info
	lit    *ast.FuncLit
	strict bool
	found  []Violation
}

func collectCaptures(fset *token.FileSet, info *types.Info, lit *ast.FuncLit, strict bool) []Violation {
	w := &freeIdentWalker{fset: fset, info: info, lit: lit, strict: strict}
	w.stmts(lit.Body.List)
	return w.found
}

func (w *freeIdentWalker) ident(id *ast.Ident) {
	if !allowedReference(w.info, w.lit, id) {
		w.found = append(w.found, capturedIdent(w.fset, id.Pos(), id.Name))
	}
}

func (w *freeIdentWalker) skip(n ast.Node) {
	if !w.strict {
		return
	}
	shape := strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
	w.found = append(w.found, unknownShape(w.fset, n.Pos(), shape))
}

func (w *freeIdentWalker) stmts(list []ast.Stmt) {
	for _, stmt := range list {
		w.stmt(stmt)
	}
}

func (w *freeIdentWalker) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case nil:
	case *ast.BlockStmt:
		w.stmts(s.List)
	case *ast.ExprStmt:
		w.expr(s.X)
	case *ast.AssignStmt:
		w.exprs(s.Lhs)
		w.exprs(s.Rhs)
	case *ast.ReturnStmt:
		w.exprs(s.Results)
	case *ast.IfStmt:
		w.stmt(s.Init)
		w.expr(s.Cond)
		w.stmt(s.Body)
		w.stmt(s.Else)
	case *ast.ForStmt:
		w.stmt(s.Init)
		w.expr(s.Cond)
		w.stmt(s.Post)
		w.stmt(s.Body)
	case *ast.RangeStmt:
		w.expr(s.Key)
		w.expr(s.Value)
		w.expr(s.X)
		w.stmt(s.Body)
	case *ast.DeclStmt:
		w.decl(s.Decl)
	case *ast.IncDecStmt:
		w.expr(s.X)
	case *ast.SwitchStmt:
		w.stmt(s.Init)
		w.expr(s.Tag)
		w.stmt(s.Body)
	case *ast.TypeSwitchStmt:
		w.stmt(s.Init)
		w.stmt(s.Assign)
		w.stmt(s.Body)
	case *ast.CaseClause:
		w.exprs(s.List)
		w.stmts(s.Body)
	case *ast.LabeledStmt:
		w.stmt(s.Stmt)
	case *ast.BranchStmt:
		// Label targets cannot carry state.
	case *ast.DeferStmt:
		w.expr(s.Call)
	case *ast.GoStmt:
		w.expr(s.Call)
	case *ast.SendStmt:
		w.expr(s.Chan)
		w.expr(s.Value)
	case *ast.EmptyStmt:
	default:
		// Notably select statements and their comm clauses.
		w.skip(s)
	}
}

func (w *freeIdentWalker) decl(d ast.Decl) {
	gen, ok := d.(*ast.GenDecl)
	if !ok {
		w.skip(d)
		return
	}
	for _, spec := range gen.Specs {
		switch spec := spec.(type) {
		case *ast.ValueSpec:
			w.expr(spec.Type)
			w.exprs(spec.Values)
		case *ast.TypeSpec:
			w.expr(spec.Type)
		default:
			w.skip(spec)
		}
	}
}

func (w *freeIdentWalker) exprs(list []ast.Expr) {
	for _, e := range list {
		w.expr(e)
	}
}

func (w *freeIdentWalker) expr(e ast.Expr) {
	switch e := e.(type) {
	case nil:
	case *ast.Ident:
		w.ident(e)
	case *ast.BasicLit:
	case *ast.ParenExpr:
		w.expr(e.X)
	case *ast.SelectorExpr:
		// Sel names a member of X's value; only the base can capture.
		w.expr(e.X)
	case *ast.IndexExpr:
		w.expr(e.X)
		w.expr(e.Index)
	case *ast.IndexListExpr:
		w.expr(e.X)
		w.exprs(e.Indices)
	case *ast.SliceExpr:
		w.expr(e.X)
		w.expr(e.Low)
		w.expr(e.High)
		w.expr(e.Max)
	case *ast.TypeAssertExpr:
		w.expr(e.X)
		w.expr(e.Type)
	case *ast.CallExpr:
		w.expr(e.Fun)
		w.exprs(e.Args)
	case *ast.StarExpr:
		w.expr(e.X)
	case *ast.UnaryExpr:
		w.expr(e.X)
	case *ast.BinaryExpr:
		w.expr(e.X)
		w.expr(e.Y)
	case *ast.KeyValueExpr:
		w.expr(e.Key)
		w.expr(e.Value)
	case *ast.CompositeLit:
		w.expr(e.Type)
		w.exprs(e.Elts)
	case *ast.FuncLit:
		w.expr(e.Type)
		w.stmts(e.Body.List)
	case *ast.Ellipsis:
		w.expr(e.Elt)
	case *ast.ArrayType:
		w.expr(e.Len)
		w.expr(e.Elt)
	case *ast.MapType:
		w.expr(e.Key)
		w.expr(e.Value)
	case *ast.ChanType:
		w.expr(e.Value)
	case *ast.StructType:
		w.fields(e.Fields)
	case *ast.InterfaceType:
		w.fields(e.Methods)
	case *ast.FuncType:
		w.fields(e.TypeParams)
		w.fields(e.Params)
		w.fields(e.Results)
	default:
		w.skip(e)
	}
}

func (w *freeIdentWalker) fields(list *ast.FieldList) {
	if list == nil {
		return
	}
	for _, field := range list.List {
		w.expr(field.Type)
	}
}
