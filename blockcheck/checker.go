package blockcheck

import (
	"go/ast"
	"go/token"
	"go/types"
	"sort"

	"golang.org/x/tools/go/types/typeutil"
)

// BlockPackage is the import path of the runtime package whose verification
// entry points are checked by default.
const BlockPackage = "blockcap/block"

// Config adjusts which call sites the checker verifies. Symbols are fully
// qualified as "import/path.Name"; embedders that re-export the entry points
// under their own package list those wrappers here.
type Config struct {
	NoEnvSymbols   []string
	WithEnvSymbols []string
	// Strict fails closed on syntax shapes the free-identifier walker does
	// not model instead of treating them as capturing nothing.
	Strict bool
}

type entryKind int

const (
	entryNoEnv entryKind = iota
	entryWithEnv
)

// Checker verifies capture safety at verification entry-point call sites.
type Checker struct {
	entries map[string]entryKind
	strict  bool
}

// NewChecker builds a checker; zero-value Config checks the stock entry
// points in lenient mode.
func NewChecker(cfg Config) *Checker {
	noEnv := cfg.NoEnvSymbols
	withEnv := cfg.WithEnvSymbols
	if len(noEnv) == 0 && len(withEnv) == 0 {
		noEnv = []string{BlockPackage + ".CheckNoEnv"}
		withEnv = []string{BlockPackage + ".CheckWithEnv"}
	}
	entries := make(map[string]entryKind, len(noEnv)+len(withEnv))
	for _, sym := range noEnv {
		entries[sym] = entryNoEnv
	}
	for _, sym := range withEnv {
		entries[sym] = entryWithEnv
	}
	return &Checker{entries: entries, strict: cfg.Strict}
}

// CheckFile verifies every entry-point call site in one type-checked file and
// returns the violations sorted by position.
func (c *Checker) CheckFile(fset *token.FileSet, info *types.Info, file *ast.File) []Violation {
	var violations []Violation
	ast.Inspect(file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		kind, entry, ok := c.entryCall(info, call)
		if !ok {
			return true
		}
		violations = append(violations, c.checkCall(fset, info, call, kind, entry)...)
		return true
	})
	sortViolations(violations)
	return violations
}

// entryCall resolves a call's static callee against the configured entry
// points.
func (c *Checker) entryCall(info *types.Info, call *ast.CallExpr) (entryKind, string, bool) {
	fn := typeutil.StaticCallee(info, call)
	if fn == nil || fn.Pkg() == nil {
		return 0, "", false
	}
	name := fn.Pkg().Path() + "." + fn.Name()
	kind, ok := c.entries[name]
	if !ok {
		return 0, "", false
	}
	return kind, fn.Name(), true
}

// checkCall runs the capture check for one entry-point call site.
func (c *Checker) checkCall(fset *token.FileSet, info *types.Info, call *ast.CallExpr, kind entryKind, entry string) []Violation {
	if len(call.Args) != 1 {
		return []Violation{notALiteral(fset, call.Pos(), entry, kind)}
	}
	arg := ast.Unparen(call.Args[0])
	lit, ok := arg.(*ast.FuncLit)
	if !ok {
		return []Violation{notALiteral(fset, arg.Pos(), entry, kind)}
	}
	if kind == entryWithEnv && curriedInner(lit) == nil {
		return []Violation{notALiteral(fset, lit.Pos(), entry, kind)}
	}
	// Free identifiers are computed against the outer literal, so the inner
	// environment level of a curried body is traversed as part of it.
	return collectCaptures(fset, info, lit, c.strict)
}

// curriedInner returns the environment-level literal of a curried body, or
// nil when the outer literal does not have the two-nested-literal shape.
func curriedInner(lit *ast.FuncLit) *ast.FuncLit {
	if len(lit.Body.List) != 1 {
		return nil
	}
	ret, ok := lit.Body.List[0].(*ast.ReturnStmt)
	if !ok || len(ret.Results) != 1 {
		return nil
	}
	inner, ok := ast.Unparen(ret.Results[0]).(*ast.FuncLit)
	if !ok {
		return nil
	}
	return inner
}

// Sort orders violations by file, line, and column. CheckFile returns sorted
// results already; drivers merging several files use this before printing.
func Sort(violations []Violation) {
	sortViolations(violations)
}

func sortViolations(violations []Violation) {
	sort.SliceStable(violations, func(i, j int) bool {
		fi, li, ci := sortKey(violations[i])
		fj, lj, cj := sortKey(violations[j])
		if fi != fj {
			return fi < fj
		}
		if li != lj {
			return li < lj
		}
		return ci < cj
	})
}
