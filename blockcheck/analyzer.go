package blockcheck

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer runs the capture check as a go/analysis pass, suitable for
// go vet -vettool and gopls. Builds gated on this pass cannot mint a
// verified-body token from an unchecked literal.
var Analyzer = &analysis.Analyzer{
	Name:     "blockcap",
	Doc:      "check that verified block bodies capture nothing from their defining scope",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      runAnalyzer,
}

var analyzerStrict bool

func init() {
	Analyzer.Flags.BoolVar(&analyzerStrict, "strict", false, "fail on syntax shapes the capture walker does not model")
}

func runAnalyzer(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	checker := NewChecker(Config{Strict: analyzerStrict})

	nodeFilter := []ast.Node{(*ast.CallExpr)(nil)}
	insp.Preorder(nodeFilter, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		kind, entry, ok := checker.entryCall(pass.TypesInfo, call)
		if !ok {
			return
		}
		for _, v := range checker.checkCall(pass.Fset, pass.TypesInfo, call, kind, entry) {
			pass.Report(analysis.Diagnostic{Pos: v.At, Message: v.Message})
		}
	})
	return nil, nil
}
