package blockcheck

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"
)

const fixturePreamble = `package fixture

func CheckNoEnv(body any) any { return body }

func CheckWithEnv(body any) any { return body }

type config struct{ Step int }

type registry struct{ Default config }

var Registry = registry{Default: config{Step: 2}}
`

func fixtureConfig(strict bool) Config {
	return Config{
		NoEnvSymbols:   []string{"fixture.CheckNoEnv"},
		WithEnvSymbols: []string{"fixture.CheckWithEnv"},
		Strict:         strict,
	}
}

func checkFixture(t testing.TB, cfg Config, source string) []Violation {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "fixture.go", fixturePreamble+source, 0)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Implicits:  make(map[ast.Node]types.Object),
		Scopes:     make(map[ast.Node]*types.Scope),
	}
	conf := types.Config{}
	if _, err := conf.Check("fixture", fset, []*ast.File{file}, info); err != nil {
		t.Fatalf("typecheck fixture: %v", err)
	}
	return NewChecker(cfg).CheckFile(fset, info, file)
}

func requireClean(t testing.TB, violations []Violation) {
	t.Helper()
	if len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}

func TestCleanBodyVerifies(t *testing.T) {
	requireClean(t, checkFixture(t, fixtureConfig(false), `
func build() any {
	return CheckNoEnv(func(x int) int { return x + 1 })
}
`))
}

func TestParamsLocalsAndUniverseNamesAreAllowed(t *testing.T) {
	requireClean(t, checkFixture(t, fixtureConfig(false), `
func build() any {
	return CheckNoEnv(func(xs []string) int {
		total := 0
		for i, s := range xs {
			if s != "" {
				total += i + len(s)
			}
		}
		return total
	})
}
`))
}

func TestNestedSingletonMemberIsAllowed(t *testing.T) {
	// Registry.Default.Step walks two member levels off a package-level
	// singleton; only the root identifier is activation-relevant.
	requireClean(t, checkFixture(t, fixtureConfig(false), `
func build() any {
	return CheckNoEnv(func(x int) int { return x + Registry.Default.Step })
}
`))
}

func TestPackageLevelFunctionsAreAllowed(t *testing.T) {
	requireClean(t, checkFixture(t, fixtureConfig(false), `
func scale(n int) int { return n * 2 }

func build() any {
	return CheckNoEnv(func(x int) int { return scale(x) })
}
`))
}

func TestOuterLocalIsACaptureViolation(t *testing.T) {
	violations := checkFixture(t, fixtureConfig(false), `
func build() any {
	localCount := 2
	return CheckNoEnv(func(x int) int { return x + localCount })
}
`)
	if len(violations) != 1 {
		t.Fatalf("expected one violation, got %v", violations)
	}
	v := violations[0]
	if v.Kind != CaptureViolation {
		t.Fatalf("kind = %v, want CaptureViolation", v.Kind)
	}
	if v.Ident != "localCount" {
		t.Fatalf("ident = %q, want localCount", v.Ident)
	}
	if v.Pos.Line <= 0 || v.Pos.Column <= 0 {
		t.Fatalf("violation carries no source position: %+v", v.Pos)
	}
	requireErrorMessageContains(t, v, "environment parameter")
}

func TestOuterParameterIsACaptureViolation(t *testing.T) {
	violations := checkFixture(t, fixtureConfig(false), `
func build(step int) any {
	return CheckNoEnv(func(x int) int { return x + step })
}
`)
	if len(violations) != 1 || violations[0].Ident != "step" {
		t.Fatalf("expected one violation for step, got %v", violations)
	}
}

func TestWriteToOuterLocalIsACaptureViolation(t *testing.T) {
	violations := checkFixture(t, fixtureConfig(false), `
func build() any {
	total := 0
	blk := CheckNoEnv(func(x int) int {
		total += x
		return total
	})
	_ = total
	return blk
}
`)
	if len(violations) != 2 {
		t.Fatalf("expected two violations, got %v", violations)
	}
	for _, v := range violations {
		if v.Ident != "total" {
			t.Fatalf("ident = %q, want total", v.Ident)
		}
	}
}

func TestCaptureInsideNestedLiteralIsStillFlagged(t *testing.T) {
	violations := checkFixture(t, fixtureConfig(false), `
func build() any {
	hidden := 1
	return CheckNoEnv(func(x int) int {
		f := func() int { return hidden }
		return x + f()
	})
}
`)
	if len(violations) != 1 || violations[0].Ident != "hidden" {
		t.Fatalf("expected one violation for hidden, got %v", violations)
	}
}

func TestShadowingLocalIsNotACapture(t *testing.T) {
	requireClean(t, checkFixture(t, fixtureConfig(false), `
func build() any {
	count := 1
	_ = count
	return CheckNoEnv(func(x int) int {
		count := 10
		return x + count
	})
}
`))
}

func TestNonLiteralArgumentIsRejected(t *testing.T) {
	violations := checkFixture(t, fixtureConfig(false), `
func ready(x int) int { return x }

func build() any {
	body := ready
	return CheckNoEnv(body)
}
`)
	if len(violations) != 1 || violations[0].Kind != NotALiteral {
		t.Fatalf("expected one NotALiteral violation, got %v", violations)
	}
	requireErrorMessageContains(t, violations[0], "function literal")
}

func TestCurriedBodyVerifies(t *testing.T) {
	requireClean(t, checkFixture(t, fixtureConfig(false), `
func build() any {
	return CheckWithEnv(func(x int) func(int) int {
		return func(e int) int { return x + e }
	})
}
`))
}

func TestNonCurriedWithEnvBodyIsRejected(t *testing.T) {
	violations := checkFixture(t, fixtureConfig(false), `
func build() any {
	return CheckWithEnv(func(x int) int { return x })
}
`)
	if len(violations) != 1 || violations[0].Kind != NotALiteral {
		t.Fatalf("expected one NotALiteral violation, got %v", violations)
	}
	requireErrorMessageContains(t, violations[0], "returning a function literal")
}

func TestCurriedBodyCapturesAreComputedAgainstOuterLiteral(t *testing.T) {
	violations := checkFixture(t, fixtureConfig(false), `
func build() any {
	leak := 3
	_ = leak
	return CheckWithEnv(func(x int) func(int) int {
		return func(e int) int { return x + e + leak }
	})
}
`)
	if len(violations) != 1 || violations[0].Ident != "leak" {
		t.Fatalf("expected one violation for leak, got %v", violations)
	}
}

func TestUnmodeledShapeIsSkippedByDefault(t *testing.T) {
	requireClean(t, checkFixture(t, fixtureConfig(false), `
func build() any {
	return CheckNoEnv(func(ch chan int) int {
		select {}
	})
}
`))
}

func TestUnmodeledShapeFailsClosedInStrictMode(t *testing.T) {
	violations := checkFixture(t, fixtureConfig(true), `
func build() any {
	return CheckNoEnv(func(ch chan int) int {
		select {}
	})
}
`)
	if len(violations) != 1 || violations[0].Kind != UnknownShape {
		t.Fatalf("expected one UnknownShape violation, got %v", violations)
	}
	requireErrorMessageContains(t, violations[0], "SelectStmt")
}

func TestViolationsAreSortedByPosition(t *testing.T) {
	violations := checkFixture(t, fixtureConfig(false), `
func build() any {
	first := 1
	second := 2
	return CheckNoEnv(func(x int) int {
		a := x + second
		return a + first
	})
}
`)
	if len(violations) != 2 {
		t.Fatalf("expected two violations, got %v", violations)
	}
	if violations[0].Ident != "second" || violations[1].Ident != "first" {
		t.Fatalf("violations not in source order: %v", violations)
	}
}

func requireErrorMessageContains(t testing.TB, v Violation, want string) {
	t.Helper()
	if v.Message == "" {
		t.Fatalf("violation has no message: %+v", v)
	}
	if !strings.Contains(v.Message, want) {
		t.Fatalf("message %q does not mention %q", v.Message, want)
	}
}
