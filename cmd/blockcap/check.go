package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/tools/go/packages"

	"blockcap/blockcheck"
)

type finding struct {
	Kind    string `json:"kind"`
	Ident   string `json:"ident,omitempty"`
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

type report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Strict      bool      `json:"strict"`
	Findings    []finding `json:"findings"`
}

func checkCommand(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	strict := fs.Bool("strict", strictDefault(), "fail on syntax shapes the capture walker does not model")
	frames := fs.Bool("frames", false, "print caret frames under each finding")
	jsonOut := fs.String("json", "", "write a JSON report to the given path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	patterns := fs.Args()
	if len(patterns) == 0 {
		return errors.New("blockcap check: package pattern required")
	}

	violations, err := runCheck(patterns, *strict)
	if err != nil {
		return err
	}

	if *jsonOut != "" {
		if err := writeReport(*jsonOut, *strict, violations); err != nil {
			return err
		}
	}

	if len(violations) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	sources := make(map[string]string)
	for _, v := range violations {
		fmt.Printf("%s:%d:%d: %s\n", v.Pos.Filename, v.Pos.Line, v.Pos.Column, v.Message)
		if *frames {
			if frame := blockcheck.FormatFrame(sourceFor(sources, v.Pos.Filename), v.Pos); frame != "" {
				fmt.Println(frame)
			}
		}
	}
	return fmt.Errorf("capture check found %d issue(s)", len(violations))
}

func runCheck(patterns []string, strict bool) ([]blockcheck.Violation, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
			packages.NeedImports | packages.NeedDeps | packages.NeedTypes |
			packages.NeedSyntax | packages.NeedTypesInfo,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, errors.New("blockcap: packages contained errors")
	}

	checker := blockcheck.NewChecker(blockcheck.Config{Strict: strict})
	var violations []blockcheck.Violation
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			violations = append(violations, checker.CheckFile(pkg.Fset, pkg.TypesInfo, file)...)
		}
	}
	blockcheck.Sort(violations)
	return violations, nil
}

func writeReport(path string, strict bool, violations []blockcheck.Violation) error {
	data, err := json.MarshalIndent(buildReport(strict, violations), "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func buildReport(strict bool, violations []blockcheck.Violation) report {
	findings := make([]finding, len(violations))
	for i, v := range violations {
		findings[i] = finding{
			Kind:    v.Kind.String(),
			Ident:   v.Ident,
			File:    v.Pos.Filename,
			Line:    v.Pos.Line,
			Column:  v.Pos.Column,
			Message: v.Message,
		}
	}
	return report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Strict:      strict,
		Findings:    findings,
	}
}

// sourceFor memoizes file reads for frame rendering; unreadable files render
// no frame.
func sourceFor(cache map[string]string, path string) string {
	if src, ok := cache[path]; ok {
		return src
	}
	data, err := os.ReadFile(path)
	if err != nil {
		cache[path] = ""
		return ""
	}
	cache[path] = string(data)
	return cache[path]
}
