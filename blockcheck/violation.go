package blockcheck

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"
)

// ViolationKind classifies a capture-check diagnostic.
type ViolationKind int

const (
	// NotALiteral reports an entry-point argument that is not a function
	// literal of the required shape.
	NotALiteral ViolationKind = iota
	// CaptureViolation reports a free identifier that resolves to a binding
	// in the literal's defining scope with no singleton backing.
	CaptureViolation
	// UnknownShape reports a syntax shape the walker does not model. Emitted
	// in strict mode only.
	UnknownShape
)

func (k ViolationKind) String() string {
	switch k {
	case NotALiteral:
		return "NotALiteral"
	case CaptureViolation:
		return "CaptureViolation"
	case UnknownShape:
		return "UnknownShape"
	default:
		return "Unknown"
	}
}

// Violation is one definition-time diagnostic. Ident is set for capture
// violations only.
type Violation struct {
	Kind    ViolationKind
	Ident   string
	At      token.Pos
	Pos     token.Position
	Message string
}

func notALiteral(fset *token.FileSet, at token.Pos, entry string, kind entryKind) Violation {
	msg := fmt.Sprintf("argument to %s must be a function literal written at the call site", entry)
	if kind == entryWithEnv {
		msg = fmt.Sprintf("argument to %s must be a function literal returning a function literal (param, then environment)", entry)
	}
	return Violation{Kind: NotALiteral, At: at, Pos: fset.Position(at), Message: msg}
}

func capturedIdent(fset *token.FileSet, at token.Pos, name string) Violation {
	return Violation{
		Kind:    CaptureViolation,
		Ident:   name,
		At:      at,
		Pos:     fset.Position(at),
		Message: fmt.Sprintf("%s is declared outside the block body; thread it through the explicit environment parameter", name),
	}
}

func unknownShape(fset *token.FileSet, at token.Pos, shape string) Violation {
	return Violation{
		Kind:    UnknownShape,
		At:      at,
		Pos:     fset.Position(at),
		Message: fmt.Sprintf("block body contains a %s, which the capture check does not model", shape),
	}
}

func sortKey(v Violation) (string, int, int) {
	return v.Pos.Filename, v.Pos.Line, v.Pos.Column
}

// FormatFrame renders a caret frame pointing at pos within source, for
// human-facing diagnostic output. Returns "" when the position does not land
// inside source.
func FormatFrame(source string, pos token.Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineText := lines[pos.Line-1]
	lineRunes := []rune(lineText)

	column := pos.Column
	if column <= 0 {
		column = 1
	}
	if column > len(lineRunes)+1 {
		column = len(lineRunes) + 1
	}

	lineLabel := strconv.Itoa(pos.Line)
	gutterPad := strings.Repeat(" ", len(lineLabel))
	caretPad := strings.Repeat(" ", column-1)

	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s^",
		pos.Line,
		column,
		lineLabel,
		lineText,
		gutterPad,
		caretPad,
	)
}
