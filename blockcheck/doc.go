// Package blockcheck implements the definition-time capture check behind the
// blockcap block abstraction. It inspects every call site of
// block.CheckNoEnv and block.CheckWithEnv in a type-checked package and
// verifies that the argument is a function literal whose free identifiers all
// resolve either inside the literal itself or to globally addressable,
// package-level singletons. Anything else is a disallowed capture: the value
// must be threaded through the explicit environment parameter instead.
//
// The check runs once per build, over each literal's syntax tree; it is never
// repeated per block instance or per application. Running it before a build
// is accepted — via the Analyzer under go vet, or the blockcap CLI — is what
// makes the verified-body tokens trustworthy: token types are unforgeable in
// the type system, and this pass guarantees the call sites that mint them.
//
// Syntax shapes the free-identifier walker does not model are skipped, on the
// view that failing a build over an unrelated analysis gap would reject
// legitimate code. Strict mode reverses that choice and reports every
// unmodeled shape.
package blockcheck
