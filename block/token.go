package block

// VerifiedNoEnv admits a body of shape func(T) R into a plain builder. The
// only producer is CheckNoEnv; the struct's unexported field keeps other
// packages from forging one, and the zero value is rejected by every
// constructor that accepts a token.
type VerifiedNoEnv[T, R any] struct {
	body func(T) R
}

// VerifiedWithEnv admits a curried body of shape func(T) func(E) R into a
// typed builder. Only CheckWithEnv produces values of this type.
type VerifiedWithEnv[T, E, R any] struct {
	body func(T) func(E) R
}

// CheckNoEnv marks a body as verified to capture nothing from its defining
// scope. The argument must be a function literal written at the call site;
// the blockcap analysis pass rejects any other argument shape and any literal
// whose free identifiers resolve outside the literal to something other than
// a package-level singleton. Verification is a definition-time cost of the
// pass, never repeated per block or per Apply.
func CheckNoEnv[T, R any](body func(T) R) VerifiedNoEnv[T, R] {
	return VerifiedNoEnv[T, R]{body: body}
}

// CheckWithEnv is CheckNoEnv for bodies that thread an explicit environment.
// The literal must have the curried shape func(T) func(E) R — two nested
// literal levels — so the environment parameter is syntactically explicit.
func CheckWithEnv[T, E, R any](body func(T) func(E) R) VerifiedWithEnv[T, E, R] {
	return VerifiedWithEnv[T, E, R]{body: body}
}
