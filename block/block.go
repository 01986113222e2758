package block

// Block is a closure taking T and producing R, carrying at most one explicit
// environment value. The body and environment never change after
// construction, so Apply is deterministic for a given input.
//
// Go generics are invariant, so the function-subtyping variance of the
// original contract (contravariant in T, covariant in R) is documentation
// here rather than something the type system expresses.
type Block[T, R any] struct {
	body bodyVariant[T, R]
}

// bodyVariant is the two-variant sum behind a Block: a body bound to an
// environment value, or a body with none.
type bodyVariant[T, R any] interface {
	call(x T) R
	environment() (any, error)
}

type noEnvBody[T, R any] struct {
	fn func(T) R
}

func (b noEnvBody[T, R]) call(x T) R {
	return b.fn(x)
}

func (b noEnvBody[T, R]) environment() (any, error) {
	return nil, ErrNoEnvironment
}

type withEnvBody[T, E, R any] struct {
	fn  func(T) func(E) R
	env E
}

func (b withEnvBody[T, E, R]) call(x T) R {
	return b.fn(x)(b.env)
}

func (b withEnvBody[T, E, R]) environment() (any, error) {
	return b.env, nil
}

// invokeWith applies the body to x under an explicit environment, bypassing
// the bound one.
func (b withEnvBody[T, E, R]) invokeWith(x T, env E) R {
	return b.fn(x)(env)
}

// rebind pairs the already-verified body with a new environment. This is the
// seam duplication goes through; the body is never re-verified.
func (b withEnvBody[T, E, R]) rebind(env E) withEnvBody[T, E, R] {
	return withEnvBody[T, E, R]{fn: b.fn, env: env}
}

// Apply invokes the block's body on x.
func (b *Block[T, R]) Apply(x T) R {
	return b.body.call(x)
}

// HasEnvironment reports which variant the block carries.
func (b *Block[T, R]) HasEnvironment() bool {
	_, err := b.body.environment()
	return err == nil
}

// environment is visible to the builder and duplication machinery only.
// It fails with ErrNoEnvironment on the no-environment variant.
func (b *Block[T, R]) environment() (any, error) {
	return b.body.environment()
}

// Of wraps a verified no-environment body into a block. The zero token is
// rejected so every constructible block traces back to a verification.
func Of[T, R any](token VerifiedNoEnv[T, R]) (*Block[T, R], error) {
	if token.body == nil {
		return nil, ErrUnverifiedBody
	}
	return &Block[T, R]{body: noEnvBody[T, R]{fn: token.body}}, nil
}

// OfEnv binds a verified with-environment body to one concrete environment
// value. The block owns env exclusively from here on; use Duplicate to give
// a second owner an independent copy.
func OfEnv[T, E, R any](token VerifiedWithEnv[T, E, R], env E) (*Block[T, R], error) {
	if token.body == nil {
		return nil, ErrUnverifiedBody
	}
	return &Block[T, R]{body: withEnvBody[T, E, R]{fn: token.body, env: env}}, nil
}
