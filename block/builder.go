package block

import (
	"errors"
	"fmt"
)

// Builder produces no-environment blocks from one verified body. It is
// stateless beyond the token and typically lives for the duration of a
// top-level declaration.
type Builder[T, R any] struct {
	token VerifiedNoEnv[T, R]
}

// NewBuilder wraps a verified no-environment body into a builder.
func NewBuilder[T, R any](token VerifiedNoEnv[T, R]) (*Builder[T, R], error) {
	if token.body == nil {
		return nil, ErrUnverifiedBody
	}
	return &Builder[T, R]{token: token}, nil
}

// Build constructs a block from the verified body.
func (b *Builder[T, R]) Build() *Block[T, R] {
	return &Block[T, R]{body: noEnvBody[T, R]{fn: b.token.body}}
}

// CreateBlock is the reconstruction seam used when a block arrives from
// another execution context. A plain builder expects no serialized
// environment; receiving one fails with ErrEnvironmentMismatch.
func (b *Builder[T, R]) CreateBlock(serialized *string) (*Block[T, R], error) {
	if serialized != nil {
		return nil, fmt.Errorf("%w: builder has no environment type but received serialized environment data", ErrEnvironmentMismatch)
	}
	return b.Build(), nil
}

// TypedBuilder produces blocks bound to environment values of type E. The
// deserializer is the external collaborator that owns the persisted text
// encoding of E.
type TypedBuilder[T, E, R any] struct {
	token VerifiedWithEnv[T, E, R]
	dec   Deserializer[E]
}

// NewTypedBuilder wraps a verified with-environment body. The deserializer is
// required even for builders only ever used with Build, so a builder handed
// to the reconstruction seam is always complete.
func NewTypedBuilder[T, E, R any](token VerifiedWithEnv[T, E, R], dec Deserializer[E]) (*TypedBuilder[T, E, R], error) {
	if token.body == nil {
		return nil, ErrUnverifiedBody
	}
	if dec == nil {
		return nil, errors.New("block: typed builder requires an environment deserializer")
	}
	return &TypedBuilder[T, E, R]{token: token, dec: dec}, nil
}

// Build binds a concrete environment value.
func (b *TypedBuilder[T, E, R]) Build(env E) *Block[T, R] {
	return &Block[T, R]{body: withEnvBody[T, E, R]{fn: b.token.body, env: env}}
}

// CreateBlock reconstructs a block from persisted environment text. A typed
// builder requires serialized data; its absence fails with
// ErrEnvironmentMismatch, and text that does not decode as E fails with a
// DeserializationError carrying the offending input.
func (b *TypedBuilder[T, E, R]) CreateBlock(serialized *string) (*Block[T, R], error) {
	if serialized == nil {
		return nil, fmt.Errorf("%w: builder expects serialized environment data", ErrEnvironmentMismatch)
	}
	env, err := b.dec.Deserialize(*serialized)
	if err != nil {
		return nil, &DeserializationError{Text: *serialized, Err: err}
	}
	return b.Build(env), nil
}
