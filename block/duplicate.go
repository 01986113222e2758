package block

import (
	"errors"
	"fmt"
	"maps"
)

// Duplicator produces an independent copy of an environment value. How deep
// the independence goes is a property of the instance, not of this protocol:
// a shallow duplicator yields blocks that still share interior references.
type Duplicator[E any] interface {
	Duplicate(env E) E
}

// DuplicatorFunc adapts a plain function into a Duplicator.
type DuplicatorFunc[E any] func(E) E

func (f DuplicatorFunc[E]) Duplicate(env E) E {
	return f(env)
}

// Duplicate returns a second, independent owner of the block: the same
// verified body rebound to a copy of the environment made by dup. The body is
// never re-verified. A no-environment block is unconditionally duplicable and
// the capability goes unused; a with-environment block whose environment is
// not of type E fails with ErrEnvironmentMismatch.
func Duplicate[T, E, R any](b *Block[T, R], dup Duplicator[E]) (*Block[T, R], error) {
	switch body := b.body.(type) {
	case noEnvBody[T, R]:
		return &Block[T, R]{body: body}, nil
	case withEnvBody[T, E, R]:
		if dup == nil {
			return nil, errors.New("block: duplicating an environment-carrying block requires a duplicator")
		}
		return &Block[T, R]{body: body.rebind(dup.Duplicate(body.env))}, nil
	default:
		return nil, fmt.Errorf("%w: block environment is not of the duplicator's type", ErrEnvironmentMismatch)
	}
}

// DuplicateNoEnv copies a block that carries no environment. There is nothing
// to copy, so the result is behaviorally identical to the original.
func DuplicateNoEnv[T, R any](b *Block[T, R]) (*Block[T, R], error) {
	body, ok := b.body.(noEnvBody[T, R])
	if !ok {
		return nil, fmt.Errorf("%w: block carries an environment; duplicate it with that type's duplicator", ErrEnvironmentMismatch)
	}
	return &Block[T, R]{body: body}, nil
}

// ValueDuplicator copies by plain assignment. Suitable for environment types
// without reference fields.
func ValueDuplicator[E any]() Duplicator[E] {
	return DuplicatorFunc[E](func(env E) E {
		return env
	})
}

// MapDuplicator copies one map level; values are assigned, not cloned.
func MapDuplicator[K comparable, V any]() Duplicator[map[K]V] {
	return DuplicatorFunc[map[K]V](func(env map[K]V) map[K]V {
		if env == nil {
			return nil
		}
		out := make(map[K]V, len(env))
		maps.Copy(out, env)
		return out
	})
}

// SliceDuplicator copies one slice level; elements are assigned, not cloned.
func SliceDuplicator[E any]() Duplicator[[]E] {
	return DuplicatorFunc[[]E](func(env []E) []E {
		if env == nil {
			return nil
		}
		out := make([]E, len(env))
		copy(out, env)
		return out
	})
}
