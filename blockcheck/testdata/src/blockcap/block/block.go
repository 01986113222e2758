// Test fixture mirroring the verification entry points of blockcap/block.
package block

type VerifiedNoEnv[T, R any] struct {
	body func(T) R
}

type VerifiedWithEnv[T, E, R any] struct {
	body func(T) func(E) R
}

func CheckNoEnv[T, R any](body func(T) R) VerifiedNoEnv[T, R] {
	return VerifiedNoEnv[T, R]{body: body}
}

func CheckWithEnv[T, E, R any](body func(T) func(E) R) VerifiedWithEnv[T, E, R] {
	return VerifiedWithEnv[T, E, R]{body: body}
}
