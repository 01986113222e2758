package a

import "blockcap/block"

type limits struct{ Max int }

type settings struct{ Limits limits }

var Settings = settings{Limits: limits{Max: 8}}

func clean() block.VerifiedNoEnv[int, int] {
	return block.CheckNoEnv(func(x int) int { return x + 1 })
}

func singleton() block.VerifiedNoEnv[int, int] {
	return block.CheckNoEnv(func(x int) int { return x + Settings.Limits.Max })
}

func captured() block.VerifiedNoEnv[int, int] {
	localCount := 2
	return block.CheckNoEnv(func(x int) int { return x + localCount }) // want `localCount is declared outside the block body`
}

func notLiteral() block.VerifiedNoEnv[int, int] {
	body := func(x int) int { return x }
	return block.CheckNoEnv(body) // want `must be a function literal`
}

func curried() block.VerifiedWithEnv[int, int, int] {
	return block.CheckWithEnv(func(x int) func(int) int {
		return func(e int) int { return x + e }
	})
}

func notCurried() block.VerifiedWithEnv[int, int, int] {
	inner := func(e int) int { return e }
	return block.CheckWithEnv(func(x int) func(int) int { // want `returning a function literal`
		_ = x
		return inner
	})
}
