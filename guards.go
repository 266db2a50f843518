package machina

import (
	"github.com/petrijr/machina/pkg/api"
)

// Always returns a guard that matches every (label, data) pair.
func Always() Guard {
	return api.Always()
}

// Never returns a guard that matches nothing.
func Never() Guard {
	return api.Never()
}

// LabelIs returns a guard matching iff the current label equals want.
func LabelIs(want StateLabel) Guard {
	return api.LabelIs(want)
}

// Data returns a guard over the data only; the label is ignored. The name
// shows up in mismatch explanations.
func Data(name string, fn func(data any) bool) Guard {
	return api.Data(name, fn)
}

// Typed returns a guard that matches only when the data is of type T and the
// predicate holds.
// Example:
//
//	machina.Typed("has two or more ints", func(v []int) bool { return len(v) >= 2 })
func Typed[T any](name string, fn func(v T) bool) Guard {
	return api.Typed[T](name, fn)
}

// And returns a guard matching iff every child matches.
func And(guards ...Guard) Guard {
	return api.And(guards...)
}

// Or returns a guard matching iff at least one child matches.
func Or(guards ...Guard) Guard {
	return api.Or(guards...)
}

// Not returns a guard inverting child.
func Not(child Guard) Guard {
	return api.Not(child)
}

// TypedTransform wraps a strongly-typed transform into a Transform.
// Example:
//
//	machina.TypedTransform(func(v []int) []int { return v[1:] })
func TypedTransform[T any](fn func(v T) T) Transform {
	return api.TypedTransform[T](fn)
}
