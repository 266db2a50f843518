package api

import (
	"fmt"
	"strings"
)

// GuardFunc adapts a plain predicate into a Guard. The name is used in
// Explain output, so pick something a human can act on.
type GuardFunc struct {
	Name string
	Fn   func(label StateLabel, data any) bool
}

func (g GuardFunc) Matches(label StateLabel, data any) bool {
	return g.Fn(label, data)
}

func (g GuardFunc) Explain(label StateLabel, data any) string {
	name := g.Name
	if name == "" {
		name = "guard"
	}
	return fmt.Sprintf("%s rejected (%s, %s)", name, label, Render(data))
}

// Always returns a guard that matches every (label, data) pair. It is the
// guard used for unconditional transitions.
func Always() Guard {
	return alwaysGuard{}
}

type alwaysGuard struct{}

func (alwaysGuard) Matches(StateLabel, any) bool { return true }
func (alwaysGuard) Explain(StateLabel, any) string {
	return "always-guard cannot reject"
}

// Never returns a guard that matches nothing. Mostly useful in tests and as
// a placeholder while sketching a machine.
func Never() Guard {
	return neverGuard{}
}

type neverGuard struct{}

func (neverGuard) Matches(StateLabel, any) bool { return false }
func (neverGuard) Explain(label StateLabel, data any) string {
	return fmt.Sprintf("never-guard rejected (%s, %s)", label, Render(data))
}

// LabelIs returns a guard that matches iff the current label equals want,
// ignoring the data.
func LabelIs(want StateLabel) Guard {
	return labelGuard{want: want}
}

type labelGuard struct {
	want StateLabel
}

func (g labelGuard) Matches(label StateLabel, _ any) bool {
	return label == g.want
}

func (g labelGuard) Explain(label StateLabel, _ any) string {
	return fmt.Sprintf("label %s is not %s", label, g.want)
}

// Data returns a guard over the data only. The predicate receives the raw
// data value; the label is ignored.
func Data(name string, fn func(data any) bool) Guard {
	return GuardFunc{
		Name: name,
		Fn:   func(_ StateLabel, data any) bool { return fn(data) },
	}
}

// Typed returns a guard that matches only when the data is of type T and the
// predicate holds. A type mismatch is reported in Explain rather than
// panicking, keeping guards total.
func Typed[T any](name string, fn func(v T) bool) Guard {
	return typedGuard[T]{name: name, fn: fn}
}

type typedGuard[T any] struct {
	name string
	fn   func(v T) bool
}

func (g typedGuard[T]) Matches(_ StateLabel, data any) bool {
	v, ok := data.(T)
	return ok && g.fn(v)
}

func (g typedGuard[T]) Explain(label StateLabel, data any) string {
	var zero T
	if _, ok := data.(T); !ok {
		return fmt.Sprintf("%s expects data of type %T, got %T", g.name, zero, data)
	}
	return fmt.Sprintf("%s rejected (%s, %s)", g.name, label, Render(data))
}

// And returns a guard matching iff every child guard matches. Explain
// reports the first child that rejected.
func And(guards ...Guard) Guard {
	return andGuard{guards: guards}
}

type andGuard struct {
	guards []Guard
}

func (g andGuard) Matches(label StateLabel, data any) bool {
	for _, c := range g.guards {
		if !c.Matches(label, data) {
			return false
		}
	}
	return true
}

func (g andGuard) Explain(label StateLabel, data any) string {
	for _, c := range g.guards {
		if !c.Matches(label, data) {
			return c.Explain(label, data)
		}
	}
	return "all conjuncts matched"
}

// Or returns a guard matching iff at least one child guard matches. Explain
// joins every child's rejection reason.
func Or(guards ...Guard) Guard {
	return orGuard{guards: guards}
}

type orGuard struct {
	guards []Guard
}

func (g orGuard) Matches(label StateLabel, data any) bool {
	for _, c := range g.guards {
		if c.Matches(label, data) {
			return true
		}
	}
	return false
}

func (g orGuard) Explain(label StateLabel, data any) string {
	reasons := make([]string, 0, len(g.guards))
	for _, c := range g.guards {
		reasons = append(reasons, c.Explain(label, data))
	}
	if len(reasons) == 0 {
		return "empty disjunction matches nothing"
	}
	return strings.Join(reasons, "; ")
}

// Not returns a guard that inverts child.
func Not(child Guard) Guard {
	return notGuard{child: child}
}

type notGuard struct {
	child Guard
}

func (g notGuard) Matches(label StateLabel, data any) bool {
	return !g.child.Matches(label, data)
}

func (g notGuard) Explain(label StateLabel, data any) string {
	return fmt.Sprintf("negated guard matched (%s, %s)", label, Render(data))
}

// TypedTransform wraps a strongly-typed transform into a Transform.
// If the data is not of type T the value is passed through unchanged; the
// destination's guards will reject it with a type-mismatch explanation.
func TypedTransform[T any](fn func(v T) T) Transform {
	return func(data any) any {
		v, ok := data.(T)
		if !ok {
			return data
		}
		return fn(v)
	}
}
