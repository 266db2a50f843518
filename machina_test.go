package machina_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petrijr/machina"
)

func allPositive(v []int) bool {
	for _, n := range v {
		if n <= 0 {
			return false
		}
	}
	return true
}

// newReducer builds the reducer machine used across tests: it repeatedly
// sums the two leading elements of a list of positive integers until a
// single element remains.
func newReducer(t *testing.T) machina.Machine {
	t.Helper()

	reducible := machina.Typed("two or more positive ints", func(v []int) bool {
		return len(v) >= 2 && allPositive(v)
	})
	done := machina.Typed("single element", func(v []int) bool {
		return len(v) == 1
	})
	sumHead := machina.TypedTransform(func(v []int) []int {
		out := make([]int, 0, len(v)-1)
		out = append(out, v[0]+v[1])
		return append(out, v[2:]...)
	})

	m, err := machina.Define("reducer").
		Ready("READY").
		Terminal("TERM").
		Transition("READY", "REDUCE", reducible).
		TransitionWith("REDUCE", "REDUCE", reducible, sumHead).
		Transition("REDUCE", "TERM", done).
		Build()
	require.NoError(t, err)
	return m
}

func TestReducer_LabelAndDataSequence(t *testing.T) {
	t.Parallel()

	machine := newReducer(t)
	inst := machine.Instantiate([]int{1, 2, 3})

	wantLabels := []machina.StateLabel{"REDUCE", "REDUCE", "REDUCE", "TERM"}
	wantData := [][]int{{1, 2, 3}, {3, 3}, {6}, {6}}

	for i := range wantLabels {
		out, err := inst.Step()
		require.NoError(t, err, "step %d", i+1)
		require.Equal(t, wantLabels[i], out.Label, "label after step %d", i+1)
		require.Equal(t, wantData[i], out.Data, "data after step %d", i+1)
	}

	require.True(t, inst.Halted())
	require.Equal(t, []int{6}, inst.Data())
}

func TestReducer_RejectsNegativeElement(t *testing.T) {
	t.Parallel()

	machine := newReducer(t)
	inst := machine.Instantiate([]int{1, 2, -5})

	_, err := inst.Step()
	require.Error(t, err)

	state, ok := machina.IsNoTransition(err)
	require.True(t, ok, "expected a no-transition failure, got %v", err)
	require.Equal(t, machina.StateLabel("READY"), state)

	var nt *machina.NoTransitionError
	require.ErrorAs(t, err, &nt)
	require.Equal(t, []int{1, 2, -5}, nt.Data)
	require.NotEmpty(t, nt.Reasons, "rejection reasons should name the failing guard")

	// The instance is unusable afterward; further steps repeat the error.
	_, err2 := inst.Step()
	require.ErrorAs(t, err2, &nt)
	require.Equal(t, machina.StateLabel("READY"), inst.Current())
}

func TestReducer_Determinism(t *testing.T) {
	t.Parallel()

	machine := newReducer(t)

	type pair struct {
		label machina.StateLabel
		data  string
	}

	run := func() []pair {
		inst := machine.Instantiate([]int{2, 4, 8, 16})
		var seq []pair
		for !inst.Halted() {
			out, err := inst.Step()
			require.NoError(t, err)
			seq = append(seq, pair{label: out.Label, data: fmt.Sprintf("%v", out.Data)})
		}
		return seq
	}

	first := run()
	for i := 0; i < 4; i++ {
		require.Equal(t, first, run(), "run %d diverged", i+2)
	}
}

func TestStepAfterHaltIsIdempotent(t *testing.T) {
	t.Parallel()

	var transforms int
	m, err := machina.Define("one-shot").
		Ready("READY").
		Terminal("TERM").
		TransitionWith("READY", "TERM", nil, func(data any) any {
			transforms++
			return data
		}).
		Build()
	require.NoError(t, err)

	inst := m.Instantiate("payload")

	out, err := inst.Step()
	require.NoError(t, err)
	require.True(t, out.Halted)
	require.Equal(t, 1, transforms)

	for i := 0; i < 3; i++ {
		again, err := inst.Step()
		require.NoError(t, err)
		require.True(t, again.Halted)
		require.Equal(t, machina.StateLabel("TERM"), again.Label)
		require.Equal(t, "payload", again.Data)
	}
	require.Equal(t, 1, transforms, "no transform may run after halt")
}

// TestTieBreak verifies that when two transitions from the same state both
// match, the one declared earlier is always taken, for both declaration
// orders.
func TestTieBreak(t *testing.T) {
	t.Parallel()

	build := func(firstTo, secondTo machina.StateLabel) machina.Machine {
		m, err := machina.Define("tiebreak").
			Ready("READY").
			Terminal("TERM").
			Transition("READY", firstTo, machina.Always()).
			Transition("READY", secondTo, machina.Always()).
			Transition("A", "TERM", nil).
			Transition("B", "TERM", nil).
			Build()
		require.NoError(t, err)
		return m
	}

	for _, tc := range []struct {
		first, second machina.StateLabel
	}{
		{"A", "B"},
		{"B", "A"},
	} {
		inst := build(tc.first, tc.second).Instantiate(nil)
		out, err := inst.Step()
		require.NoError(t, err)
		require.Equal(t, tc.first, out.Label, "first declared transition must win")
	}
}

func TestInstancesAreIndependent(t *testing.T) {
	t.Parallel()

	machine := newReducer(t)

	a := machine.Instantiate([]int{1, 2, 3})
	b := machine.Instantiate([]int{5, 5})

	_, err := a.Step()
	require.NoError(t, err)
	_, err = a.Step()
	require.NoError(t, err)

	// b has not moved.
	require.Equal(t, machina.StateLabel("READY"), b.Current())
	require.Equal(t, []int{5, 5}, b.Data())
	require.NotEqual(t, a.ID(), b.ID())
}

func TestCatalog_RegisterAndInstantiate(t *testing.T) {
	t.Parallel()

	cat := machina.NewCatalog()
	machine := newReducer(t)

	require.NoError(t, cat.Register(machine))
	require.Error(t, cat.Register(machine), "duplicate name must be rejected")

	inst, err := cat.Instantiate("reducer", []int{2, 3})
	require.NoError(t, err)
	require.Equal(t, machina.StateLabel("READY"), inst.Current())

	_, err = cat.Instantiate("nope", nil)
	require.Error(t, err)

	require.Equal(t, []string{"reducer"}, cat.Names())
}
