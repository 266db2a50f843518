package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petrijr/machina/pkg/api"
)

func compile(t *testing.T, cfg Config) api.Machine {
	t.Helper()
	m, err := Compile(cfg)
	require.NoError(t, err)
	return m
}

func TestStep_FirstMatchingGuardWins(t *testing.T) {
	t.Parallel()

	var taken []api.StateLabel
	mark := func(label api.StateLabel) api.Transform {
		return func(data any) any {
			taken = append(taken, label)
			return data
		}
	}

	cfg := baseConfig(
		api.Rule{From: "READY", To: "A", Guard: api.Always(), Transform: mark("A")},
		api.Rule{From: "READY", To: "B", Guard: api.Always(), Transform: mark("B")},
		rule("A", "TERM"),
		rule("B", "TERM"),
	)
	cfg.PostCheck = true

	inst := compile(t, cfg).Instantiate(nil)
	out, err := inst.Step()
	require.NoError(t, err)
	require.Equal(t, api.StateLabel("A"), out.Label)
	require.Equal(t, []api.StateLabel{"A"}, taken, "only the winning rule's transform may run")
}

func TestStep_NoTransitionMatches(t *testing.T) {
	t.Parallel()

	cfg := baseConfig(
		api.Rule{From: "READY", To: "TERM", Guard: api.Never(), Transform: api.Identity},
	)

	inst := compile(t, cfg).Instantiate("payload")
	_, err := inst.Step()

	var nt *api.NoTransitionError
	require.ErrorAs(t, err, &nt)
	require.Equal(t, api.StateLabel("READY"), nt.State)
	require.Equal(t, "payload", nt.Data)
	require.Len(t, nt.Reasons, 1)
	require.Contains(t, err.Error(), "READY")
	require.Contains(t, err.Error(), "payload")
}

func TestStep_PostCheckRejectsInconsistentTransform(t *testing.T) {
	t.Parallel()

	// The transform produces -1, which no guard leaving COUNT accepts.
	positive := api.Typed("positive", func(v int) bool { return v > 0 })
	zero := api.Typed("zero", func(v int) bool { return v == 0 })
	breakData := func(any) any { return -1 }

	cfg := baseConfig(
		api.Rule{From: "READY", To: "COUNT", Guard: positive, Transform: breakData},
		api.Rule{From: "COUNT", To: "COUNT", Guard: positive, Transform: api.Identity},
		api.Rule{From: "COUNT", To: "TERM", Guard: zero, Transform: api.Identity},
	)
	cfg.PostCheck = true

	inst := compile(t, cfg).Instantiate(5)
	_, err := inst.Step()

	var irs *api.InvalidResultingStateError
	require.ErrorAs(t, err, &irs)
	require.Equal(t, api.StateLabel("READY"), irs.From)
	require.Equal(t, api.StateLabel("COUNT"), irs.To)
	require.Equal(t, 5, irs.Prior)
	require.Equal(t, -1, irs.New)
	require.NotEmpty(t, irs.Reason)

	// Still parked at READY, and permanently broken.
	require.Equal(t, api.StateLabel("READY"), inst.Current())
	_, err2 := inst.Step()
	require.ErrorAs(t, err2, &irs)
}

func TestStep_PostCheckDisabledDefersFailure(t *testing.T) {
	t.Parallel()

	positive := api.Typed("positive", func(v int) bool { return v > 0 })
	zero := api.Typed("zero", func(v int) bool { return v == 0 })
	breakData := func(any) any { return -1 }

	cfg := baseConfig(
		api.Rule{From: "READY", To: "COUNT", Guard: positive, Transform: breakData},
		api.Rule{From: "COUNT", To: "COUNT", Guard: positive, Transform: api.Identity},
		api.Rule{From: "COUNT", To: "TERM", Guard: zero, Transform: api.Identity},
	)
	cfg.PostCheck = false

	inst := compile(t, cfg).Instantiate(5)

	// The inconsistent data sails through...
	out, err := inst.Step()
	require.NoError(t, err)
	require.Equal(t, api.StateLabel("COUNT"), out.Label)

	// ...and the machine dead-ends on the next step instead.
	_, err = inst.Step()
	var nt *api.NoTransitionError
	require.ErrorAs(t, err, &nt)
	require.Equal(t, api.StateLabel("COUNT"), nt.State)
}

func TestStep_PostCheckSkippedForTerminal(t *testing.T) {
	t.Parallel()

	// The transform output need not satisfy anything when entering the
	// terminal state; terminal is trivially valid.
	cfg := baseConfig(
		api.Rule{From: "READY", To: "TERM", Guard: api.Always(), Transform: func(any) any { return "whatever" }},
	)
	cfg.PostCheck = true

	inst := compile(t, cfg).Instantiate(1)
	out, err := inst.Step()
	require.NoError(t, err)
	require.True(t, out.Halted)
	require.Equal(t, "whatever", out.Data)
}

func TestStep_CopyOnTransitionIsolatesCallerValue(t *testing.T) {
	t.Parallel()

	mutate := func(data any) any {
		m := data.(map[string]any)
		m["touched"] = true
		return m
	}

	cfg := baseConfig(
		api.Rule{From: "READY", To: "TERM", Guard: api.Always(), Transform: mutate},
	)
	cfg.CopyPolicy = api.CopyOnTransition

	original := map[string]any{"touched": false}
	inst := compile(t, cfg).Instantiate(original)

	out, err := inst.Step()
	require.NoError(t, err)

	require.Equal(t, map[string]any{"touched": false}, original,
		"the caller's original value must not be mutated under CopyOnTransition")
	require.Equal(t, true, out.Data.(map[string]any)["touched"])
}

func TestStep_MutateInPlaceAliasesCallerValue(t *testing.T) {
	t.Parallel()

	mutate := func(data any) any {
		m := data.(map[string]any)
		m["touched"] = true
		return m
	}

	cfg := baseConfig(
		api.Rule{From: "READY", To: "TERM", Guard: api.Always(), Transform: mutate},
	)

	original := map[string]any{"touched": false}
	inst := compile(t, cfg).Instantiate(original)

	_, err := inst.Step()
	require.NoError(t, err)
	require.Equal(t, true, original["touched"],
		"in-place mutation must be visible to the caller without re-reading")
}

func TestCompile_DefaultsNilGuardAndTransform(t *testing.T) {
	t.Parallel()

	cfg := baseConfig(api.Rule{From: "READY", To: "TERM"})

	inst := compile(t, cfg).Instantiate(42)
	out, err := inst.Step()
	require.NoError(t, err)
	require.True(t, out.Halted)
	require.Equal(t, 42, out.Data)
}

func TestCompile_FrozenAgainstLaterRuleMutation(t *testing.T) {
	t.Parallel()

	rules := []api.Rule{
		rule("READY", "TERM"),
	}
	cfg := baseConfig(rules...)
	m := compile(t, cfg)

	// Mutating the caller's slice after Compile must not affect the machine.
	rules[0] = rule("READY", "ELSEWHERE")

	inst := m.Instantiate(nil)
	out, err := inst.Step()
	require.NoError(t, err)
	require.Equal(t, api.StateLabel("TERM"), out.Label)
}

func TestMachine_StatesInFirstMentionOrder(t *testing.T) {
	t.Parallel()

	m := compile(t, baseConfig(
		rule("READY", "A"),
		rule("A", "B"),
		rule("B", "TERM"),
	))
	require.Equal(t,
		[]api.StateLabel{"READY", "A", "B", "TERM"},
		m.States())
}

type recordingObserver struct {
	api.NoopObserver
	transitions []string
	halts       int
	failures    []error
}

func (r *recordingObserver) OnTransition(inst api.Instance, from, to api.StateLabel, dataBefore any) {
	r.transitions = append(r.transitions, string(from)+"->"+string(to))
}

func (r *recordingObserver) OnHalt(inst api.Instance) { r.halts++ }

func (r *recordingObserver) OnStepFailed(inst api.Instance, err error) {
	r.failures = append(r.failures, err)
}

func TestObserverCallbacks(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}
	cfg := baseConfig(
		rule("READY", "A"),
		rule("A", "TERM"),
	)
	cfg.Observer = obs

	inst := compile(t, cfg).Instantiate(nil)
	_, err := inst.Step()
	require.NoError(t, err)
	_, err = inst.Step()
	require.NoError(t, err)

	require.Equal(t, []string{"READY->A", "A->TERM"}, obs.transitions)
	require.Equal(t, 1, obs.halts)
	require.Empty(t, obs.failures)

	// Stepping after halt fires nothing further.
	_, err = inst.Step()
	require.NoError(t, err)
	require.Equal(t, 1, obs.halts)
	require.Len(t, obs.transitions, 2)
}

func TestObserver_StepFailure(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}
	cfg := baseConfig(
		api.Rule{From: "READY", To: "TERM", Guard: api.Never()},
	)
	cfg.Observer = obs

	inst := compile(t, cfg).Instantiate(nil)
	_, err := inst.Step()
	require.Error(t, err)
	require.Len(t, obs.failures, 1)
	require.Empty(t, obs.transitions)
}
