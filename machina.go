package machina

import (
	"github.com/petrijr/machina/internal/engine"
	"github.com/petrijr/machina/pkg/api"
)

// Re-export key types so users don't need to dig into pkg/api.

type (
	StateLabel           = api.StateLabel
	Guard                = api.Guard
	GuardFunc            = api.GuardFunc
	Transform            = api.Transform
	Rule                 = api.Rule
	CopyPolicy           = api.CopyPolicy
	StepOutcome          = api.StepOutcome
	Machine              = api.Machine
	Instance             = api.Instance
	Observer             = api.Observer
	NoopObserver         = api.NoopObserver
	LoggingObserver      = api.LoggingObserver
	CompositeObserver    = api.CompositeObserver
	BasicMetrics         = api.BasicMetrics
	BasicMetricsSnapshot = api.BasicMetricsSnapshot

	NoTransitionError          = api.NoTransitionError
	InvalidResultingStateError = api.InvalidResultingStateError
	DanglingStateError         = api.DanglingStateError
	DuplicateTransitionError   = api.DuplicateTransitionError
	InvalidLabelError          = api.InvalidLabelError
)

// Re-export copy policy values for convenience.

const (
	MutateInPlace    = api.MutateInPlace
	CopyOnTransition = api.CopyOnTransition
)

// Re-export the definition-time and run-time error values.

var (
	ErrMissingReady           = api.ErrMissingReady
	ErrMissingTerminal        = api.ErrMissingTerminal
	ErrDegenerateMachine      = api.ErrDegenerateMachine
	ErrEmptyMachine           = api.ErrEmptyMachine
	ErrUnreachableFromReady   = api.ErrUnreachableFromReady
	ErrTransitionFromTerminal = api.ErrTransitionFromTerminal
	ErrTerminalUnreachable    = api.ErrTerminalUnreachable
	ErrSealedBuilder          = api.ErrSealedBuilder
)

// Re-export common observer helpers and error predicates.

var (
	NewLoggingObserver     = api.NewLoggingObserver
	NewCompositeObserver   = api.NewCompositeObserver
	IsNoTransition         = api.IsNoTransition
	IsDanglingState        = api.IsDanglingState
	IsDuplicateTransition  = api.IsDuplicateTransition
	Identity     Transform = api.Identity
)

// Catalog holds validated machines by name; see engine.Catalog.
type Catalog = engine.Catalog

// NewCatalog returns an empty machine catalog. Registration rejects
// duplicate names; lookups and instantiation are goroutine-safe.
func NewCatalog() *Catalog {
	return engine.NewCatalog()
}
