package fsm

import (
	"time"

	"github.com/lixenwraith/drag-match/event"
)

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// Machine is the generic Hierarchical Finite State Machine runtime
// T is the context type passed to actions and guards (e.g., *game.Game)
type Machine[T any] struct {
	// Graph Data (Immutable after CompilePaths)
	nodes map[StateID]*Node[T]

	// Configuration
	InitialStateID StateID // Stored during Init for Reset

	// Runtime State
	activeStateID StateID       // The current leaf node
	timeInState   time.Duration // Time elapsed in current state
	activePath    []StateID     // Stack of active states (Root -> Child -> Leaf)

	// OnTransition observes every completed leaf change
	OnTransition func(ctx T, from, to StateID)
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Pre-calculated path from Root to this node for LCA lookup
	Path []StateID

	// Lifecycle Actions
	OnEnter  []ActionFunc[T]
	OnUpdate []ActionFunc[T]
	OnExit   []ActionFunc[T]

	// Transitions sorted by evaluation priority
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType // EventNone = Tick (auto-transition)
	Guard    GuardFunc[T]    // nil = Always true
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T)
