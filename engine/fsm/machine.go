package fsm

import (
	"fmt"
	"time"

	"github.com/lixenwraith/drag-match/event"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes: make(map[StateID]*Node[T]),
	}
}

// Init enters the initial state, running OnEnter from Root down
func (m *Machine[T]) Init(ctx T, initialID StateID) error {
	node, ok := m.nodes[initialID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", initialID)
	}
	if node.Path == nil {
		return fmt.Errorf("state %q has no compiled path, call CompilePaths first", node.Name)
	}

	m.InitialStateID = initialID
	m.activeStateID = initialID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		for _, action := range m.nodes[id].OnEnter {
			action(ctx)
		}
	}
	return nil
}

// Update advances the FSM by delta time, handling tick transitions (EventNone) and per-tick actions
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeStateID == StateNone {
		return
	}

	m.timeInState += dt

	leaf := m.nodes[m.activeStateID]
	for _, action := range leaf.OnUpdate {
		action(ctx)
	}

	m.fire(ctx, event.EventNone)
}

// HandleEvent routes an external event, bubbling Leaf -> Parent -> Root
// Returns true if the event triggered a transition
func (m *Machine[T]) HandleEvent(ctx T, ev event.EventType) bool {
	if m.activeStateID == StateNone || ev == event.EventNone {
		return false
	}
	return m.fire(ctx, ev)
}

func (m *Machine[T]) fire(ctx T, ev event.EventType) bool {
	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event != ev {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx) {
				return m.transition(ctx, trans.TargetID)
			}
		}
		currID = node.ParentID
	}
	return false
}

// transition performs the state change through the lowest common ancestor
// A transition to the active state is a no-op
func (m *Machine[T]) transition(ctx T, targetID StateID) bool {
	if m.activeStateID == targetID {
		return false
	}

	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: Attempted transition to unknown state ID %d", targetID))
	}

	// Find LCA
	lcaIndex := -1
	currentPath := m.activePath
	targetPath := targetNode.Path

	minLen := min(len(currentPath), len(targetPath))
	for i := 0; i < minLen; i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}

	// Exit Phase: walk UP from current leaf to LCA (exclusive)
	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		for _, action := range m.nodes[currentPath[i]].OnExit {
			action(ctx)
		}
	}

	from := m.activeStateID
	m.activeStateID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)

	// Enter Phase: walk DOWN from LCA (exclusive) to target leaf
	// State is already committed so actions observe the new leaf
	for i := lcaIndex + 1; i < len(targetPath); i++ {
		for _, action := range m.nodes[targetPath[i]].OnEnter {
			action(ctx)
		}
	}

	if m.OnTransition != nil {
		m.OnTransition(ctx, from, targetID)
	}
	return true
}

// Reset exits the active path and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	for i := len(m.activePath) - 1; i >= 0; i-- {
		for _, action := range m.nodes[m.activePath[i]].OnExit {
			action(ctx)
		}
	}
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	return m.Init(ctx, m.InitialStateID)
}

// ActiveStateID returns the current leaf
func (m *Machine[T]) ActiveStateID() StateID {
	return m.activeStateID
}

// ActiveStateName returns the current leaf name
func (m *Machine[T]) ActiveStateName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// StateName returns the name of any registered state
func (m *Machine[T]) StateName(id StateID) string {
	if node, ok := m.nodes[id]; ok {
		return node.Name
	}
	return ""
}

// TimeInState returns time spent in the current leaf
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// IsIn reports whether id is the active leaf or one of its ancestors
func (m *Machine[T]) IsIn(id StateID) bool {
	for _, s := range m.activePath {
		if s == id {
			return true
		}
	}
	return false
}
