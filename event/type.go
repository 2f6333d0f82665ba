package event

// EventType represents the type of game event
type EventType int

const (
	// EventNone is the zero value; FSM tick transitions use it as "no trigger"
	EventNone EventType = iota

	// === Phase Control ===

	// EventStart begins play from the menu
	// Trigger: Host | Consumer: phase FSM | Payload: nil
	EventStart

	// EventPause freezes a running level
	// Trigger: Host | Consumer: phase FSM | Payload: nil
	EventPause

	// EventResume continues a paused level
	// Trigger: Host | Consumer: phase FSM | Payload: nil
	EventResume

	// EventExit returns to the menu from any state
	// Trigger: Host | Consumer: phase FSM | Payload: nil
	EventExit

	// EventPuzzleCompleted signals every slot is occupied
	// Trigger: Game tick | Consumer: phase FSM, hosts | Payload: *CompletedPayload
	EventPuzzleCompleted

	// EventAdvance moves from the celebration to the next level
	// Trigger: celebration timer | Consumer: phase FSM | Payload: nil
	EventAdvance

	// EventPhaseChanged reports a phase transition
	// Trigger: phase FSM | Consumer: hosts | Payload: *PhaseChangedPayload
	EventPhaseChanged

	// EventLevelStarted reports a freshly generated level
	// Trigger: Game | Consumer: hosts | Payload: *LevelStartedPayload
	EventLevelStarted

	// === Placement ===

	// EventPiecePlaced reports a correct placement
	// Trigger: MatchEngine | Consumer: hosts | Payload: *PlacementPayload
	EventPiecePlaced

	// EventPieceRejected reports a wrong-key release over a slot
	// Trigger: MatchEngine | Consumer: hosts | Payload: *PlacementPayload
	EventPieceRejected

	// EventPieceReturned reports a release outside every free slot
	// Trigger: MatchEngine | Consumer: hosts | Payload: *PlacementPayload
	EventPieceReturned

	// === Audio ===

	// EventCue reports a tone trigger so remote hosts can play it
	// Trigger: Game | Consumer: hosts | Payload: *CuePayload
	EventCue
)

var eventNames = map[EventType]string{
	EventNone:            "none",
	EventStart:           "start",
	EventPause:           "pause",
	EventResume:          "resume",
	EventExit:            "exit",
	EventPuzzleCompleted: "puzzle_completed",
	EventAdvance:         "advance",
	EventPhaseChanged:    "phase_changed",
	EventLevelStarted:    "level_started",
	EventPiecePlaced:     "piece_placed",
	EventPieceRejected:   "piece_rejected",
	EventPieceReturned:   "piece_returned",
	EventCue:             "cue",
}

// String returns the wire name of the event type
func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "unknown"
}

// GameEvent is a single queued event
type GameEvent struct {
	Type    EventType
	Payload any
}
