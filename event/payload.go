package event

// CompletedPayload carries the award for a cleared level
type CompletedPayload struct {
	Level int `json:"level"`
	Award int `json:"award"`
	Score int `json:"score"`
}

// PhaseChangedPayload carries the phase names around a transition
type PhaseChangedPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// LevelStartedPayload describes the level just generated
type LevelStartedPayload struct {
	Level     int    `json:"level"`
	Name      string `json:"name"`
	SessionID string `json:"session_id"`
	Slots     int    `json:"slots"`
	Pieces    int    `json:"pieces"`
}

// PlacementPayload describes a release outcome
// SlotID is -1 when no slot was hit
type PlacementPayload struct {
	PieceID int    `json:"piece_id"`
	SlotID  int    `json:"slot_id"`
	Key     string `json:"key"`
	Placed  int    `json:"placed"`
}

// CuePayload names an audio cue or sequence
type CuePayload struct {
	Name string `json:"name"`
}
