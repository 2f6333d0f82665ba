package host

import "github.com/lixenwraith/drag-match/render"

// Client message types
const (
	MsgStart  = "start"
	MsgPause  = "pause"
	MsgResume = "resume"
	MsgExit   = "exit"
	MsgDown   = "down"
	MsgMove   = "move"
	MsgUp     = "up"
)

// Server message types
const (
	MsgFrame  = "frame"
	MsgEvent  = "event"
	MsgResult = "result"
)

// ClientMessage is a command from the browser
// X and Y are logical coordinates; Level applies to start only
type ClientMessage struct {
	Type  string  `json:"type"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Level *int    `json:"level,omitempty"`
}

// FrameMessage carries one snapshot
type FrameMessage struct {
	Type  string        `json:"type"`
	Frame *render.Frame `json:"frame"`
}

// EventMessage forwards a queued game event
type EventMessage struct {
	Type    string `json:"type"`
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// ResultMessage answers a command; move is never answered
type ResultMessage struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	OK      bool   `json:"ok"`
	Outcome string `json:"outcome,omitempty"`
	Error   string `json:"error,omitempty"`
}
