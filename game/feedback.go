package game

import (
	"github.com/lixenwraith/drag-match/audio"
	"github.com/lixenwraith/drag-match/entity"
	"github.com/lixenwraith/drag-match/event"
	"github.com/lixenwraith/drag-match/parameter"
)

// feedback turns release outcomes into particles, cues and host events
type feedback struct {
	g *Game
}

func (f feedback) Placed(piece *entity.Piece, slot *entity.Slot) {
	s := f.g.session
	c := slot.Center()
	s.Particles.BurstPalette(c.X, c.Y, parameter.SuccessBurstCount, s.Config.Palette.Particles)
	f.g.cue(audio.CueSuccess)
	f.g.events.Emit(event.EventPiecePlaced, &event.PlacementPayload{
		PieceID: piece.ID,
		SlotID:  slot.ID,
		Key:     piece.Key,
		Placed:  s.Store.PlacedCount(),
	})
}

func (f feedback) Rejected(piece *entity.Piece, slot *entity.Slot) {
	f.g.cue(audio.CueError)
	f.g.events.Emit(event.EventPieceRejected, &event.PlacementPayload{
		PieceID: piece.ID,
		SlotID:  slot.ID,
		Key:     piece.Key,
		Placed:  f.g.session.Store.PlacedCount(),
	})
}

func (f feedback) Missed(piece *entity.Piece) {
	f.g.events.Emit(event.EventPieceReturned, &event.PlacementPayload{
		PieceID: piece.ID,
		SlotID:  -1,
		Key:     piece.Key,
		Placed:  f.g.session.Store.PlacedCount(),
	})
}
