package main

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/drag-match/audio"
	"github.com/lixenwraith/drag-match/config"
	"github.com/lixenwraith/drag-match/core"
	"github.com/lixenwraith/drag-match/event"
	"github.com/lixenwraith/drag-match/game"
	"github.com/lixenwraith/drag-match/render"
)

// terminalHost maps tcell input onto a Game and draws its frames
type terminalHost struct {
	cfg    *config.Config
	screen tcell.Screen
	term   *render.Terminal
	game   *game.Game
	runner *game.Runner

	frames  chan *render.Frame
	last    *render.Frame
	pressed bool // Mouse button 1 is down
}

func newTerminalHost(cfg *config.Config, screen tcell.Screen, g *game.Game) *terminalHost {
	h := &terminalHost{
		cfg:    cfg,
		screen: screen,
		term:   render.NewTerminal(screen),
		game:   g,
		frames: make(chan *render.Frame, 1),
	}
	h.runner = game.NewRunner(g, nil, cfg.FrameInterval(), h.offer)
	return h
}

// offer keeps only the newest undrawn frame
func (h *terminalHost) offer(f *render.Frame) {
	for {
		select {
		case h.frames <- f:
			return
		default:
		}
		select {
		case <-h.frames:
		default:
		}
	}
}

// draw renders f and logs queued game events
func (h *terminalHost) draw(f *render.Frame) {
	h.last = f
	if err := h.term.Draw(f); err != nil {
		log.Printf("render: %v", err)
	}
	h.game.Events().Drain(func(ev event.GameEvent) {
		log.Printf("event %s %+v", ev.Type, ev.Payload)
	})
}

// handle applies one input event, returns false to quit
func (h *terminalHost) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if !h.handleKey(ev) {
			return false
		}
		h.runner.Sync()

	case *tcell.EventMouse:
		h.handleMouse(ev)

	case *tcell.EventResize:
		h.screen.Sync()
		if h.last != nil {
			h.draw(h.last)
		}
	}
	return true
}

func (h *terminalHost) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		if err := h.game.StartAt(h.cfg.Level); err != nil {
			log.Printf("start failed: %v", err)
		}
	case tcell.KeyEscape:
		h.pressed = false
		h.game.Exit()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case 'p', 'P', ' ':
			h.pressed = false
			h.game.TogglePause()
		case 'm', 'M':
			h.game.ToggleMute()
		}
	}
	return true
}

// handleMouse turns button 1 press, drag, and release into pointer calls
func (h *terminalHost) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	p := h.term.ToLogical(col, row)

	if ev.Buttons()&tcell.Button1 != 0 {
		if !h.pressed {
			h.pressed = true
			h.game.PointerDown(p.X, p.Y)
			return
		}
		h.game.PointerMove(p.X, p.Y)
		return
	}
	if h.pressed {
		h.pressed = false
		h.game.PointerMove(p.X, p.Y)
		h.game.PointerUp()
	}
}

// run owns the screen until quit; drawing happens only on this goroutine
func (h *terminalHost) run() {
	events := make(chan tcell.Event, 256)
	quit := make(chan struct{})
	core.Go(func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	})
	defer close(quit)

	h.runner.Sync()
	for {
		select {
		case ev := <-events:
			if !h.handle(ev) {
				h.runner.Stop()
				h.game.Exit()
				return
			}
		case f := <-h.frames:
			h.draw(f)
		}
	}
}

func runPlay(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logFile := setupLogging(cfg.Debug)
	if logFile != nil {
		defer logFile.Close()
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return fmt.Errorf("load packs: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	core.SetCrashReset(screen.Fini)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	audioSvc := audio.NewService(cfg.AudioConfig())
	defer audioSvc.Stop()

	opts := []game.Option{game.WithSynth(audioSvc.Synth())}
	if cfg.Seed != 0 {
		opts = append(opts, game.WithSeed(cfg.Seed))
	}
	g, err := game.New(catalog, opts...)
	if err != nil {
		return err
	}

	log.Printf("terminal host started, %d levels, audio disabled=%v", catalog.Len(), audioSvc.IsDisabled())
	newTerminalHost(cfg, screen, g).run()
	return nil
}
