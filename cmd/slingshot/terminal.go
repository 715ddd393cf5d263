package main

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-slingshot/pkg/engine"
	"github.com/opd-ai/go-slingshot/pkg/event"
	"github.com/opd-ai/go-slingshot/pkg/logging"
	"github.com/opd-ai/go-slingshot/pkg/physics"
	"github.com/opd-ai/go-slingshot/pkg/render"
)

// runTerminal plays in the terminal until q, Escape or ctx ends the game.
func runTerminal(ctx context.Context, s *session) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return logging.WrapError(err, "create terminal screen")
	}
	if err := screen.Init(); err != nil {
		return logging.WrapError(err, "initialize terminal screen")
	}
	screen.EnableMouse()
	screen.HideCursor()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	popups := render.NewPopupTracker()
	detach := popups.Attach(s.game.EventBus)
	defer detach()
	view := render.NewTerminalRenderer(screen, s.cfg, popups)

	frameDt := 1 / float64(s.cfg.Runtime.FrameRate)
	runner := engine.NewRunner(s.game, s.cfg.Runtime.FrameRate, func(state *engine.GameState, _ []event.Event) {
		popups.Update(frameDt)
		view.SetStatus(s.status())
		view.Draw(state)
	}, s.logger)

	done := make(chan error, 1)
	go func() {
		done <- runner.Run(ctx)
		// unblocks PollEvent below
		screen.Fini()
	}()

	input := &terminalInput{session: s, view: view, quit: cancel}
	for {
		ev := screen.PollEvent()
		if ev == nil {
			break
		}
		input.handle(ev, screen)
	}

	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// terminalInput turns tcell events into game actions. A left-button drag
// aims; releasing the button launches.
type terminalInput struct {
	session  *session
	view     *render.TerminalRenderer
	quit     func()
	dragging bool
	start    physics.Vector2D
	end      physics.Vector2D
}

func (in *terminalInput) handle(ev tcell.Event, screen tcell.Screen) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		screen.Sync()
	case *tcell.EventKey:
		in.handleKey(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		in.handleMouse(ev.Buttons(), x, y)
	}
}

func (in *terminalInput) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		in.quit()
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch ev.Rune() {
	case 'r', 'R':
		in.session.reset()
	case 'm', 'M':
		in.session.toggleMusic()
	case 'n', 'N':
		in.session.nextTrack()
	case 'q', 'Q':
		in.quit()
	}
}

func (in *terminalInput) handleMouse(buttons tcell.ButtonMask, x, y int) {
	pos := in.view.ScreenToWorld(x, y)

	if buttons&tcell.Button1 != 0 {
		if !in.dragging {
			in.dragging = true
			in.start = pos
		}
		in.end = pos
		in.view.SetDrag(in.start, in.end)
		return
	}

	if !in.dragging {
		return
	}
	in.dragging = false
	in.view.ClearDrag()
	if _, err := in.session.game.LaunchFromDrag(in.start, in.end); err != nil {
		in.session.logger.Warn(in.session.ctx, "launch rejected", "error", err.Error())
	}
}
