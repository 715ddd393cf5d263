// cmd/slingshot/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-slingshot/pkg/audio"
	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/engine"
	"github.com/opd-ai/go-slingshot/pkg/event"
	"github.com/opd-ai/go-slingshot/pkg/leaderboard"
	"github.com/opd-ai/go-slingshot/pkg/logging"
	"github.com/opd-ai/go-slingshot/pkg/render"
	engorender "github.com/opd-ai/go-slingshot/pkg/render/engo"
)

const defaultPlayer = "Player"

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	renderer := flag.String("renderer", "terminal", "Renderer type: 'terminal', 'engo' or 'null'")
	playerName := flag.String("name", "", "Player name (saved for next time)")
	logPath := flag.String("log", "slingshot.log", "Log file for the terminal renderer")
	width := flag.Int("width", 1024, "Window width (Engo only)")
	height := flag.Int("height", 768, "Window height (Engo only)")
	duration := flag.Duration("duration", 10*time.Second, "How long to simulate (null renderer only)")
	flag.Parse()

	logger, closeLog, err := newLogger(*renderer, *logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx := logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID())

	path := *configPath
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.Info(ctx, "configuration file not found, using defaults", "path", path)
		path = ""
	}
	cfg, err := config.Load(path)
	if err != nil {
		logger.Error(ctx, "failed to load configuration", err)
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	sess := newSession(ctx, cfg, *playerName, logger)
	defer sess.close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch *renderer {
	case "engo":
		runEngo(ctx, sess, *width, *height)
	case "null":
		runNull(ctx, sess, *duration)
	case "terminal":
		if err := runTerminal(ctx, sess); err != nil {
			logger.Error(ctx, "terminal client failed", err)
			fmt.Fprintf(os.Stderr, "terminal client failed: %v\n", err)
			sess.close()
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown renderer %q\n", *renderer)
		sess.close()
		os.Exit(2)
	}
}

// newLogger keeps the terminal free of log output by writing to a file.
func newLogger(renderer, path string) (*logging.Logger, func(), error) {
	if renderer != "terminal" {
		return logging.NewLogger(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return logging.NewLoggerWithWriter(f), func() { f.Close() }, nil
}

// session bundles one game with its optional audio and score store.
type session struct {
	ctx    context.Context
	cfg    *config.GameConfig
	game   *engine.Game
	audio  *audio.Manager
	sink   *audio.SpeakerSink
	store  *leaderboard.Store
	player string
	logger *logging.Logger

	cancelAudio context.CancelFunc
	closed      bool
}

func newSession(ctx context.Context, cfg *config.GameConfig, name string, logger *logging.Logger) *session {
	s := &session{
		ctx:    ctx,
		cfg:    cfg,
		game:   engine.NewGame(cfg),
		player: defaultPlayer,
		logger: logger,
	}

	store, err := leaderboard.Open(cfg.Leaderboard.Path, logger)
	if err != nil {
		logger.Warn(ctx, "leaderboard unavailable, scores will not be saved", "error", err.Error())
	} else {
		s.store = store
	}
	s.player = s.resolvePlayer(name)

	s.sink = audio.NewSpeakerSink()
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	s.audio = audio.NewManager(cfg.Audio, s.sink, rng, logger)
	s.audio.Attach(s.game.EventBus)
	audioCtx, cancel := context.WithCancel(ctx)
	s.cancelAudio = cancel
	s.audio.Start(audioCtx)

	state := s.game.GetGameState()
	logger.Info(ctx, "game session started",
		"player", s.player,
		"star", state.Star.Type.Name,
		"asteroids", len(state.Asteroids),
	)
	return s
}

// resolvePlayer prefers the flag, then the saved name.
func (s *session) resolvePlayer(name string) string {
	if s.store == nil {
		if name != "" {
			return name
		}
		return defaultPlayer
	}
	if name != "" {
		clean, err := s.store.SetPlayerName(s.ctx, name)
		if err != nil {
			s.logger.Warn(s.ctx, "invalid player name", "error", err.Error())
			return defaultPlayer
		}
		return clean
	}
	saved, err := s.store.GetPlayerName(s.ctx)
	if err != nil {
		if !errors.Is(err, leaderboard.ErrNotFound) {
			s.logger.Warn(s.ctx, "failed to load player name", "error", err.Error())
		}
		return defaultPlayer
	}
	return saved
}

// status feeds the HUD.
func (s *session) status() render.Status {
	music := "off"
	if s.audio.MusicPlaying() {
		music = s.audio.TrackName()
	}
	return render.Status{Player: s.player, Music: music}
}

func (s *session) reset() {
	s.saveScore()
	s.game.Reset()
}

func (s *session) toggleMusic() {
	playing := s.audio.ToggleMusic()
	s.logger.Debug(s.ctx, "music toggled", "playing", playing)
}

func (s *session) nextTrack() {
	track := s.audio.NextTrack()
	s.logger.Debug(s.ctx, "next track", "track", track)
}

// saveScore records the current game unless nothing happened in it.
func (s *session) saveScore() {
	state := s.game.GetGameState()
	if s.store == nil || (state.Score == 0 && state.OrbitsCompleted == 0) {
		return
	}
	if _, err := s.store.RecordScore(s.ctx, s.player, state.Score, state.OrbitsCompleted, state.Star.Type.Class); err != nil {
		s.logger.Error(s.ctx, "failed to save score", err)
	}
}

func (s *session) close() {
	if s.closed {
		return
	}
	s.closed = true

	s.saveScore()
	state := s.game.GetGameState()
	s.logger.Info(s.ctx, "game session ended",
		"score", state.Score,
		"orbits", state.OrbitsCompleted,
		"ticks", state.Tick,
	)

	s.cancelAudio()
	s.audio.Wait()
	s.sink.Close()
	if s.store != nil {
		if best, err := s.store.Best(s.ctx); err == nil {
			s.logger.Info(s.ctx, "best score", "player", best.Name, "score", best.Score)
		}
		s.store.Close()
	}
}

// runEngo opens the GUI and blocks until the window closes.
func runEngo(ctx context.Context, s *session, width, height int) {
	controls := engorender.Controls{
		Reset:       s.reset,
		ToggleMusic: s.toggleMusic,
		NextTrack:   s.nextTrack,
		Quit:        engo.Exit,
	}
	scene := engorender.NewGameScene(s.game, controls, s.status, nil, s.logger)

	go func() {
		<-ctx.Done()
		engo.Exit()
	}()

	engorender.Run(scene, engorender.Options{
		Title:    "Slingshot",
		Width:    width,
		Height:   height,
		FPSLimit: s.cfg.Runtime.FrameRate,
	})
}

// runNull simulates without any display, logging each frame at debug.
func runNull(ctx context.Context, s *session, d time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	out := render.NewNullRenderer(s.logger)
	runner := engine.NewRunner(s.game, s.cfg.Runtime.FrameRate, func(state *engine.GameState, _ []event.Event) {
		state.Render(out)
	}, s.logger)

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		s.logger.Error(ctx, "simulation failed", err)
	}
	s.logger.Info(ctx, "null renderer finished", "frames", out.Frames())
}
