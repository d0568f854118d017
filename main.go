package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"git.lost.host/meutraa/qwerty/internal/audio"
	"git.lost.host/meutraa/qwerty/internal/config"
	"git.lost.host/meutraa/qwerty/internal/engine"
	"git.lost.host/meutraa/qwerty/internal/game"
	"git.lost.host/meutraa/qwerty/internal/input"
	"git.lost.host/meutraa/qwerty/internal/parser"
	"git.lost.host/meutraa/qwerty/internal/render"
	"git.lost.host/meutraa/qwerty/internal/replay"
	"git.lost.host/meutraa/qwerty/internal/score"
	"git.lost.host/meutraa/qwerty/internal/theme"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); nil != err {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(cfg *config.Config) (io.Closer, error) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if cfg.Log == "" {
		log.Logger = zerolog.Nop()
		return io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(cfg.Log, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if nil != err {
		return nil, fmt.Errorf("unable to open log file: %w", err)
	}
	// The terminal belongs to the renderer, so logs only go to the file.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: time.StampMilli})
	return f, nil
}

// pick returns the difficulty to play, or lists the available ones.
func pick(maps []*game.Map, index int) (*game.Map, error) {
	if index >= 0 && index < len(maps) {
		return maps[index], nil
	}
	var b strings.Builder
	for i, m := range maps {
		fmt.Fprintf(&b, "\n%2v) %5v  %5v  %v", i, m.Difficulty.Meter, len(m.Events), m.Difficulty.Name)
	}
	return nil, fmt.Errorf("%w: no difficulty %d, the chart has:%s", config.ErrConfig, index, b.String())
}

// byHash finds the difficulty a replay was recorded on.
func byHash(maps []*game.Map, hash string) (*game.Map, error) {
	for _, m := range maps {
		if score.Hash(m.Events) == hash {
			return m, nil
		}
	}
	return nil, replay.ErrChart
}

func run() error {
	app := config.New()
	cfg, err := app.Parse(os.Args[1:])
	if nil != err {
		app.Usage(os.Args[1:])
		return err
	}

	logFile, err := setupLogging(cfg)
	if nil != err {
		return err
	}
	defer logFile.Close()

	tuning := game.DefaultTuning()
	if cfg.Tuning != "" {
		if tuning, err = config.LoadTuning(cfg.Tuning); nil != err {
			return err
		}
	}

	maps, err := parser.Parse(cfg.Chart)
	if nil != err {
		return err
	}

	var scorer score.Scorer
	if db, err := score.Open(cfg.DB); nil != err {
		log.Warn().Err(err).Str("db", cfg.DB).Msg("playing without saved scores")
	} else {
		scorer = db
		defer func() {
			if err := db.Close(); nil != err {
				log.Error().Err(err).Msg("unable to close score database")
			}
		}()
	}

	if cfg.Replay != "" {
		return watch(cfg, maps, scorer)
	}

	m, err := pick(maps, cfg.Difficulty)
	if nil != err {
		return err
	}
	return play(cfg, m, tuning, scorer)
}

// watch replays a recording without a terminal or audio.
func watch(cfg *config.Config, maps []*game.Map, scorer score.Scorer) error {
	rec, err := replay.Load(cfg.Replay)
	if nil != err {
		return err
	}
	m, err := byHash(maps, rec.ChartHash)
	if nil != err {
		return err
	}
	log.Info().Str("replay", cfg.Replay).Str("session", rec.SessionID).Dur("length", rec.Duration()).Msg("replaying")
	sess, err := replay.Play(m, rec, nil)
	if nil != err {
		return err
	}
	result, _ := sess.Result()
	summarize(os.Stdout, m.Title+" (replay)", sess.Stats(), result, scorer)
	return nil
}

func play(cfg *config.Config, m *game.Map, tuning game.Tuning, scorer score.Scorer) error {
	var player audio.Player = audio.Silent{}
	bp := audio.NewBeepPlayer()
	if err := bp.Load(m.AudioFile); nil != err {
		log.Warn().Err(err).Str("audio", m.AudioFile).Msg("playing without audio")
	} else {
		log.Info().Str("audio", m.AudioFile).Dur("length", bp.Length()).Msg("loaded audio")
		player = bp
	}
	defer player.Close()

	keymap, err := input.NewKeymap(cfg.Keys, m.Lanes())
	if nil != err {
		return err
	}
	var source input.Source
	switch cfg.Input {
	case "evdev":
		if source, err = input.NewEvdevSource(cfg.Device, keymap); nil != err {
			return err
		}
	default:
		source = input.NewKeyboardSource(keymap, cfg.Release)
	}

	opts := engine.Options{Speed: cfg.Speed, Grace: cfg.Grace, Tuning: tuning}
	if nil != scorer {
		opts.Recorder = scorer
	}
	sess, err := engine.NewSession(m, player, opts)
	if nil != err {
		return err
	}
	log.Info().
		Str("session", sess.ID.String()).
		Str("title", m.Title).
		Str("difficulty", m.Difficulty.Name).
		Int("lanes", m.Lanes()).
		Int("events", len(m.Events)).
		Int("holds", m.HoldCount()).
		Str("keys", keymap.String()).
		Msg("starting")

	events := make(chan input.Event, 128)
	renderer := render.NewDefaultRenderer(os.Stdout, int(os.Stdout.Fd()), &theme.DefaultTheme{}, keymap.Keys())
	prog := &Program{Session: sess, Renderer: renderer, Events: events}
	if cfg.Record != "" {
		prog.Recording = replay.New(sess, cfg.Speed, cfg.Grace, tuning)
	}

	if err := renderer.Init(); nil != err {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return source.Run(ctx, events)
	})
	g.Go(func() error {
		defer cancel()
		return render.Loop(ctx, cfg.FramePeriod(), func(dt time.Duration) bool {
			running := prog.Update(dt)
			if err := prog.Render(); nil != err {
				log.Error().Err(err).Msg("unable to draw")
				return false
			}
			return running
		})
	})
	err = g.Wait()
	cancel()
	if err := renderer.Deinit(); nil != err {
		log.Error().Err(err).Msg("unable to restore terminal")
	}
	if !sess.Finalized() {
		sess.Abort()
	}
	if nil != err && !errors.Is(err, context.Canceled) {
		return err
	}

	if nil != prog.Recording {
		if err := replay.Save(cfg.Record, prog.Recording); nil != err {
			log.Error().Err(err).Msg("unable to save replay")
		} else {
			log.Info().Str("replay", cfg.Record).Int("frames", len(prog.Recording.Frames)).Msg("saved replay")
		}
	}

	result, rerr := sess.Result()
	if nil != rerr {
		fmt.Fprintf(os.Stderr, "unable to save score: %v\n", rerr)
	}
	summarize(os.Stdout, m.Title, sess.Stats(), result, scorer)
	return nil
}
