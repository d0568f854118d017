package main

import (
	"time"

	"git.lost.host/meutraa/qwerty/internal/engine"
	"git.lost.host/meutraa/qwerty/internal/game"
	"git.lost.host/meutraa/qwerty/internal/input"
	"git.lost.host/meutraa/qwerty/internal/render"
	"git.lost.host/meutraa/qwerty/internal/replay"
	"github.com/rs/zerolog/log"
)

// Program glues a session to its input events and renderer, one frame at
// a time.
type Program struct {
	Session   *engine.Session
	Renderer  render.Renderer
	Events    <-chan input.Event
	Recording *replay.Recording // nil unless recording

	inputs []game.Input
	phase  engine.Phase
	quit   bool
}

// Update drains the events that arrived since the last frame and runs the
// session once. It returns false once the session is finalized or the
// player quit.
func (p *Program) Update(dt time.Duration) bool {
	p.inputs = p.inputs[:0]
	toggled := false
	for drained := false; !drained; {
		select {
		case e, ok := <-p.Events:
			if !ok {
				drained = true
				break
			}
			switch e.Control {
			case input.Quit:
				p.quit = true
			case input.Pause:
				p.Session.TogglePause()
				toggled = !toggled
				log.Info().Bool("paused", p.Session.Paused()).Dur("at", p.Session.Now()).Msg("pause toggled")
			default:
				p.inputs = append(p.inputs, e.Input())
			}
		default:
			drained = true
		}
	}
	if p.quit {
		log.Info().Dur("at", p.Session.Now()).Msg("quit")
		p.Session.Abort()
		return false
	}

	if len(p.inputs) > 0 && (p.Session.Paused() || p.Session.Phase() != engine.Playing) {
		log.Debug().Int("inputs", len(p.inputs)).Msg("dropped inputs")
	}
	p.Session.Update(dt, p.inputs)
	if nil != p.Recording {
		p.Recording.Add(p.Session, dt, toggled, p.inputs)
	}

	for _, rep := range p.Session.Reports() {
		p.Renderer.Report(rep)
		log.Debug().
			Stringer("kind", rep.Kind).
			Int("lane", rep.Lane).
			Int("note", int(rep.Note)).
			Stringer("tier", rep.Tier).
			Float64("offset", rep.Offset).
			Int64("points", rep.Points).
			Msg("judged")
	}

	if phase := p.Session.Phase(); phase != p.phase {
		p.phase = phase
		st := p.Session.Stats()
		log.Info().
			Stringer("phase", phase).
			Dur("at", p.Session.Now()).
			Int64("score", st.Score).
			Float64("health", st.Health).
			Msg("session over")
	}

	if p.Session.Finalized() {
		rec, err := p.Session.Result()
		if nil != err {
			log.Error().Err(err).Msg("unable to save score")
		} else if nil != rec {
			log.Info().Str("session", rec.SessionID).Int64("score", rec.Score).Str("rank", string(rec.Rank)).Msg("finalized")
		}
		return false
	}
	return true
}

func (p *Program) Render() error {
	v := p.Session.Snapshot()
	p.Renderer.Draw(&v)
	return p.Renderer.Flush()
}
