package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"git.lost.host/meutraa/qwerty/internal/game"
	"git.lost.host/meutraa/qwerty/internal/input"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/yaml.v3"
)

const Version = "0.3.0"

var ErrConfig = errors.New("invalid configuration")

type Config struct {
	Chart      string
	Difficulty int
	Speed      float64 // px/s
	Grace      time.Duration
	Keys       string

	DB    string
	Log   string
	Debug bool

	Input   string
	Device  string
	Release time.Duration
	FPS     float64

	Tuning string
	Record string
	Replay string
}

// FramePeriod is the time between rendered frames.
func (c *Config) FramePeriod() time.Duration {
	return time.Duration(float64(time.Second) / c.FPS)
}

type App struct {
	app *kingpin.Application
	cfg Config
}

func New() *App {
	a := &App{app: kingpin.New("qwerty", "A lane rhythm game for the terminal.")}
	a.app.Version(Version)
	a.app.HelpFlag.Short('h')

	c := &a.cfg
	a.app.Arg("chart", "Chart file (.json, .yaml, .sm)").Required().ExistingFileVar(&c.Chart)
	a.app.Flag("difficulty", "Index of the chart difficulty to play").Default("0").Short('i').IntVar(&c.Difficulty)
	a.app.Flag("speed", "Note speed in pixels per second").Default("300").Short('s').Float64Var(&c.Speed)
	a.app.Flag("grace", "Lead-in before the audio starts").Default("2s").Short('g').DurationVar(&c.Grace)
	a.app.Flag("keys", "Lane keys, outer lanes first").Default(input.DefaultKeys).Short('k').StringVar(&c.Keys)
	a.app.Flag("db", "Score database").Default("scores.db").StringVar(&c.DB)
	a.app.Flag("log", "Log file").Default("qwerty.log").StringVar(&c.Log)
	a.app.Flag("debug", "Log at debug level").BoolVar(&c.Debug)
	a.app.Flag("input", "Input source").Default("keyboard").EnumVar(&c.Input, "keyboard", "evdev")
	a.app.Flag("device", "Input device for evdev").Default("/dev/input/event0").StringVar(&c.Device)
	a.app.Flag("release", "Time without repeats before a terminal key counts as released, longer than the key repeat delay").Default(input.DefaultRelease.String()).DurationVar(&c.Release)
	a.app.Flag("fps", "Frames per second").Default("240").Float64Var(&c.FPS)
	a.app.Flag("tuning", "YAML file overriding gameplay constants").ExistingFileVar(&c.Tuning)
	a.app.Flag("record", "Write a replay of the session to this file").StringVar(&c.Record)
	a.app.Flag("replay", "Play back a replay file without a terminal").ExistingFileVar(&c.Replay)
	return a
}

// Parse reads the command line, without the program name.
func (a *App) Parse(args []string) (*Config, error) {
	if _, err := a.app.Parse(args); nil != err {
		return nil, err
	}
	c := a.cfg
	switch {
	case c.Speed <= 0:
		return nil, fmt.Errorf("%w: speed must be positive", ErrConfig)
	case c.FPS <= 0:
		return nil, fmt.Errorf("%w: fps must be positive", ErrConfig)
	case c.Grace < 0:
		return nil, fmt.Errorf("%w: grace cannot be negative", ErrConfig)
	case c.Difficulty < 0:
		return nil, fmt.Errorf("%w: difficulty index cannot be negative", ErrConfig)
	case c.Record != "" && c.Replay != "":
		return nil, fmt.Errorf("%w: --record and --replay are exclusive", ErrConfig)
	}
	return &c, nil
}

// Usage writes the help text.
func (a *App) Usage(args []string) {
	a.app.Usage(args)
}

// LoadTuning reads a YAML file over the default tuning. An empty path is
// the defaults.
func LoadTuning(path string) (game.Tuning, error) {
	t := game.DefaultTuning()
	if path == "" {
		return t, nil
	}
	f, err := os.Open(path)
	if nil != err {
		return t, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&t); nil != err {
		return t, fmt.Errorf("unable to read tuning %v: %w", path, err)
	}
	if err := t.Validate(); nil != err {
		return t, fmt.Errorf("%v: %w", path, err)
	}
	return t, nil
}
