package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"git.lost.host/meutraa/qwerty/internal/game"
)

// Parser loads every playable difficulty of a chart file.
type Parser interface {
	Parse(file string) ([]*game.Map, error)
}

var ErrFormat = errors.New("unsupported chart format")

// ForFile picks a parser by the file extension.
func ForFile(file string) (Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".json":
		return &JSONParser{}, nil
	case ".yaml", ".yml":
		return &YAMLParser{}, nil
	case ".sm":
		return &SMParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, ext)
	}
}

// Parse loads file with the parser its extension calls for.
func Parse(file string) ([]*game.Map, error) {
	p, err := ForFile(file)
	if nil != err {
		return nil, err
	}
	return p.Parse(file)
}
