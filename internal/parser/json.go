package parser

import (
	"fmt"
	"os"

	"git.lost.host/meutraa/qwerty/internal/game"
	json "github.com/goccy/go-json"
)

// JSONParser reads the native beatmap format.
type JSONParser struct{}

func (p *JSONParser) Parse(file string) ([]*game.Map, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	return p.parse(data, file)
}

func (p *JSONParser) parse(data []byte, file string) ([]*game.Map, error) {
	var f mapFile
	if err := json.Unmarshal(data, &f); nil != err {
		return nil, fmt.Errorf("unable to parse %v: %w", file, err)
	}
	m, err := f.toMap(file)
	if nil != err {
		return nil, err
	}
	return []*game.Map{m}, nil
}
