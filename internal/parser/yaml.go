package parser

import (
	"fmt"
	"os"

	"git.lost.host/meutraa/qwerty/internal/game"
	"gopkg.in/yaml.v3"
)

// YAMLParser reads the native beatmap format written as YAML, which is
// easier to edit by hand.
type YAMLParser struct{}

func (p *YAMLParser) Parse(file string) ([]*game.Map, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	return p.parse(data, file)
}

func (p *YAMLParser) parse(data []byte, file string) ([]*game.Map, error) {
	var f mapFile
	if err := yaml.Unmarshal(data, &f); nil != err {
		return nil, fmt.Errorf("unable to parse %v: %w", file, err)
	}
	m, err := f.toMap(file)
	if nil != err {
		return nil, err
	}
	return []*game.Map{m}, nil
}
