package render

import "git.lost.host/meutraa/qwerty/internal/engine"

type Renderer interface {
	Init() error
	Deinit() error
	AddDecoration(col, row int, content string, frames int)
	Report(r engine.Report)
	Draw(v *engine.View)
	Flush() error
}
