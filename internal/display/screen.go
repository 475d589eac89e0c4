package display

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/skirmish/internal/game"
)

const (
	clearScreen = "\x1b[2J\x1b[H"
	eraseLine   = "\x1b[K"
	prompt      = "> "
)

var colors = map[string]string{
	"red":   "\x1b[31m",
	"green": "\x1b[32m",
	"reset": "\x1b[0m",
}

const (
	statusTemplate = `{{ .Name }} the {{ .Class }}  HP {{ colorize (ternary "red" "green" .Low) (printf "%d/%d" .HP .MaxHP) }}` +
		`  Mana {{ .Mana }}/{{ .MaxMana }}  Level {{ .Level }}  Gold {{ .Gold }}`

	targetTemplate = `{{ with .Target }}Fighting {{ .Name }}  HP {{ colorize (ternary "red" "green" .Low) (printf "%d/%d" .HP .MaxHP) }}` +
		`{{ else }}[ safe ]{{ end }}`
)

type statusView struct {
	Name    string
	Class   string
	HP      int
	MaxHP   int
	Mana    int
	MaxMana int
	Level   int
	Gold    int
	Low     bool
}

type targetView struct {
	Name  string
	HP    int
	MaxHP int
	Low   bool
}

// Screen renders a player's full terminal frame. It satisfies
// game.Renderer.
type Screen struct {
	width  int
	status *template.Template
	target *template.Template
}

type ScreenOpt func(*Screen)

// WithWidth sets the column at which log lines wrap.
func WithWidth(width int) ScreenOpt {
	return func(s *Screen) {
		if width > 0 {
			s.width = width
		}
	}
}

func NewScreen(opts ...ScreenOpt) (*Screen, error) {
	funcs := sprig.TxtFuncMap()
	funcs["colorize"] = colorize

	status, err := template.New("status").Funcs(funcs).Parse(statusTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing status template: %w", err)
	}
	target, err := template.New("target").Funcs(funcs).Parse(targetTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing target template: %w", err)
	}

	s := &Screen{
		width:  DefaultWidth,
		status: status,
		target: target,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func colorize(color, text string) string {
	return colors[color] + text + colors["reset"]
}

// Render draws the header lines, the player's log and the prompt.
func (s *Screen) Render(p *game.Player, target game.Entity) []byte {
	var buf bytes.Buffer
	buf.WriteString(clearScreen)

	s.header(&buf, s.status, statusView{
		Name:    p.Name,
		Class:   p.Class.String(),
		HP:      p.HP,
		MaxHP:   p.MaxHP,
		Mana:    p.Mana,
		MaxMana: p.MaxMana,
		Level:   p.Level,
		Gold:    p.Gold,
		Low:     p.LowHealth(),
	})

	var tv struct{ Target *targetView }
	if target != nil {
		a := target.Base()
		tv.Target = &targetView{Name: a.Name, HP: a.HP, MaxHP: a.MaxHP, Low: a.LowHealth()}
	}
	s.header(&buf, s.target, tv)

	buf.WriteString("\n")
	for _, line := range p.Log() {
		buf.WriteString(Wrap(line, s.width))
		buf.WriteString("\n")
	}

	buf.WriteString(prompt)
	return buf.Bytes()
}

func (s *Screen) header(buf *bytes.Buffer, tmpl *template.Template, data any) {
	var line bytes.Buffer
	if err := tmpl.Execute(&line, data); err != nil {
		slog.Error("rendering header", "template", tmpl.Name(), "error", err)
	}
	buf.WriteString(strings.TrimRight(line.String(), "\n"))
	buf.WriteString(eraseLine)
	buf.WriteString("\n")
}
