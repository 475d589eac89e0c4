package player

import (
	"context"
	"fmt"
	"log/slog"
	"unicode"

	"github.com/pixil98/skirmish/internal/game"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	minNameLength = 2
	maxNameLength = 16

	banner     = "Welcome to Skirmish!"
	namePrompt = "By what name do you wish to be known?"
)

var titleCaser = cases.Title(language.English)

// normalizeName validates a requested name and returns it title-cased.
func normalizeName(name string) (string, error) {
	runes := []rune(name)
	if len(runes) < minNameLength || len(runes) > maxNameLength {
		return "", fmt.Errorf("names must be %d to %d letters long", minNameLength, maxNameLength)
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return "", fmt.Errorf("names may only contain letters")
		}
	}
	return titleCaser.String(name), nil
}

func (m *PlayerManager) chooseName(ctx context.Context, p *game.Player, line string) {
	name, err := normalizeName(line)
	if err != nil {
		p.Send(fmt.Sprintf("Invalid name: %s.", err))
		p.Send(namePrompt)
		p.State = game.StateNaming
		return
	}

	if m.world.NameTaken(name, p) {
		p.Send(fmt.Sprintf("The name %s is already taken.", name))
		p.Send(namePrompt)
		p.State = game.StateNaming
		return
	}

	slog.DebugContext(ctx, "name chosen", "id", p.Id, "name", name)
	p.Name = name
	p.State = game.StateClassSelection
	p.Send(fmt.Sprintf("Choose your class, %s: [W]arrior or [M]age?", name))
}
