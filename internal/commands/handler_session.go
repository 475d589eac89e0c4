package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixil98/skirmish/internal/game"
)

func handleQuit(ctx context.Context, cmdCtx *CommandContext) error {
	cmdCtx.Actor.Send("Goodbye!")
	cmdCtx.World.Disconnect(cmdCtx.Actor)
	return nil
}

func (h *Handler) handleHelp(ctx context.Context, cmdCtx *CommandContext) error {
	cmdCtx.Actor.Send("Available commands: " + strings.Join(h.Verbs(), ", "))
	return nil
}

func handleWho(ctx context.Context, cmdCtx *CommandContext) error {
	players := cmdCtx.World.ActivePlayers()

	lines := []string{fmt.Sprintf("Players online (%d):", len(players))}
	for _, p := range players {
		lines = append(lines, fmt.Sprintf("  [%2d %-7s] %s", p.Level, p.Class, p.Name))
	}

	cmdCtx.Actor.Send(strings.Join(lines, "\n"))
	return nil
}

func handleScore(ctx context.Context, cmdCtx *CommandContext) error {
	p := cmdCtx.Actor

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s the %s, level %d\n", p.Name, p.Class, p.Level)
	fmt.Fprintf(&sb, "HP: %d/%d  Mana: %d/%d\n", p.HP, p.MaxHP, p.Mana, p.MaxMana)
	fmt.Fprintf(&sb, "Attack: %d  Gold: %d\n", p.AttackPower(), p.Gold)
	if p.Level < game.MaxLevel {
		fmt.Fprintf(&sb, "Experience: %d/%d", p.Experience, p.ExpToLevel)
	} else {
		fmt.Fprintf(&sb, "Experience: %d (max level)", p.Experience)
	}

	p.Send(sb.String())
	return nil
}
