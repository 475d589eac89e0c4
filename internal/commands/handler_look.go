package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixil98/skirmish/internal/game"
)

func handleLook(ctx context.Context, cmdCtx *CommandContext) error {
	if cmdCtx.Args != "" {
		return handleExamine(ctx, cmdCtx)
	}

	cmdCtx.Actor.Send(cmdCtx.Room.Describe(cmdCtx.Actor))
	return nil
}

func handleExamine(ctx context.Context, cmdCtx *CommandContext) error {
	if cmdCtx.Args == "" {
		return NewUserError("Examine what?")
	}

	target := resolve(cmdCtx, cmdCtx.Args, ScopeAll)
	if target == nil {
		return UserErrorf("You don't see %s here.", cmdCtx.Args)
	}

	if target.Item != nil {
		cmdCtx.Actor.Send(fmt.Sprintf("%s\n%s", target.Item.Name(), target.Item.Item.Description))
		return nil
	}

	a := target.Entity().Base()
	desc := a.Description
	if desc == "" {
		desc = "You see nothing special."
	}
	cmdCtx.Actor.Send(fmt.Sprintf("%s\n%s\nLevel %d, HP %d/%d", game.Capitalize(a.Name), desc, a.Level, a.HP, a.MaxHP))
	return nil
}

func handleExits(ctx context.Context, cmdCtx *CommandContext) error {
	exits := cmdCtx.Room.ExitNames()
	if len(exits) == 0 {
		cmdCtx.Actor.Send("There are no obvious exits.")
		return nil
	}

	var lines []string
	for _, dir := range exits {
		dest, _ := cmdCtx.Room.Exit(dir)
		title := dest
		if ri := cmdCtx.World.Room(dest); ri != nil {
			title = ri.Room.Title
		}
		lines = append(lines, fmt.Sprintf("  %-5s - %s", dir, title))
	}
	cmdCtx.Actor.Send("Obvious exits:\n" + strings.Join(lines, "\n"))
	return nil
}
