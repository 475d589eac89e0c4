package commands

import (
	"context"
	"fmt"
)

// directionAliases maps every movement verb to its compass direction.
var directionAliases = map[string]string{
	"n": "north", "north": "north",
	"s": "south", "south": "south",
	"e": "east", "east": "east",
	"w": "west", "west": "west",
	"u": "up", "up": "up",
	"d": "down", "down": "down",
}

func handleMove(ctx context.Context, cmdCtx *CommandContext) error {
	dir, ok := directionAliases[cmdCtx.Verb]
	if !ok {
		return fmt.Errorf("unknown direction verb %q", cmdCtx.Verb)
	}

	dest, ok := cmdCtx.Room.Exit(dir)
	if !ok {
		return NewUserError("Can't go that way.")
	}

	w := cmdCtx.World
	actor := cmdCtx.Actor
	from := cmdCtx.Room

	if err := w.Relocate(actor, dest); err != nil {
		return fmt.Errorf("moving %s: %w", dir, err)
	}
	w.BroadcastRoom(from.Id, fmt.Sprintf("%s leaves %s.", actor.Name, dir))
	w.BroadcastRoom(dest, fmt.Sprintf("%s has arrived.", actor.Name), actor)

	actor.ClearTarget()
	actor.Send(w.Room(dest).Describe(actor))
	return nil
}
