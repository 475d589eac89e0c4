package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pixil98/skirmish/internal/game"
)

func handleSay(ctx context.Context, cmdCtx *CommandContext) error {
	if cmdCtx.Args == "" {
		return NewUserError("Say what?")
	}

	actor := cmdCtx.Actor
	cmdCtx.World.BroadcastRoom(cmdCtx.Room.Id, fmt.Sprintf("%s says: %s", actor.Name, cmdCtx.Args), actor)
	actor.Send("You say: " + cmdCtx.Args)
	return nil
}

func handleYell(ctx context.Context, cmdCtx *CommandContext) error {
	if cmdCtx.Args == "" {
		return NewUserError("Yell what?")
	}

	actor := cmdCtx.Actor
	cmdCtx.World.BroadcastGlobal(fmt.Sprintf("%s yells: %s", actor.Name, cmdCtx.Args), actor)
	actor.Send("You yell: " + cmdCtx.Args)
	return nil
}

func handleEmote(ctx context.Context, cmdCtx *CommandContext) error {
	if cmdCtx.Args == "" {
		return NewUserError("Emote what?")
	}

	cmdCtx.World.BroadcastRoom(cmdCtx.Room.Id, fmt.Sprintf("%s %s", cmdCtx.Actor.Name, cmdCtx.Args))
	return nil
}

func handleTell(ctx context.Context, cmdCtx *CommandContext) error {
	name, msg, _ := strings.Cut(cmdCtx.Args, " ")
	msg = strings.TrimSpace(msg)
	if name == "" || msg == "" {
		return NewUserError("Tell whom what?")
	}

	actor := cmdCtx.Actor
	target, err := cmdCtx.World.LookupPlayer(name)
	if errors.Is(err, game.ErrPlayerNotFound) {
		return UserErrorf("No one named %s is online.", name)
	}
	if err != nil {
		return fmt.Errorf("looking up %s: %w", name, err)
	}
	if target == actor {
		return NewUserError("You mutter to yourself.")
	}

	target.Send(fmt.Sprintf("%s tells you: %s", actor.Name, msg))
	actor.Send(fmt.Sprintf("You tell %s: %s", target.Name, msg))
	return nil
}
