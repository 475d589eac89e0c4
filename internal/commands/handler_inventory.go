package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/pixil98/skirmish/internal/game"
)

func handleInventory(ctx context.Context, cmdCtx *CommandContext) error {
	actor := cmdCtx.Actor
	items := actor.Inventory.Items()
	if len(items) == 0 {
		actor.Send("You are carrying nothing.")
		return nil
	}

	lines := []string{"You are carrying:"}
	for _, oi := range items {
		line := "  " + oi.Name()
		if oi.InstanceId == actor.WeaponId {
			line += " (wielded)"
		}
		lines = append(lines, line)
	}
	actor.Send(strings.Join(lines, "\n"))
	return nil
}

func handleGet(ctx context.Context, cmdCtx *CommandContext) error {
	if cmdCtx.Args == "" {
		return NewUserError("Get what?")
	}

	target := resolve(cmdCtx, cmdCtx.Args, ScopeRoomItems)
	if target == nil {
		return UserErrorf("You don't see %s here.", cmdCtx.Args)
	}

	actor := cmdCtx.Actor
	oi := cmdCtx.Room.Items.Remove(target.Item.InstanceId)
	actor.Inventory.Add(oi)

	cmdCtx.World.BroadcastRoom(cmdCtx.Room.Id, fmt.Sprintf("%s picks up a %s.", actor.Name, oi.Name()), actor)
	actor.Send(fmt.Sprintf("You pick up the %s.", oi.Name()))
	return nil
}

func handleDrop(ctx context.Context, cmdCtx *CommandContext) error {
	if cmdCtx.Args == "" {
		return NewUserError("Drop what?")
	}

	target := resolve(cmdCtx, cmdCtx.Args, ScopeInventory)
	if target == nil {
		return errNotCarrying
	}

	actor := cmdCtx.Actor
	oi := actor.TakeItem(target.Item.InstanceId)
	cmdCtx.Room.Items.Add(oi)

	cmdCtx.World.BroadcastRoom(cmdCtx.Room.Id, fmt.Sprintf("%s drops a %s.", actor.Name, oi.Name()), actor)
	actor.Send(fmt.Sprintf("You drop the %s.", oi.Name()))
	return nil
}

// splitGiveArgs separates "<item> [to] <player>". Without "to" the last
// word names the player.
func splitGiveArgs(args string) (item, player string) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return "", ""
	}

	if i := slices.Index(fields, "to"); i > 0 && i < len(fields)-1 {
		return strings.Join(fields[:i], " "), strings.Join(fields[i+1:], " ")
	}
	return strings.Join(fields[:len(fields)-1], " "), fields[len(fields)-1]
}

func handleGive(ctx context.Context, cmdCtx *CommandContext) error {
	itemName, playerName := splitGiveArgs(cmdCtx.Args)
	if itemName == "" {
		return NewUserError("Give what to whom?")
	}

	actor := cmdCtx.Actor
	target := resolve(cmdCtx, itemName, ScopeInventory)
	if target == nil {
		return errNotCarrying
	}

	recipient := cmdCtx.Room.FindPlayer(playerName)
	if recipient == nil {
		return errNotHere
	}
	if recipient == actor {
		return NewUserError("You can't give something to yourself.")
	}

	oi := actor.TakeItem(target.Item.InstanceId)
	recipient.Inventory.Add(oi)

	cmdCtx.World.BroadcastRoom(cmdCtx.Room.Id,
		fmt.Sprintf("%s gives a %s to %s.", actor.Name, oi.Name(), recipient.Name),
		actor, recipient)
	recipient.Send(fmt.Sprintf("%s gives you a %s.", actor.Name, oi.Name()))
	actor.Send(fmt.Sprintf("You give the %s to %s.", oi.Name(), recipient.Name))
	return nil
}

func handleWield(ctx context.Context, cmdCtx *CommandContext) error {
	if cmdCtx.Args == "" {
		return NewUserError("Wield what?")
	}

	actor := cmdCtx.Actor
	target := resolve(cmdCtx, cmdCtx.Args, ScopeInventory)
	if target == nil {
		return errNotCarrying
	}
	if target.Item.InstanceId == actor.WeaponId {
		return UserErrorf("You are already wielding the %s.", target.Item.Name())
	}
	if err := actor.Wield(target.Item); err != nil {
		return UserErrorf("You can't wield the %s.", target.Item.Name())
	}

	actor.Send(fmt.Sprintf("You wield the %s.", target.Item.Name()))
	return nil
}

func handleUse(ctx context.Context, cmdCtx *CommandContext) error {
	if cmdCtx.Args == "" {
		return NewUserError("Use what?")
	}

	actor := cmdCtx.Actor
	target := resolve(cmdCtx, cmdCtx.Args, ScopeInventory)
	if target == nil {
		return errNotCarrying
	}
	if target.Item.Item.Type != game.ItemTypePotion {
		return UserErrorf("You can't use the %s.", target.Item.Name())
	}

	oi := actor.TakeItem(target.Item.InstanceId)
	healed := actor.Heal(oi.Item.Value)

	cmdCtx.World.BroadcastRoom(cmdCtx.Room.Id, fmt.Sprintf("%s drinks a %s.", actor.Name, oi.Name()), actor)
	actor.Send(fmt.Sprintf("You drink the %s and recover %d hp.", oi.Name(), healed))
	return nil
}
