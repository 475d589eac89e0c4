package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pixil98/skirmish/internal/combat"
	"github.com/pixil98/skirmish/internal/game"
)

const (
	healCost      = 10
	healAmount    = 30
	fireballCost  = 15
	fireballPower = 40
)

func handleKill(ctx context.Context, cmdCtx *CommandContext) error {
	if cmdCtx.Args == "" {
		return NewUserError("Kill whom?")
	}

	target := resolve(cmdCtx, cmdCtx.Args, ScopeEntities)
	if target == nil {
		return errNotHere
	}
	if target.Mob != nil {
		return UserErrorf("%s looks at you with such innocence that you cannot bring yourself to attack.", game.Capitalize(target.Mob.Name))
	}

	actor := cmdCtx.Actor
	victim := target.Player
	if victim == actor {
		return NewUserError("You can't attack yourself.")
	}

	actor.TargetId = victim.Id
	// The next tick lands the opening blow.
	actor.LastAttack = time.Time{}
	victim.LastAttack = time.Time{}

	cmdCtx.World.BroadcastRoom(cmdCtx.Room.Id, fmt.Sprintf("%s attacks %s!", actor.Name, victim.Name), actor, victim)
	victim.Send(fmt.Sprintf("%s attacks you!", actor.Name))
	actor.Send(fmt.Sprintf("You attack %s!", victim.Name))
	return nil
}

func handleCast(ctx context.Context, cmdCtx *CommandContext) error {
	if cmdCtx.Actor.Class != game.ClassMage {
		return NewUserError("You don't know any spells.")
	}

	spell, targetName, _ := strings.Cut(cmdCtx.Args, " ")
	targetName = strings.TrimSpace(targetName)

	switch strings.ToLower(spell) {
	case "":
		return NewUserError("Cast what?")
	case "heal":
		return castHeal(cmdCtx, targetName)
	case "fireball":
		return castFireball(cmdCtx, targetName)
	default:
		return UserErrorf("You don't know the spell '%s'.", spell)
	}
}

func castHeal(cmdCtx *CommandContext, targetName string) error {
	actor := cmdCtx.Actor

	patient := actor
	if targetName != "" {
		patient = cmdCtx.Room.FindPlayer(targetName)
		if patient == nil {
			return errNotHere
		}
	}

	if !actor.SpendMana(healCost) {
		return NewUserError("You don't have enough mana.")
	}
	healed := patient.Heal(healAmount)

	if patient == actor {
		cmdCtx.World.BroadcastRoom(cmdCtx.Room.Id, fmt.Sprintf("%s glows with a soft light.", actor.Name), actor)
		actor.Send(fmt.Sprintf("You heal yourself for %d.", healed))
		return nil
	}

	cmdCtx.World.BroadcastRoom(cmdCtx.Room.Id, fmt.Sprintf("%s heals %s.", actor.Name, patient.Name), actor, patient)
	patient.Send(fmt.Sprintf("%s heals you for %d.", actor.Name, healed))
	actor.Send(fmt.Sprintf("You heal %s for %d.", patient.Name, healed))
	return nil
}

// castFireball resolves immediately and is not subject to the melee
// cooldown.
func castFireball(cmdCtx *CommandContext, targetName string) error {
	if targetName == "" {
		return NewUserError("Cast fireball at whom?")
	}

	actor := cmdCtx.Actor
	victim := cmdCtx.Room.FindPlayer(targetName)
	if victim == nil {
		return errNotHere
	}
	if victim == actor {
		return NewUserError("You can't target yourself.")
	}
	if !actor.SpendMana(fireballCost) {
		return NewUserError("You don't have enough mana.")
	}

	victim.ApplyDamage(fireballPower)
	actor.TargetId = victim.Id

	cmdCtx.World.BroadcastRoom(cmdCtx.Room.Id,
		fmt.Sprintf("%s hurls a fireball at %s!", actor.Name, victim.Name),
		actor, victim)
	victim.Send(fmt.Sprintf("%s's fireball engulfs you! [%d]", actor.Name, fireballPower))
	actor.Send(fmt.Sprintf("Your fireball engulfs %s! [%d]", victim.Name, fireballPower))

	if victim.IsDead() {
		combat.ResolveDeath(cmdCtx.World, actor, victim)
	}
	return nil
}
