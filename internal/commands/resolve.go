package commands

import (
	"strings"

	"github.com/pixil98/skirmish/internal/game"
)

// Scope selects which containers a name is looked up in.
type Scope int

const (
	ScopeRoomItems Scope = 1 << iota
	ScopeRoomMobs
	ScopeRoomPlayers
	ScopeInventory

	ScopeEntities = ScopeRoomMobs | ScopeRoomPlayers
	ScopeAll      = ScopeRoomItems | ScopeRoomMobs | ScopeRoomPlayers | ScopeInventory
)

// Target is the result of resolving a name. Exactly one field is set.
type Target struct {
	Item   *game.ItemInstance
	Mob    *game.Mob
	Player *game.Player

	// Carried is set when Item came from the actor's inventory.
	Carried bool
}

// Entity returns the mob or player, or nil for an item.
func (t *Target) Entity() game.Entity {
	switch {
	case t.Mob != nil:
		return t.Mob
	case t.Player != nil:
		return t.Player
	}
	return nil
}

// resolve finds name among the scopes in priority order: room items, room
// mobs, active room players, then the actor's inventory. Matching is exact
// and case-insensitive.
func resolve(cmdCtx *CommandContext, name string, scope Scope) *Target {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	if scope&ScopeRoomItems != 0 {
		if oi := cmdCtx.Room.Items.FindByName(name); oi != nil {
			return &Target{Item: oi}
		}
	}
	if scope&ScopeRoomMobs != 0 {
		if m := cmdCtx.Room.FindMob(name); m != nil {
			return &Target{Mob: m}
		}
	}
	if scope&ScopeRoomPlayers != 0 {
		if p := cmdCtx.Room.FindPlayer(name); p != nil {
			return &Target{Player: p}
		}
	}
	if scope&ScopeInventory != 0 {
		if oi := cmdCtx.Actor.Inventory.FindByName(name); oi != nil {
			return &Target{Item: oi, Carried: true}
		}
	}
	return nil
}
