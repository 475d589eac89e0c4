package game

import (
	"strings"
	"time"
)

// Entity is anything that can stand in a room and be named as a combat
// target: players and mobs.
type Entity interface {
	Base() *Actor
	AttackPower() int
	Send(msg string)
}

// Actor holds the stats and location shared between players and mobs.
type Actor struct {
	Id          string
	Name        string
	Description string

	Level      int
	Experience int
	ExpToLevel int

	HP      int
	MaxHP   int
	Mana    int
	MaxMana int
	Attack  int
	Gold    int

	RoomId string

	// TargetId names the entity this actor is fighting. It is resolved
	// through the world on every use and may point at someone who left.
	TargetId   string
	LastAttack time.Time
}

func (a *Actor) Base() *Actor {
	return a
}

// MatchName returns true if name matches this actor's name (case-insensitive).
func (a *Actor) MatchName(name string) bool {
	return strings.EqualFold(a.Name, name)
}

// ApplyDamage subtracts dmg from hp, never going below zero.
func (a *Actor) ApplyDamage(dmg int) {
	a.HP -= dmg
	if a.HP < 0 {
		a.HP = 0
	}
}

// Heal adds up to n hp without exceeding max and returns the amount healed.
func (a *Actor) Heal(n int) int {
	before := a.HP
	a.HP = min(a.HP+n, a.MaxHP)
	return a.HP - before
}

// RestoreMana adds up to n mana without exceeding max.
func (a *Actor) RestoreMana(n int) int {
	before := a.Mana
	a.Mana = min(a.Mana+n, a.MaxMana)
	return a.Mana - before
}

// SpendMana deducts cost if the actor can afford it.
func (a *Actor) SpendMana(cost int) bool {
	if a.Mana < cost {
		return false
	}
	a.Mana -= cost
	return true
}

func (a *Actor) IsDead() bool {
	return a.HP <= 0
}

func (a *Actor) ClearTarget() {
	a.TargetId = ""
}

// LowHealth reports whether hp is at or below a third of max.
func (a *Actor) LowHealth() bool {
	return a.HP*3 <= a.MaxHP
}
