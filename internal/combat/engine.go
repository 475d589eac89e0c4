package combat

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/pixil98/skirmish/internal/game"
)

const (
	DefaultCooldown    = time.Second
	DefaultRegenChance = 0.1
)

// Engine runs regeneration and melee rounds for every active player. It
// is a driver manager and runs once per tick.
type Engine struct {
	world *game.World

	cooldown    time.Duration
	regenChance float64

	now  func() time.Time
	roll func() float64
}

type EngineOpt func(*Engine)

// WithClock replaces the time source used for attack cooldowns.
func WithClock(now func() time.Time) EngineOpt {
	return func(e *Engine) {
		e.now = now
	}
}

// WithRoll replaces the random source used for regeneration. It must
// return values in [0, 1).
func WithRoll(roll func() float64) EngineOpt {
	return func(e *Engine) {
		e.roll = roll
	}
}

func WithCooldown(d time.Duration) EngineOpt {
	return func(e *Engine) {
		e.cooldown = d
	}
}

func WithRegenChance(chance float64) EngineOpt {
	return func(e *Engine) {
		e.regenChance = chance
	}
}

func NewEngine(w *game.World, opts ...EngineOpt) *Engine {
	e := &Engine{
		world:       w,
		cooldown:    DefaultCooldown,
		regenChance: DefaultRegenChance,
		now:         time.Now,
		roll:        rand.Float64,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Tick processes one round under the world lock.
func (e *Engine) Tick(ctx context.Context) error {
	e.world.Do(e.round)
	return nil
}

func (e *Engine) round() {
	var regenerated []*game.Player

	for _, p := range e.world.ActivePlayers() {
		if e.regenerate(p) {
			regenerated = append(regenerated, p)
		}

		if p.TargetId == "" {
			continue
		}

		victim, ok := e.validTarget(p)
		if !ok {
			continue
		}

		now := e.now()
		if now.Sub(p.LastAttack) < e.cooldown {
			continue
		}
		p.LastAttack = now

		e.strike(p, victim)
	}

	// Players who only regenerated have not been redrawn yet.
	for _, p := range regenerated {
		p.Refresh()
	}
}

// regenerate rolls independently for one hp and one mana.
func (e *Engine) regenerate(p *game.Player) bool {
	hpRoll := e.roll() < e.regenChance
	manaRoll := e.roll() < e.regenChance

	changed := false
	if hpRoll && p.Heal(1) > 0 {
		changed = true
	}
	if manaRoll && p.RestoreMana(1) > 0 {
		changed = true
	}
	return changed
}

// validTarget resolves p's target, clearing it if it can no longer be
// fought.
func (e *Engine) validTarget(p *game.Player) (*game.Player, bool) {
	target := e.world.Entity(p.TargetId)
	if target == nil || target.Base().RoomId != p.RoomId {
		p.ClearTarget()
		p.Send("Your target has fled.")
		return nil, false
	}

	victim, ok := target.(*game.Player)
	if !ok || !victim.IsActive() {
		// Mobs cannot be fought.
		p.ClearTarget()
		p.Refresh()
		return nil, false
	}

	return victim, true
}

func (e *Engine) strike(attacker, victim *game.Player) {
	dmg := attacker.AttackPower()
	victim.ApplyDamage(dmg)

	verb := DamageVerb(dmg)
	e.world.BroadcastRoom(attacker.RoomId,
		fmt.Sprintf("%s's attack %s %s!", attacker.Name, verb, victim.Name),
		attacker, victim)
	attacker.Send(fmt.Sprintf("Your attack %s %s! [%d]", verb, victim.Name, dmg))
	victim.Send(fmt.Sprintf("%s's attack %s you! [%d]", attacker.Name, verb, dmg))

	if victim.IsDead() {
		ResolveDeath(e.world, attacker, victim)
	}
}
