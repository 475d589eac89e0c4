package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/skirmish/internal/combat"
	"github.com/pixil98/skirmish/internal/game"
)

type CombatConfig struct {
	Cooldown    string   `json:"cooldown"`
	RegenChance *float64 `json:"regen_chance,omitempty"`
}

func (c *CombatConfig) validate() error {
	el := errors.NewErrorList()

	if c.Cooldown != "" {
		d, err := time.ParseDuration(c.Cooldown)
		if err != nil {
			el.Add(fmt.Errorf("parsing cooldown: %w", err))
		} else if d < 0 {
			el.Add(fmt.Errorf("cooldown must not be negative"))
		}
	}

	if c.RegenChance != nil && (*c.RegenChance < 0 || *c.RegenChance > 1) {
		el.Add(fmt.Errorf("regen_chance must be between 0 and 1"))
	}

	return el.Err()
}

func (c *CombatConfig) BuildEngine(world *game.World) (*combat.Engine, error) {
	var opts []combat.EngineOpt
	if c.Cooldown != "" {
		d, err := time.ParseDuration(c.Cooldown)
		if err != nil {
			return nil, fmt.Errorf("parsing cooldown: %w", err)
		}
		opts = append(opts, combat.WithCooldown(d))
	}
	if c.RegenChance != nil {
		opts = append(opts, combat.WithRegenChance(*c.RegenChance))
	}

	return combat.NewEngine(world, opts...), nil
}
