package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/skirmish/internal/driver"
)

type Config struct {
	TickInterval  string              `json:"tick_interval"`
	Listeners     []ListenerConfig    `json:"listeners"`
	Storage       StorageConfig       `json:"storage"`
	Nats          NatsConfig          `json:"nats"`
	Combat        CombatConfig        `json:"combat"`
	World         WorldConfig         `json:"world"`
	PlayerManager PlayerManagerConfig `json:"player_manager"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("tick_interval must be positive"))
		}
	}

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}
	for i, l := range c.Listeners {
		err := l.validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Combat.validate())
	el.Add(c.World.validate())
	el.Add(c.PlayerManager.validate())

	return el.Err()
}

func (c *Config) tickLength() time.Duration {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil || d <= 0 {
		return driver.DefaultTickLength
	}
	return d
}
