package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/skirmish/internal/commands"
	"github.com/pixil98/skirmish/internal/game"
	"github.com/pixil98/skirmish/internal/player"
)

type WorldConfig struct {
	StartRoom string `json:"start_room"`
}

func (c *WorldConfig) validate() error {
	el := errors.NewErrorList()

	if c.StartRoom == "" {
		el.Add(fmt.Errorf("start_room is required"))
	}

	return el.Err()
}

func (c *WorldConfig) BuildWorld(dict *game.Dictionary, opts ...game.WorldOpt) (*game.World, error) {
	return game.NewWorld(dict.Rooms.GetAll(), c.StartRoom, opts...)
}

type PlayerManagerConfig struct {
	MaxPending int `json:"max_pending"`
}

func (c *PlayerManagerConfig) validate() error {
	el := errors.NewErrorList()

	if c.MaxPending < 0 {
		el.Add(fmt.Errorf("max_pending must not be negative"))
	}

	return el.Err()
}

func (c *PlayerManagerConfig) BuildPlayerManager(world *game.World, cmdHandler *commands.Handler) *player.PlayerManager {
	var opts []player.PlayerManagerOpt
	if c.MaxPending > 0 {
		opts = append(opts, player.WithMaxPending(c.MaxPending))
	}
	return player.NewPlayerManager(world, cmdHandler, opts...)
}
