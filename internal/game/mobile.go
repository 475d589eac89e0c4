package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pixil98/go-errors"
)

// Mobile defines a type of mob loaded from asset files.
type Mobile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Level       int    `json:"level,omitempty"`
}

// Validate satisfies storage.ValidatingSpec
func (m *Mobile) Validate() error {
	el := errors.NewErrorList()
	if m.Name == "" {
		el.Add(fmt.Errorf("mobile name is required"))
	}
	if m.Level < 0 {
		el.Add(fmt.Errorf("mobile level must not be negative"))
	}
	return el.Err()
}

// Mob is stationary scenery. It has a single hit point and cannot be
// attacked.
type Mob struct {
	Actor
	Mobile *Mobile
}

func NewMob(def *Mobile, roomId string) *Mob {
	level := def.Level
	if level < 1 {
		level = 1
	}
	return &Mob{
		Actor: Actor{
			Id:          uuid.New().String(),
			Name:        def.Name,
			Description: def.Description,
			Level:       level,
			HP:          1,
			MaxHP:       1,
			RoomId:      roomId,
		},
		Mobile: def,
	}
}

func (m *Mob) AttackPower() int {
	return m.Attack
}

// Send is a no-op; mobs have no connection.
func (m *Mob) Send(string) {}
