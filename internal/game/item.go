package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pixil98/go-errors"
)

type ItemType string

const (
	ItemTypeWeapon ItemType = "weapon"
	ItemTypePotion ItemType = "potion"
	ItemTypeMisc   ItemType = "misc"
)

// Item is an item template loaded from asset files. Shops sell copies of
// these and rooms spawn them at startup.
type Item struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        ItemType `json:"type"`

	// Value is the damage bonus for weapons and the heal amount for potions.
	Value int `json:"value,omitempty"`
	Cost  int `json:"cost,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (i *Item) Validate() error {
	el := errors.NewErrorList()

	if i.Name == "" {
		el.Add(fmt.Errorf("item name is required"))
	}

	switch i.Type {
	case ItemTypeWeapon, ItemTypePotion, ItemTypeMisc:
	default:
		el.Add(fmt.Errorf("invalid item type %q", i.Type))
	}

	if i.Value < 0 {
		el.Add(fmt.Errorf("value must not be negative"))
	}
	if i.Cost < 0 {
		el.Add(fmt.Errorf("cost must not be negative"))
	}

	return el.Err()
}

// ItemInstance is a single live item. Moving it between containers moves
// the pointer; it is never copied.
type ItemInstance struct {
	InstanceId string
	Item       *Item
}

// NewItemInstance mints a fresh instance with its own copy of the template.
func NewItemInstance(def *Item) *ItemInstance {
	cp := *def
	return &ItemInstance{
		InstanceId: uuid.New().String(),
		Item:       &cp,
	}
}

func (oi *ItemInstance) Name() string {
	return oi.Item.Name
}

// MatchName returns true if name matches the item name (case-insensitive).
func (oi *ItemInstance) MatchName(name string) bool {
	return strings.EqualFold(oi.Item.Name, name)
}
