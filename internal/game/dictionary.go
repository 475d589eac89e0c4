package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/skirmish/internal/storage"
)

// Dictionary holds the static content stores.
type Dictionary struct {
	Rooms   storage.Storer[*Room]
	Mobiles storage.Storer[*Mobile]
	Items   storage.Storer[*Item]
}

// Resolve binds every room's mobile and item references, reporting all
// missing ones at once.
func (d *Dictionary) Resolve() error {
	el := errors.NewErrorList()

	for id, room := range d.Rooms.GetAll() {
		for i := range room.Mobiles {
			if err := room.Mobiles[i].Resolve(d.Mobiles); err != nil {
				el.Add(fmt.Errorf("room %q: %w", id, err))
			}
		}
		for i := range room.Items {
			if err := room.Items[i].Resolve(d.Items); err != nil {
				el.Add(fmt.Errorf("room %q: %w", id, err))
			}
		}
		for i := range room.Shop {
			if err := room.Shop[i].Resolve(d.Items); err != nil {
				el.Add(fmt.Errorf("room %q shop: %w", id, err))
			}
		}
	}

	return el.Err()
}
