package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/skirmish/internal/storage"
)

// Directions lists the compass names an exit may use, in display order.
var Directions = []string{"north", "south", "east", "west", "up", "down"}

// Room is a location loaded from asset files.
type Room struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Exits       map[string]string `json:"exits"` // direction -> room id

	Mobiles []storage.SmartIdentifier[*Mobile] `json:"mobiles,omitempty"`
	Items   []storage.SmartIdentifier[*Item]   `json:"items,omitempty"` // placed at startup
	Shop    []storage.SmartIdentifier[*Item]   `json:"shop,omitempty"`  // catalog; non-empty marks a shop
}

// Validate satisfies storage.ValidatingSpec. Exit destinations are checked
// when the world is built.
func (r *Room) Validate() error {
	el := errors.NewErrorList()

	if r.Title == "" {
		el.Add(fmt.Errorf("room title is required"))
	}

	for dir, dest := range r.Exits {
		if !slices.Contains(Directions, dir) {
			el.Add(fmt.Errorf("exit %q: unknown direction", dir))
		}
		if dest == "" {
			el.Add(fmt.Errorf("exit %s: room id is required", dir))
		}
	}

	for _, m := range r.Mobiles {
		el.Add(m.Validate())
	}
	for _, i := range r.Items {
		el.Add(i.Validate())
	}
	for _, i := range r.Shop {
		el.Add(i.Validate())
	}

	return el.Err()
}

// RoomInstance is the live state of a room: who is here and what lies on
// the floor.
type RoomInstance struct {
	Id   string
	Room *Room

	players []*Player
	mobs    []*Mob
	Items   *Inventory
}

// NewRoomInstance builds a room and spawns its mobs and items. The room's
// references must already be resolved.
func NewRoomInstance(id string, def *Room) (*RoomInstance, error) {
	ri := &RoomInstance{
		Id:    id,
		Room:  def,
		Items: NewInventory(),
	}

	for _, m := range def.Mobiles {
		if m.Get() == nil {
			return nil, fmt.Errorf("room %q: unresolved mobile %q", id, m.Id())
		}
		ri.mobs = append(ri.mobs, NewMob(m.Get(), id))
	}
	for _, i := range def.Items {
		if i.Get() == nil {
			return nil, fmt.Errorf("room %q: unresolved item %q", id, i.Id())
		}
		ri.Items.Add(NewItemInstance(i.Get()))
	}
	for _, i := range def.Shop {
		if i.Get() == nil {
			return nil, fmt.Errorf("room %q: unresolved shop item %q", id, i.Id())
		}
	}

	return ri, nil
}

// Exit returns the destination room id for a direction.
func (r *RoomInstance) Exit(dir string) (string, bool) {
	dest, ok := r.Room.Exits[dir]
	return dest, ok
}

// ExitNames returns the room's exits in compass order.
func (r *RoomInstance) ExitNames() []string {
	var names []string
	for _, d := range Directions {
		if _, ok := r.Room.Exits[d]; ok {
			names = append(names, d)
		}
	}
	return names
}

func (r *RoomInstance) IsShop() bool {
	return len(r.Room.Shop) > 0
}

// Catalog returns the shop's item templates.
func (r *RoomInstance) Catalog() []*Item {
	out := make([]*Item, 0, len(r.Room.Shop))
	for _, i := range r.Room.Shop {
		out = append(out, i.Get())
	}
	return out
}

// FindCatalogItem returns the template with the given name, or nil.
func (r *RoomInstance) FindCatalogItem(name string) *Item {
	for _, i := range r.Catalog() {
		if strings.EqualFold(i.Name, name) {
			return i
		}
	}
	return nil
}

// Players returns the room's presence set in arrival order.
func (r *RoomInstance) Players() []*Player {
	out := make([]*Player, len(r.players))
	copy(out, r.players)
	return out
}

func (r *RoomInstance) HasPlayer(p *Player) bool {
	return slices.Contains(r.players, p)
}

func (r *RoomInstance) addPlayer(p *Player) {
	if !r.HasPlayer(p) {
		r.players = append(r.players, p)
	}
}

func (r *RoomInstance) removePlayer(p *Player) {
	r.players = slices.DeleteFunc(r.players, func(o *Player) bool { return o == p })
}

func (r *RoomInstance) Mobs() []*Mob {
	out := make([]*Mob, len(r.mobs))
	copy(out, r.mobs)
	return out
}

// FindPlayer returns an active player in the room with the given name.
func (r *RoomInstance) FindPlayer(name string) *Player {
	for _, p := range r.players {
		if p.IsActive() && p.MatchName(name) {
			return p
		}
	}
	return nil
}

// FindMob returns a mob in the room with the given name.
func (r *RoomInstance) FindMob(name string) *Mob {
	for _, m := range r.mobs {
		if m.MatchName(name) {
			return m
		}
	}
	return nil
}

// Describe returns the room as seen by viewer.
func (r *RoomInstance) Describe(viewer *Player) string {
	var sb strings.Builder

	sb.WriteString(r.Room.Title)
	sb.WriteString("\n")
	sb.WriteString(r.Room.Description)
	sb.WriteString("\n")

	exits := r.ExitNames()
	if len(exits) == 0 {
		sb.WriteString("Exits: none\n")
	} else {
		fmt.Fprintf(&sb, "Exits: %s\n", strings.Join(exits, ", "))
	}

	if r.IsShop() {
		sb.WriteString("A shopkeeper waits behind the counter. (type 'list')\n")
	}

	for _, m := range r.mobs {
		fmt.Fprintf(&sb, "%s is here.\n", Capitalize(m.Name))
	}

	for _, oi := range r.Items.Items() {
		fmt.Fprintf(&sb, "%s lies on the ground.\n", Capitalize(withArticle(oi.Name())))
	}

	for _, p := range r.players {
		if p == viewer || !p.IsActive() {
			continue
		}
		fmt.Fprintf(&sb, "%s the %s is standing here.\n", p.Name, p.Class)
	}

	return strings.TrimRight(sb.String(), "\n")
}
