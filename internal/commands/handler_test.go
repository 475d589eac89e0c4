package commands

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
	"github.com/pixil98/skirmish/internal/game"
	"github.com/pixil98/skirmish/internal/storage"
)

type nopOutbox struct{}

func (nopOutbox) Enqueue([]byte) {}

var (
	testSword  = &game.Item{Name: "sword", Description: "A sharp blade.", Type: game.ItemTypeWeapon, Value: 5, Cost: 50}
	testPotion = &game.Item{Name: "red potion", Description: "It smells of cherries.", Type: game.ItemTypePotion, Value: 25, Cost: 10}
	testPlate  = &game.Item{Name: "plate armor", Type: game.ItemTypeMisc, Cost: 500}
	testDagger = &game.Item{Name: "dagger", Description: "Rusty.", Type: game.ItemTypeWeapon, Value: 2}
)

func newTestWorld(t *testing.T) *game.World {
	t.Helper()
	rooms := map[string]*game.Room{
		"square": {
			Title:       "Town Square",
			Description: "A dusty square.",
			Exits:       map[string]string{"east": "shop", "up": "tower"},
			Mobiles: []storage.SmartIdentifier[*game.Mobile]{
				storage.NewResolvedSmartIdentifier("dog", &game.Mobile{Name: "dog", Description: "A scruffy dog."}),
			},
			Items: []storage.SmartIdentifier[*game.Item]{
				storage.NewResolvedSmartIdentifier("dagger", testDagger),
			},
		},
		"shop": {
			Title:       "General Store",
			Description: "Shelves of dusty goods.",
			Exits:       map[string]string{"west": "square"},
			Shop: []storage.SmartIdentifier[*game.Item]{
				storage.NewResolvedSmartIdentifier("sword", testSword),
				storage.NewResolvedSmartIdentifier("red-potion", testPotion),
				storage.NewResolvedSmartIdentifier("plate-armor", testPlate),
			},
		},
		"tower": {
			Title:       "Tower",
			Description: "Wind howls.",
			Exits:       map[string]string{"down": "square"},
		},
	}

	w, err := game.NewWorld(rooms, "square")
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func addPlayer(t *testing.T, w *game.World, name string, class game.Class, roomId string) *game.Player {
	t.Helper()
	p := w.Connect(nopOutbox{})
	p.Name = name
	p.State = game.StateClassSelection
	w.Activate(p, class)
	if roomId != "" {
		if err := w.Relocate(p, roomId); err != nil {
			t.Fatalf("Relocate: %v", err)
		}
	}
	return p
}

func lastLine(p *game.Player) string {
	log := p.Log()
	if len(log) == 0 {
		return ""
	}
	return log[len(log)-1]
}

func logContains(p *game.Player, substr string) bool {
	return slices.ContainsFunc(p.Log(), func(l string) bool {
		return strings.Contains(l, substr)
	})
}

func TestHandler_Dispatch(t *testing.T) {
	tests := map[string]struct {
		line    string
		expLast string
	}{
		"unknown verb":       {line: "dance", expLast: "Unknown command."},
		"verb is lowercased": {line: "SAY hi", expLast: "You say: hi"},
		"args are trimmed":   {line: "say    hello there  ", expLast: "You say: hello there"},
		"user error":         {line: "say", expLast: "Say what?"},
		"server error":       {line: "explode", expLast: genericFailure},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := newTestWorld(t)
			h := NewHandler(w)
			h.Register(func(context.Context, *CommandContext) error {
				return errors.New("kaboom")
			}, "explode")
			alice := addPlayer(t, w, "Alice", game.ClassWarrior, "")

			h.Dispatch(context.Background(), alice, tt.line)

			testutil.AssertEqual(t, "last line", lastLine(alice), tt.expLast)
		})
	}
}

func TestHandler_Verbs(t *testing.T) {
	h := NewHandler(newTestWorld(t))
	verbs := h.Verbs()

	for _, v := range []string{
		"quit", "help", "who", "say", "yell", "emote", "tell", "give", "examine",
		"kill", "k", "inv", "i", "get", "drop", "wield", "use", "list", "buy",
		"n", "s", "e", "w", "u", "d", "north", "down", "look", "l", "cast", "score", "exits",
	} {
		if !slices.Contains(verbs, v) {
			t.Errorf("verb %q not registered", v)
		}
	}
	testutil.AssertEqual(t, "sorted", slices.IsSorted(verbs), true)
}

func TestHandler_Quit(t *testing.T) {
	w := newTestWorld(t)
	h := NewHandler(w)
	alice := addPlayer(t, w, "Alice", game.ClassWarrior, "")
	bob := addPlayer(t, w, "Bob", game.ClassWarrior, "")

	h.Dispatch(context.Background(), alice, "quit")

	testutil.AssertEqual(t, "goodbye", lastLine(alice), "Goodbye!")
	testutil.AssertEqual(t, "state", alice.State, game.StateDisconnected)
	testutil.AssertEqual(t, "registry", w.Player(alice.Id) == nil, true)
	testutil.AssertEqual(t, "presence", w.StartRoom().HasPlayer(alice), false)
	testutil.AssertEqual(t, "departure", lastLine(bob), "Alice has left the realm.")
}

func TestHandler_Messages(t *testing.T) {
	tests := map[string]struct {
		line     string
		expAlice string
		expBob   string
		expCarol string
	}{
		"say": {
			line:     "say hello",
			expAlice: "You say: hello",
			expBob:   "Alice says: hello",
		},
		"yell": {
			line:     "yell hello",
			expAlice: "You yell: hello",
			expBob:   "Alice yells: hello",
			expCarol: "Alice yells: hello",
		},
		"emote": {
			line:     "emote waves.",
			expAlice: "Alice waves.",
			expBob:   "Alice waves.",
		},
		"tell across rooms": {
			line:     "tell carol psst",
			expAlice: "You tell Carol: psst",
			expCarol: "Alice tells you: psst",
		},
		"tell nobody": {
			line:     "tell dave psst",
			expAlice: "No one named dave is online.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := newTestWorld(t)
			h := NewHandler(w)
			alice := addPlayer(t, w, "Alice", game.ClassWarrior, "")
			bob := addPlayer(t, w, "Bob", game.ClassWarrior, "")
			carol := addPlayer(t, w, "Carol", game.ClassWarrior, "tower")

			h.Dispatch(context.Background(), alice, tt.line)

			testutil.AssertEqual(t, "alice", lastLine(alice), tt.expAlice)
			if tt.expBob != "" {
				testutil.AssertEqual(t, "bob", lastLine(bob), tt.expBob)
			}
			if tt.expCarol != "" {
				testutil.AssertEqual(t, "carol", lastLine(carol), tt.expCarol)
			} else if logContains(carol, "hello") || logContains(carol, "waves") {
				t.Errorf("carol overheard a room message")
			}
		})
	}
}

func TestHandler_Who(t *testing.T) {
	w := newTestWorld(t)
	h := NewHandler(w)
	alice := addPlayer(t, w, "Alice", game.ClassWarrior, "")
	addPlayer(t, w, "Bob", game.ClassMage, "tower")

	naming := w.Connect(nopOutbox{})
	naming.Name = "Ghost"
	naming.State = game.StateNaming

	h.Dispatch(context.Background(), alice, "who")

	testutil.AssertEqual(t, "header", logContains(alice, "Players online (2):"), true)
	testutil.AssertEqual(t, "alice", logContains(alice, "Warrior] Alice"), true)
	testutil.AssertEqual(t, "bob", logContains(alice, "Mage   ] Bob"), true)
	testutil.AssertEqual(t, "ghost", logContains(alice, "Ghost"), false)
}

func TestResolve(t *testing.T) {
	w := newTestWorld(t)
	alice := addPlayer(t, w, "Alice", game.ClassWarrior, "")
	bob := addPlayer(t, w, "Bob", game.ClassWarrior, "")
	room := w.StartRoom()
	cmdCtx := &CommandContext{World: w, Actor: alice, Room: room}

	// An item on the floor shadows the player of the same name.
	room.Items.Add(game.NewItemInstance(&game.Item{Name: "bob", Type: game.ItemTypeMisc}))
	carried := game.NewItemInstance(&game.Item{Name: "dagger", Type: game.ItemTypeMisc})
	alice.Inventory.Add(carried)

	tests := map[string]struct {
		name      string
		scope     Scope
		expItem   string
		expCarry  bool
		expMob    bool
		expPlayer *game.Player
		expNil    bool
	}{
		"room item before player":    {name: "BOB", scope: ScopeAll, expItem: "bob"},
		"player when items skipped":  {name: "bob", scope: ScopeEntities, expPlayer: bob},
		"mob":                        {name: "Dog", scope: ScopeAll, expMob: true},
		"room item before inventory": {name: "dagger", scope: ScopeAll, expItem: "dagger"},
		"inventory only":             {name: "dagger", scope: ScopeInventory, expItem: "dagger", expCarry: true},
		"missing":                    {name: "cat", scope: ScopeAll, expNil: true},
		"empty":                      {name: " ", scope: ScopeAll, expNil: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			target := resolve(cmdCtx, tt.name, tt.scope)
			if tt.expNil {
				testutil.AssertEqual(t, "nil", target == nil, true)
				return
			}
			if target == nil {
				t.Fatalf("expected a target for %q", tt.name)
			}

			if tt.expItem != "" {
				testutil.AssertEqual(t, "item", target.Item.Name(), tt.expItem)
				testutil.AssertEqual(t, "carried", target.Carried, tt.expCarry)
			}
			testutil.AssertEqual(t, "mob", target.Mob != nil, tt.expMob)
			testutil.AssertEqual(t, "player", target.Player, tt.expPlayer)
		})
	}
}

func TestHandler_Examine(t *testing.T) {
	tests := map[string]struct {
		line   string
		expLog string
	}{
		"mob":        {line: "examine dog", expLog: "A scruffy dog."},
		"player":     {line: "examine bob", expLog: "Level 1, HP 200/200"},
		"floor item": {line: "examine dagger", expLog: "Rusty."},
		"look at":    {line: "look dog", expLog: "A scruffy dog."},
		"missing":    {line: "examine cat", expLog: "You don't see cat here."},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := newTestWorld(t)
			h := NewHandler(w)
			alice := addPlayer(t, w, "Alice", game.ClassWarrior, "")
			addPlayer(t, w, "Bob", game.ClassWarrior, "")

			h.Dispatch(context.Background(), alice, tt.line)

			testutil.AssertEqual(t, "log", logContains(alice, tt.expLog), true)
		})
	}
}
