package display

import (
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
	"github.com/pixil98/skirmish/internal/game"
)

func newTestPlayer(t *testing.T, w *game.World, name string) *game.Player {
	t.Helper()
	var p *game.Player
	w.Do(func() {
		p = w.Connect(nil)
		p.Name = name
		p.State = game.StateClassSelection
		w.Activate(p, game.ClassMage)
	})
	return p
}

func newTestWorld(t *testing.T) *game.World {
	t.Helper()
	w, err := game.NewWorld(map[string]*game.Room{
		"square": {Title: "Town Square", Description: "A dusty square."},
	}, "square")
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func TestScreen_Render(t *testing.T) {
	tests := map[string]struct {
		hp          int
		withTarget  bool
		targetHP    int
		expContains []string
		expMissing  []string
	}{
		"healthy and safe": {
			hp: 100,
			expContains: []string{
				"Alice the Mage  HP \x1b[32m100/100\x1b[0m  Mana 100/100  Level 1  Gold 100\x1b[K\n",
				"[ safe ]\x1b[K\n",
			},
		},
		"low health is red": {
			hp:          33,
			expContains: []string{"HP \x1b[31m33/100\x1b[0m"},
		},
		"just above a third is green": {
			hp:          34,
			expContains: []string{"HP \x1b[32m34/100\x1b[0m"},
		},
		"fighting": {
			hp:          100,
			withTarget:  true,
			targetHP:    20,
			expContains: []string{"Fighting Bob  HP \x1b[31m20/100\x1b[0m\x1b[K\n"},
			expMissing:  []string{"[ safe ]"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := NewScreen()
			if err != nil {
				t.Fatalf("NewScreen: %v", err)
			}
			w := newTestWorld(t)
			alice := newTestPlayer(t, w, "Alice")
			bob := newTestPlayer(t, w, "Bob")
			alice.HP = tt.hp
			bob.HP = tt.targetHP

			var target game.Entity
			if tt.withTarget {
				target = bob
			}
			out := string(s.Render(alice, target))

			testutil.AssertEqual(t, "clears", strings.HasPrefix(out, clearScreen), true)
			testutil.AssertEqual(t, "prompt", strings.HasSuffix(out, "\n> "), true)
			for _, exp := range tt.expContains {
				if !strings.Contains(out, exp) {
					t.Errorf("output missing %q:\n%q", exp, out)
				}
			}
			for _, exp := range tt.expMissing {
				if strings.Contains(out, exp) {
					t.Errorf("output unexpectedly contains %q", exp)
				}
			}
		})
	}
}

func TestScreen_RenderWrapsLog(t *testing.T) {
	s, err := NewScreen(WithWidth(20))
	if err != nil {
		t.Fatalf("NewScreen: %v", err)
	}
	w := newTestWorld(t)
	alice := newTestPlayer(t, w, "Alice")
	w.Do(func() {
		alice.Send("the quick brown fox jumps over the lazy dog")
	})

	out := string(s.Render(alice, nil))

	testutil.AssertEqual(t, "wrapped", strings.Contains(out, "the quick brown fox\njumps over the lazy\ndog\n"), true)
}
