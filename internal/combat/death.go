package combat

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/skirmish/internal/game"
)

// ResolveDeath settles a player killed by another player. The victim is
// restored and sent back to the start room, and the killer is rewarded.
// The caller must hold the world lock.
func ResolveDeath(w *game.World, killer, victim *game.Player) {
	w.BroadcastGlobal(fmt.Sprintf("%s has been slain by %s!", victim.Name, killer.Name))

	victim.HP = victim.MaxHP
	victim.ClearTarget()

	start := w.StartRoom()
	if err := w.Relocate(victim, start.Id); err != nil {
		slog.Error("respawning player", "player", victim.Name, "error", err)
	}
	victim.Send("You have been slain! You awaken in a familiar place...")
	victim.Send(start.Describe(victim))

	killer.ClearTarget()

	xp := game.KillReward(killer.Level, victim.Level)
	if xp <= 0 {
		killer.Refresh()
		return
	}

	killer.Send(fmt.Sprintf("You receive %d experience points.", xp))
	if killer.GainExperience(xp) > 0 {
		killer.Send(fmt.Sprintf("You have reached level %d!", killer.Level))
	}
}
