package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/pixil98/skirmish/internal/game"
)

const genericFailure = "Something went wrong. Please try again."

// CommandContext is everything a command needs to act on behalf of a
// player. Room is the actor's room at the moment the line was received.
type CommandContext struct {
	World *game.World
	Actor *game.Player
	Room  *game.RoomInstance
	Verb  string
	Args  string
}

// CommandFunc executes one verb. Returning a *UserError reports a problem
// to the actor; any other error is treated as a server fault.
type CommandFunc func(ctx context.Context, cmdCtx *CommandContext) error

// Handler maps verbs to their CommandFuncs.
type Handler struct {
	world *game.World
	verbs map[string]CommandFunc
}

// NewHandler creates a handler with every built-in verb registered.
func NewHandler(world *game.World) *Handler {
	h := &Handler{
		world: world,
		verbs: make(map[string]CommandFunc),
	}

	h.Register(handleQuit, "quit")
	h.Register(h.handleHelp, "help")
	h.Register(handleWho, "who")
	h.Register(handleScore, "score")

	h.Register(handleSay, "say")
	h.Register(handleYell, "yell")
	h.Register(handleEmote, "emote")
	h.Register(handleTell, "tell")

	h.Register(handleLook, "look", "l")
	h.Register(handleExamine, "examine")
	h.Register(handleExits, "exits")
	for verb := range directionAliases {
		h.Register(handleMove, verb)
	}

	h.Register(handleInventory, "inventory", "inv", "i")
	h.Register(handleGet, "get")
	h.Register(handleDrop, "drop")
	h.Register(handleGive, "give")
	h.Register(handleWield, "wield")
	h.Register(handleUse, "use")

	h.Register(handleList, "list")
	h.Register(handleBuy, "buy")

	h.Register(handleKill, "kill", "k")
	h.Register(handleCast, "cast")

	return h
}

// Register binds fn to each of the given verbs, replacing any previous
// binding.
func (h *Handler) Register(fn CommandFunc, verbs ...string) {
	for _, v := range verbs {
		h.verbs[strings.ToLower(v)] = fn
	}
}

// Verbs returns every registered verb in sorted order.
func (h *Handler) Verbs() []string {
	verbs := make([]string, 0, len(h.verbs))
	for v := range h.verbs {
		verbs = append(verbs, v)
	}
	slices.Sort(verbs)
	return verbs
}

// Exec runs one input line for actor. The caller must hold the world lock.
// An unknown verb is answered directly and is not an error.
func (h *Handler) Exec(ctx context.Context, actor *game.Player, line string) error {
	verb, args, _ := strings.Cut(strings.TrimSpace(line), " ")
	verb = strings.ToLower(verb)
	if verb == "" {
		return nil
	}

	fn, ok := h.verbs[verb]
	if !ok {
		actor.Send("Unknown command.")
		return nil
	}

	room := h.world.Room(actor.RoomId)
	if room == nil {
		return fmt.Errorf("player %s: %w: %q", actor.Name, game.ErrRoomNotFound, actor.RoomId)
	}

	return fn(ctx, &CommandContext{
		World: h.world,
		Actor: actor,
		Room:  room,
		Verb:  verb,
		Args:  strings.TrimSpace(args),
	})
}

// Dispatch runs Exec and reports any error to the actor.
func (h *Handler) Dispatch(ctx context.Context, actor *game.Player, line string) {
	err := h.Exec(ctx, actor, line)
	if err == nil {
		return
	}

	var userErr *UserError
	if errors.As(err, &userErr) {
		actor.Send(userErr.Message)
		return
	}

	slog.ErrorContext(ctx, "command failed", "player", actor.Name, "line", line, "error", err)
	actor.Send(genericFailure)
}
