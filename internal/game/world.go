package game

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/pixil98/go-errors"
)

const (
	SubjectGlobal     = "skirmish.global"
	subjectRoomPrefix = "skirmish.room."
)

// RoomSubject is the event subject carrying broadcasts for one room.
func RoomSubject(roomId string) string {
	return subjectRoomPrefix + roomId
}

// EventSink receives a copy of every broadcast.
type EventSink interface {
	Publish(subject string, data []byte) error
}

type discardSink struct{}

func (discardSink) Publish(string, []byte) error { return nil }

// World is the single source of truth for all mutable game state. Every
// method other than Do expects the caller to already be inside Do.
type World struct {
	mu sync.Mutex

	rooms     map[string]*RoomInstance
	mobs      map[string]*Mob
	startRoom string

	// players is the registry of every connection, in connect order.
	players []*Player

	renderer Renderer
	events   EventSink
}

type WorldOpt func(*World)

func WithRenderer(r Renderer) WorldOpt {
	return func(w *World) {
		w.renderer = r
	}
}

func WithEventSink(s EventSink) WorldOpt {
	return func(w *World) {
		if s != nil {
			w.events = s
		}
	}
}

// NewWorld builds live room instances from resolved room definitions.
// Every exit must lead to a known room.
func NewWorld(rooms map[string]*Room, startRoom string, opts ...WorldOpt) (*World, error) {
	w := &World{
		rooms:     make(map[string]*RoomInstance, len(rooms)),
		mobs:      map[string]*Mob{},
		startRoom: startRoom,
		events:    discardSink{},
	}
	for _, opt := range opts {
		opt(w)
	}

	el := errors.NewErrorList()
	for id, def := range rooms {
		ri, err := NewRoomInstance(id, def)
		if err != nil {
			el.Add(err)
			continue
		}
		w.rooms[id] = ri
		for _, m := range ri.mobs {
			w.mobs[m.Id] = m
		}
	}

	for id, def := range rooms {
		for dir, dest := range def.Exits {
			if _, ok := rooms[dest]; !ok {
				el.Add(fmt.Errorf("room %q exit %s: %w: %q", id, dir, ErrRoomNotFound, dest))
			}
		}
	}

	if _, ok := rooms[startRoom]; !ok {
		el.Add(fmt.Errorf("start room: %w: %q", ErrRoomNotFound, startRoom))
	}

	if err := el.Err(); err != nil {
		return nil, err
	}
	return w, nil
}

// Do runs fn while holding the world lock.
func (w *World) Do(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn()
}

// Room returns the room instance with the given id, or nil.
func (w *World) Room(id string) *RoomInstance {
	return w.rooms[id]
}

func (w *World) StartRoom() *RoomInstance {
	return w.rooms[w.startRoom]
}

// Connect registers a new unauthenticated player writing to out.
func (w *World) Connect(out Outbox) *Player {
	p := newPlayer(w, out)
	w.players = append(w.players, p)
	return p
}

// Activate places a named player with a chosen class into the start room
// and announces them.
func (w *World) Activate(p *Player, class Class) {
	p.Init(class)

	start := w.StartRoom()
	p.RoomId = start.Id
	start.addPlayer(p)
	p.State = StateActive

	w.BroadcastGlobal(fmt.Sprintf("%s has entered the realm.", p.Name), p)
	p.Send(start.Describe(p))
}

// Disconnect removes a player from its room and the registry. It is safe
// to call more than once.
func (w *World) Disconnect(p *Player) {
	if p.State == StateDisconnected {
		return
	}
	wasActive := p.IsActive()

	if ri := w.rooms[p.RoomId]; ri != nil {
		ri.removePlayer(p)
	}
	w.players = slices.DeleteFunc(w.players, func(o *Player) bool { return o == p })
	p.State = StateDisconnected

	if wasActive {
		w.BroadcastGlobal(fmt.Sprintf("%s has left the realm.", p.Name))
	}
}

// Players returns every registered player in connect order.
func (w *World) Players() []*Player {
	out := make([]*Player, len(w.players))
	copy(out, w.players)
	return out
}

// ActivePlayers returns the registered players that are in the game.
func (w *World) ActivePlayers() []*Player {
	var out []*Player
	for _, p := range w.players {
		if p.IsActive() {
			out = append(out, p)
		}
	}
	return out
}

// Player returns a registered player by id, or nil.
func (w *World) Player(id string) *Player {
	for _, p := range w.players {
		if p.Id == id {
			return p
		}
	}
	return nil
}

// Entity resolves a combat target id to a registered player or a mob.
// Players that have disconnected resolve to nil.
func (w *World) Entity(id string) Entity {
	if id == "" {
		return nil
	}
	if p := w.Player(id); p != nil {
		return p
	}
	if m, ok := w.mobs[id]; ok {
		return m
	}
	return nil
}

// FindPlayerByName returns the active player with the given name.
func (w *World) FindPlayerByName(name string) *Player {
	for _, p := range w.players {
		if p.IsActive() && p.MatchName(name) {
			return p
		}
	}
	return nil
}

// LookupPlayer is FindPlayerByName reporting a miss as ErrPlayerNotFound.
func (w *World) LookupPlayer(name string) (*Player, error) {
	if p := w.FindPlayerByName(name); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrPlayerNotFound, name)
}

// NameTaken reports whether another player has already claimed name.
func (w *World) NameTaken(name string, self *Player) bool {
	for _, p := range w.players {
		if p == self || p.State < StateClassSelection || p.State == StateDisconnected {
			continue
		}
		if p.MatchName(name) {
			return true
		}
	}
	return false
}

// Relocate moves a player between presence sets without any notices.
func (w *World) Relocate(p *Player, roomId string) error {
	to := w.rooms[roomId]
	if to == nil {
		return fmt.Errorf("relocating %s: %w: %q", p.Name, ErrRoomNotFound, roomId)
	}
	if from := w.rooms[p.RoomId]; from != nil {
		from.removePlayer(p)
	}
	p.RoomId = roomId
	to.addPlayer(p)
	return nil
}

// BroadcastRoom sends msg to every active player in a room except those
// excluded.
func (w *World) BroadcastRoom(roomId string, msg string, exclude ...*Player) {
	ri := w.rooms[roomId]
	if ri == nil {
		return
	}
	for _, p := range ri.players {
		if p.IsActive() && !slices.Contains(exclude, p) {
			p.Send(msg)
		}
	}
	w.publish(RoomSubject(roomId), msg)
}

// BroadcastGlobal sends msg to every active player except those excluded.
func (w *World) BroadcastGlobal(msg string, exclude ...*Player) {
	for _, p := range w.players {
		if p.IsActive() && !slices.Contains(exclude, p) {
			p.Send(msg)
		}
	}
	w.publish(SubjectGlobal, msg)
}

func (w *World) publish(subject string, msg string) {
	if err := w.events.Publish(subject, []byte(msg)); err != nil {
		slog.Warn("publishing event", "subject", subject, "error", err)
	}
}
