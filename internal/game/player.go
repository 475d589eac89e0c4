package game

import (
	"strings"

	"github.com/google/uuid"
)

const (
	// MaxLogLines is how many rendered lines a player keeps.
	MaxLogLines = 20

	StartingGold = 100
)

// LoginState tracks a connection's progress from accept to play.
type LoginState int

const (
	StateConnecting LoginState = iota
	StateNaming
	StateClassSelection
	StateActive
	StateDisconnected
)

func (s LoginState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateNaming:
		return "naming"
	case StateClassSelection:
		return "class-selection"
	case StateActive:
		return "active"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

type Class int

const (
	ClassWarrior Class = iota
	ClassMage
)

// ParseClass interprets a class selection. Anything that is not a warrior
// selection picks mage.
func ParseClass(sel string) Class {
	switch strings.ToLower(strings.TrimSpace(sel)) {
	case "warrior", "w":
		return ClassWarrior
	default:
		return ClassMage
	}
}

func (c Class) String() string {
	if c == ClassWarrior {
		return "Warrior"
	}
	return "Mage"
}

// mageStaff is handed to every new mage.
var mageStaff = &Item{
	Name:        "oak staff",
	Description: "A plain staff of seasoned oak, humming faintly.",
	Type:        ItemTypeWeapon,
	Value:       3,
	Cost:        10,
}

// Outbox queues bytes for delivery to a player's connection. Enqueue must
// not block.
type Outbox interface {
	Enqueue(data []byte)
}

// Renderer builds the full screen shown to an active player.
type Renderer interface {
	Render(p *Player, target Entity) []byte
}

// Player is a connected client, from accept until disconnect.
type Player struct {
	Actor

	Class     Class
	State     LoginState
	Inventory *Inventory

	// WeaponId is the instance id of the wielded item; it always names an
	// item in Inventory or is empty.
	WeaponId string

	log   []string
	out   Outbox
	world *World
}

func newPlayer(w *World, out Outbox) *Player {
	return &Player{
		Actor: Actor{
			Id: uuid.New().String(),
		},
		State:     StateConnecting,
		Inventory: NewInventory(),
		out:       out,
		world:     w,
	}
}

// Init sets the class and the class's starting stats and gear.
func (p *Player) Init(class Class) {
	p.Class = class
	p.Level = 1
	p.Experience = 0
	p.ExpToLevel = ExpForLevel(2)
	p.Gold = StartingGold

	switch class {
	case ClassWarrior:
		p.MaxHP, p.MaxMana, p.Attack = 200, 0, 15
		p.Description = "A broad-shouldered warrior in battered mail."
	default:
		p.MaxHP, p.MaxMana, p.Attack = 100, 100, 5
		p.Description = "A robed mage with ink-stained fingers."
		p.Inventory.Add(NewItemInstance(mageStaff))
	}
	p.HP = p.MaxHP
	p.Mana = p.MaxMana
}

func (p *Player) IsActive() bool {
	return p.State == StateActive
}

// AttackPower is the base attack plus the wielded weapon's bonus.
func (p *Player) AttackPower() int {
	power := p.Attack
	if w := p.Weapon(); w != nil {
		power += w.Item.Value
	}
	return power
}

// Weapon returns the wielded item, or nil.
func (p *Player) Weapon() *ItemInstance {
	if p.WeaponId == "" {
		return nil
	}
	return p.Inventory.Get(p.WeaponId)
}

// Wield equips an item from the player's own inventory.
func (p *Player) Wield(oi *ItemInstance) error {
	if !p.Inventory.Contains(oi.InstanceId) {
		return ErrNotInInventory
	}
	if oi.Item.Type != ItemTypeWeapon {
		return ErrNotAWeapon
	}
	p.WeaponId = oi.InstanceId
	return nil
}

// TakeItem removes an item from the inventory, unwielding it first if
// needed. Returns nil if the item is not carried.
func (p *Player) TakeItem(instanceId string) *ItemInstance {
	oi := p.Inventory.Remove(instanceId)
	if oi != nil && p.WeaponId == instanceId {
		p.WeaponId = ""
	}
	return oi
}

// GainExperience adds xp and applies any level ups. Returns the number of
// levels gained.
func (p *Player) GainExperience(xp int) int {
	p.Experience += xp

	gained := 0
	for p.Level < MaxLevel && p.Experience >= ExpForLevel(p.Level+1) {
		p.Level++
		p.MaxHP += 10
		p.Attack += 2
		gained++
	}
	if gained > 0 {
		p.HP = p.MaxHP
		p.Mana = p.MaxMana
	}
	p.ExpToLevel = ExpForLevel(p.Level + 1)

	return gained
}

// Log returns the player's recent lines, oldest first.
func (p *Player) Log() []string {
	out := make([]string, len(p.log))
	copy(out, p.log)
	return out
}

func (p *Player) appendLog(lines ...string) {
	p.log = append(p.log, lines...)
	if over := len(p.log) - MaxLogLines; over > 0 {
		p.log = append(p.log[:0], p.log[over:]...)
	}
}

// Send appends msg to the player's log. Before the player is active the
// text goes out raw; afterwards every send redraws the whole screen.
func (p *Player) Send(msg string) {
	p.appendLog(strings.Split(strings.TrimRight(msg, "\n"), "\n")...)

	switch p.State {
	case StateActive:
		p.Refresh()
	case StateDisconnected:
	default:
		if p.out != nil {
			p.out.Enqueue([]byte(msg + "\n"))
		}
	}
}

// Refresh redraws the player's screen without adding to the log.
func (p *Player) Refresh() {
	if p.State != StateActive || p.out == nil || p.world == nil || p.world.renderer == nil {
		return
	}
	p.out.Enqueue(p.world.renderer.Render(p, p.world.Entity(p.TargetId)))
}
