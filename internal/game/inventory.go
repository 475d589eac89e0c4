package game

// Inventory is an ordered collection of item instances. Duplicates of the
// same template are permitted; instances are unique by InstanceId.
type Inventory struct {
	items []*ItemInstance
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{}
}

// Add appends an item instance.
func (inv *Inventory) Add(oi *ItemInstance) {
	inv.items = append(inv.items, oi)
}

// Remove removes an item instance by ID.
// Returns the removed instance, or nil if not found.
func (inv *Inventory) Remove(instanceId string) *ItemInstance {
	for i, oi := range inv.items {
		if oi.InstanceId == instanceId {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			return oi
		}
	}
	return nil
}

// Get returns an item instance by ID, or nil if not found.
func (inv *Inventory) Get(instanceId string) *ItemInstance {
	for _, oi := range inv.items {
		if oi.InstanceId == instanceId {
			return oi
		}
	}
	return nil
}

// Contains checks if an item instance is in the inventory.
func (inv *Inventory) Contains(instanceId string) bool {
	return inv.Get(instanceId) != nil
}

// FindByName returns the first item whose name matches, or nil.
func (inv *Inventory) FindByName(name string) *ItemInstance {
	for _, oi := range inv.items {
		if oi.MatchName(name) {
			return oi
		}
	}
	return nil
}

// Items returns the items in insertion order.
func (inv *Inventory) Items() []*ItemInstance {
	out := make([]*ItemInstance, len(inv.items))
	copy(out, inv.items)
	return out
}

func (inv *Inventory) Len() int {
	return len(inv.items)
}
