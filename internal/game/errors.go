package game

import "errors"

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrRoomNotFound   = errors.New("room not found")
	ErrNotInInventory = errors.New("item not in inventory")
	ErrNotAWeapon     = errors.New("item is not a weapon")
)
