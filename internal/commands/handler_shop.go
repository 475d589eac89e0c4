package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixil98/skirmish/internal/game"
)

var errNoShop = NewUserError("There is no shop here.")

func handleList(ctx context.Context, cmdCtx *CommandContext) error {
	if !cmdCtx.Room.IsShop() {
		return errNoShop
	}

	lines := []string{"For sale:"}
	for _, item := range cmdCtx.Room.Catalog() {
		lines = append(lines, fmt.Sprintf("  %-20s %4d gold  (%s)", item.Name, item.Cost, item.Type))
	}
	cmdCtx.Actor.Send(strings.Join(lines, "\n"))
	return nil
}

func handleBuy(ctx context.Context, cmdCtx *CommandContext) error {
	if !cmdCtx.Room.IsShop() {
		return errNoShop
	}
	if cmdCtx.Args == "" {
		return NewUserError("Buy what?")
	}

	tmpl := cmdCtx.Room.FindCatalogItem(cmdCtx.Args)
	if tmpl == nil {
		return UserErrorf("Nobody here sells %s.", cmdCtx.Args)
	}

	actor := cmdCtx.Actor
	if tmpl.Cost > actor.Gold {
		return NewUserError("Not enough gold.")
	}

	actor.Gold -= tmpl.Cost
	oi := game.NewItemInstance(tmpl)
	actor.Inventory.Add(oi)

	actor.Send(fmt.Sprintf("You buy a %s for %d gold.", oi.Name(), tmpl.Cost))
	return nil
}
