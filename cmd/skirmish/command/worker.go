package command

import (
	"fmt"

	"github.com/pixil98/go-service"
	"github.com/pixil98/skirmish/internal/commands"
	"github.com/pixil98/skirmish/internal/display"
	"github.com/pixil98/skirmish/internal/driver"
	"github.com/pixil98/skirmish/internal/game"
	"github.com/pixil98/skirmish/internal/listener"
	"github.com/pixil98/skirmish/internal/messaging"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	dict, err := cfg.Storage.BuildDictionary()
	if err != nil {
		return nil, fmt.Errorf("building dictionary: %w", err)
	}

	screen, err := display.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}

	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	world, err := cfg.World.BuildWorld(dict,
		game.WithRenderer(screen),
		game.WithEventSink(messaging.NewEventPublisher(natsServer)),
	)
	if err != nil {
		return nil, fmt.Errorf("creating world: %w", err)
	}

	cmdHandler := commands.NewHandler(world)
	pm := cfg.PlayerManager.BuildPlayerManager(world, cmdHandler)
	cm := listener.NewConnectionManager(pm)

	engine, err := cfg.Combat.BuildEngine(world)
	if err != nil {
		return nil, fmt.Errorf("creating combat engine: %w", err)
	}

	workers := service.WorkerList{
		"nats": natsServer,
		"driver": driver.NewMudDriver(
			[]driver.Manager{engine},
			driver.WithTickLength(cfg.tickLength()),
		),
	}

	for i, l := range cfg.Listeners {
		w, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		workers[fmt.Sprintf("listener-%d", i)] = w
	}

	return workers, nil
}
