package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pixil98/skirmish/internal/commands"
	"github.com/pixil98/skirmish/internal/game"
)

const readBufferSize = 4096

// PlayerManager runs one session per accepted connection.
type PlayerManager struct {
	world      *game.World
	cmdHandler *commands.Handler
	maxPending int
}

type PlayerManagerOpt func(*PlayerManager)

// WithMaxPending sets how many writes may queue for one client before it is
// disconnected as a slow consumer.
func WithMaxPending(n int) PlayerManagerOpt {
	return func(m *PlayerManager) {
		m.maxPending = n
	}
}

func NewPlayerManager(world *game.World, cmd *commands.Handler, opts ...PlayerManagerOpt) *PlayerManager {
	m := &PlayerManager{
		world:      world,
		cmdHandler: cmd,
		maxPending: DefaultMaxPending,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RunSession drives a connection from the banner until the player quits,
// the connection fails or ctx is canceled. The player is always removed
// from the world before it returns.
func (m *PlayerManager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	out := NewOutbox(conn, m.maxPending)

	var p *game.Player
	m.world.Do(func() {
		p = m.world.Connect(out)
		p.Send(banner)
		p.Send(namePrompt)
		p.State = game.StateNaming
	})
	slog.InfoContext(ctx, "player connected", "id", p.Id)

	defer func() {
		m.world.Do(func() {
			m.world.Disconnect(p)
		})
		out.Close()
		slog.InfoContext(ctx, "player disconnected", "id", p.Id, "name", p.Name)
	}()

	done := make(chan struct{})
	defer close(done)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go readLines(conn, lines, readErr, done)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-out.Failed():
			return fmt.Errorf("writing to client: %w", out.Err())

		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading from client: %w", err)

		case line := <-lines:
			var quit bool
			m.world.Do(func() {
				m.handleLine(ctx, p, line)
				quit = p.State == game.StateDisconnected
			})
			if quit {
				return nil
			}
		}
	}
}

// readLines decodes conn until it fails. Every line is delivered before the
// error is reported.
func readLines(conn io.Reader, lines chan<- string, readErr chan<- error, done <-chan struct{}) {
	var dec LineDecoder
	buf := make([]byte, readBufferSize)

	for {
		n, err := conn.Read(buf)
		for _, line := range dec.Feed(buf[:n]) {
			select {
			case lines <- line:
			case <-done:
				return
			}
		}
		if err != nil {
			readErr <- err
			return
		}
	}
}

// handleLine routes a line according to the player's login state. The
// caller must hold the world lock.
func (m *PlayerManager) handleLine(ctx context.Context, p *game.Player, line string) {
	switch p.State {
	case game.StateConnecting, game.StateNaming:
		m.chooseName(ctx, p, line)
	case game.StateClassSelection:
		m.world.Activate(p, game.ParseClass(line))
		slog.InfoContext(ctx, "player entered the game", "id", p.Id, "name", p.Name, "class", p.Class)
	case game.StateActive:
		m.cmdHandler.Dispatch(ctx, p, line)
	}
}
