package listener

import (
	"context"
	"io"
	"log/slog"
)

// SessionRunner runs a player session over an established connection.
type SessionRunner interface {
	RunSession(ctx context.Context, conn io.ReadWriter) error
}

// ConnectionManager hands accepted connections from every listener to the
// session runner.
type ConnectionManager struct {
	sessions SessionRunner
}

func NewConnectionManager(sessions SessionRunner) *ConnectionManager {
	return &ConnectionManager{
		sessions: sessions,
	}
}

// AcceptConnection blocks until the session on conn ends.
func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	if err := m.sessions.RunSession(ctx, conn); err != nil {
		slog.WarnContext(ctx, "player session", "error", err)
	}
}
