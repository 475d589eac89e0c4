package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"golang.org/x/crypto/ssh"
)

// SshListener serves sessions over ssh. Players name themselves at login, so
// clients are not authenticated. Each connection carries one player session.
type SshListener struct {
	port   uint16
	cm     *ConnectionManager
	config *ssh.ServerConfig
}

func NewSshListener(port uint16, cm *ConnectionManager, hostKey ssh.Signer) *SshListener {
	config := &ssh.ServerConfig{
		NoClientAuth:  true,
		ServerVersion: "SSH-2.0-Skirmish",
	}
	config.AddHostKey(hostKey)

	return &SshListener{
		port:   port,
		cm:     cm,
		config: config,
	}
}

func (l *SshListener) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}
	return l.serve(ctx, listener)
}

func (l *SshListener) serve(ctx context.Context, listener net.Listener) error {
	slog.InfoContext(ctx, "listening for ssh", "addr", listener.Addr().String())

	connCtx, cancelConns := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	defer func() {
		cancelConns()
		wg.Wait()
	}()

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return fmt.Errorf("accepting ssh connections: %w", err)
			}
			slog.ErrorContext(ctx, "accepting ssh connection", "error", err)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			l.handleConnection(connCtx, conn)
		}()
	}
}

func (l *SshListener) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	sshConn, chans, reqs, err := ssh.NewServerConn(conn, l.config)
	if err != nil {
		slog.WarnContext(ctx, "ssh handshake", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	defer sshConn.Close()

	slog.InfoContext(ctx, "ssh connection established", "remote", conn.RemoteAddr(), "client", string(sshConn.ClientVersion()))

	// Unblock the channel loop on shutdown.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			sshConn.Close()
		case <-done:
		}
	}()

	go ssh.DiscardRequests(reqs)

	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			_ = newChan.Reject(ssh.UnknownChannelType, "unknown channel type")
			continue
		}

		ch, requests, err := newChan.Accept()
		if err != nil {
			slog.ErrorContext(ctx, "accepting ssh channel", "error", err)
			continue
		}

		if !awaitShell(ctx, requests) {
			ch.Close()
			continue
		}

		l.cm.AcceptConnection(ctx, newCRLFReadWriter(ch))
		ch.Close()
		return
	}
}

// awaitShell answers channel requests until the client asks for a shell.
// SSH clients won't forward input until they receive the shell reply. PTY
// requests are refused so the client keeps local echo and line editing.
func awaitShell(ctx context.Context, requests <-chan *ssh.Request) bool {
	ready := make(chan bool, 1)
	go func() {
		started := false
		for req := range requests {
			switch req.Type {
			case "shell":
				_ = req.Reply(!started, nil)
				if !started {
					started = true
					ready <- true
				}
			default:
				_ = req.Reply(false, nil)
			}
		}
		if !started {
			ready <- false
		}
	}()

	select {
	case ok := <-ready:
		return ok
	case <-ctx.Done():
		return false
	}
}
