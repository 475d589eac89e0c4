package listener

import (
	"bufio"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"net"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
	"golang.org/x/crypto/ssh"
)

func startSshListener(t *testing.T) (string, func()) {
	t.Helper()

	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	signer, err := ssh.NewSignerFromKey(key)
	if err != nil {
		t.Fatalf("creating signer: %v", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	l := NewSshListener(0, NewConnectionManager(echoRunner{}), signer)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- l.serve(ctx, ln) }()

	stop := func() {
		cancel()
		select {
		case err := <-errc:
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("listener did not stop")
		}
	}
	return ln.Addr().String(), stop
}

func dialSsh(t *testing.T, addr string) *ssh.Client {
	t.Helper()
	client, err := ssh.Dial("tcp", addr, &ssh.ClientConfig{
		User:            "alice",
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         2 * time.Second,
	})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return client
}

func TestSshListener_Session(t *testing.T) {
	addr, stop := startSshListener(t)
	defer stop()

	client := dialSsh(t, addr)
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	defer session.Close()

	err = session.RequestPty("xterm", 24, 80, ssh.TerminalModes{})
	testutil.AssertErrorContains(t, err, "pty-req")

	stdin, err := session.StdinPipe()
	if err != nil {
		t.Fatalf("stdin: %v", err)
	}
	stdout, err := session.StdoutPipe()
	if err != nil {
		t.Fatalf("stdout: %v", err)
	}
	if err := session.Shell(); err != nil {
		t.Fatalf("shell: %v", err)
	}

	reader := bufio.NewReader(stdout)
	for _, line := range []string{"hello", "look"} {
		if _, err := stdin.Write([]byte(line + "\n")); err != nil {
			t.Fatalf("write: %v", err)
		}
		got, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		testutil.AssertEqual(t, "reply", got, "echo: "+line+"\r\n")
	}
}

func TestSshListener_RejectsUnknownChannel(t *testing.T) {
	addr, stop := startSshListener(t)
	defer stop()

	client := dialSsh(t, addr)
	defer client.Close()

	_, _, err := client.OpenChannel("direct-tcpip", nil)
	testutil.AssertErrorContains(t, err, "unknown channel type")
}
