package quic

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/TheusHen/kryptolang/kryptolang/protocol"
	"github.com/TheusHen/kryptolang/kryptolang/registry"
	"github.com/TheusHen/kryptolang/kryptolang/registry/memory"
	"github.com/TheusHen/kryptolang/kryptolang/service"
)

// startServer serves every role on one loopback listener.
func startServer(t *testing.T, gateway bool) *Client {
	t.Helper()

	ln, err := Listen("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	local := service.NewLocal(time.Minute, nil)
	var gw *service.Gateway
	if gateway {
		gw = service.NewGateway(local, nil)
	}
	srv := NewServer(local, gw, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	addrs := map[registry.Role]string{}
	for _, r := range registry.Roles() {
		addrs[r] = ln.AddrString()
	}
	c := NewClient(memory.FromAddrs(addrs))

	t.Cleanup(func() {
		_ = c.Close()
		cancel()
		_ = ln.Close()
		<-done
	})
	return c
}

func TestClientCollaborators(t *testing.T) {
	c := startServer(t, false)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	parsed, err := c.Parse(ctx, protocol.ParseRequest{Text: "You kill dog"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed.UniqueWords) != 3 || parsed.Verbs[0] != "kill" {
		t.Fatalf("unexpected parse %+v", parsed)
	}

	lex, err := c.GenerateLexicon(ctx, protocol.LexiconRequest{Passphrase: "kryptolang", UniqueWords: parsed.UniqueWords})
	if err != nil {
		t.Fatalf("GenerateLexicon: %v", err)
	}
	if lex.Lexicon["dog"] != "nalir" {
		t.Fatalf("unexpected lexicon %v", lex.Lexicon)
	}

	profile, err := c.AnalyzeGrammar(ctx, protocol.GrammarRequest{Passphrase: "kryptolang", ParsedText: parsed})
	if err != nil {
		t.Fatalf("AnalyzeGrammar: %v", err)
	}

	out, err := c.Cipher(ctx, protocol.CipherRequest{Lexicon: lex, Grammar: profile, Operation: "encrypt", Text: "You kill dog"})
	if err != nil {
		t.Fatalf("Cipher: %v", err)
	}
	if out.Result != "nalir lamar-lasust" {
		t.Fatalf("unexpected ciphertext %q", out.Result)
	}
}

func TestClientRemoteError(t *testing.T) {
	c := startServer(t, false)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := c.GenerateLexicon(ctx, protocol.LexiconRequest{})
	var remote *protocol.RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if !strings.Contains(remote.Message, "missing passphrase") {
		t.Fatalf("unexpected message %q", remote.Message)
	}

	// Gateway disabled on this server.
	_, err = c.Process(ctx, protocol.ProcessRequest{Text: "I eat", Passphrase: "p", Operation: "encrypt"})
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
}

func TestRemoteGatewayOverQUICCollaborators(t *testing.T) {
	c := startServer(t, true)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	enc, err := c.Process(ctx, protocol.ProcessRequest{Text: "You kill dog", Passphrase: "kryptolang", Operation: "encrypt"})
	if err != nil {
		t.Fatalf("Process(encrypt): %v", err)
	}
	if enc.Result != "nalir lamar-lasust" {
		t.Fatalf("unexpected ciphertext %q", enc.Result)
	}

	// A gateway driving the collaborators through the QUIC client.
	gw := service.NewGateway(c, nil)
	dec, err := gw.Process(ctx, protocol.ProcessRequest{Text: enc.Result, Passphrase: "kryptolang", Operation: "decrypt"})
	if err != nil {
		t.Fatalf("Process(decrypt): %v", err)
	}
	if dec.Result != "You killed dog" {
		t.Fatalf("unexpected plaintext %q", dec.Result)
	}
}

func TestClientClosed(t *testing.T) {
	c := NewClient(memory.FromAddrs(map[registry.Role]string{registry.RoleParser: "127.0.0.1:1"}))
	_ = c.Close()
	if _, err := c.Parse(context.Background(), protocol.ParseRequest{Text: "x"}); !errors.Is(err, ErrClientClosed) {
		t.Fatalf("expected ErrClientClosed, got %v", err)
	}
}

func TestClientUnknownRole(t *testing.T) {
	c := NewClient(memory.New())
	defer c.Close()
	if _, err := c.Parse(context.Background(), protocol.ParseRequest{Text: "x"}); !errors.Is(err, registry.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
