package quic

import (
	"context"
	"errors"
	"sync"

	"github.com/TheusHen/kryptolang/kryptolang/protocol"
	"github.com/TheusHen/kryptolang/kryptolang/registry"
	"github.com/TheusHen/kryptolang/kryptolang/service"
	q "github.com/quic-go/quic-go"
)

var ErrClientClosed = errors.New("quic: client closed")

// Client calls remote services, resolving each role through a registry.
// Connections are shared per address and redialled when they die.
type Client struct {
	resolver registry.Resolver

	mu     sync.Mutex
	conns  map[string]q.Connection
	closed bool
}

var _ service.Collaborators = (*Client)(nil)

func NewClient(resolver registry.Resolver) *Client {
	return &Client{resolver: resolver, conns: map[string]q.Connection{}}
}

func (c *Client) conn(ctx context.Context, role registry.Role) (q.Connection, error) {
	ep, err := c.resolver.Lookup(role)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClientClosed
	}
	if conn, ok := c.conns[ep.Addr]; ok && conn.Context().Err() == nil {
		return conn, nil
	}
	conn, err := Dial(ctx, ep.Addr)
	if err != nil {
		return nil, err
	}
	c.conns[ep.Addr] = conn
	return conn, nil
}

func (c *Client) call(ctx context.Context, role registry.Role, t protocol.MessageType, req, resp any) error {
	conn, err := c.conn(ctx, role)
	if err != nil {
		return err
	}
	st, err := conn.OpenStreamSync(ctx)
	if err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = st.SetDeadline(deadline)
	}

	f, err := protocol.NewFrame(t, req)
	if err != nil {
		st.CancelWrite(0)
		return err
	}
	if err := protocol.WriteFrame(st, f); err != nil {
		return err
	}
	// Closing only ends our write side; the response is still readable.
	if err := st.Close(); err != nil {
		return err
	}

	out, err := protocol.ReadFrame(st)
	if err != nil {
		return err
	}
	return protocol.DecodeFrame(out, protocol.MessageTypeResult, resp)
}

func (c *Client) Parse(ctx context.Context, req protocol.ParseRequest) (protocol.ParseResponse, error) {
	var resp protocol.ParseResponse
	err := c.call(ctx, registry.RoleParser, protocol.MessageTypeParse, req, &resp)
	return resp, err
}

func (c *Client) GenerateLexicon(ctx context.Context, req protocol.LexiconRequest) (protocol.LexiconResponse, error) {
	var resp protocol.LexiconResponse
	err := c.call(ctx, registry.RoleLexicon, protocol.MessageTypeLexicon, req, &resp)
	return resp, err
}

func (c *Client) AnalyzeGrammar(ctx context.Context, req protocol.GrammarRequest) (protocol.GrammarResponse, error) {
	var resp protocol.GrammarResponse
	err := c.call(ctx, registry.RoleGrammar, protocol.MessageTypeGrammar, req, &resp)
	return resp, err
}

func (c *Client) Cipher(ctx context.Context, req protocol.CipherRequest) (protocol.CipherResponse, error) {
	var resp protocol.CipherResponse
	err := c.call(ctx, registry.RoleCrypto, protocol.MessageTypeCipher, req, &resp)
	return resp, err
}

// Process asks the remote gateway to run the whole pipeline.
func (c *Client) Process(ctx context.Context, req protocol.ProcessRequest) (protocol.CipherResponse, error) {
	var resp protocol.CipherResponse
	err := c.call(ctx, registry.RoleGateway, protocol.MessageTypeProcess, req, &resp)
	return resp, err
}

// Close closes every open connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	for addr, conn := range c.conns {
		_ = conn.CloseWithError(0, "client closed")
		delete(c.conns, addr)
	}
	return nil
}
