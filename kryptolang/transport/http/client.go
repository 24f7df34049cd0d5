package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/TheusHen/kryptolang/kryptolang/protocol"
	"github.com/TheusHen/kryptolang/kryptolang/registry"
	"github.com/TheusHen/kryptolang/kryptolang/service"
)

// MetaScheme is the endpoint meta key holding the URL scheme ("http" when
// absent).
const MetaScheme = "scheme"

const defaultTimeout = 30 * time.Second

// StatusError is a non-2xx answer from a remote service.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Code, e.Message)
}

// Client calls remote services over HTTP, resolving each role through a
// registry.
type Client struct {
	resolver registry.Resolver
	hc       *http.Client
}

var _ service.Collaborators = (*Client)(nil)

// NewClient uses hc for every call; nil means a client with a 30s timeout.
func NewClient(resolver registry.Resolver, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{resolver: resolver, hc: hc}
}

func (c *Client) url(role registry.Role, route string) (string, error) {
	ep, err := c.resolver.Lookup(role)
	if err != nil {
		return "", err
	}
	scheme := ep.Meta[MetaScheme]
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + ep.Addr + route, nil
}

func (c *Client) post(ctx context.Context, role registry.Role, route string, req, resp any) error {
	url, err := c.url(role, route)
	if err != nil {
		return err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	hreq.Header.Set("Content-Type", "application/json")
	if id := RequestID(ctx); id != "" {
		hreq.Header.Set(HeaderRequestID, id)
	}

	hresp, err := c.hc.Do(hreq)
	if err != nil {
		return err
	}
	defer hresp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(hresp.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	if hresp.StatusCode/100 != 2 {
		var e protocol.ErrorResponse
		if json.Unmarshal(data, &e) != nil || e.Error == "" {
			e.Error = http.StatusText(hresp.StatusCode)
		}
		return &StatusError{Code: hresp.StatusCode, Message: e.Error}
	}
	return json.Unmarshal(data, resp)
}

func (c *Client) Parse(ctx context.Context, req protocol.ParseRequest) (protocol.ParseResponse, error) {
	var resp protocol.ParseResponse
	err := c.post(ctx, registry.RoleParser, RouteParse, req, &resp)
	return resp, err
}

func (c *Client) GenerateLexicon(ctx context.Context, req protocol.LexiconRequest) (protocol.LexiconResponse, error) {
	var resp protocol.LexiconResponse
	err := c.post(ctx, registry.RoleLexicon, RouteLexicon, req, &resp)
	return resp, err
}

func (c *Client) AnalyzeGrammar(ctx context.Context, req protocol.GrammarRequest) (protocol.GrammarResponse, error) {
	var resp protocol.GrammarResponse
	err := c.post(ctx, registry.RoleGrammar, RouteGrammar, req, &resp)
	return resp, err
}

func (c *Client) Cipher(ctx context.Context, req protocol.CipherRequest) (protocol.CipherResponse, error) {
	var resp protocol.CipherResponse
	err := c.post(ctx, registry.RoleCrypto, RouteCipher, req, &resp)
	return resp, err
}

// Process calls the remote gateway.
func (c *Client) Process(ctx context.Context, req protocol.ProcessRequest) (protocol.CipherResponse, error) {
	var resp protocol.CipherResponse
	err := c.post(ctx, registry.RoleGateway, RouteProcess, req, &resp)
	return resp, err
}
