package quic

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/TheusHen/kryptolang/kryptolang/logging"
	"github.com/TheusHen/kryptolang/kryptolang/protocol"
	"github.com/TheusHen/kryptolang/kryptolang/service"
	q "github.com/quic-go/quic-go"
)

// streamTimeout bounds one request/response exchange on the server side.
const streamTimeout = 10 * time.Second

// Server answers collaborator and gateway requests.
type Server struct {
	collab  service.Collaborators
	gateway *service.Gateway
	logger  *slog.Logger
}

// NewServer serves collab directly and runs PROCESS requests through gateway.
// A nil gateway disables PROCESS.
func NewServer(collab service.Collaborators, gateway *service.Gateway, logger *slog.Logger) *Server {
	return &Server{collab: collab, gateway: gateway, logger: logging.OrNop(logger)}
}

// Serve accepts connections until ctx is done or the listener fails.
// It returns nil when stopped through ctx.
func (s *Server) Serve(ctx context.Context, ln *Listener) error {
	for {
		conn, err := ln.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		go s.serveConn(ctx, conn)
	}
}

func (s *Server) serveConn(ctx context.Context, conn q.Connection) {
	remote := conn.RemoteAddr().String()
	s.logger.Debug("connection accepted", "remote", remote)
	for {
		st, err := conn.AcceptStream(ctx)
		if err != nil {
			s.logger.Debug("connection closed", "remote", remote, "error", err)
			return
		}
		go s.serveStream(ctx, st)
	}
}

func (s *Server) serveStream(ctx context.Context, st q.Stream) {
	defer st.Close()
	_ = st.SetDeadline(time.Now().Add(streamTimeout))

	req, err := protocol.ReadFrame(st)
	if err != nil {
		s.logger.Warn("read request frame", "error", err)
		st.CancelRead(0)
		return
	}
	resp := s.dispatch(ctx, req)
	if resp.Type == protocol.MessageTypeError {
		s.logger.Warn("request failed", "type", req.Type.String(), "payload", string(resp.Payload))
	}
	if err := protocol.WriteFrame(st, resp); err != nil {
		s.logger.Warn("write response frame", "error", err)
	}
}

func (s *Server) dispatch(ctx context.Context, f protocol.Frame) protocol.Frame {
	switch f.Type {
	case protocol.MessageTypeParse:
		return handle(ctx, f, s.collab.Parse)
	case protocol.MessageTypeLexicon:
		return handle(ctx, f, s.collab.GenerateLexicon)
	case protocol.MessageTypeGrammar:
		return handle(ctx, f, s.collab.AnalyzeGrammar)
	case protocol.MessageTypeCipher:
		return handle(ctx, f, s.collab.Cipher)
	case protocol.MessageTypeProcess:
		if s.gateway == nil {
			return protocol.ErrorFrame(errGatewayDisabled)
		}
		return handle(ctx, f, s.gateway.Process)
	default:
		return protocol.ErrorFrame(protocol.ErrInvalidType)
	}
}

var errGatewayDisabled = errors.New("quic: gateway not served here")

func handle[Req, Resp any](ctx context.Context, f protocol.Frame, fn func(context.Context, Req) (Resp, error)) protocol.Frame {
	var req Req
	if err := protocol.DecodeFrame(f, f.Type, &req); err != nil {
		return protocol.ErrorFrame(err)
	}
	resp, err := fn(ctx, req)
	if err != nil {
		return protocol.ErrorFrame(err)
	}
	out, err := protocol.NewFrame(protocol.MessageTypeResult, resp)
	if err != nil {
		return protocol.ErrorFrame(err)
	}
	return out
}
