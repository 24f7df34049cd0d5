package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/TheusHen/kryptolang/kryptolang"
	"github.com/TheusHen/kryptolang/kryptolang/cache"
	"github.com/TheusHen/kryptolang/kryptolang/cipher"
	"github.com/TheusHen/kryptolang/kryptolang/keys"
	"github.com/TheusHen/kryptolang/kryptolang/lexicon"
	"github.com/TheusHen/kryptolang/kryptolang/logging"
	"github.com/TheusHen/kryptolang/kryptolang/parser"
	"github.com/TheusHen/kryptolang/kryptolang/protocol"
)

// ErrInvalidRequest marks failures caused by the caller's input.
var ErrInvalidRequest = errors.New("service: invalid request")

// Collaborators is the set of operations the gateway chains.
type Collaborators interface {
	Parse(ctx context.Context, req protocol.ParseRequest) (protocol.ParseResponse, error)
	GenerateLexicon(ctx context.Context, req protocol.LexiconRequest) (protocol.LexiconResponse, error)
	AnalyzeGrammar(ctx context.Context, req protocol.GrammarRequest) (protocol.GrammarResponse, error)
	Cipher(ctx context.Context, req protocol.CipherRequest) (protocol.CipherResponse, error)
}

// Local implements Collaborators in-process. Sessions derived from a
// passphrase are cached by key fingerprint for the configured TTL.
type Local struct {
	sessions *cache.Store[*kryptolang.Session]
	logger   *slog.Logger
}

var _ Collaborators = (*Local)(nil)

func NewLocal(sessionTTL time.Duration, logger *slog.Logger) *Local {
	return &Local{
		sessions: cache.NewStore[*kryptolang.Session](sessionTTL),
		logger:   logging.OrNop(logger),
	}
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
}

// session returns the cached session for passphrase. Cached sessions are
// shared and must never have their profile overridden.
func (l *Local) session(passphrase string) (*kryptolang.Session, error) {
	key := keys.Derive(passphrase)
	fp := key.Fingerprint()
	return l.sessions.GetOrCreate(fp, func() (*kryptolang.Session, error) {
		l.logger.Debug("deriving session", "fingerprint", fp)
		return kryptolang.FromKey(key)
	})
}

func (l *Local) Parse(ctx context.Context, req protocol.ParseRequest) (protocol.ParseResponse, error) {
	if err := ctx.Err(); err != nil {
		return protocol.ParseResponse{}, err
	}
	return parser.Parse(req.Text), nil
}

func (l *Local) GenerateLexicon(ctx context.Context, req protocol.LexiconRequest) (protocol.LexiconResponse, error) {
	if err := ctx.Err(); err != nil {
		return protocol.LexiconResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return protocol.LexiconResponse{}, invalid(err)
	}
	s, err := l.session(req.Passphrase)
	if err != nil {
		return protocol.LexiconResponse{}, err
	}
	lex := s.Lexicon()

	var unknown []string
	for _, w := range req.UniqueWords {
		w = strings.ToLower(w)
		if _, ok := lex.Word(w); !ok {
			unknown = append(unknown, w)
		}
	}
	return protocol.LexiconResponse{
		Lexicon:      lex.Words(),
		Conjugations: lex.Conjugations(),
		UnknownWords: unknown,
	}, nil
}

// AnalyzeGrammar returns the profile derived from the passphrase. The parsed
// text does not influence the result; it only feeds the debug log.
func (l *Local) AnalyzeGrammar(ctx context.Context, req protocol.GrammarRequest) (protocol.GrammarResponse, error) {
	if err := ctx.Err(); err != nil {
		return protocol.GrammarResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return protocol.GrammarResponse{}, invalid(err)
	}
	s, err := l.session(req.Passphrase)
	if err != nil {
		return protocol.GrammarResponse{}, err
	}
	l.logger.Debug("grammar analyzed",
		"fingerprint", s.Fingerprint(),
		"profile", s.Profile().String(),
		"objects", len(req.ParsedText.Objects))
	return s.Profile(), nil
}

func (l *Local) Cipher(ctx context.Context, req protocol.CipherRequest) (protocol.CipherResponse, error) {
	if err := ctx.Err(); err != nil {
		return protocol.CipherResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return protocol.CipherResponse{}, invalid(err)
	}
	op, _ := cipher.ParseOperation(req.Operation)
	lex, err := lexicon.FromMaps(req.Lexicon.Lexicon, req.Lexicon.Conjugations)
	if err != nil {
		return protocol.CipherResponse{}, invalid(err)
	}
	result := cipher.New(lex, req.Grammar).Run(op, req.Text)
	return protocol.CipherResponse{Result: result}, nil
}

// Cached reports how many sessions are currently cached.
func (l *Local) Cached() int { return l.sessions.Count() }

// Sweep drops expired sessions.
func (l *Local) Sweep() int {
	n := l.sessions.Cleanup()
	if n > 0 {
		l.logger.Debug("expired sessions removed", "count", n)
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (l *Local) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}
