package service

import (
	"context"
	"log/slog"

	"github.com/TheusHen/kryptolang/kryptolang/logging"
	"github.com/TheusHen/kryptolang/kryptolang/protocol"
)

// Pipeline step names, as reported in StepError.
const (
	StepParse   = "parse"
	StepLexicon = "lexicon"
	StepGrammar = "grammar"
	StepCipher  = "cipher"
)

// StepError records which collaborator call failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string { return "gateway: " + e.Step + ": " + e.Err.Error() }

func (e *StepError) Unwrap() error { return e.Err }

// Gateway chains parse, lexicon, grammar and cipher for one request.
type Gateway struct {
	c      Collaborators
	logger *slog.Logger
}

func NewGateway(c Collaborators, logger *slog.Logger) *Gateway {
	return &Gateway{c: c, logger: logging.OrNop(logger)}
}

// Process runs the full pipeline. The returned error is either
// ErrInvalidRequest (wrapped) or a *StepError.
func (g *Gateway) Process(ctx context.Context, req protocol.ProcessRequest) (protocol.CipherResponse, error) {
	if err := req.Validate(); err != nil {
		return protocol.CipherResponse{}, invalid(err)
	}

	parsed, err := g.c.Parse(ctx, protocol.ParseRequest{Text: req.Text})
	if err != nil {
		return g.fail(StepParse, err)
	}

	lex, err := g.c.GenerateLexicon(ctx, protocol.LexiconRequest{
		Passphrase:  req.Passphrase,
		UniqueWords: parsed.UniqueWords,
	})
	if err != nil {
		return g.fail(StepLexicon, err)
	}

	gram, err := g.c.AnalyzeGrammar(ctx, protocol.GrammarRequest{
		Passphrase: req.Passphrase,
		ParsedText: parsed,
	})
	if err != nil {
		return g.fail(StepGrammar, err)
	}

	res, err := g.c.Cipher(ctx, protocol.CipherRequest{
		Lexicon:   lex,
		Grammar:   gram,
		Operation: req.Operation,
		Text:      req.Text,
	})
	if err != nil {
		return g.fail(StepCipher, err)
	}
	return res, nil
}

func (g *Gateway) fail(step string, err error) (protocol.CipherResponse, error) {
	g.logger.Warn("pipeline step failed", "step", step, "error", err)
	return protocol.CipherResponse{}, &StepError{Step: step, Err: err}
}
