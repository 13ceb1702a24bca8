// Package bms is the public entry point of the chart-parsing core: it
// wires the lexer, random-block controller and processor pipeline into
// one call, and provides the inverse (Unparse) for round-tripping a
// model back to tokens (spec.md §6.2).
package bms

import (
	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/lex"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/process"
	"github.com/go-bms/bmscore/internal/prompt"
	"github.com/go-bms/bmscore/internal/random"
)

// ParseConfig bundles every pluggable collaborator a parse needs
// (spec.md §6.2's "config fields (enumerated)"). Every field is
// optional; ParseBMS substitutes a sensible default for a nil one.
type ParseConfig struct {
	// Prompter resolves duplicate definitions/events. Defaults to
	// prompt.AlwaysWarnAndUseNewer: a chart with accidental duplicates
	// should still parse to completion with a visible warning trail,
	// not abort (unlike prompt.PanicAndUseNewer, which is a debugging
	// aid, not a safe default for arbitrary input), and the later
	// definition wins (spec.md §8 scenario S1: `#WAVaa hoge.wav` then
	// `#WAVAA fuga.wav` without `#BASE 62` resolves to `fuga.wav`).
	Prompter prompt.Prompter

	// Rng drives #RANDOM/#SWITCH block selection. Defaults to
	// random.NewMathRandRng(0), a math/rand source with the fixed seed 0,
	// so every parse of the same source selects the same branches.
	Rng random.Rng

	// Relaxers controls lexer strictness. The zero value is the
	// lenient lex.DefaultRelaxers() behavior.
	Relaxers lex.Config

	// KeyLayoutMapper resolves a note channel's raw lane digit to a
	// logical Lane. Defaults to process.Beat7KLayout{}.
	KeyLayoutMapper process.KeyLayoutMapper

	// CaseSensitiveOverride forces Representation.CaseSensitive to a
	// fixed value regardless of whether #BASE 62 appears in source,
	// for callers that already know a chart's id width out of band.
	CaseSensitiveOverride *bool
}

// ParseResult is everything a caller needs out of a parse (spec.md
// §6.2): the model plus every diagnostic collected along the way, kept
// as separate slices rather than folded into a single error so a caller
// can render lexer issues distinctly from pipeline issues.
type ParseResult struct {
	Model *model.Model

	LexWarnings   []diag.Warning
	ParseWarnings []diag.Warning
	ParseErrors   []diag.Error

	// TokenRanges is the full post-random-filter live token stream,
	// kept for callers that want to re-render diagnostics against
	// exact source byte ranges (spec.md §6.3).
	TokenRanges []lex.TokenWithRange
}

func (c ParseConfig) withDefaults() ParseConfig {
	if c.Prompter == nil {
		c.Prompter = prompt.AlwaysWarnAndUseNewer{}
	}
	if c.Rng == nil {
		c.Rng = random.NewMathRandRng(0)
	}
	if c.KeyLayoutMapper == nil {
		c.KeyLayoutMapper = process.Beat7KLayout{}
	}
	return c
}

// ParseBMS lexes, resolves #RANDOM/#SWITCH blocks, and runs the
// processor pipeline over source, returning a fully populated model plus
// every diagnostic collected along the way (spec.md §4, §6.2).
func ParseBMS(source string, cfg ParseConfig) ParseResult {
	cfg = cfg.withDefaults()

	lexResult := lex.Lex(source, cfg.Relaxers)

	live, randWarnings, randErrs := random.Filter(lexResult.Tokens, cfg.Rng)

	m := model.New()
	if cfg.CaseSensitiveOverride != nil {
		m.Representation.CaseSensitive = *cfg.CaseSensitiveOverride
	}

	pipeline := process.New(cfg.KeyLayoutMapper)
	pipelineWarnings, pipelineErrs := pipeline.Run(m, cfg.Prompter, live)

	return ParseResult{
		Model:         m,
		LexWarnings:   lexResult.Warnings,
		ParseWarnings: append(append([]diag.Warning{}, randWarnings...), pipelineWarnings...),
		ParseErrors:   append(append([]diag.Error{}, randErrs...), pipelineErrs...),
		TokenRanges:   live,
	}
}
