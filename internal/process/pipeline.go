package process

import (
	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/lex"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/prompt"
)

// Processor is the two-hook interface every token processor implements
// (spec.md §4.3). A processor is free to ignore any token outside its
// domain; the pipeline fans every live token out to every processor in
// a fixed order, regardless of whether that processor cares about it.
type Processor interface {
	OnHeader(m *model.Model, p prompt.Prompter, name, args string) ([]diag.Warning, []diag.Error)
	OnMessage(m *model.Model, p prompt.Prompter, tok lex.Token) ([]diag.Warning, []diag.Error)
}

// Pipeline runs the live token stream through the required processors
// in spec order (spec.md §4.3 items 1-12).
type Pipeline struct {
	processors []Processor
}

// New builds the pipeline with every required processor wired in, given
// the key-layout mapper the caller's game style selects (spec.md §4.3
// item 7).
func New(layout KeyLayoutMapper) *Pipeline {
	return &Pipeline{processors: []Processor{
		&MetadataProcessor{},
		&MusicInfoProcessor{},
		&RepresentationProcessor{},
		&WavProcessor{},
		&BmpProcessor{},
		&ArrangersProcessor{},
		&NotesProcessor{Layout: layout},
		&TextProcessor{},
		&OptionProcessor{},
		&JudgeProcessor{},
		&VolumeProcessor{},
		&VideoProcessor{},
	}}
}

// Run walks tokens (already filtered live by the random controller) and
// fans each one out to every processor, accumulating warnings and errors
// (spec.md §5: tokens delivered in lexical source order, single
// processor running at a time, no concurrency needed).
func (pl *Pipeline) Run(m *model.Model, p prompt.Prompter, tokens []lex.TokenWithRange) (warnings []diag.Warning, errs []diag.Error) {
	for _, twr := range tokens {
		t := twr.Token
		for _, proc := range pl.processors {
			var w []diag.Warning
			var e []diag.Error
			switch t.Kind {
			case lex.TokenHeader:
				w, e = proc.OnHeader(m, p, t.HeaderName, t.HeaderArgs)
			case lex.TokenMessage:
				w, e = proc.OnMessage(m, p, t)
			default:
				continue
			}
			warnings = append(warnings, w...)
			errs = append(errs, e...)
		}
	}
	fw, fe := m.Finalize()
	warnings = append(warnings, fw...)
	errs = append(errs, fe...)
	return warnings, errs
}
