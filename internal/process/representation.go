package process

import (
	"strconv"
	"strings"

	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/lex"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/prompt"
)

// RepresentationProcessor handles #BASE/#LNMODE/#LNTYPE (spec.md §4.3
// item 3). #BASE is the only header that changes how every later id is
// parsed (spec.md §3 invariant 4).
type RepresentationProcessor struct{}

func (*RepresentationProcessor) OnHeader(m *model.Model, _ prompt.Prompter, name, args string) ([]diag.Warning, []diag.Error) {
	trimmed := strings.TrimSpace(args)
	switch {
	case matchKeyword(name, "BASE"):
		if trimmed == "62" {
			m.Representation.CaseSensitive = true
			return nil, nil
		}
		warnings := []diag.Warning{diag.New(diag.OutOfBase62, 0, 0, diag.Range{}, "#BASE %s is not supported; only 62 changes id parsing", trimmed)}
		errs := []diag.Error{diag.NewError(diag.InvariantViolation, diag.Range{}, "#BASE %s is not supported; only 62 changes id parsing", trimmed)}
		return warnings, errs

	case matchKeyword(name, "LNMODE"):
		switch trimmed {
		case "1":
			m.Representation.LNMode = model.LNModeLN
		case "2":
			m.Representation.LNMode = model.LNModeCN
		case "3":
			m.Representation.LNMode = model.LNModeHCN
		default:
			return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "unrecognized #LNMODE value %q", trimmed)}, nil
		}

	case matchKeyword(name, "LNTYPE"):
		if v, err := strconv.Atoi(trimmed); err == nil {
			m.Representation.LNType = v
		} else {
			return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "unrecognized #LNTYPE value %q", trimmed)}, nil
		}
	}
	return nil, nil
}

func (*RepresentationProcessor) OnMessage(*model.Model, prompt.Prompter, lex.Token) ([]diag.Warning, []diag.Error) {
	return nil, nil
}
