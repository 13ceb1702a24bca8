package lex

import "github.com/go-bms/bmscore/internal/diag"

// Range is a byte offset span into the original source, used for
// diagnostic rendering.
type Range = diag.Range

func expectedToken(line, col int, rng diag.Range, message string) diag.Warning {
	return diag.New(diag.ExpectedToken, line, col, rng, "%s", message)
}

func unknownChannel(line, col int, rng diag.Range, code string) diag.Warning {
	return diag.New(diag.UnknownChannel, line, col, rng, "unknown channel %q", code)
}

func malformedPayload(line, col int, rng diag.Range, reason string) diag.Warning {
	return diag.New(diag.MalformedMessagePayload, line, col, rng, "%s", reason)
}

func trackOutOfRange(line, col int, rng diag.Range, raw string) diag.Warning {
	return diag.New(diag.TrackOutOfRange, line, col, rng, "track %q out of range (000-999)", raw)
}

func relaxedForm(line, col int, rng diag.Range, original, canonical string) diag.Warning {
	return diag.New(diag.RelaxedForm, line, col, rng, "relaxed %q to %q", original, canonical)
}
