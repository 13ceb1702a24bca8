package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-bms/bmscore/internal/bmslog"
	"github.com/go-bms/bmscore/internal/bmson"
	"github.com/go-bms/bmscore/internal/lex"
	"github.com/go-bms/bmscore/internal/prompt"
	"github.com/go-bms/bmscore/internal/process"
	"github.com/go-bms/bmscore/pkg/bms"
)

// rootFlags holds the flags every subcommand shares, mirroring the
// teacher's main.go: a -debug path that redirects operational trace
// output to a file instead of discarding it.
type rootFlags struct {
	debugLog  string
	strict    bool
	keyLayout string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "bmsparse",
		Short: "Parse, inspect, and export BMS/BMSON charts",
	}
	root.PersistentFlags().StringVar(&flags.debugLog, "debug", "", "write operational trace output to this file; empty disables it")
	root.PersistentFlags().BoolVar(&flags.strict, "strict", false, "report relaxed/non-conforming source forms as lex warnings")
	root.PersistentFlags().StringVar(&flags.keyLayout, "key-layout", "7k", "note-channel key layout: 7k, 5k, or popn")

	root.AddCommand(
		newParseCmd(flags),
		newUnparseCmd(flags),
		newDiagnoseCmd(flags),
		newMidiExportCmd(flags),
		newOscStreamCmd(flags),
		newWavCheckCmd(flags),
	)
	return root
}

func (f *rootFlags) keyLayoutMapper() (process.KeyLayoutMapper, error) {
	switch f.keyLayout {
	case "7k", "":
		return process.Beat7KLayout{}, nil
	case "5k":
		return process.Beat5KLayout{}, nil
	case "popn":
		return process.PopnLayout{}, nil
	default:
		return nil, fmt.Errorf("unknown key layout %q (want 7k, 5k, or popn)", f.keyLayout)
	}
}

func (f *rootFlags) openLogger() (*bmslog.Logger, func(), error) {
	logger, file, err := bmslog.Open(f.debugLog)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	closer := func() {}
	if file != nil {
		closer = func() { file.Close() }
	}
	return logger, closer, nil
}

// parseFile reads path and runs it through bms.ParseBMS using the
// shared flags, logging a one-line summary of the diagnostic counts. A
// ".bmson" extension is decoded and converted through internal/bmson
// instead, so every subcommand transparently accepts either sibling
// format (spec.md's chart model is format-agnostic by design).
func (f *rootFlags) parseFile(path string) (bms.ParseResult, string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return bms.ParseResult{}, "", fmt.Errorf("read %s: %w", path, err)
	}

	logger, closeLog, err := f.openLogger()
	if err != nil {
		return bms.ParseResult{}, "", err
	}
	defer closeLog()

	if strings.EqualFold(filepath.Ext(path), ".bmson") {
		doc, err := bmson.Decode(bytes.NewReader(source))
		if err != nil {
			return bms.ParseResult{}, "", fmt.Errorf("decode %s: %w", path, err)
		}
		m, warnings, errs := bmson.ToModel(doc, prompt.AlwaysWarnAndUseNewer{})
		logger.Debugf("parsed %s: %d parse warnings, %d parse errors", path, len(warnings), len(errs))
		return bms.ParseResult{Model: m, ParseWarnings: warnings, ParseErrors: errs}, string(source), nil
	}

	layout, err := f.keyLayoutMapper()
	if err != nil {
		return bms.ParseResult{}, "", err
	}

	cfg := bms.ParseConfig{
		KeyLayoutMapper: layout,
	}
	if f.strict {
		cfg.Relaxers = lex.StrictRelaxers()
	}

	res := bms.ParseBMS(string(source), cfg)
	logger.Debugf("parsed %s: %d lex warnings, %d parse warnings, %d parse errors",
		path, len(res.LexWarnings), len(res.ParseWarnings), len(res.ParseErrors))
	return res, string(source), nil
}
