package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/diagnostics"
)

func newDiagnoseCmd(flags *rootFlags) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "diagnose <file.bms>",
		Short: "Render a chart's lex/parse warnings and errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, source, err := flags.parseFile(args[0])
			if err != nil {
				return err
			}
			report := diagnostics.Report{
				Filename: args[0],
				Source:   source,
				Warnings: append(append([]diag.Warning{}, res.LexWarnings...), res.ParseWarnings...),
				Errors:   res.ParseErrors,
			}

			if interactive {
				p := tea.NewProgram(diagnostics.NewModel(report))
				_, err := p.Run()
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), diagnostics.Render(report))
			return nil
		},
	}
	cmd.Flags().BoolVar(&interactive, "interactive", false, "open a scrollable terminal pager instead of printing plain text")
	return cmd
}
