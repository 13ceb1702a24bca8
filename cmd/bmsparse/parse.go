package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newParseCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file.bms>",
		Short: "Parse a chart and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, err := flags.parseFile(args[0])
			if err != nil {
				return err
			}
			m := res.Model

			fmt.Fprintf(cmd.OutOrStdout(), "title:      %s\n", m.MusicInfo.Title)
			fmt.Fprintf(cmd.OutOrStdout(), "artist:     %s\n", m.MusicInfo.Artist)
			fmt.Fprintf(cmd.OutOrStdout(), "genre:      %s\n", m.MusicInfo.Genre)
			fmt.Fprintf(cmd.OutOrStdout(), "bpm:        %s\n", m.Arrangers.InitialBPM.String())
			fmt.Fprintf(cmd.OutOrStdout(), "play level: %d\n", m.Header.PlayLevel)
			fmt.Fprintf(cmd.OutOrStdout(), "wav defs:   %d\n", len(m.Wav.Defs))
			fmt.Fprintf(cmd.OutOrStdout(), "bmp defs:   %d\n", len(m.Bmp.Defs))
			fmt.Fprintf(cmd.OutOrStdout(), "note instants: %d\n", len(m.Notes.Events))
			fmt.Fprintf(cmd.OutOrStdout(), "long notes:    %d\n", totalLongNotes(m))
			fmt.Fprintf(cmd.OutOrStdout(), "lex warnings:   %d\n", len(res.LexWarnings))
			fmt.Fprintf(cmd.OutOrStdout(), "parse warnings: %d\n", len(res.ParseWarnings))
			fmt.Fprintf(cmd.OutOrStdout(), "parse errors:   %d\n", len(res.ParseErrors))
			if len(res.ParseErrors) > 0 {
				return fmt.Errorf("%s: parse completed with %d error(s)", args[0], len(res.ParseErrors))
			}
			return nil
		},
	}
}
