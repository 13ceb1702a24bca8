package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-bms/bmscore/internal/wavprobe"
)

func newWavCheckCmd(flags *rootFlags) *cobra.Command {
	var baseDir string

	cmd := &cobra.Command{
		Use:   "wav-check <file.bms>",
		Short: "Validate a chart's #WAVxx resources and report durations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, err := flags.parseFile(args[0])
			if err != nil {
				return err
			}

			results := wavprobe.Probe(res.Model.Wav, baseDir)
			failures := 0
			for _, r := range results {
				if r.Err != nil {
					failures++
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %-24s FAILED: %v\n", r.ID, r.Path, r.Err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-24s %.3fs @ %dHz\n", r.ID, r.Path, r.Seconds, r.SampleRate)
			}
			if failures > 0 {
				return fmt.Errorf("%d of %d wav resources failed to probe", failures, len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&baseDir, "base-dir", "", "directory wav paths are relative to (default: current directory)")
	return cmd
}
