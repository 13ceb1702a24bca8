package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/go-bms/bmscore/internal/midiexport"
	"github.com/go-bms/bmscore/pkg/bms"
)

func newMidiExportCmd(flags *rootFlags) *cobra.Command {
	var outPath string
	var channel uint8

	cmd := &cobra.Command{
		Use:   "midi-export <file.bms>",
		Short: "Render a chart's note stream to a Standard MIDI File",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, err := flags.parseFile(args[0])
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = args[0] + ".mid"
			}

			cp := bms.NewChartProcessor(res.Model)
			opts := midiexport.DefaultOptions(res.Model.Arrangers.InitialBPM)
			opts.Channel = channel

			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer f.Close()
			return midiexport.Export(f, cp.Events(), opts)
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output path (default: <input>.mid)")
	cmd.Flags().Uint8Var(&channel, "channel", 0, "MIDI channel to write notes on (0-15)")
	return cmd
}
