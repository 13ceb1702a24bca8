package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-bms/bmscore/internal/oscbridge"
	"github.com/go-bms/bmscore/pkg/bms"
)

func newOscStreamCmd(flags *rootFlags) *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "osc-stream <file.bms>",
		Short: "Stream a chart's event timeline to an OSC listener in real time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, err := flags.parseFile(args[0])
			if err != nil {
				return err
			}

			cp := bms.NewChartProcessor(res.Model)
			broadcaster := oscbridge.New(host, port)

			fmt.Fprintf(cmd.OutOrStdout(), "streaming %d events to %s:%d\n", len(cp.Events()), host, port)
			return broadcaster.Stream(context.Background(), cp.Events())
		},
	}
	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "OSC listener host")
	cmd.Flags().IntVar(&port, "port", 57120, "OSC listener port")
	return cmd
}
