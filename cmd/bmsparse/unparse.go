package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-bms/bmscore/pkg/bms"
)

func newUnparseCmd(flags *rootFlags) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "unparse <file.bms>",
		Short: "Parse a chart and render it back to BMS source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, err := flags.parseFile(args[0])
			if err != nil {
				return err
			}
			rendered := renderTokens(bms.Unparse(res.Model))
			if outPath == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), rendered)
				return err
			}
			return os.WriteFile(outPath, []byte(rendered), 0o644)
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write to this path instead of stdout")
	return cmd
}
