package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newParseCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "List the individuals parsed from a GEDCOM file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(formatFlag)
			if err != nil {
				return err
			}
			set, err := ctx.readTree(args[0], "")
			if err != nil {
				return err
			}
			if ok, err := writeStructured(cmd, format, set.Individuals); ok || err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderIndividualsTable(set))
			if set.Stats.MalformedLines > 0 || set.Stats.DuplicateIDs > 0 {
				fmt.Fprintf(out, "Skipped %d malformed lines and %d duplicate records\n",
					set.Stats.MalformedLines, set.Stats.DuplicateIDs)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "table", "Output format: table, json, or yaml")
	return cmd
}
