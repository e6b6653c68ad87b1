package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gedcompare/internal/logging"
	"gedcompare/internal/matching"
	"gedcompare/internal/session"
)

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var save bool
	var filterFlag string
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "compare LEFT RIGHT",
		Short: "Compare two GEDCOM files and list matched and unmatched people",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := matching.ParseFilter(filterFlag)
			if err != nil {
				return err
			}
			format, err := parseOutputFormat(formatFlag)
			if err != nil {
				return err
			}

			left, err := ctx.readTree(args[0], matching.Left.String())
			if err != nil {
				return err
			}
			right, err := ctx.readTree(args[1], matching.Right.String())
			if err != nil {
				return err
			}

			sess := session.New(left, right)
			logger := logging.WithSession(ctx.loggerFor("compare"), sess.ID)
			logger.Debug("automatic matching complete",
				logging.Int("left", left.Len()),
				logging.Int("right", right.Len()),
				logging.Int("matches", len(sess.Matches)),
			)

			if save {
				if err := ctx.withStore(func(store session.Store) error {
					return store.Save(cmd.Context(), sess)
				}); err != nil {
					return fmt.Errorf("save session: %w", err)
				}
				logger.Info("session saved")
			}

			view := buildSessionView(sess, filter, save)
			if ok, err := writeStructured(cmd, format, view); ok || err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSessionView(out, view, ctx.colorize(out))
			if save {
				fmt.Fprintf(out, "Saved session %s\n", sess.ID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Persist the comparison as a session")
	cmd.Flags().StringVar(&filterFlag, "filter", "all", "People to list: all, matched, or unmatched")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "table", "Output format: table, json, or yaml")
	return cmd
}
