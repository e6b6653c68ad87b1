package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"gedcompare/internal/fileutil"
	"gedcompare/internal/logging"
	"gedcompare/internal/matching"
	"gedcompare/internal/session"
	"gedcompare/internal/textutil"
)

func newSessionCommand(ctx *commandContext) *cobra.Command {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Review and adjust saved comparison sessions",
	}

	sessionCmd.AddCommand(newSessionListCommand(ctx))
	sessionCmd.AddCommand(newSessionShowCommand(ctx))
	sessionCmd.AddCommand(newSessionDetailCommand(ctx))
	sessionCmd.AddCommand(newSessionMatchCommand(ctx))
	sessionCmd.AddCommand(newSessionUnmatchCommand(ctx))
	sessionCmd.AddCommand(newSessionResetCommand(ctx))
	sessionCmd.AddCommand(newSessionSuggestCommand(ctx))
	sessionCmd.AddCommand(newSessionExportCommand(ctx))
	sessionCmd.AddCommand(newSessionDeleteCommand(ctx))

	return sessionCmd
}

// resolveSession loads a session by id or by a unique id prefix.
func resolveSession(ctx context.Context, store session.Store, id string) (session.Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return session.Session{}, errors.New("session id is required")
	}
	sess, err := store.Load(ctx, id)
	if err != nil {
		return session.Session{}, fmt.Errorf("load session %s: %w", id, err)
	}
	if sess != nil {
		return *sess, nil
	}

	all, err := store.List(ctx)
	if err != nil {
		return session.Session{}, fmt.Errorf("list sessions: %w", err)
	}
	var found []session.Session
	for _, s := range all {
		if strings.HasPrefix(s.ID, id) {
			found = append(found, s)
		}
	}
	switch len(found) {
	case 0:
		return session.Session{}, fmt.Errorf("session %s not found", id)
	case 1:
		return found[0], nil
	default:
		return session.Session{}, fmt.Errorf("session prefix %s is ambiguous (%d sessions)", id, len(found))
	}
}

func requirePerson(sess session.Session, side matching.Side, id string) error {
	if _, ok := sess.Person(side, id); !ok {
		return fmt.Errorf("%s person %s not found in %s", side, id, sess.Filename(side))
	}
	return nil
}

func newSessionListCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(formatFlag)
			if err != nil {
				return err
			}
			return ctx.withStore(func(store session.Store) error {
				sessions, err := store.List(cmd.Context())
				if err != nil {
					return fmt.Errorf("list sessions: %w", err)
				}
				if format != formatTable {
					summaries := make([]sessionView, 0, len(sessions))
					for _, s := range sessions {
						view := buildSessionView(s, matching.FilterAll, true)
						view.Left, view.Right = nil, nil
						summaries = append(summaries, view)
					}
					_, err := writeStructured(cmd, format, summaries)
					return err
				}
				out := cmd.OutOrStdout()
				if len(sessions) == 0 {
					fmt.Fprintln(out, "No saved sessions")
					return nil
				}
				fmt.Fprintln(out, renderSessionList(sessions))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "table", "Output format: table, json, or yaml")
	return cmd
}

func newSessionShowCommand(ctx *commandContext) *cobra.Command {
	var filterFlag string
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show the people and matches of a saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := matching.ParseFilter(filterFlag)
			if err != nil {
				return err
			}
			format, err := parseOutputFormat(formatFlag)
			if err != nil {
				return err
			}
			return ctx.withStore(func(store session.Store) error {
				sess, err := resolveSession(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				view := buildSessionView(sess, filter, true)
				if ok, err := writeStructured(cmd, format, view); ok || err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				printSessionView(out, view, ctx.colorize(out))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&filterFlag, "filter", "all", "People to list: all, matched, or unmatched")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "table", "Output format: table, json, or yaml")
	return cmd
}

func newSessionDetailCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "detail ID LEFT_ID RIGHT_ID",
		Short: "Compare two people field by field",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store session.Store) error {
				sess, err := resolveSession(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				leftID, rightID := args[1], args[2]
				left, ok := sess.Person(matching.Left, leftID)
				if !ok {
					return requirePerson(sess, matching.Left, leftID)
				}
				right, ok := sess.Person(matching.Right, rightID)
				if !ok {
					return requirePerson(sess, matching.Right, rightID)
				}

				out := cmd.OutOrStdout()
				colorize := ctx.colorize(out)
				fmt.Fprintf(out, "%s %s vs %s %s\n", leftID, left.DisplayName(), rightID, right.DisplayName())
				fmt.Fprintln(out, renderComparisonTable(matching.CompareFields(left, right), colorize))

				if !sess.HasPair(leftID, rightID) {
					fmt.Fprintln(out, "Match: none")
					return nil
				}
				m, _ := sess.MatchFor(leftID, matching.Left)
				kind := "automatic"
				if m.Manual {
					kind = "manual"
				}
				fmt.Fprintf(out, "Match: %s\n", kind)
				if len(m.Differences) == 0 {
					fmt.Fprintln(out, "No differences")
					return nil
				}
				fmt.Fprintln(out, "Differences:")
				for _, d := range m.Differences {
					fmt.Fprintf(out, "  - %s\n", d)
				}
				return nil
			})
		},
	}
}

func newSessionMatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "match ID LEFT_ID RIGHT_ID",
		Short: "Match two people manually",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store session.Store) error {
				sess, err := resolveSession(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				leftID, rightID := args[1], args[2]
				if err := requirePerson(sess, matching.Left, leftID); err != nil {
					return err
				}
				if err := requirePerson(sess, matching.Right, rightID); err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if sess.HasPair(leftID, rightID) {
					fmt.Fprintf(out, "%s and %s are already matched\n", leftID, rightID)
					return nil
				}

				var replaced []matching.Match
				if m, ok := sess.MatchFor(leftID, matching.Left); ok {
					replaced = append(replaced, m)
				}
				if m, ok := sess.MatchFor(rightID, matching.Right); ok {
					replaced = append(replaced, m)
				}

				updated := sess.Match(leftID, rightID)
				if err := store.Save(cmd.Context(), updated); err != nil {
					return fmt.Errorf("save session: %w", err)
				}

				logger := logging.WithSession(ctx.loggerFor("session"), updated.ID)
				logger.Info("manual match added",
					logging.String("left_id", leftID),
					logging.String("right_id", rightID),
					logging.Int("replaced", len(replaced)),
				)

				for _, m := range replaced {
					fmt.Fprintf(out, "Removed match %s <-> %s\n", m.LeftID, m.RightID)
				}
				m, _ := updated.MatchFor(leftID, matching.Left)
				fmt.Fprintf(out, "Matched %s <-> %s (%d differences)\n", leftID, rightID, len(m.Differences))
				return nil
			})
		},
	}
}

func newSessionUnmatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unmatch ID LEFT_ID RIGHT_ID",
		Short: "Remove a match",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store session.Store) error {
				sess, err := resolveSession(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				leftID, rightID := args[1], args[2]
				if !sess.HasPair(leftID, rightID) {
					return fmt.Errorf("%s and %s are not matched", leftID, rightID)
				}
				updated := sess.Unmatch(leftID, rightID)
				if err := store.Save(cmd.Context(), updated); err != nil {
					return fmt.Errorf("save session: %w", err)
				}
				logging.WithSession(ctx.loggerFor("session"), updated.ID).Info("match removed",
					logging.String("left_id", leftID),
					logging.String("right_id", rightID),
				)
				fmt.Fprintf(cmd.OutOrStdout(), "Unmatched %s <-> %s\n", leftID, rightID)
				return nil
			})
		},
	}
}

func newSessionResetCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset ID",
		Short: "Discard manual matches and rerun automatic matching",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store session.Store) error {
				sess, err := resolveSession(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !yes {
					prompt := fmt.Sprintf("Reset session %s to automatic matches? %d manual matches will be lost.",
						sess.ID, sess.Stats().Manual)
					confirmed, err := confirm(cmd.InOrStdin(), out, prompt)
					if err != nil {
						return err
					}
					if !confirmed {
						fmt.Fprintln(out, "Reset cancelled")
						return nil
					}
				}

				updated := sess.ResetToAutomatic()
				if err := store.Save(cmd.Context(), updated); err != nil {
					return fmt.Errorf("save session: %w", err)
				}
				logging.WithSession(ctx.loggerFor("session"), updated.ID).Info("session reset to automatic matches",
					logging.Int("matches", len(updated.Matches)),
				)
				fmt.Fprintf(out, "Session %s reset: %d automatic matches\n", updated.ID, len(updated.Matches))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Reset without asking for confirmation")
	return cmd
}

// confirm asks a yes/no question on in. A terminal that is not interactive
// refuses instead of guessing.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if f, ok := in.(*os.File); ok && !isTerminal(f) {
		return false, errors.New("confirmation required: rerun with --yes")
	}
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func newSessionSuggestCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "suggest ID LEFT_ID",
		Short: "Rank unmatched right-side people as manual match candidates",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(formatFlag)
			if err != nil {
				return err
			}
			return ctx.withStore(func(store session.Store) error {
				sess, err := resolveSession(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				person, ok := sess.Person(matching.Left, args[1])
				if !ok {
					return requirePerson(sess, matching.Left, args[1])
				}

				suggestions := matching.Suggest(person, sess.Unmatched(matching.Right), limit)
				if ok, err := writeStructured(cmd, format, suggestions); ok || err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(suggestions) == 0 {
					fmt.Fprintln(out, "No unmatched right-side people to suggest")
					return nil
				}
				title := fmt.Sprintf("Candidates for %s %s", person.ID, person.DisplayName())
				fmt.Fprintln(out, renderSuggestionTable(title, suggestions))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", matching.DefaultSuggestionLimit, "Maximum number of candidates")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "table", "Output format: table, json, or yaml")
	return cmd
}

func newSessionExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Write a session document to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(formatFlag, formatJSON, formatYAML)
			if err != nil {
				return err
			}
			return ctx.withStore(func(store session.Store) error {
				sess, err := resolveSession(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				data, err := encodeSession(sess, format)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if outputPath == "-" {
					_, err := out.Write(data)
					return err
				}
				target := outputPath
				if strings.TrimSpace(target) == "" {
					target = textutil.ComparisonFileStem(sess.LeftFilename, sess.RightFilename) + "." + string(format)
				}
				if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
					return fmt.Errorf("create export directory: %w", err)
				}
				if err := fileutil.WriteFileAtomic(target, data, 0o644); err != nil {
					return fmt.Errorf("export session: %w", err)
				}
				fmt.Fprintf(out, "Exported session %s to %s\n", sess.ID, target)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination file (default derived from the compared filenames, - for stdout)")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "json", "Export format: json or yaml")
	return cmd
}

func encodeSession(sess session.Session, format outputFormat) ([]byte, error) {
	if format == formatYAML {
		data, err := yaml.Marshal(sess.Normalize())
		if err != nil {
			return nil, fmt.Errorf("encode session %s: %w", sess.ID, err)
		}
		return data, nil
	}
	data, err := session.Marshal(sess)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, fmt.Errorf("format session %s: %w", sess.ID, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func newSessionDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store session.Store) error {
				sess, err := resolveSession(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				if err := store.Delete(cmd.Context(), sess.ID); err != nil {
					return fmt.Errorf("delete session %s: %w", sess.ID, err)
				}
				logging.WithSession(ctx.loggerFor("session"), sess.ID).Info("session deleted")
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", sess.ID)
				return nil
			})
		},
	}
}
