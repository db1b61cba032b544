package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/montagehq/montage/internal/journal"
)

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	var entity string

	cmd := &cobra.Command{
		Use:   "trace <journal.db>",
		Short: "Dump a session journal",
		Long: `Dump the recorded mutation events from a session journal in
sequence order, optionally narrowed to a single entity id.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(rootOpts, cmd, args[0], entity)
		},
	}

	cmd.Flags().StringVarP(&entity, "entity", "e", "", "only events touching this entity id")

	return cmd
}

func runTrace(opts *RootOptions, cmd *cobra.Command, path, entity string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(path); err != nil {
		_ = formatter.Error("E_JOURNAL", fmt.Sprintf("journal not found: %s", path), nil)
		return WrapExitError(ExitCommandError, "opening journal", err)
	}

	j, err := journal.Open(path)
	if err != nil {
		_ = formatter.Error("E_JOURNAL", err.Error(), nil)
		return WrapExitError(ExitCommandError, "opening journal", err)
	}
	defer j.Close()

	ctx := cmd.Context()
	events, err := j.Events(ctx)
	if entity != "" {
		events, err = j.EventsFor(ctx, entity)
	}
	if err != nil {
		_ = formatter.Error("E_JOURNAL", err.Error(), nil)
		return WrapExitError(ExitCommandError, "reading journal", err)
	}
	formatter.VerboseLog("journal holds %d event(s)", len(events))

	if formatter.Format == "json" {
		return formatter.Success(events)
	}

	w := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tOP\tENTITY\tDETAIL")
	for _, ev := range events {
		detail := ""
		if ev.Detail != nil {
			b, err := json.Marshal(ev.Detail)
			if err == nil {
				detail = string(b)
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", ev.Seq, ev.Op, ev.EntityID, detail)
	}
	return w.Flush()
}
