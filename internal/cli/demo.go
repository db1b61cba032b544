package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/montagehq/montage/internal/composition"
	"github.com/montagehq/montage/internal/geom"
	"github.com/montagehq/montage/internal/interaction"
	"github.com/montagehq/montage/internal/journal"
	"github.com/montagehq/montage/internal/testutil"
)

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		journalPath string
		catalogPath string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted editing session",
		Long: `Run a short scripted editing session against an in-memory
composition: drop a background and a character on the stage, drag the
character, place a music clip, and scrub the playhead. With --journal
the applied mutations are recorded to a SQLite file that can be
inspected with "montage trace".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(rootOpts, cmd, journalPath, catalogPath)
		},
	}

	cmd.Flags().StringVarP(&journalPath, "journal", "j", "", "record the session to this journal file")
	cmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "catalog YAML file (default: built-in catalog)")

	return cmd
}

// demoSummary is the JSON payload for the demo command.
type demoSummary struct {
	Assets        int     `json:"assets"`
	AudioClips    int     `json:"audioClips"`
	ContentClips  int     `json:"contentClips"`
	CurrentTime   float64 `json:"currentTime"`
	Selected      string  `json:"selected,omitempty"`
	JournalEvents int     `json:"journalEvents,omitempty"`
}

func runDemo(opts *RootOptions, cmd *cobra.Command, journalPath, catalogPath string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cat, err := resolveCatalog(catalogPath)
	if err != nil {
		_ = formatter.Error("E_CATALOG", err.Error(), nil)
		return WrapExitError(ExitCommandError, "loading catalog", err)
	}

	storeOpts := []composition.Option{
		composition.WithIDGenerator(testutil.NewSequentialIDGenerator("demo")),
	}
	var j *journal.Journal
	if journalPath != "" {
		j, err = journal.Open(journalPath)
		if err != nil {
			_ = formatter.Error("E_JOURNAL", err.Error(), nil)
			return WrapExitError(ExitCommandError, "opening journal", err)
		}
		defer j.Close()
		storeOpts = append(storeOpts, composition.WithEventSink(j))
	}

	store := composition.New(cat, storeOpts...)
	eng := interaction.New(store,
		interaction.WithStage(geom.StageRect{Width: 1000, Height: 1000}),
		interaction.WithTimelineMetrics(interaction.TimelineMetrics{
			PixelsPerSecond: geom.DefaultPixelsPerSecond,
			Regions: []interaction.TrackRegion{
				{Kind: interaction.TrackAudio, Index: 0, Top: 0, Height: 40},
				{Kind: interaction.TrackAudio, Index: 1, Top: 40, Height: 40},
				{Kind: interaction.TrackContent, Index: 0, Top: 100, Height: 40},
				{Kind: interaction.TrackContent, Index: 1, Top: 140, Height: 40},
			},
		}),
	)

	script(store, eng, formatter)

	summary := demoSummary{
		Assets:      len(store.Assets()),
		CurrentTime: store.CurrentTime(),
		Selected:    store.Selected().ID,
	}
	for _, track := range store.AudioTracks() {
		summary.AudioClips += len(track.Clips)
	}
	for _, track := range store.ContentTracks() {
		summary.ContentClips += len(track.Clips)
	}
	if j != nil {
		events, err := j.Events(cmd.Context())
		if err != nil {
			_ = formatter.Error("E_JOURNAL", err.Error(), nil)
			return WrapExitError(ExitCommandError, "reading journal", err)
		}
		summary.JournalEvents = len(events)
	}

	if formatter.Format == "json" {
		return formatter.Success(summary)
	}
	fmt.Fprintf(formatter.Writer, "session complete: %d asset(s), %d audio clip(s), %d content clip(s)\n",
		summary.Assets, summary.AudioClips, summary.ContentClips)
	fmt.Fprintf(formatter.Writer, "playhead at %s\n", geom.FormatTimecode(summary.CurrentTime))
	if j != nil {
		fmt.Fprintf(formatter.Writer, "journal: %d event(s) recorded to %s\n", summary.JournalEvents, journalPath)
	}
	return nil
}

// script drives a fixed editing sequence through the interaction engine,
// the same way a render surface would.
func script(store *composition.Store, eng *interaction.Engine, formatter *OutputFormatter) {
	formatter.VerboseLog("dropping background and character on the stage")
	eng.Drop(interaction.DropEvent{
		Surface: interaction.DropOnStage, X: 500, Y: 500,
		Payload: []byte(`{"assetId":"bg-city-sunset","type":"background"}`),
	})
	eng.Drop(interaction.DropEvent{
		Surface: interaction.DropOnStage, X: 400, Y: 600,
		Payload: []byte(`{"assetId":"char-astronaut","type":"character"}`),
	})

	formatter.VerboseLog("dragging the character across the stage")
	char := store.Selected()
	eng.PointerDown(interaction.PointerEvent{PointerID: 1, X: 400, Y: 600},
		interaction.Target{Kind: interaction.TargetCanvasAsset, ID: char.ID, Mode: interaction.DragMove})
	eng.PointerMove(interaction.PointerEvent{PointerID: 1, X: 550, Y: 450})
	eng.PointerUp(interaction.PointerEvent{PointerID: 1})

	formatter.VerboseLog("placing a music clip and a visual clip")
	eng.Drop(interaction.DropEvent{
		Surface: interaction.DropOnAudioTrack, TrackIndex: 0, X: 100,
		Payload: []byte(`{"assetId":"music-chill","type":"music"}`),
	})
	eng.Drop(interaction.DropEvent{
		Surface: interaction.DropOnContentTrack, TrackIndex: 0, X: 100,
		Payload: []byte(`{"assetId":"graphic-starburst","type":"graphic"}`),
	})

	formatter.VerboseLog("scrubbing the playhead")
	eng.PointerDown(interaction.PointerEvent{PointerID: 1, X: 600},
		interaction.Target{Kind: interaction.TargetRuler})
	eng.PointerUp(interaction.PointerEvent{PointerID: 1})
}
