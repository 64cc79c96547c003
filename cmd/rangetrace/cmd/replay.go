package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mogiioin/hls-ranges/internal/config"
	"github.com/mogiioin/hls-ranges/internal/observability"
	"github.com/mogiioin/hls-ranges/internal/trace"
)

// replayCmd represents the replay command.
var replayCmd = &cobra.Command{
	Use:   "replay <trace.yaml>",
	Short: "Replay a buffering trace",
	Long: `Replay applies the events of a trace file to one range set per track,
then prints the resulting ranges, the ranges playable on every track, and
buffer metrics at the requested positions.

Example trace:

  tracks:
    - name: video
      playlist: video.m3u8
      events:
        - {segment: 100, bitrate: 800000}
        - {start: 6, end: 12, bitrate: 1600000}
    - name: audio
      events:
        - {start: 0, end: 20, bitrate: 128000}
        - {remove: true, start: 8, end: 10}
  positions: [1, 9, 14]`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringP("output", "o", config.OutputText, "report format (text, yaml)")
	replayCmd.Flags().Bool("strict", false, "reject negative starts and empty spans")
	replayCmd.Flags().Float64Slice("at", nil, "positions to query, replacing those of the trace")

	mustBindPFlag("replay.output", replayCmd.Flags().Lookup("output"))
	mustBindPFlag("replay.strict", replayCmd.Flags().Lookup("strict"))

	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) (err error) {
	cfg, err := config.Unmarshal(viper.GetViper())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	tr, err := trace.Load(args[0])
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("at") {
		tr.Positions, _ = cmd.Flags().GetFloat64Slice("at")
	}

	logger := slog.Default().With(slog.String("trace", args[0]))
	ctx := observability.ContextWithLogger(cmd.Context(), logger)
	done := observability.TimedOperationWithError(ctx, logger, "replay", &err)
	defer done()

	report, err := trace.NewReplayer(cfg.Replay.Strict).Replay(ctx, tr)
	if err != nil {
		return err
	}

	switch cfg.Replay.Output {
	case config.OutputYAML:
		err = report.WriteYAML(cmd.OutOrStdout())
	default:
		err = report.WriteText(cmd.OutOrStdout())
	}
	return err
}
