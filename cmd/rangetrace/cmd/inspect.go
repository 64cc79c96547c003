package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mogiioin/hls-ranges/m3u8"
)

var (
	inspectEncode  bool
	inspectLenient bool
)

// inspectCmd represents the inspect command.
var inspectCmd = &cobra.Command{
	Use:   "inspect <playlist.m3u8>",
	Short: "Show the timeline of an HLS playlist",
	Long: `Inspect decodes a master or media playlist.

For a master playlist, every variant is listed with the bitrate its loaded
ranges are tagged with. For a media playlist, every segment is listed with
its span on the media timeline.

With --encode, the decoded playlist is written back in canonical form instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectEncode, "encode", false, "write the decoded playlist back as m3u8")
	inspectCmd.Flags().BoolVar(&inspectLenient, "lenient", false, "skip malformed lines instead of failing")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening playlist: %w", err)
	}
	defer f.Close()

	p, listType, err := m3u8.DecodeFrom(bufio.NewReader(f), !inspectLenient)
	if err != nil {
		return fmt.Errorf("decoding playlist %s: %w", args[0], err)
	}
	slog.Default().DebugContext(cmd.Context(), "playlist decoded",
		slog.String("path", args[0]),
		slog.Int("type", int(listType)),
	)

	out := cmd.OutOrStdout()
	if inspectEncode {
		_, err = io.Copy(out, p.Encode())
		return err
	}

	switch listType {
	case m3u8.MASTER:
		return printMaster(out, p.(*m3u8.MasterPlaylist))
	default:
		return printMedia(out, p.(*m3u8.MediaPlaylist))
	}
}

func printMaster(w io.Writer, p *m3u8.MasterPlaylist) error {
	if _, err := fmt.Fprintf(w, "master playlist: %d variants\n", len(p.Variants)); err != nil {
		return err
	}
	for _, v := range p.Variants {
		_, err := fmt.Fprintf(w, "  %10d  %-10s %-24s %s\n", v.Bitrate(), v.Resolution, v.Codecs, v.URI)
		if err != nil {
			return err
		}
	}
	return nil
}

func printMedia(w io.Writer, p *m3u8.MediaPlaylist) error {
	state := "live"
	if p.Closed {
		state = "closed"
	}
	_, err := fmt.Fprintf(w, "media playlist: %d segments, sequence %d, target duration %d, duration %.3f, %s\n",
		len(p.Segments), p.SeqNo, p.TargetDuration, p.TotalDuration(), state)
	if err != nil {
		return err
	}
	timeline := p.Timeline()
	for i, seg := range p.Segments {
		flags := ""
		if seg.Discontinuity {
			flags += " discontinuity"
		}
		if seg.Gap {
			flags += " gap"
		}
		_, err := fmt.Fprintf(w, "  %6d  %10.3f-%-10.3f %s%s\n",
			seg.SeqId, timeline[i].Start, timeline[i].End, seg.URI, flags)
		if err != nil {
			return err
		}
	}
	return nil
}
