package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/flattenmidi/midi"
	"github.com/jsphweid/flattenmidi/util"
	"github.com/spf13/cobra"
)

var analyzeMaxVoices int

func init() {
	analyzeCmd.Flags().IntVarP(&analyzeMaxVoices, "max-voices", "v", 0, "show the voice count auto-optimize would pick under this limit")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <input_file>",
	Short: "Reports notes per track and peak polyphony",
	Long:  `Reports notes per track and the maximum number of simultaneous notes across all tracks.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return analyze(cmd.OutOrStdout(), args[0], analyzeMaxVoices)
	},
}

func analyze(w io.Writer, path string, maxVoices int) error {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}

	report := midi.Analyze(s)
	for _, t := range report.Tracks {
		if t.Name != "" {
			fmt.Fprintf(w, "Track %v (%v): %v total notes\n", t.TrackNum, t.Name, t.NumNotes)
		} else {
			fmt.Fprintf(w, "Track %v: %v total notes\n", t.TrackNum, t.NumNotes)
		}
	}

	if report.NumNotes == 0 {
		fmt.Fprintln(w, "\nNo notes found in any track")
		return nil
	}
	fmt.Fprintf(w, "\nMaximum simultaneous notes across all tracks: %v\n", report.MaxSimultaneous)

	if maxVoices > 0 {
		fmt.Fprintf(w, "Auto-optimize would use %v voices (max allowed: %v)\n", util.Min(report.MaxSimultaneous, maxVoices), maxVoices)
	}
	return nil
}
