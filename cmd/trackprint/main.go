// CLI for offline track analysis: decodes an audio file and prints its
// reconstruction blueprint as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/soniqlab/trackprint/blueprint"
	"github.com/soniqlab/trackprint/decode"
	"github.com/soniqlab/trackprint/genre"
)

var rootCmd = &cobra.Command{
	Use:   "trackprint",
	Short: "Audio reconstruction blueprints from local DSP analysis",
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a WAV or MP3 file and print the blueprint JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		genreID, _ := cmd.Flags().GetString("genre")
		bpmHint, _ := cmd.Flags().GetFloat64("bpm")
		pretty, _ := cmd.Flags().GetBool("pretty")
		modelPath, _ := cmd.Flags().GetString("model")
		return runAnalyze(cmd.Context(), args[0], genreID, bpmHint, modelPath, pretty)
	},
}

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List the genre profile ids the mix doctor knows",
	Run: func(cmd *cobra.Command, args []string) {
		for _, id := range genre.IDs() {
			fmt.Println(id)
		}
	},
}

func init() {
	analyzeCmd.Flags().StringP("genre", "g", genre.DefaultID, "Genre profile id for mix scoring")
	analyzeCmd.Flags().Float64P("bpm", "b", 0, "BPM hint when onsets are sparse")
	analyzeCmd.Flags().StringP("model", "m", "", "Path to an ONNX polyphonic transcription model")
	analyzeCmd.Flags().BoolP("pretty", "p", false, "Indent the JSON output")
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(genresCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAnalyze(ctx context.Context, path, genreID string, bpmHint float64, modelPath string, pretty bool) error {
	buf, err := decode.File(path)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	provider := blueprint.NewLocalProvider()
	bp, err := provider.Analyze(ctx, buf, blueprint.Options{
		GenreID:             genreID,
		BPMHint:             bpmHint,
		PolyphonicModelPath: modelPath,
	})
	if err != nil {
		return fmt.Errorf("analyze %s: %w", path, err)
	}

	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(bp)
}
