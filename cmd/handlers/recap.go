package handlers

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/logger"
	"scribe/internal/render"
)

// ErrRecapFailed is returned when the pipeline produces a failure envelope
var ErrRecapFailed = errors.New("recap generation failed")

// NewRecapCmd creates the recap command
func NewRecapCmd() *cobra.Command {
	var (
		saveDir string
		trace   bool
	)

	cmd := &cobra.Command{
		Use:   "recap <fixture-id>",
		Short: "Generate a recap article for a fixture",
		Long: `Run the full pipeline for one fixture: collect match data, extract
teams and key players, enrich them, research storylines and write the article.

Examples:
  scribe recap 1035037
  scribe recap 1035037 --save-dir recaps
  scribe recap 1035037 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecap(cmd, args[0], saveDir, trace)
		},
	}

	cmd.Flags().StringVar(&saveDir, "save-dir", "", "also write the article to a markdown file in this directory")
	cmd.Flags().BoolVar(&trace, "trace", false, "log latency and token estimates for each model call")

	return cmd
}

func runRecap(cmd *cobra.Command, gameID, saveDir string, trace bool) error {
	ctx := cmd.Context()

	p, closeFn, err := buildPipeline(ctx, config.Get(), trace)
	if err != nil {
		return err
	}
	defer closeFn()

	result := p.GenerateRecap(ctx, gameID)

	if err := write(cmd.OutOrStdout(), result, func() string { return render.RecapText(result) }); err != nil {
		return err
	}

	if !result.Success {
		return fmt.Errorf("%w: %s", ErrRecapFailed, result.Error)
	}

	if saveDir != "" {
		path, err := render.WriteRecapToFile(result.Content, saveDir, render.RecapFilename(gameID, time.Now()))
		if err != nil {
			return err
		}
		logger.Info("Recap saved", "path", path)
		fmt.Fprintf(os.Stderr, "Saved recap to %s\n", path)
	}
	return nil
}
