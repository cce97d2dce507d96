package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lp-research-go/config"
	"lp-research-go/internal/fetcher"
	"lp-research-go/internal/service"
	"lp-research-go/internal/store"
)

var (
	flagProgress bool
	flagPrompt   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Analyze a landing page and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		svc := service.NewLPService(cfg, store.NewMemoryRunLog(1))

		var progress io.Writer
		if flagProgress {
			progress = cmd.ErrOrStderr()
		}
		return runAnalyze(cmd.Context(), svc, args[0], cmd.OutOrStdout(), progress)
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract <url>",
	Short: "Fetch a landing page and print the extracted text (no Gemini call)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		return runExtract(cmd.Context(), fetcher.NewPageFetcher(cfg.FetchTimeout), args[0], flagPrompt, cmd.OutOrStdout())
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&flagProgress, "progress", false, "Print pipeline stages to stderr")
	extractCmd.Flags().BoolVar(&flagPrompt, "prompt", false, "Print the Gemini prompt instead of the extracted fields")

	rootCmd.AddCommand(analyzeCmd, extractCmd)
}

func runAnalyze(ctx context.Context, svc *service.LPService, url string, out, progress io.Writer) error {
	var onStage service.ProgressFunc
	if progress != nil {
		onStage = func(stage service.Stage) {
			fmt.Fprintf(progress, "-> %s\n", stage)
		}
	}

	result, err := svc.AnalyzeWithProgress(ctx, url, onStage)
	if err != nil {
		ae := service.AsAnalysisError(err)
		return fmt.Errorf("%s (%s, status %d)", ae.Message, ae.Kind, ae.HTTPStatus())
	}
	return writeIndented(out, result)
}

func runExtract(ctx context.Context, f fetcher.HTMLFetcher, url string, showPrompt bool, out io.Writer) error {
	html, err := f.Fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	page := fetcher.Extract(html)
	if showPrompt {
		_, err := io.WriteString(out, service.BuildPrompt(page))
		return err
	}
	return writeIndented(out, page)
}

func writeIndented(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
