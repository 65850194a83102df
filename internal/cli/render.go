package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/igarnier/cosetta/pkg/coset"
	"github.com/igarnier/cosetta/pkg/pipeline"
)

// renderCommand creates the render command for generating artifacts from a
// saved enumeration.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		labels     bool
	)

	cmd := &cobra.Command{
		Use:   "render [table.json]",
		Short: "Render a saved enumeration result",
		Long: `Render a saved enumeration result.

The render command takes a JSON table file (produced by 'enumerate -f json')
and renders it to the requested formats without re-running the enumeration.
The Schreier graph formats (dot, svg, png) draw one node per coset and one
colored edge per generator.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], formats, output, noCache, labels)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): table (default), json, dot, svg, png (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&labels, "labels", false, "label Schreier graph edges with generator names")

	return cmd
}

// runRender loads the snapshot and renders it.
func (c *CLI) runRender(ctx context.Context, input string, formats []string, output string, noCache, labels bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load table %s: %w", input, err)
	}
	var snap coset.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parse table %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		Formats:    formats,
		EdgeLabels: labels,
		Logger:     c.Logger,
	}

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, &snap, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if cacheHit {
		printInfo("All artifacts served from cache")
	}

	if output == "" && len(formats) == 1 && formats[0] == pipeline.FormatTable {
		fmt.Print(string(artifacts[pipeline.FormatTable]))
		return nil
	}

	base := output
	if base == "" {
		base = basePath("", input)
	}
	return writeArtifacts(artifacts, formats, base)
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes each rendered format to base.<format> and prints the
// written paths. A single format with a base that already carries its
// extension is written as-is.
func writeArtifacts(artifacts map[string][]byte, formats []string, base string) error {
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}

		ext := format
		if format == pipeline.FormatTable {
			ext = "txt"
		}
		path := base + "." + ext
		if len(formats) == 1 && strings.HasSuffix(base, "."+ext) {
			path = base
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
