package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/igarnier/cosetta/pkg/coset"
	"github.com/igarnier/cosetta/pkg/pipeline"
)

// enumerateCommand creates the enumerate command, the main entry point of the
// CLI.
func (c *CLI) enumerateCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		watch      bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "enumerate [presentation.toml]",
		Short: "Enumerate the cosets of a subgroup in a presented group",
		Long: `Enumerate the cosets of a subgroup in a finitely presented group.

The presentation comes either from a TOML manifest file or from the
--generator, --relator and --subgroup flags. The enumeration runs until the
coset table closes, printing the subgroup index and the right-coset table.

Generator names act on cosets together with their formal inverses; relators
and subgroup words are written in the word syntax, e.g. "(a*b)^3" or
"b^-1*a*b". An empty subgroup enumerates over the trivial subgroup, so the
index is the order of the group.

Presentations of infinite-index subgroups never close; the --max-cosets
limit aborts such runs. Results are cached locally for faster subsequent
runs.

Examples:

  # Symmetric group S3, trivial subgroup
  cosetta enumerate -g a -g b -r a^2 -r b^2 -r '(a*b)^3'

  # Same group modulo the subgroup generated by a
  cosetta enumerate -g a -g b -r a^2 -r b^2 -r '(a*b)^3' -s a

  # From a manifest, rendering the Schreier graph
  cosetta enumerate examples/presentations/q8.toml -f table,svg -o q8`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Manifest = args[0]
			}
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runEnumerate(cmd.Context(), opts, output, noCache, watch)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Generators, "generator", "g", nil, "generator name (repeatable)")
	cmd.Flags().StringSliceVarP(&opts.Relators, "relator", "r", nil, "relator word (repeatable)")
	cmd.Flags().StringSliceVarP(&opts.Subgroup, "subgroup", "s", nil, "subgroup generator word (repeatable)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "presentation name for display and catalog entries")
	cmd.Flags().IntVar(&opts.MaxCosets, "max-cosets", 0, "abort after allocating this many cosets (0 = default limit)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-enumerate even if a cached table exists")
	cmd.Flags().BoolVar(&opts.EdgeLabels, "labels", false, "label Schreier graph edges with generator names")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): table (default), json, dot, svg, png (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&watch, "watch", false, "show live enumeration progress")

	return cmd
}

// runEnumerate executes the pipeline and reports the result.
func (c *CLI) runEnumerate(ctx context.Context, opts pipeline.Options, output string, noCache, watch bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	var result *pipeline.Result
	if watch {
		result, err = c.executeWatched(ctx, runner, opts)
	} else {
		spinner := newSpinnerWithContext(ctx, "Enumerating cosets...")
		spinner.Start()
		result, err = runner.Execute(ctx, opts)
		if err != nil {
			spinner.StopWithError("Enumeration failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		if errors.Is(err, coset.ErrCosetLimit) {
			printDetail("The table did not close; the subgroup may have infinite index.")
			printDetail("Raise the limit with --max-cosets if the group is believed finite.")
		}
		return err
	}

	prog.done(fmt.Sprintf("Enumerated %d cosets", result.Snapshot.Index))

	name := result.Snapshot.Name
	if name == "" {
		name = "(unnamed)"
	}
	printSuccess("Enumeration complete")
	printKeyValue("Group", name)
	printKeyValue("Index", StyleNumber.Render(fmt.Sprintf("%d", result.Snapshot.Index)))
	printStats(result.Snapshot.Index, result.Snapshot.Allocated, result.CacheInfo.TableHit)

	return writeEnumerateOutput(result, opts.Formats, output)
}

// executeWatched runs the pipeline behind a live progress display.
func (c *CLI) executeWatched(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	model := newWatchModel(opts.Name)
	prog := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(os.Stderr))

	opts.Progress = func(info coset.ProgressInfo) {
		prog.Send(watchProgressMsg(info))
	}

	var (
		result *pipeline.Result
		runErr error
	)
	go func() {
		result, runErr = runner.Execute(ctx, opts)
		prog.Send(watchDoneMsg{err: runErr})
	}()

	if _, err := prog.Run(); err != nil {
		return nil, err
	}
	return result, runErr
}

// writeEnumerateOutput prints the table to stdout when it is the only
// requested format and no output path was given; otherwise artifacts go to
// files.
func writeEnumerateOutput(result *pipeline.Result, formats []string, output string) error {
	if output == "" && len(formats) == 1 && formats[0] == pipeline.FormatTable {
		fmt.Println()
		fmt.Print(string(result.Artifacts[pipeline.FormatTable]))
		return nil
	}

	base := output
	if base == "" {
		base = defaultBaseName(result.Snapshot.Name)
	}
	if err := writeArtifacts(result.Artifacts, formats, base); err != nil {
		return err
	}

	if slices.Contains(formats, pipeline.FormatJSON) {
		path := base + ".json"
		if len(formats) == 1 && strings.HasSuffix(base, ".json") {
			path = base
		}
		printNextStep("Render", "cosetta render "+path+" -f svg")
	}
	return nil
}

func defaultBaseName(name string) string {
	if name == "" {
		return "enumeration"
	}
	return name
}
