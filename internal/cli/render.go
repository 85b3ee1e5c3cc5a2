package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bluefish/pkg/errors"
	bfio "github.com/matzehuels/bluefish/pkg/io"
	"github.com/matzehuels/bluefish/pkg/pipeline"
)

// stdoutPath as the output writes a single artifact to standard output.
const stdoutPath = "-"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file path (or base path for multiple outputs)
	noCache bool   // bypass the artifact cache entirely
	pipeline.Options
}

// renderCommand creates the render command for laying out and rendering a document.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Lay out a diagram document and render it",
		Long: `Lay out a diagram document (JSON, YAML or TOML) and render it.

Formats: svg (default), png, pdf, json (scenegraph snapshot), dot (Graphviz).
PNG and PDF output requires rsvg-convert on the PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := c.pipelineOptions()
			flags := cmd.Flags()
			if !flags.Changed("max-passes") {
				opts.MaxPasses = defaults.MaxPasses
			}
			if !flags.Changed("background") {
				opts.Background = defaults.Background
			}
			if !flags.Changed("scale") {
				opts.Scale = defaults.Scale
			}
			opts.Logger = defaults.Logger
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if opts.output == stdoutPath && len(opts.Formats) > 1 {
				return errors.New(errors.ErrCodeInvalidInput, "cannot write %d formats to stdout", len(opts.Formats))
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().IntVar(&opts.MaxPasses, "max-passes", 0, "maximum layout passes before giving up")
	cmd.Flags().StringVar(&opts.Background, "background", "", "background color (overrides the document)")
	cmd.Flags().BoolVar(&opts.Bounds, "bounds", false, "outline container boxes in SVG output")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show owners and translations in DOT output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached artifacts")

	return cmd
}

// runRender runs the pipeline on input and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	_, raw, err := bfio.ImportFile(input)
	if err != nil {
		return err
	}
	syntax, err := bfio.SyntaxFromPath(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := opts.Options
	popts.Source = raw
	popts.Syntax = syntax

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}
	prog.done("Rendered "+input, "cached", result.CacheHit, "passes", result.Stats.Passes)

	if opts.output == stdoutPath {
		_, err := stdout.Write(result.Artifacts[popts.Formats[0]])
		return err
	}

	paths := outputPaths(opts.output, input, popts.Formats)
	for _, format := range popts.Formats {
		data := result.Artifacts[format]
		if err := os.WriteFile(paths[format], data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[format], err)
		}
		logger.Debugf("Wrote %s: %d bytes", paths[format], len(data))
	}

	printSuccess("Rendered %s", input)
	printStats(result.Stats.Nodes, result.Stats.Passes, result.CacheHit)
	for _, format := range popts.Formats {
		printFile(paths[format])
	}
	return nil
}

// outputPaths maps each format to its file. A single format is written to
// output verbatim when given; otherwise files are named base.format.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
