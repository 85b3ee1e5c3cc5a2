package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bluefish/pkg/errors"
	bfio "github.com/matzehuels/bluefish/pkg/io"
	"github.com/matzehuels/bluefish/pkg/pipeline"
	"github.com/matzehuels/bluefish/pkg/render/dot"
	"github.com/matzehuels/bluefish/pkg/scenegraph"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	json      bool   // print the snapshot as JSON
	dotOutput string // write the scenegraph as a Graphviz diagram
	detailed  bool   // owners and translations in the Graphviz labels
	tui       bool   // browse nodes interactively
	maxPasses int
}

// inspectCommand creates the inspect command, which lays out a document
// without rendering and shows the resulting scenegraph.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the laid-out scenegraph of a document",
		Long: `Lay out a diagram document and show every scenegraph node with its
effective box, translation and field owners.

The --dot output format follows the file extension: .dot writes Graphviz
source, .svg/.png/.pdf render it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("max-passes") {
				opts.maxPasses = c.Config.Layout.MaxPasses
			}
			return c.runInspect(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print the snapshot as JSON")
	cmd.Flags().StringVar(&opts.dotOutput, "dot", "", "write the scenegraph as a Graphviz diagram (.dot, .svg, .png or .pdf)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show owners and translations in the Graphviz diagram")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "browse the nodes interactively")
	cmd.Flags().IntVar(&opts.maxPasses, "max-passes", 0, "maximum layout passes before giving up")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, opts inspectOpts) error {
	logger := loggerFromContext(ctx)

	doc, _, err := bfio.ImportFile(input)
	if err != nil {
		return err
	}
	d, err := bfio.Build(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	popts := c.pipelineOptions()
	popts.MaxPasses = opts.maxPasses
	popts.Logger = logger

	prog := newProgress(logger)
	tree, stats, err := pipeline.Layout(ctx, d, popts)
	if err != nil {
		// A tree that did not settle is still worth looking at.
		if tree == nil || !errors.Is(err, errors.ErrCodeNonConvergent) {
			return err
		}
		printWarning("%s", errors.UserMessage(err))
	} else {
		prog.done("Laid out "+input, "nodes", tree.Len(), "passes", stats.Passes)
	}
	snap := tree.Scenegraph().Snapshot()

	if opts.dotOutput != "" {
		if err := writeDOT(ctx, snap, opts.dotOutput, opts.detailed); err != nil {
			return err
		}
	}

	switch {
	case opts.json:
		return bfio.WriteSnapshot(snap, stdout)
	case opts.tui:
		_, err := tea.NewProgram(newSnapshotModel(snap), tea.WithContext(ctx)).Run()
		return err
	case opts.dotOutput != "":
		printFile(opts.dotOutput)
		return nil
	}

	fmt.Fprintln(stdout, snapshotTable(snap))
	printStats(len(snap.Nodes), stats.Passes, false)
	return nil
}

// writeDOT renders the snapshot as Graphviz in the format named by path's
// extension.
func writeDOT(ctx context.Context, snap scenegraph.Snapshot, path string, detailed bool) error {
	src := dot.ToDOT(snap, dot.Options{Detailed: detailed})

	var data []byte
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".dot", ".gv":
		data = []byte(src)
	case ".svg":
		data, err = dot.RenderSVG(ctx, src)
	case ".png":
		data, err = dot.RenderPNG(ctx, src, pipeline.DefaultScale)
	case ".pdf":
		data, err = dot.RenderPDF(ctx, src)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported graphviz output %q (want .dot, .svg, .png or .pdf)", ext)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// Table Output
// =============================================================================

// snapshotRow formats a node as table cells: the id indented by depth, the
// kind, the effective box, the translation and the owner of each field.
func snapshotRow(n scenegraph.NodeRecord) []string {
	id := strings.Repeat("  ", n.Depth) + n.ID
	if n.Kind == scenegraph.KindReference {
		id += " " + iconArrow + " " + n.RefID
	}
	effective := fmtBox(n.Effective)
	if n.Error != "" {
		effective = iconError + " " + n.Error
	}
	return []string{
		id,
		n.Kind.String(),
		effective,
		fmt.Sprintf("(%s, %s)", n.Translation.X, n.Translation.Y),
		fmtOwners(n),
	}
}

func fmtBox(b scenegraph.Box) string {
	return fmt.Sprintf("[%s %s %s×%s]", b.Left, b.Top, b.Width, b.Height)
}

// fmtOwners lists box owners (left top width height) then translation
// owners (x y); "-" marks an unowned field.
func fmtOwners(n scenegraph.NodeRecord) string {
	o := func(owner scenegraph.Owner) string {
		if owner == "" {
			return "-"
		}
		return string(owner)
	}
	b, t := n.BoxOwners, n.TranslationOwners
	return fmt.Sprintf("%s %s %s %s | %s %s",
		o(b.Left), o(b.Top), o(b.Width), o(b.Height), o(t.X), o(t.Y))
}

// snapshotTable renders every node in a bordered table.
func snapshotTable(snap scenegraph.Snapshot) string {
	rows := make([][]string, 0, len(snap.Nodes))
	for _, n := range snap.Nodes {
		rows = append(rows, snapshotRow(n))
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Node", "Kind", "Effective box", "Translation", "Owners").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row >= len(snap.Nodes) {
				return base
			}
			n := snap.Nodes[row]
			switch {
			case n.Error != "":
				return base.Foreground(colorRed)
			case col == 0 && n.Kind == scenegraph.KindReference:
				return base.Foreground(colorBlue)
			case col == 0:
				return base.Foreground(colorCyan)
			case col == 4:
				return base.Foreground(colorDim)
			}
			return base
		})
	return t.Render()
}
