package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/simonhull/isobox"
)

var (
	treeDepth    int
	treeNoFields bool
	treeRanges   bool
	treeCompact  bool
	treeMaxNest  int
	treeStrict   bool
)

func init() {
	cmd := newTreeCmd()
	cmd.Flags().IntVar(&treeDepth, "depth", 0, "Maximum display depth (0 = unlimited)")
	cmd.Flags().BoolVar(&treeNoFields, "no-fields", false, "Show box structure only")
	cmd.Flags().BoolVar(&treeRanges, "ranges", true, "Show [offset, end) for each box")
	cmd.Flags().BoolVar(&treeCompact, "compact", false, "Compact output")
	cmd.Flags().IntVar(&treeMaxNest, "max-nesting", isobox.DefaultMaxDepth, "Container nesting limit while decoding")
	cmd.Flags().BoolVar(&treeStrict, "strict", false, "Fail on any malformed box")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <file>...",
		Short: "Display the box tree",
		Long: `The tree command decodes every box of each file and prints the tree.

Example:
  mp4dump tree clip.mp4
  mp4dump tree init.mp4 seg-1.m4s --no-fields
  mp4dump tree clip.mp4 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args)
		},
	}
}

func runTree(ctx context.Context, stdout, stderr io.Writer, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(stderr)

	opts := []isobox.Option{isobox.WithLogger(logger), isobox.WithMaxDepth(treeMaxNest)}
	if treeStrict {
		opts = append(opts, isobox.WithStrictParsing())
	}

	files, err := isobox.InspectMany(ctx, paths, opts...)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(stdout, treeReports(files))
	}

	textOpts := isobox.DefaultTextOptions()
	textOpts.MaxDepth = treeDepth
	textOpts.ShowFields = !treeNoFields
	textOpts.ShowRanges = treeRanges
	if treeCompact {
		textOpts.IndentSize = 1
	}

	for i, f := range files {
		if len(files) > 1 {
			if i > 0 {
				fmt.Fprintln(stdout)
			}
			fmt.Fprintf(stdout, "== %s ==\n", f.Path)
		}
		if err := f.Tree.WriteText(stdout, textOpts); err != nil {
			return fmt.Errorf("failed to display tree: %w", err)
		}
		for _, w := range f.Warnings {
			logger.Warn().Str("path", f.Path).Int64("offset", w.Offset).Msg(w.String())
		}
		if f.Consumed < f.Size {
			logger.Info().Str("path", f.Path).
				Int64("consumed", f.Consumed).
				Int64("size", f.Size).
				Msg("trailing bytes not covered by boxes")
		}
	}
	return nil
}

type treeReport struct {
	Path     string       `json:"path"`
	Size     int64        `json:"size"`
	Consumed int64        `json:"consumed"`
	Boxes    int          `json:"boxes"`
	Tree     *isobox.Tree `json:"tree"`
	Warnings []string     `json:"warnings,omitempty"`
}

func treeReports(files []*isobox.File) []treeReport {
	out := make([]treeReport, 0, len(files))
	for _, f := range files {
		r := treeReport{
			Path:     f.Path,
			Size:     f.Size,
			Consumed: f.Consumed,
			Boxes:    f.Boxes,
			Tree:     f.Tree,
		}
		for _, w := range f.Warnings {
			r.Warnings = append(r.Warnings, w.String())
		}
		out = append(out, r)
	}
	return out
}
