package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonhull/isobox"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "sniff <file>...",
		Short: "Report whether files start with a known box",
		Long: `The sniff command reads the first 8 bytes of each file and reports
whether they form a box header of a known type. Exit status is non-zero if
any file is rejected.

Example:
  mp4dump sniff *.mp4`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSniff(cmd.OutOrStdout(), args)
		},
	})
}

type sniffResult struct {
	Path     string `json:"path"`
	Accepted bool   `json:"accepted"`
	Type     string `json:"type,omitempty"`
}

func runSniff(stdout io.Writer, paths []string) error {
	var results []sniffResult
	rejected := 0
	for _, path := range paths {
		res, err := sniffFile(path)
		if err != nil {
			return err
		}
		if !res.Accepted {
			rejected++
		}
		results = append(results, res)
	}

	if jsonOut {
		if err := printJSON(stdout, results); err != nil {
			return err
		}
	} else if !quiet {
		for _, r := range results {
			if r.Accepted {
				fmt.Fprintf(stdout, "%s: mp4 (%s)\n", r.Path, r.Type)
			} else {
				fmt.Fprintf(stdout, "%s: not mp4\n", r.Path)
			}
		}
	}

	if rejected > 0 {
		return fmt.Errorf("%d of %d files rejected", rejected, len(paths))
	}
	return nil
}

func sniffFile(path string) (sniffResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return sniffResult{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	head := make([]byte, isobox.HeaderSize)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return sniffResult{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	head = head[:n]

	res := sniffResult{Path: path, Accepted: isobox.Sniff(head)}
	if res.Accepted {
		res.Type = isobox.ParseBoxType(string(head[4:8])).String()
	}
	return res, nil
}
