package isobox

import (
	"bytes"
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/isobox/internal/mmfile"
	"github.com/simonhull/isobox/internal/mp4"
	"github.com/simonhull/isobox/internal/report"
	"github.com/simonhull/isobox/internal/types"
)

// File is the decoded box tree of one file.
//
// The tree holds copies of every reported value, so it stays valid after
// the file's mapping has been released.
type File struct {
	// Path of the inspected file
	Path string

	// Size of the file in bytes
	Size int64

	// Consumed is the number of bytes covered by top-level boxes
	Consumed int64

	// Boxes counts every box header read
	Boxes int

	// FileType is the first ftyp box, nil if the file has none
	FileType *FileType

	// Tree is the decoded structure
	Tree *report.Tree

	// Warnings encountered during dissection (non-fatal)
	Warnings []Warning
}

// Inspect maps the file at path and decodes its box tree.
//
// Files that do not start with a known box are rejected with an
// *UnsupportedFormatError.
//
// Example:
//
//	file, err := isobox.Inspect("clip.mp4")
//	if err != nil {
//		log.Fatal(err)
//	}
//	file.Tree.WriteText(os.Stdout, isobox.DefaultTextOptions())
func Inspect(path string, opts ...Option) (*File, error) {
	return InspectContext(context.Background(), path, opts...)
}

// InspectContext is like Inspect but returns early if ctx is already done.
// A dissection in progress is not interrupted; it always terminates on its own.
func InspectContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	options := applyOptions(append([]Option{WithPath(path)}, opts...))

	data, release, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("map file: %w", err)
	}
	defer release()

	file, err := inspectBytes(data, options)
	if err != nil {
		return nil, err
	}
	file.Path = path
	return file, nil
}

// inspectBytes decodes an in-memory file (internal, for testing).
func inspectBytes(data []byte, options *dissectOptions) (*File, error) {
	tree := report.New()
	size := int64(len(data))
	res := mp4.Dissector{}.Dissect(bytes.NewReader(data), size, tree, options.dissect())
	if !res.Accepted {
		return nil, &types.UnsupportedFormatError{
			Path:   options.path,
			Reason: "does not start with a known box",
		}
	}

	if options.strictParsing && len(res.Warnings) > 0 {
		return nil, fmt.Errorf("strict parsing failed: %w", res.Warnings[0].Err)
	}

	file := &File{
		Path:     options.path,
		Size:     size,
		Consumed: res.Consumed,
		Boxes:    res.Boxes,
		FileType: res.FileType,
		Tree:     tree,
		Warnings: res.Warnings,
	}
	if options.ignoreWarnings {
		file.Warnings = nil
	}

	options.logger.Debug().
		Str("path", options.path).
		Int64("size", size).
		Int64("consumed", res.Consumed).
		Int("boxes", res.Boxes).
		Int("warnings", len(res.Warnings)).
		Msg("inspected")

	return file, nil
}

// InspectMany inspects multiple files concurrently.
//
// Files are decoded in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. The first
// failure cancels the remaining work and is returned.
func InspectMany(ctx context.Context, paths []string, opts ...Option) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			file, err := InspectContext(ctx, path, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
