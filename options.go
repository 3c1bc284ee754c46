package isobox

import (
	"github.com/rs/zerolog"

	"github.com/simonhull/isobox/internal/types"
)

// Option configures a dissection.
//
// Example:
//
//	file, err := isobox.Inspect("clip.mp4",
//	    isobox.WithMaxDepth(8),
//	    isobox.WithStrictParsing(),
//	)
type Option func(*dissectOptions)

// dissectOptions holds configuration for one dissection.
type dissectOptions struct {
	maxDepth       int            // Nested box levels (0 = DefaultMaxDepth)
	logger         zerolog.Logger // Debug output for stop conditions
	path           string         // Label used in errors and log fields
	strictParsing  bool           // Fail on any warning
	ignoreWarnings bool           // Drop all warnings
}

// defaultOptions returns the default configuration.
func defaultOptions() *dissectOptions {
	return &dissectOptions{
		maxDepth: types.DefaultMaxDepth,
		logger:   zerolog.Nop(),
	}
}

func applyOptions(opts []Option) *dissectOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}

func (o *dissectOptions) dissect() types.DissectOptions {
	return types.DissectOptions{
		Path:     o.path,
		MaxDepth: o.maxDepth,
		Logger:   o.logger,
	}
}

// DefaultMaxDepth is the container nesting limit used when WithMaxDepth is
// not given.
const DefaultMaxDepth = types.DefaultMaxDepth

// WithMaxDepth limits how many levels of nested boxes are walked.
//
// A container box at the limit is still reported, but its children are not,
// and a warning with ErrDepthExceeded is recorded. Values below 1 select
// DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(o *dissectOptions) {
		if depth < 1 {
			depth = types.DefaultMaxDepth
		}
		o.maxDepth = depth
	}
}

// WithLogger sends decoder diagnostics to logger.
//
// Stop conditions are logged at debug level, every box at trace level.
// The default logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *dissectOptions) {
		o.logger = logger
	}
}

// WithPath labels the input in errors and log output. Inspect sets it to
// the file path.
func WithPath(path string) Option {
	return func(o *dissectOptions) {
		o.path = path
	}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, a malformed box stops traversal of its scope and the
// dissection continues, returning warnings alongside the decoded tree.
// With strict parsing enabled, Inspect returns an error wrapping the first
// warning's error kind instead.
func WithStrictParsing() Option {
	return func(o *dissectOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// Use this when only the decoded tree matters.
func WithIgnoreWarnings() Option {
	return func(o *dissectOptions) {
		o.ignoreWarnings = true
	}
}
