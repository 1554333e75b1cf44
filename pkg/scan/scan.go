package scan

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/charmbracelet/log"

	"github.com/duviz/duviz/pkg/errors"
	"github.com/duviz/duviz/pkg/treemap"
)

// DefaultProgressInterval is the default cadence for progress callbacks.
const DefaultProgressInterval = 250 * time.Millisecond

// maxWarnings caps how many per-entry failures a scan reports verbatim.
// Anything beyond the cap is still counted in Stats.Errors.
const maxWarnings = 20

// errTruncated aborts the walk once the file cap is reached.
var errTruncated = stderrors.New("file cap reached")

// Options configures a directory scan.
type Options struct {
	// Path is the directory to scan.
	Path string

	// MaxDepth limits traversal depth below Path (0 = unlimited).
	MaxDepth int

	// MaxFiles stops the scan after this many files (0 = unlimited).
	// A capped scan returns its partial tree with Stats.Truncated set.
	MaxFiles int64

	// FollowSymlinks resolves symlinked directories instead of
	// recording the link itself.
	FollowSymlinks bool

	// Progress, if set, receives running (files, bytes) totals every
	// ProgressInterval while the walk runs.
	Progress         func(files, bytes int64)
	ProgressInterval time.Duration

	// Logger receives per-entry failures at debug level. Nil disables
	// scan logging.
	Logger *log.Logger
}

// Stats summarizes a completed scan.
type Stats struct {
	Files      int64
	Dirs       int64
	TotalBytes int64

	// Errors counts entries that could not be read and were skipped.
	Errors int64

	// Warnings holds the first few skip reasons, one line each.
	Warnings []string

	// Truncated reports that the walk stopped at Options.MaxFiles and
	// the tree covers only part of the directory.
	Truncated bool

	Elapsed time.Duration
}

// Result is a finished scan: the aggregated weighted tree plus stats.
type Result struct {
	Root  *treemap.Node
	Stats Stats
}

// Run walks the directory at opts.Path and builds its weighted tree.
// The walk uses multiple goroutines; unreadable entries are counted and
// skipped. The returned tree is aggregated and sorted, ready for layout.
//
// Run fails with NOT_FOUND if the path does not exist, NOT_DIRECTORY if
// it is not a directory, and the context error if ctx is cancelled
// mid-walk.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if err := errors.ValidateScanPath(opts.Path); err != nil {
		return nil, err
	}

	path := filepath.Clean(opts.Path)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "path %q does not exist", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "accessing %q", path)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeNotDirectory, "path %q is not a directory", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolving %q", path)
	}

	rootName := filepath.Base(abs)
	c := &collector{
		root:     treemap.NewNode(rootName, rootName, 0),
		maxFiles: opts.MaxFiles,
		logger:   opts.Logger,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	startProgressReporter(ctx, c, opts.Progress, opts.ProgressInterval)

	start := time.Now()
	conf := &fastwalk.Config{
		Follow: opts.FollowSymlinks,
	}

	walkErr := fastwalk.Walk(conf, path, func(entry string, d fs.DirEntry, err error) error {
		if err != nil {
			c.addError(entry, err)
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rel, err := filepath.Rel(path, entry)
		if err != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		depth := strings.Count(rel, "/") + 1
		if opts.MaxDepth > 0 && depth > opts.MaxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			c.addDir(rel)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			c.addError(entry, err)
			return nil
		}
		return c.addFile(rel, fi.Size())
	})

	stats := c.finalize()
	stats.Elapsed = time.Since(start)

	switch {
	case walkErr == nil:
	case stderrors.Is(walkErr, errTruncated):
		stats.Truncated = true
	case stderrors.Is(walkErr, context.Canceled) || stderrors.Is(walkErr, context.DeadlineExceeded):
		return nil, walkErr
	default:
		return nil, errors.Wrap(errors.ErrCodeInternal, walkErr, "walking %q", path)
	}

	if _, err := c.root.Aggregate(); err != nil {
		return nil, err
	}
	c.root.SortBySize()

	return &Result{Root: c.root, Stats: stats}, nil
}

// collector builds the tree from concurrent walk callbacks. All mutation
// happens under the mutex since fastwalk runs the callback from multiple
// goroutines.
type collector struct {
	mu       sync.Mutex
	root     *treemap.Node
	files    int64
	dirs     int64
	bytes    int64
	errs     int64
	warnings []string
	maxFiles int64
	logger   *log.Logger
}

func (c *collector) addFile(rel string, size int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxFiles > 0 && c.files >= c.maxFiles {
		return errTruncated
	}
	c.files++
	c.bytes += size
	c.root.InsertRelative(rel, size)
	return nil
}

func (c *collector) addDir(rel string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dirs++
	// Register the directory even when empty so the tree mirrors the
	// filesystem. Empty directories aggregate to zero and drop out of
	// the layout.
	c.root.InsertRelative(rel, 0)
}

func (c *collector) addError(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errs++
	if len(c.warnings) < maxWarnings {
		c.warnings = append(c.warnings, path+": "+err.Error())
	}
	if c.logger != nil {
		c.logger.Debug("skipping entry", "path", path, "error", err)
	}
}

func (c *collector) snapshot() (files, bytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.files, c.bytes
}

func (c *collector) finalize() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Files:      c.files,
		Dirs:       c.dirs,
		TotalBytes: c.bytes,
		Errors:     c.errs,
		Warnings:   c.warnings,
	}
}

// startProgressReporter invokes hook with running totals on each tick
// until ctx is done.
func startProgressReporter(ctx context.Context, c *collector, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}
	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				hook(c.snapshot())
			case <-ctx.Done():
				return
			}
		}
	}()
}
