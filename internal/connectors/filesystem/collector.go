package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/inah-tools/archivo/internal/core/domain"
	"github.com/inah-tools/archivo/internal/core/ports/driven"
	"github.com/inah-tools/archivo/internal/logger"
)

// Ensure Collector implements the interface.
var _ driven.Collector = (*Collector)(nil)

// channelBuffer sizes the record and error channels.
const channelBuffer = 100

// Collector walks a directory tree and emits a record for every file whose
// extension is in its extension set. It only reads names and paths, never
// file contents, and does not follow symlinked directories.
type Collector struct {
	extensions map[string]bool
}

// NewCollector creates a collector matching the given extensions
// case-insensitively. With no extensions it matches ".pdf".
func NewCollector(extensions ...string) *Collector {
	exts := domain.NormalizeExtensions(extensions)
	if len(exts) == 0 {
		exts = []string{domain.DefaultExtension}
	}
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		set[ext] = true
	}
	return &Collector{extensions: set}
}

// Matches reports whether name has one of the collector's extensions.
func (c *Collector) Matches(name string) bool {
	return c.extensions[strings.ToLower(filepath.Ext(name))]
}

// Collect walks root and sends one record per matching file.
func (c *Collector) Collect(ctx context.Context, root string) (<-chan domain.DocumentRecord, <-chan error) {
	records := make(chan domain.DocumentRecord, channelBuffer)
	errs := make(chan error, channelBuffer)

	go func() {
		defer close(records)
		defer close(errs)

		if err := c.walk(ctx, root, records, errs); err != nil {
			errs <- err
		}
	}()

	return records, errs
}

// walk performs the traversal. A returned error is fatal for the run.
func (c *Collector) walk(
	ctx context.Context,
	root string,
	records chan<- domain.DocumentRecord,
	errs chan<- error,
) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving root %q: %w", root, err)
	}
	if linfo, err := os.Lstat(absRoot); err == nil && linfo.Mode()&fs.ModeSymlink != 0 {
		// WalkDir does not descend into a symlinked root.
		if resolved, err := filepath.EvalSymlinks(absRoot); err == nil {
			absRoot = resolved
		}
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return fmt.Errorf("reading root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: root %q is not a directory", domain.ErrInvalidInput, absRoot)
	}

	logger.Debug("Collecting %v under %s", c.extensionList(), absRoot)

	classified := make(map[string]domain.Classification)

	return filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if path == absRoot {
				return fmt.Errorf("reading root: %w", walkErr)
			}
			return c.skip(ctx, errs, path, walkErr, d)
		}

		if d.IsDir() {
			cls := Classify(absRoot, path)
			if cls.IsFallback() {
				logger.Info("Classification fallback for %s: %s", path, cls.Reason)
			}
			classified[path] = cls
			return nil
		}

		if !c.Matches(d.Name()) || !isDocument(path, d) {
			return nil
		}

		dir := filepath.Dir(path)
		cls, ok := classified[dir]
		if !ok {
			cls = Classify(absRoot, dir)
			classified[dir] = cls
		}

		select {
		case records <- cls.Record(d.Name(), filepath.Join(dir, d.Name())):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// skip reports an unreadable entry and tells WalkDir to continue.
func (c *Collector) skip(ctx context.Context, errs chan<- error, path string, cause error, d fs.DirEntry) error {
	logger.Warn("Skipping %s: %v", path, cause)

	select {
	case errs <- fmt.Errorf("%w: %s: %w", domain.ErrTraversalSkipped, path, cause):
	case <-ctx.Done():
		return ctx.Err()
	}

	if d != nil && d.IsDir() {
		return fs.SkipDir
	}
	return nil
}

// extensionList returns the configured extensions for logging.
func (c *Collector) extensionList() []string {
	exts := make([]string, 0, len(c.extensions))
	for ext := range c.extensions {
		exts = append(exts, ext)
	}
	return exts
}

// isDocument reports whether the entry is a regular file, following a
// symlink only when it points at a regular file.
func isDocument(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Debug("Cannot resolve symlink %s: %v", path, err)
		}
		return false
	}
	return info.Mode().IsRegular()
}
