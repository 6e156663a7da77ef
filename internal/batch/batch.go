// Package batch runs extraction over every annotation document under a root
// directory, isolating per-identifier failures.
package batch

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/label-extract/internal/annotation"
	"github.com/ironsheep/label-extract/internal/extract"
	"github.com/ironsheep/label-extract/internal/failure"
	"github.com/ironsheep/label-extract/internal/logging"
	"github.com/ironsheep/label-extract/internal/reconstruct"
)

// DefaultSkip lists identifiers whose labels are known not to reconstruct.
var DefaultSkip = []string{"0230_038", "0230_042", "0230_048"}

// Processor extracts one identifier into outPath.
type Processor interface {
	Extract(ctx context.Context, identifier, outPath string) (*reconstruct.Result, error)
}

// Driver is a batch run configuration.
type Driver struct {
	Root      string
	OutputDir string
	Skip      []string
	// Workers bounds concurrent extractions; zero means runtime.NumCPU.
	Workers   int
	Processor Processor
	Log       *logging.Logger
}

// Summary counts what a run did.
type Summary struct {
	RunID      string
	Discovered int
	Skipped    int
	Succeeded  int
	Failed     int
}

// Discover lists the identifiers of annotation documents that are direct
// children of root, in lexical order. Subdirectories are not entered and
// batch transcripts are ignored. Unreadable entries are passed to report and
// do not stop the walk.
func Discover(root string, report func(error)) []string {
	var ids []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			report(failure.New(failure.Traversal, "failed to read "+path, err))
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			return filepath.SkipDir
		}

		name := d.Name()
		if filepath.Ext(name) != annotation.Extension || strings.HasSuffix(name, extract.TranscriptSuffix) {
			return nil
		}
		ids = append(ids, strings.TrimSuffix(name, annotation.Extension))
		return nil
	})
	if walkErr != nil {
		report(failure.New(failure.Traversal, "failed to walk "+root, walkErr))
	}
	return ids
}

// Run discovers identifiers and extracts each one that is not skipped,
// writing "<OutputDir>/<identifier>.extract.txt".
//
// At most Workers extractions run at once; a non-positive Workers uses one
// per CPU. One identifier failing never stops the others.
//
// Returns:
//   - *Summary: Always non-nil. Discovered counts every identifier found,
//     skipped ones included.
//   - error: Nil when every extraction succeeded and the root was fully
//     readable, otherwise a *failure.Many.
//
// # Errors
//
// Each extraction failure is tagged with its identifier and keeps its kind,
// so failure.KindOf still works on the entries of the *failure.Many.
// Unreadable directory entries are collected as traversal failures.
func (d *Driver) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{RunID: uuid.NewString()}

	workers := d.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	d.Log.Info("starting batch", "run", sum.RunID, "root", d.Root, "workers", workers)

	var errs failure.Collector
	ids := Discover(d.Root, errs.Add)
	sum.Discovered = len(ids)

	skip := make(map[string]bool, len(d.Skip))
	for _, id := range d.Skip {
		skip[id] = true
	}

	var succeeded, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(workers)

	for _, id := range ids {
		if skip[id] {
			sum.Skipped++
			d.Log.Debug("skipping", "identifier", id)
			continue
		}

		g.Go(func() error {
			if _, err := d.Processor.Extract(ctx, id, extract.TranscriptPath(d.OutputDir, id)); err != nil {
				failed.Add(1)
				d.Log.Warn("extraction failed", "run", sum.RunID, "identifier", id, "kind", failure.KindOf(err))
				errs.Add(failure.Tag(id, err))
				return nil
			}
			succeeded.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	sum.Succeeded = int(succeeded.Load())
	sum.Failed = int(failed.Load())
	d.Log.Info("batch finished", "run", sum.RunID,
		"succeeded", sum.Succeeded, "failed", sum.Failed, "skipped", sum.Skipped)

	return sum, errs.Err()
}
