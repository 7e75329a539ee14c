package engine

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/victormicco/mahito/internal/fsmeta"
	"github.com/victormicco/mahito/internal/officexml"
	"github.com/victormicco/mahito/internal/types"
)

// Cleaner applies one CleanOptions to any number of files. It keeps no state
// between calls and is safe to reuse.
type Cleaner struct {
	opts    types.CleanOptions
	backend fsmeta.Backend
	log     logrus.FieldLogger
	filter  globFilter
	scrub   func(path string) (officexml.Outcome, error)
}

// Option customizes a Cleaner.
type Option func(*Cleaner)

// WithBackend replaces the platform backend, mostly for tests.
func WithBackend(b fsmeta.Backend) Option {
	return func(c *Cleaner) { c.backend = b }
}

// WithLogger routes the cleaner's diagnostics to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Cleaner) {
		if l != nil {
			c.log = l
		}
	}
}

// New returns a Cleaner for opts. Without WithLogger nothing is logged.
func New(opts types.CleanOptions, options ...Option) *Cleaner {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	c := &Cleaner{
		opts:    opts,
		backend: fsmeta.Native(),
		log:     quiet,
		filter:  newGlobFilter(opts.Include, opts.Exclude),
		scrub:   officexml.Scrub,
	}
	for _, o := range options {
		o(c)
	}
	return c
}

// CollectFiles lists the files CleanDirectory (or CleanFile for SingleFile)
// would process, after include/exclude filtering.
func (c *Cleaner) CollectFiles(path string, mode types.CleanMode) ([]string, error) {
	w, err := collect(path, mode, c.filter)
	if err != nil {
		return nil, err
	}
	return w.files, nil
}

// CleanFile cleans a single file. Errors resolving path are returned; a
// failure inside any cleaning step is reported through a failed FileResult
// instead.
func (c *Cleaner) CleanFile(path string) (types.FileResult, error) {
	abs, info, err := resolve(path)
	if err != nil {
		return types.FileResult{}, err
	}
	if info.IsDir() {
		return types.FileResult{}, types.NewError(types.KindNotAFile, abs)
	}

	log := c.log.WithField("path", abs)
	if !info.Mode().IsRegular() {
		err := types.CleaningFailed(abs, "not a regular file", nil)
		log.WithError(err).Warn("cleaning failed")
		return types.Failed(abs, err.Error()), nil
	}
	if c.opts.DryRun {
		log.Debug("dry run, file left untouched")
		return types.Succeeded(abs, 0, false), nil
	}

	start := time.Now()
	res, err := c.apply(abs, log)
	if err != nil {
		log.WithError(err).Warn("cleaning failed")
		return types.Failed(abs, err.Error()), nil
	}
	log.WithFields(logrus.Fields{
		"streams":    res.StreamsRemoved,
		"attributes": res.AttributesRemoved,
		"elapsed":    time.Since(start),
	}).Debug("cleaned")
	return res, nil
}

// apply runs the enabled steps in order and stops at the first failure.
// Steps that already ran are not undone.
func (c *Cleaner) apply(path string, log logrus.FieldLogger) (types.FileResult, error) {
	res := types.Succeeded(path, 0, false)

	var before string
	if c.opts.VerifyContent {
		sum, err := contentFingerprint(path)
		if err != nil {
			return res, types.CleaningFailed(path, "failed to fingerprint content", err)
		}
		before = sum
	}

	if c.opts.ClearStreams {
		n, err := fsmeta.RemoveStreams(c.backend, path)
		if err != nil {
			return res, err
		}
		res.StreamsRemoved = n
		log.WithField("removed", n).Debug("streams")
	}
	if c.opts.ClearAttributes {
		n, err := fsmeta.RemoveAttributes(c.backend, path)
		if err != nil {
			return res, err
		}
		res.AttributesRemoved = n
		log.WithField("removed", n).Debug("attributes")
	}
	if c.opts.ClearTimestamps {
		if err := fsmeta.ResetTimestamps(c.backend, path); err != nil {
			return res, err
		}
		res.TimestampsReset = true
		log.Debug("timestamps reset")
	}
	if c.opts.ClearOwner {
		if err := c.backend.SetOwner(path); err != nil {
			return res, err
		}
		log.Debug("owner cleared")
	}
	if c.opts.ClearProperties {
		if err := c.backend.ClearProperties(path); err != nil {
			return res, err
		}
	}

	if c.opts.VerifyContent {
		after, err := contentFingerprint(path)
		if err != nil {
			return res, types.CleaningFailed(path, "failed to fingerprint content", err)
		}
		if after != before {
			return res, types.CleaningFailed(path, "primary content changed", nil)
		}
	}

	if c.opts.ClearProperties {
		out, err := c.scrub(path)
		if err != nil {
			return res, err
		}
		res.PropertiesCleared = true
		if out.Rewritten {
			log.Debug("office properties rewritten")
			if err := c.reapply(path); err != nil {
				return res, err
			}
		}
	}
	return res, nil
}

// reapply restores the per-file metadata a rewrite gave fresh values.
func (c *Cleaner) reapply(path string) error {
	if c.opts.ClearTimestamps {
		if err := fsmeta.ResetTimestamps(c.backend, path); err != nil {
			return err
		}
	}
	if c.opts.ClearOwner {
		if err := c.backend.SetOwner(path); err != nil {
			return err
		}
	}
	return nil
}

// CleanDirectory cleans every file mode selects below path.
func (c *Cleaner) CleanDirectory(path string, mode types.CleanMode) (types.CleanReport, error) {
	return c.CleanDirectoryContext(context.Background(), path, mode)
}

// CleanDirectoryContext is CleanDirectory with cancellation. ctx is checked
// between files only; on cancellation the report built so far is returned
// together with ctx.Err().
func (c *Cleaner) CleanDirectoryContext(ctx context.Context, path string, mode types.CleanMode) (types.CleanReport, error) {
	var report types.CleanReport

	root, info, err := resolve(path)
	if err != nil {
		return report, err
	}
	if !info.IsDir() {
		return report, types.NewError(types.KindNotADirectory, root)
	}
	if mode == types.SingleFile {
		return report, &types.Error{Kind: types.KindInvalidMode, Path: root, Reason: "directories are cleaned in shallow or deep mode"}
	}

	w, err := collect(root, mode, c.filter)
	if err != nil {
		return report, err
	}
	for i := 0; i < w.skipped; i++ {
		report.AddSkipped()
	}

	log := c.log.WithFields(logrus.Fields{"root": root, "mode": mode.String()})
	log.WithField("files", len(w.files)).Debug("batch started")

	for _, f := range w.files {
		if err := ctx.Err(); err != nil {
			log.WithField("processed", report.TotalFiles).Info("batch cancelled")
			return report, err
		}
		res, err := c.CleanFile(f)
		if err != nil {
			res = types.Failed(f, err.Error())
		}
		report.AddResult(res)
	}

	log.WithFields(logrus.Fields{
		"total":      report.TotalFiles,
		"successful": report.Successful,
		"failed":     report.Failed,
		"skipped":    report.Skipped,
	}).Info("batch finished")
	return report, nil
}
