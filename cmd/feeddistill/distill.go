package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/feeddistill"
	"github.com/fwojciec/feeddistill/batch"
	"github.com/fwojciec/feeddistill/fs"
)

// Run executes the distill command.
func (c *DistillCmd) Run(deps *Dependencies) error {
	level, sources, err := prepare(deps, &c.Options, c.Sources)
	if err != nil {
		return err
	}

	results := deps.Runner.Run(deps.Ctx, sources, level, progressLogger(deps))

	failed := report(deps, results)

	if c.Out != "" {
		store := fs.NewFileStore(filepath.Dir(c.Out), filepath.Base(c.Out))
		n, err := saveArtifacts(deps, store, results, level)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", feeddistill.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d artifacts to %s\n", n, c.Out)
	} else if err := writeResults(deps.Stdout, c.Format, results, level); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d sources failed", failed, len(results))
	}
	return nil
}

// prepare parses the level and loads the sources, reporting problems on
// stderr the way every command does.
func prepare(deps *Dependencies, opts *Options, args []string) (feeddistill.Level, []batch.Source, error) {
	level, err := feeddistill.ParseLevel(opts.Level)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", feeddistill.ErrorMessage(err))
		return level, nil, err
	}

	sources, err := LoadSources(args, opts.URL, deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", feeddistill.ErrorMessage(err))
		return level, nil, err
	}
	return level, sources, nil
}

// report prints notices and errors for results to stderr and returns the
// number of failed sources. Unsupported pages are not failures.
func report(deps *Dependencies, results []batch.Result) int {
	var failed int
	for _, r := range results {
		switch {
		case r.Err == nil:
			if r.Notice != "" {
				fmt.Fprintf(deps.Stderr, "note: %s: %s\n", r.Source.Name, r.Notice)
			}
			if deps.Logger != nil {
				deps.Logger.Info("distilled",
					"source", batch.ShortSource(r.Source.Name, 60),
					"size", batch.FormatSize(len(r.Text)),
					"tokens", batch.FormatTokens(r.Tokens, tokenBudget(deps)),
				)
			}
		case feeddistill.ErrorCode(r.Err) == feeddistill.ENOTSUPPORTED:
			fmt.Fprintf(deps.Stderr, "notice: %s (page not supported)\n", feeddistill.ErrorMessage(r.Err))
		default:
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s\n", feeddistill.ErrorMessage(r.Err))
		}
	}
	return failed
}

func tokenBudget(deps *Dependencies) int {
	if deps.Runner == nil {
		return 0
	}
	return deps.Runner.MaxTokens
}

// progressLogger returns a progress callback that logs through deps.Logger.
func progressLogger(deps *Dependencies) batch.ProgressFunc {
	if deps.Logger == nil {
		return nil
	}
	return func(e batch.ProgressEvent) {
		switch e.Type {
		case batch.ProgressStarted:
			deps.Logger.Info("started", "total", e.Total)
		case batch.ProgressCompleted:
			deps.Logger.Info("progress", "completed", e.Completed, "total", e.Total, "source", batch.ShortSource(e.Source, 60))
		case batch.ProgressFailed:
			deps.Logger.Warn("progress", "completed", e.Completed, "total", e.Total, "source", batch.ShortSource(e.Source, 60), "err", e.Error)
		case batch.ProgressFinished:
			deps.Logger.Info("finished", "total", e.Total)
		}
	}
}

// saveArtifacts stages every successful result in store and commits them
// together. Nothing is written if any save fails.
func saveArtifacts(deps *Dependencies, store feeddistill.ArtifactStore, results []batch.Result, level feeddistill.Level) (int, error) {
	var n int
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		err := store.Save(deps.Ctx, &feeddistill.Artifact{
			Source: r.Source.Name,
			URL:    r.Source.URL,
			Site:   r.Site,
			Level:  level,
			Hash:   r.Hash,
			Notice: r.Notice,
			Text:   r.Text,
		})
		if err != nil {
			_ = store.Abort()
			return 0, err
		}
		n++
	}
	if n == 0 {
		return 0, store.Abort()
	}
	if err := store.Commit(); err != nil {
		_ = store.Abort()
		return 0, err
	}
	return n, nil
}
