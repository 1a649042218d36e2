package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
)

// counters aggregates per-file outcomes across one batch.
type counters struct {
	scanned   int
	remuxed   int // rewritten, or would be in dry-run
	skipped   int // at most one audio track, or resumed from cache
	ambiguous int // no English track detected; recorded in the audit log
	failed    int
}

type probeFunc func(ctx context.Context, binary, path string) (manifest, error)
type rewriteFunc func(ctx context.Context, path string, keep []int) error

// processor owns the per-run state: configuration, the run logger, the
// audit sink, and the optional resume cache. One instance drives the
// whole batch, strictly one file at a time - nothing is shared between
// files except the aggregate counters and the append-only logs.
type processor struct {
	cfg     *Config
	log     *slog.Logger
	audit   *auditLog
	cache   *cache
	dryRun  bool
	probe   probeFunc
	rewrite rewriteFunc
}

func newProcessor(cfg *Config, log *slog.Logger, audit *auditLog, resume *cache, dryRun bool) *processor {
	rw := &rewriter{ffmpegBin: cfg.FFmpegBin, log: log}
	return &processor{
		cfg:     cfg,
		log:     log,
		audit:   audit,
		cache:   resume,
		dryRun:  dryRun,
		probe:   inspect,
		rewrite: rw.rewrite,
	}
}

// run processes every file sequentially and returns the aggregate
// counters.
func (p *processor) run(ctx context.Context, files []string) counters {
	totals := counters{scanned: len(files)}
	for i, path := range files {
		p.log.Info("processing file",
			"path", path,
			"progress", fmt.Sprintf("%d/%d", i+1, len(files)))
		result := p.processFile(ctx, path)
		p.log.Debug("file outcome", "path", path, "outcome", result.String())
		switch result {
		case outcomeRemuxed:
			totals.remuxed++
		case outcomeSkippedFewTracks, outcomeSkippedCached:
			totals.skipped++
		case outcomeSkippedAmbiguous:
			totals.ambiguous++
		case outcomeFailed:
			totals.failed++
		}
	}
	return totals
}

// processFile runs probe -> classify -> select -> rewrite for one file.
// Every per-file error is converted into an outcome here; nothing
// propagates up to abort the batch.
func (p *processor) processFile(ctx context.Context, path string) outcome {
	if p.cache.check(path) {
		p.log.Debug("skipping file recorded by previous run", "path", path)
		return outcomeSkippedCached
	}

	m, err := p.probe(ctx, p.cfg.FFprobeBin, path)
	if err != nil {
		p.log.Error("probe failed", "path", path, "error", err)
		return outcomeFailed
	}

	tracks := classifyTracks(m)
	if len(tracks) <= 1 {
		p.log.Info("skipping file with at most one audio track",
			"path", path, "audio_tracks", len(tracks))
		p.rememberProcessed(path)
		return outcomeSkippedFewTracks
	}

	for _, t := range tracks {
		p.log.Debug("audio track",
			"path", path,
			"stream", t.Index,
			"language", t.Language,
			"title", t.Title,
			"codec", t.Codec,
			"channels", t.Channels)
	}

	sel := selectEnglish(tracks)
	if len(sel.Keep) == 0 {
		p.log.Warn("no English audio track detected",
			"path", path, "audio_tracks", len(tracks))
		if err := p.audit.record(path, tracks); err != nil {
			p.log.Error("could not append audit log", "path", path, "error", err)
		}
		return outcomeSkippedAmbiguous
	}
	p.log.Info("English tracks selected",
		"path", path,
		"keep", fmt.Sprint(sel.Keep),
		"drop", fmt.Sprint(sel.Drop))

	if p.dryRun {
		p.log.Info("dry run: would remux keeping selected tracks",
			"path", path, "keep", fmt.Sprint(sel.Keep))
		return outcomeRemuxed
	}

	if err := p.rewrite(ctx, path, sel.Keep); err != nil {
		p.log.Error("rewrite failed", "path", path, "error", err)
		return outcomeFailed
	}
	p.log.Info("remux complete, non-English audio removed", "path", path)
	p.rememberProcessed(path)
	return outcomeRemuxed
}

// rememberProcessed records the file in the resume cache. Dry runs must
// not mutate anything, the cache file included.
func (p *processor) rememberProcessed(path string) {
	if p.dryRun {
		return
	}
	if err := p.cache.update(path); err != nil {
		p.log.Warn("could not update resume cache", "path", path, "error", err)
		return
	}
	if err := p.cache.save(); err != nil {
		p.log.Warn("could not save resume cache", "path", path, "error", err)
	}
}

// renderSummary produces the terminal batch summary table.
func renderSummary(totals counters, styled bool) string {
	tw := table.NewWriter()
	if styled {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}
	tw.AppendHeader(table.Row{"Result", "Files"})
	tw.AppendRows([]table.Row{
		{"Scanned", totals.scanned},
		{"Remuxed", totals.remuxed},
		{"Skipped", totals.skipped},
		{"No English track", totals.ambiguous},
		{"Failed", totals.failed},
	})
	return tw.Render()
}
