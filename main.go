package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "audiopruner",
		Usage:     "Batch remux video files so only English audio tracks remain",
		ArgsUsage: "directory",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Report selection decisions without touching any file",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Value: "audio_processing.log",
				Usage: "Run log destination",
			},
			&cli.StringFlag{
				Name:    "log-dir",
				EnvVars: []string{"AUDIOPRUNER_LOG_DIR"},
				Usage:   "Directory receiving the run log and the audit log",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "audiopruner.toml",
				Usage:   "Path to configuration file",
			},
			&cli.BoolFlag{
				Name:  "resume",
				Usage: "Skip files recorded as processed by a previous run",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	// Argument validation happens before any logging is set up so a bad
	// invocation leaves no log files behind.
	targetDir := c.Args().First()
	if targetDir == "" {
		return fmt.Errorf("missing required directory argument")
	}
	info, err := os.Stat(targetDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("directory %q does not exist", targetDir)
	}

	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}

	logDir := c.String("log-dir")
	logPath := c.String("log-file")
	if logDir != "" && !filepath.IsAbs(logPath) {
		logPath = filepath.Join(logDir, logPath)
	}
	auditPath := auditLogName
	if logDir != "" {
		auditPath = filepath.Join(logDir, auditLogName)
	}

	log, logCloser, err := newLogger(logPath, parseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer logCloser.Close()
	log = log.With("run_id", uuid.NewString())

	// One batch at a time: concurrent runs would race on the rewrites
	// and interleave the append-only logs.
	lock := flock.New(filepath.Join(filepath.Dir(logPath), "audiopruner.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another audiopruner run is already active (lock %s)", lock.Path())
	}
	defer lock.Unlock()

	dryRun := c.Bool("dry-run")
	log.Info("session started",
		"directory", targetDir,
		"dry_run", dryRun,
		"log_file", logPath)
	if dryRun {
		log.Info("dry run mode: no changes will be made")
	}

	resume := newCache("")
	if c.Bool("resume") {
		cachePath := cacheFileName
		if logDir != "" {
			cachePath = filepath.Join(logDir, cacheFileName)
		}
		resume, err = loadCache(cachePath)
		if err != nil {
			log.Warn("could not load resume cache, starting empty", "error", err)
			resume = newCache(cachePath)
		} else {
			log.Info("resume cache loaded", "entries", len(resume.items))
		}
	}

	files, err := findVideoFiles(targetDir, cfg.VideoExtensions)
	if err != nil {
		return fmt.Errorf("scan %s: %w", targetDir, err)
	}
	if len(files) == 0 {
		log.Warn("no video files found", "directory", targetDir)
		return nil
	}
	log.Info("discovered video files", "count", len(files))

	p := newProcessor(cfg, log, &auditLog{path: auditPath}, resume, dryRun)
	totals := p.run(c.Context, files)

	log.Info("session complete",
		"scanned", totals.scanned,
		"remuxed", totals.remuxed,
		"skipped", totals.skipped,
		"no_english", totals.ambiguous,
		"failed", totals.failed)

	styled := isatty.IsTerminal(os.Stdout.Fd())
	fmt.Println(renderSummary(totals, styled))
	if totals.ambiguous > 0 {
		fmt.Printf("Some files had no detectable English track - see %s\n", auditPath)
	}
	return nil
}
