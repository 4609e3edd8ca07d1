package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/amara-chukwu/healthvault/internal/async"
	"github.com/amara-chukwu/healthvault/internal/ingest"
	"github.com/amara-chukwu/healthvault/internal/repository"
)

var watchInitialScan bool

var watchCmd = &cobra.Command{
	Use:   "watch [dir...]",
	Short: "Watch directories and ingest documents as they appear",
	Long: `Watch one or more directories (recursively) and run the extraction
pipeline on every supported document dropped into them, storing processed
records in the vault. Runs until interrupted.`,
	Args: cobra.ArbitraryArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchInitialScan, "initial-scan", false, "Also ingest files already present")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	roots := args
	if len(roots) == 0 {
		roots = cfg.Ingest.Roots
	}

	repo, db, err := openRepo(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	processor := newProcessor()
	queue := async.NewQueue(func(jobCtx context.Context, path string) error {
		loaded, err := ingest.LoadDocument(path)
		if err != nil {
			return err
		}
		res, err := processor.Process(jobCtx, loaded.Doc)
		if err != nil {
			return err
		}
		_, err = repo.SaveExtraction(jobCtx, res, repository.DocumentMeta{
			Name:        loaded.Doc.Name,
			MediaType:   loaded.Doc.MediaType,
			FileSize:    loaded.FileSize,
			ContentHash: loaded.ContentHash,
		})
		return err
	}, logger,
		async.WithWorkers(cfg.Queue.Workers),
		async.WithQueueSize(cfg.Queue.Size),
		async.WithProcessTimeout(cfg.Queue.ProcessTimeout),
	)

	evCh, errCh, err := ingest.Watch(ctx, ingest.WatchConfig{
		Roots:       roots,
		InitialScan: watchInitialScan || cfg.Ingest.InitialScan,
		Debounce:    cfg.Ingest.Debounce,
	}, logger)
	if err != nil {
		return err
	}

	logger.Info("watch.started", "roots", roots)
	for evCh != nil || errCh != nil {
		select {
		case path, ok := <-evCh:
			if !ok {
				evCh = nil
				continue
			}
			_ = queue.Enqueue(ctx, async.Job{Path: path, SubmittedAt: time.Now()})
		case _, ok := <-errCh:
			if !ok {
				errCh = nil
			}
		}
	}

	// channels closed: ctx cancelled, drain what's in flight
	queue.Shutdown(context.Background())
	return nil
}
