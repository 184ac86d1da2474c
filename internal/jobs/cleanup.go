// Package jobs runs background maintenance for the pricing service.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/KGG-Code/mybooking-prueba-tecnica/config"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/storage"
)

// archivePrefix is the key prefix of archived uploads
const archivePrefix = "imports/"

// RunPruner deletes finished import runs
type RunPruner interface {
	DeleteImportRunsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// CleanupResult counts what one cleanup pass removed
type CleanupResult struct {
	Runs     int64
	Archives int
}

// CleanupManager prunes import run history and archived uploads on an interval
type CleanupManager struct {
	config  config.RetentionConfig
	runs    RunPruner
	archive storage.Storage
	logger  zerolog.Logger
	now     func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewCleanupManager creates a cleanup manager. archive may be nil when
// uploads are not archived.
func NewCleanupManager(cfg config.RetentionConfig, runs RunPruner, archive storage.Storage, logger zerolog.Logger) *CleanupManager {
	return &CleanupManager{
		config:  cfg,
		runs:    runs,
		archive: archive,
		logger:  logger.With().Str("component", "cleanup").Logger(),
		now:     time.Now,
	}
}

// Start runs one pass immediately and then one per interval until ctx is
// done or Stop is called.
func (cm *CleanupManager) Start(ctx context.Context) {
	if !cm.config.Enabled {
		cm.logger.Info().Msg("Cleanup jobs are disabled, not starting")
		return
	}

	ctx, cm.cancel = context.WithCancel(ctx)
	cm.done = make(chan struct{})

	cm.logger.Info().
		Dur("interval", cm.config.Interval).
		Int("run_days", cm.config.RunDays).
		Int("archive_days", cm.config.ArchiveDays).
		Msg("Starting cleanup manager")

	go cm.loop(ctx)
}

// Stop cancels the loop and waits for the current pass to finish
func (cm *CleanupManager) Stop() {
	if cm.cancel == nil {
		return
	}
	cm.cancel()

	select {
	case <-cm.done:
		cm.logger.Debug().Msg("Cleanup manager stopped")
	case <-time.After(5 * time.Second):
		cm.logger.Warn().Msg("Cleanup job did not stop gracefully")
	}
}

func (cm *CleanupManager) loop(ctx context.Context) {
	defer close(cm.done)

	ticker := time.NewTicker(cm.config.Interval)
	defer ticker.Stop()

	cm.runLogged(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cm.runLogged(ctx)
		}
	}
}

func (cm *CleanupManager) runLogged(ctx context.Context) {
	start := time.Now()
	res, err := cm.RunOnce(ctx)
	if err != nil {
		cm.logger.Error().Err(err).Msg("Cleanup pass failed")
	}

	ev := cm.logger.Debug()
	if res.Runs > 0 || res.Archives > 0 {
		ev = cm.logger.Info()
	}
	ev.Int64("runs_deleted", res.Runs).
		Int("archives_deleted", res.Archives).
		Dur("duration", time.Since(start)).
		Msg("Cleanup pass completed")
}

// RunOnce prunes both targets. A failure in one does not skip the other.
// Zero retention days keeps that target forever.
func (cm *CleanupManager) RunOnce(ctx context.Context) (CleanupResult, error) {
	var (
		res  CleanupResult
		errs []error
	)
	now := cm.now()

	if cm.config.RunDays > 0 && cm.runs != nil {
		n, err := cm.runs.DeleteImportRunsBefore(ctx, now.AddDate(0, 0, -cm.config.RunDays))
		if err != nil {
			errs = append(errs, fmt.Errorf("cleanup import runs: %w", err))
		}
		res.Runs = n
	}

	if cm.config.ArchiveDays > 0 && cm.archive != nil {
		n, err := CleanupArchives(ctx, cm.archive, now.AddDate(0, 0, -cm.config.ArchiveDays))
		if err != nil {
			errs = append(errs, fmt.Errorf("cleanup archives: %w", err))
		}
		res.Archives = n
	}

	return res, errors.Join(errs...)
}

// CleanupArchives deletes archived uploads stored before cutoff. Uploads
// without metadata are left alone.
func CleanupArchives(ctx context.Context, store storage.Storage, cutoff time.Time) (int, error) {
	keys, err := store.List(ctx, archivePrefix)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return deleted, err
		}
		if !strings.HasPrefix(key, archivePrefix) {
			continue
		}
		meta, err := store.Metadata(ctx, key)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return deleted, err
		}
		if !meta.UploadedAt.Before(cutoff) {
			continue
		}
		if err := store.Delete(ctx, key); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
