package job

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ytget/mediafetch/internal/fetch"
	"github.com/ytget/mediafetch/internal/model"
	"github.com/ytget/mediafetch/internal/progress"
	"github.com/ytget/mediafetch/internal/tagger"
)

// Fallback batch title when the platform reports none
const unknownBatchTitle = "Unknown Playlist"

const dirPermissions = 0o755

// run drives one job end to end on its own goroutine: resolve the
// target into an ordered batch, then fetch and tag each item in order.
// A single item's failure is recorded and the batch continues; only
// resolution-level failures turn the whole job into an error.
func (s *Service) run(ctx context.Context, jobID string, spec jobSpec) {
	select {
	case s.slots <- struct{}{}:
	case <-ctx.Done():
		s.fail(jobID, fmt.Sprintf("job aborted: %v", ctx.Err()))
		return
	}
	defer func() { <-s.slots }()

	opts := fetch.Options{
		Format:          spec.format,
		Quality:         spec.quality,
		SocketTimeout:   s.cfg.Downloads.SocketTimeout,
		FragmentRetries: s.cfg.Downloads.FragmentRetries,
	}

	res, err := s.engine.Resolve(ctx, spec.url, opts)
	if err != nil {
		s.fail(jobID, fmt.Sprintf("resolution failed: %v", err))
		return
	}

	total := len(res.Items)
	if total > s.cfg.Downloads.MaxCollectionSize {
		s.fail(jobID, fmt.Sprintf("collection has %d items, limit is %d", total, s.cfg.Downloads.MaxCollectionSize))
		return
	}

	// Totals are visible to pollers before the first item starts.
	batchTitle := ""
	if total > 1 {
		batchTitle = res.BatchTitle
		if batchTitle == "" {
			batchTitle = unknownBatchTitle
		}
	}
	s.reg.Update(jobID, func(j *model.Job) {
		j.BatchTotal = total
		j.BatchTitle = batchTitle
	})

	// The collection name is fixed for the whole batch so every item's
	// path and tags agree.
	album := resolveAlbum(spec.isCollection, batchTitle)
	hook := progress.NewHook(s.log, s.reg, jobID)

	for i, item := range res.Items {
		index := i + 1
		s.processItem(ctx, jobID, spec, opts, item, index, album, hook)
	}

	s.complete(jobID)
}

// processItem fetches and tags one batch item. Fetch errors are
// recorded against the job's failed items; tagging errors are logged
// only.
func (s *Service) processItem(ctx context.Context, jobID string, spec jobSpec, opts fetch.Options, item fetch.Item, index int, album string, hook fetch.Hook) {
	title := resolveTitle(item, index)
	artist := resolveArtist(item)

	s.reg.Update(jobID, func(j *model.Job) {
		j.BatchIndex = index
		j.CurrentItemName = title
		j.TotalBytes = nil
		j.DownloadedBytes = nil
		j.TransferRate = nil
		j.ETASec = nil
	})

	dir := filepath.Join(spec.root, SanitizeName(artist), SanitizeName(album))
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		s.recordItemFailure(jobID, index, title, err)
		return
	}

	base := SanitizeName(title)
	template := filepath.Join(dir, base+".%(ext)s")

	if err := s.engine.Download(ctx, item.URL, template, opts, hook); err != nil {
		s.recordItemFailure(jobID, index, title, err)
		return
	}

	finalPath := filepath.Join(dir, base+"."+spec.format)

	if spec.format == fetch.FormatMP3 {
		md := tagger.Metadata{
			Title:    title,
			Artist:   artist,
			Album:    album,
			CoverURL: item.Thumbnail,
		}
		if err := s.tagger.Apply(ctx, finalPath, md); err != nil {
			// Best effort: the fetch already succeeded.
			s.log.Warn("tagging failed",
				zap.String("job_id", jobID),
				zap.String("path", finalPath),
				zap.Error(err))
		}
	}

	s.reg.Update(jobID, func(j *model.Job) {
		j.SucceededCount++
		j.CurrentFilepath = finalPath
	})
}

// recordItemFailure appends one item's error and lets the batch move on
func (s *Service) recordItemFailure(jobID string, index int, title string, err error) {
	s.log.Warn("item fetch failed",
		zap.String("job_id", jobID),
		zap.Int("item", index),
		zap.String("title", title),
		zap.Error(err))

	s.reg.Update(jobID, func(j *model.Job) {
		j.FailedItems = append(j.FailedItems, fmt.Sprintf("item %d (%s): %v", index, title, err))
	})
}

// complete finalizes a job that processed its whole batch, however many
// items individually failed
func (s *Service) complete(jobID string) {
	s.reg.Update(jobID, func(j *model.Job) {
		j.Status = model.JobStatusCompleted
		j.Progress = 100
		j.TotalBytes = nil
		j.DownloadedBytes = nil
		j.TransferRate = nil
		j.ETASec = nil
	})
	s.sweeper.Schedule(jobID)

	if snap, err := s.reg.Get(jobID); err == nil {
		s.log.Info("job completed",
			zap.String("job_id", jobID),
			zap.Int("succeeded", snap.SucceededCount),
			zap.Int("failed", len(snap.FailedItems)),
			zap.Int("batch_total", snap.BatchTotal))
	}
}

// fail turns the whole job into a terminal error
func (s *Service) fail(jobID, message string) {
	s.reg.Update(jobID, func(j *model.Job) {
		j.Status = model.JobStatusError
		j.Error = message
	})
	s.sweeper.Schedule(jobID)

	s.log.Error("job failed", zap.String("job_id", jobID), zap.String("error", message))
}
