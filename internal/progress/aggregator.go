package progress

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ytget/mediafetch/internal/fetch"
	"github.com/ytget/mediafetch/internal/model"
	"github.com/ytget/mediafetch/internal/registry"
)

// ProcessingReserve is where a single-item job lands on the finished
// event: the remaining tail is reserved for transcode and tagging.
const ProcessingReserve = 95.0

// Overall computes the job-wide progress percentage for one engine
// event. For a batch, completed items each contribute a full 1/total
// share and the in-flight item contributes its byte fraction; the
// result never exceeds 100. Downloading events are floored at current
// so progress is non-decreasing within an item.
func Overall(ev fetch.Event, batchIndex, batchTotal int, current float64) float64 {
	if batchTotal <= 1 {
		if ev.Phase == fetch.PhaseFinished {
			return ProcessingReserve
		}
		return maxFloat(current, minFloat(fraction(ev)*100, 100))
	}

	if ev.Phase == fetch.PhaseFinished {
		return minFloat(float64(batchIndex)/float64(batchTotal)*100, 100)
	}

	completedBefore := batchIndex - 1
	if completedBefore < 0 {
		completedBefore = 0
	}
	p := (float64(completedBefore) + fraction(ev)) / float64(batchTotal) * 100
	return maxFloat(current, minFloat(p, 100))
}

// fraction is the in-flight item's byte fraction; unknown totals
// contribute nothing rather than guessing
func fraction(ev fetch.Event) float64 {
	if ev.TotalBytes <= 0 {
		return 0
	}
	f := float64(ev.DownloadedBytes) / float64(ev.TotalBytes)
	if f > 1 {
		f = 1
	}
	return f
}

// NewHook returns the engine progress hook for one job. It applies each
// event to the registry record: phase-driven status, transfer
// telemetry, and the aggregated overall progress. The hook runs inside
// the engine's worker stack, so it must never panic out — any failure
// is logged and the previous record state kept.
func NewHook(log *zap.Logger, reg *registry.Registry, jobID string) fetch.Hook {
	return func(ev fetch.Event) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("progress hook panicked",
					zap.String("job_id", jobID),
					zap.Any("panic", r))
			}
		}()

		reg.Update(jobID, func(j *model.Job) {
			if j.Status.IsTerminal() {
				return
			}
			apply(j, ev)
		})
	}
}

// apply mutates the live record for one event; callers hold the
// registry lock
func apply(j *model.Job, ev fetch.Event) {
	j.Progress = Overall(ev, j.BatchIndex, j.BatchTotal, j.Progress)

	if ev.Filename != "" {
		j.CurrentItemName = filepath.Base(ev.Filename)
		j.CurrentFilepath = ev.Filename
	}

	switch ev.Phase {
	case fetch.PhaseFinished:
		j.Status = model.JobStatusProcessing
		j.TotalBytes = nil
		j.DownloadedBytes = nil
		j.TransferRate = nil
		j.ETASec = nil
	default:
		j.Status = model.JobStatusDownloading
		if ev.TotalBytes > 0 {
			total := ev.TotalBytes
			j.TotalBytes = &total
		}
		done := ev.DownloadedBytes
		j.DownloadedBytes = &done
		if ev.Rate > 0 {
			rate := ev.Rate
			j.TransferRate = &rate
		}
		if ev.ETASec >= 0 {
			eta := ev.ETASec
			j.ETASec = &eta
		}
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
