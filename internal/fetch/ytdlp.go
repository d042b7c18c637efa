package fetch

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"
)

// Progress callback frequency
const progressInterval = 500 * time.Millisecond

// One whole-item retry on top of yt-dlp's own fragment retries
const (
	maxDownloadRetries = 1
	retryBackoff       = 2 * time.Second
)

// YTDLPEngine implements Engine on top of yt-dlp via go-ytdlp
type YTDLPEngine struct {
	log *zap.Logger
}

// NewYTDLPEngine creates a yt-dlp backed engine
func NewYTDLPEngine(log *zap.Logger) *YTDLPEngine {
	return &YTDLPEngine{log: log}
}

// Resolve extracts metadata for url without downloading and flattens it
// into an ordered batch. A playlist URL yields one Item per entry; a
// plain video URL yields a single-item batch with no batch title.
func (e *YTDLPEngine) Resolve(ctx context.Context, url string, opts Options) (*Resolution, error) {
	dl := ytdlp.New().
		SkipDownload().
		DumpSingleJSON().
		IgnoreErrors().
		SocketTimeout(opts.SocketTimeout.Seconds())

	result, err := dl.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", url, err)
	}

	infos, err := result.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("parse extracted info for %s: %w", url, err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("resolve %s: no items", url)
	}

	top := infos[0]
	entries := top.Entries
	if len(entries) == 0 {
		// Single video: the top-level info is the only entry.
		return &Resolution{Items: []Item{itemFromInfo(top, url)}}, nil
	}

	res := &Resolution{
		Items:      make([]Item, 0, len(entries)),
		BatchTitle: deref(top.Title),
	}
	for _, entry := range entries {
		if entry == nil {
			// IgnoreErrors leaves holes for unavailable entries.
			continue
		}
		res.Items = append(res.Items, itemFromInfo(entry, url))
	}
	if len(res.Items) == 0 {
		return nil, fmt.Errorf("resolve %s: playlist has no available items", url)
	}
	return res, nil
}

// Download fetches one item, streaming progress through hook. A failed
// attempt is retried once with backoff, mirroring fragment-level retry
// exhaustion as a single item failure rather than a job abort.
func (e *YTDLPEngine) Download(ctx context.Context, itemURL, outputTemplate string, opts Options, hook Hook) error {
	dl := ytdlp.New().
		ForceOverwrites().
		NoPlaylist().
		SocketTimeout(opts.SocketTimeout.Seconds()).
		FragmentRetries(strconv.Itoa(opts.FragmentRetries)).
		SkipUnavailableFragments().
		Output(outputTemplate)

	if opts.Format == FormatMP3 {
		dl = dl.
			Format("bestaudio/best").
			ExtractAudio().
			AudioFormat("mp3").
			AudioQuality(opts.Quality + "K")
	} else {
		dl = dl.Format(videoFormat(opts.Quality))
	}

	dl = dl.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
		hook(eventFromUpdate(update))
	})

	var lastErr error
	for attempt := 0; attempt <= maxDownloadRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			e.log.Warn("retrying item download",
				zap.String("url", itemURL),
				zap.Int("attempt", attempt+1))
		}

		_, err := dl.Run(ctx, itemURL)
		if err == nil {
			return nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return fmt.Errorf("download %s: %w", itemURL, lastErr)
}

// videoFormat builds the yt-dlp format selector for a video quality
func videoFormat(quality string) string {
	if quality == "" || quality == QualityBest {
		return "bestvideo+bestaudio/best"
	}
	return fmt.Sprintf("bestvideo[height<=%s]+bestaudio/best", quality)
}

// eventFromUpdate maps a go-ytdlp progress update onto an Event
func eventFromUpdate(update ytdlp.ProgressUpdate) Event {
	ev := Event{
		Phase:           PhaseDownloading,
		TotalBytes:      int64(update.TotalBytes),
		DownloadedBytes: int64(update.DownloadedBytes),
		ETASec:          -1,
		Filename:        update.Filename,
	}

	if update.Status == ytdlp.ProgressStatusFinished {
		ev.Phase = PhaseFinished
	}

	if !update.Started.IsZero() {
		elapsed := time.Since(update.Started)
		if elapsed.Seconds() > 0 {
			ev.Rate = float64(update.DownloadedBytes) / elapsed.Seconds()
		}
	}

	if eta := update.ETA(); eta > 0 {
		ev.ETASec = int(eta.Seconds())
	}

	return ev
}

// itemFromInfo maps extracted info onto an Item, falling back to the
// request URL when the entry has no canonical URL of its own
func itemFromInfo(info *ytdlp.ExtractedInfo, fallbackURL string) Item {
	item := Item{
		Title:     deref(info.Title),
		Track:     deref(info.Track),
		Artist:    deref(info.Artist),
		Album:     deref(info.Album),
		Uploader:  deref(info.Uploader),
		Thumbnail: deref(info.Thumbnail),
		URL:       deref(info.WebpageURL),
	}
	if item.URL == "" {
		item.URL = fallbackURL
	}
	return item
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
