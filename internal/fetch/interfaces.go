package fetch

import (
	"context"
	"time"
)

// Output formats supported by the engine
const (
	FormatMP3 = "mp3"
	FormatMP4 = "mp4"
)

// QualityBest requests the unconstrained video tier
const QualityBest = "best"

// Phase of a progress event
type Phase string

const (
	// PhaseDownloading means bytes are being transferred
	PhaseDownloading Phase = "downloading"

	// PhaseFinished means the raw transfer is done; post-processing
	// (audio extraction, muxing) may still run after it
	PhaseFinished Phase = "finished"
)

// Item is one downloadable unit resolved from a target URL. Metadata
// fields are best effort and may be empty; callers apply their own
// fallback chain.
type Item struct {
	Title     string
	Track     string // explicit track tag, preferred over Title for audio
	Artist    string
	Album     string
	Uploader  string
	Thumbnail string // cover art URL
	URL       string // canonical per-item URL
}

// Resolution is the ordered batch resolved from a target URL.
// BatchTitle is the playlist title and is empty for a single item.
type Resolution struct {
	Items      []Item
	BatchTitle string
}

// Event is one progress callback from an in-flight item transfer
type Event struct {
	Phase           Phase
	TotalBytes      int64 // 0 when unknown
	DownloadedBytes int64
	Rate            float64 // bytes per second, 0 when unknown
	ETASec          int     // -1 when unknown
	Filename        string
}

// Hook receives progress events. It is invoked synchronously on the
// engine's worker, one stream per item, never interleaved across items.
type Hook func(Event)

// Options select format, quality, and transport behavior for one item
type Options struct {
	Format          string // FormatMP3 or FormatMP4
	Quality         string // bitrate for mp3, max height or "best" for mp4
	SocketTimeout   time.Duration
	FragmentRetries int
}

// Engine is the external capability that resolves target URLs into
// items and performs the download+transcode for one item at a time.
type Engine interface {
	// Resolve expands url into an ordered batch without downloading.
	Resolve(ctx context.Context, url string, opts Options) (*Resolution, error)

	// Download fetches one item to outputTemplate (a yt-dlp output
	// template ending in ".%(ext)s"), reporting progress through hook.
	Download(ctx context.Context, itemURL, outputTemplate string, opts Options, hook Hook) error
}
