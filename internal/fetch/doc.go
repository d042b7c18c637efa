package fetch

// Package fetch wraps the external download engine (yt-dlp via
// github.com/lrstanley/go-ytdlp) behind the Engine interface: playlist
// resolution without download, and per-item download+transcode with a
// synchronous progress hook. The orchestrator depends only on Engine,
// which keeps the batch pipeline testable with a fake.
